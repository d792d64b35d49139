package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectDB() (*pgxpool.Pool, error) {
	dbURL := os.Getenv("DB_CONN")
	if dbURL == "" {
		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getEnv("DB_USER", "dstra"),
			getEnv("DB_PASSWORD", "dstra"),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_NAME", "dstra"),
		)
	}

	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Printf("[DB] failed to parse config: %v", err)
		return nil, err
	}

	// connection pool settings
	cfg.MaxConns = 25
	cfg.MinConns = 5
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbpool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Printf("[DB] failed to create pool: %v", err)
		return nil, err
	}

	if err := dbpool.Ping(ctx); err != nil {
		log.Printf("[DB] ping failed: %v", err)
		return nil, err
	}

	log.Printf("[DB] connected to %s", getEnv("DB_NAME", "dstra"))
	return dbpool, nil
}
