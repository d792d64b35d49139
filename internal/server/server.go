package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/config"
	"github.com/tanmay-mevada/DStrA-sub001/internal/handler"
	appmw "github.com/tanmay-mevada/DStrA-sub001/internal/middleware"
	"github.com/tanmay-mevada/DStrA-sub001/internal/rate"
	"github.com/tanmay-mevada/DStrA-sub001/internal/repository"
	"github.com/tanmay-mevada/DStrA-sub001/internal/router"
	"github.com/tanmay-mevada/DStrA-sub001/internal/service/judge"
	"github.com/tanmay-mevada/DStrA-sub001/internal/service/mailer"
	oauth2svc "github.com/tanmay-mevada/DStrA-sub001/internal/service/oauth2"
	"github.com/tanmay-mevada/DStrA-sub001/internal/usecase"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/cache"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/id"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/jwtutil"

	"go.uber.org/zap"
)

const jwtKeyID = "dstra-1"

// Run wires the whole service together and blocks until shutdown.
func Run() error {
	cfg := config.Load()

	db, err := config.ConnectDB()
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer db.Close()

	redisCache := cache.NewCache(cfg.RedisAddr, cfg.RedisPass)
	defer redisCache.Close()

	zlog, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("zap: %w", err)
	}
	defer zlog.Sync()

	priv, err := jwtutil.LoadRSAPrivateKeyFromPEM(cfg.JWTPrivateKeyPath)
	if err != nil {
		return fmt.Errorf("jwt private key: %w", err)
	}
	pub, err := jwtutil.LoadRSAPublicKeyFromPEM(cfg.JWTPublicKeyPath)
	if err != nil {
		return fmt.Errorf("jwt public key: %w", err)
	}

	signer := jwtutil.NewGenerator(priv, cfg.JWTIssuer, cfg.JWTAudience, jwtKeyID, cfg.SessionTTL)
	verifier := jwtutil.NewVerifier(pub, cfg.JWTIssuer, cfg.JWTAudience)
	verifier.AddKey(jwtKeyID, pub)

	snowflake, err := id.NewSnowflake(1)
	if err != nil {
		return fmt.Errorf("snowflake: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	contentRepo := repository.NewContentRepository(db)
	emailLogRepo := repository.NewEmailLogRepo(db)

	// Services
	mail := mailer.NewSMTPSender(cfg.SMTP, emailLogRepo, zlog)
	google := oauth2svc.NewGoogleVerifier(cfg.GoogleClientID)
	judgeClient := judge.NewClient(cfg.JudgeURL, cfg.JudgeAPIKey, cfg.JudgeTimeout)
	otpLimiter := rate.NewLimiter(redisCache, cfg.OTPWindow, cfg.OTPMaxPerWindow, cfg.OTPCooldown)

	// Usecases
	registerUC := usecase.NewRegisterUsecase(userRepo, otpLimiter, mail, snowflake, cfg.OTPTTL, cfg.MailTimeout)
	resetUC := usecase.NewResetUsecase(userRepo, mail, cfg.BaseURL, cfg.ResetTokenTTL, cfg.MailTimeout)
	loginUC := usecase.NewLoginUsecase(userRepo, google, snowflake)
	sessionUC := usecase.NewSessionUsecase(userRepo, sessionRepo, signer, redisCache, snowflake, cfg.SessionTTL)
	userUC := usecase.NewUserUsecase(userRepo, sessionUC)
	contentUC := usecase.NewContentUsecase(contentRepo, snowflake)
	contactUC := usecase.NewContactUsecase(mail, cfg.ContactInbox, cfg.MailTimeout)

	authMW := appmw.NewAuthMiddleware(verifier, sessionUC, userUC)

	h := router.New(router.Deps{
		Auth:    handler.NewAuthHandler(loginUC, sessionUC, userUC),
		OTP:     handler.NewAuthOTPHandler(registerUC),
		Reset:   handler.NewAuthResetHandler(resetUC),
		Content: handler.NewContentHandler(contentUC),
		Admin:   handler.NewAdminHandler(userUC),
		Execute: handler.NewExecuteHandler(judgeClient),
		Contact: handler.NewContactHandler(contactUC),
		AuthMW:  authMW,
		Cache:   redisCache,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] listening on %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("[SERVER] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
