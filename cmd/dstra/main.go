package main

import (
	"log"

	"github.com/tanmay-mevada/DStrA-sub001/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] no .env file found, relying on environment")
	}

	if err := server.Run(); err != nil {
		log.Fatalf("[MAIN] server exited: %v", err)
	}
}
