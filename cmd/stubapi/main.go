package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homequest-admin/internal/stub"
	"homequest-admin/pkg/metrics"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}

	metrics.Init()

	addr := os.Getenv("STUBAPI_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	secret := os.Getenv("STUBAPI_JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
	}

	server := stub.NewServer(secret)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("Starting stub API on %s (admin %s / %s)", addr, stub.SeedAdminPhone, stub.SeedAdminPassword)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
