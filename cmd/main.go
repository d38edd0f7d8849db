/*
Package main is the entry point for the Connectify messaging server.

It is responsible for loading configuration, initializing the global logging system,
connecting to PostgreSQL and applying migrations, wiring the hub and delivery
pipeline, setting up the HTTP server, and gracefully handling operating system
interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectify/internal/app/assistant"
	"connectify/internal/app/chat"
	"connectify/internal/app/db"
	"connectify/internal/app/mailer"
	"connectify/internal/app/storage"
	"connectify/internal/app/store"
	"connectify/internal/configs"
	"connectify/internal/handler"
	"connectify/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("mailer_enabled", cfg.MailerEnabled()).
		Bool("assistant_enabled", cfg.AssistantEnabled()).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL and apply migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	dataStore := store.New(pool)

	// Initialize S3 storage
	storageService, err := storage.NewStorageService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize storage service")
	}

	// Optional collaborators
	var resetMailer *mailer.Mailer
	if cfg.MailerEnabled() {
		resetMailer, err = mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		})
		if err != nil {
			logx.Fatal(err, "Failed to initialize mailer")
		}
	}

	var assistantClient *assistant.Client
	if cfg.AssistantEnabled() {
		assistantClient = assistant.New(assistant.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	}

	// Initialize presence hub and message delivery pipeline
	hub := chat.NewHub()
	pipeline := chat.NewPipeline(hub, dataStore)

	// Setup HTTP server and routes
	router := handler.Router(&handler.AppDeps{
		Config:    cfg,
		Hub:       hub,
		Pipeline:  pipeline,
		Store:     dataStore,
		Storage:   storageService,
		Mailer:    resetMailer,
		Assistant: assistantClient,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Connectify Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
