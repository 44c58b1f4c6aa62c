package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/config"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/handlers"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/logger"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/router"
	"github.com/preethamsolanki28/Voice-Based-Interactive-Learning-Robot-for-School-Students/internal/services"
)

func main() {
	log.Println("🚀 Starting Voice Learning Robot backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("✗ Invalid configuration: %v", err)
	}
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Logging ────
	logger.Init(cfg.LogLevel, cfg.LogFile, cfg.Env)
	log.Println("✓ Logging initialized")

	// The server still starts without a key; /chat reports the
	// misconfiguration per request instead.
	if cfg.OpenRouterAPIKey == "" {
		log.Println("⚠ OPENROUTER_API_KEY is not set; /chat will return a configuration error")
	}

	// ──── Step 3: Initialize Chat Service ────
	chatService := services.NewChatService(cfg)
	log.Printf("✓ OpenRouter client initialized (model %s)", cfg.Model)

	// ──── Initialize Handlers ────
	apiKeyConfigured := cfg.OpenRouterAPIKey != ""
	chatHandler := handlers.NewChatHandler(chatService, apiKeyConfigured, cfg.MaxMessageLength)
	healthHandler := handlers.NewHealthHandler(cfg.Model, apiKeyConfigured)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, healthHandler, cfg.StaticDir, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Must outlast the upstream call budget or a slow completion
		// gets cut off mid-response.
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Voice Learning Robot ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
