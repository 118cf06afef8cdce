// makala-gateway
//
// This application is an HTTP gateway in front of interchangeable
// chat-completion backends. It accepts a conversation, forwards it to the
// first usable backend (OpenRouter preferred, OpenAI as fallback), and
// returns a single normalized reply. A companion endpoint derives a short
// title from a conversation using the same pipeline.
//
// Environment Variables:
//   - OPENROUTER_API_KEY: credential for the primary backend
//   - OPENAI_API_KEY: credential for the fallback backend
//   - OPENROUTER_MODEL, OPENAI_MODEL: per-backend model override
//   - SYSTEM_PROMPT: preamble injected into chat conversations
//   - PORT: HTTP listen port (default 3000)
//   - UPSTREAM_TIMEOUT: seconds allowed per backend attempt (default 30)
//   - RATE_LIMIT_RPM: per-IP requests per minute on /api routes (default 20)
//   - STATIC_DIR: optional directory of static frontend assets
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"makala-gateway/internal/app"
	"makala-gateway/internal/llm"
	"makala-gateway/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment variables from .env file")
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg := llm.LoadConfig()
	for _, b := range cfg.Backends {
		log.WithFields(log.Fields{
			"backend": b.ID,
			"model":   b.Model,
			"key":     utils.MaskToken(b.APIKey),
		}).Info("Backend configured")
	}
	if len(cfg.Backends) == 0 {
		log.Warn("No backend credentials configured; /api/chat will fail until one is set")
	}

	service := llm.NewService(cfg)
	application := app.New(cfg, service)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: application.Router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("Shutting down...")
		cancel()
	}()

	go func() {
		log.Infof("makala-gateway listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	} else {
		log.Info("Server gracefully stopped")
	}
}
