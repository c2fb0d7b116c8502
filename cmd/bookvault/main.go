package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bookvault/internal/auth"
	"bookvault/internal/config"
	"bookvault/internal/embedding/hf"
	"bookvault/internal/extract"
	"bookvault/internal/httpapi"
	"bookvault/internal/ingest"
	"bookvault/internal/recommend"
	"bookvault/internal/store"
	"bookvault/internal/summarize"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	flag.Parse()

	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	secret := os.Getenv(cfg.Auth.SecretEnv)
	if secret == "" {
		log.Error("auth secret is not set", "env", cfg.Auth.SecretEnv)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := store.Migrate(ctx, dsn); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	st, err := store.Open(ctx, dsn)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	summarizer := summarize.NewClient(summarize.Config{
		Endpoint:  cfg.Summarizer.Endpoint,
		APIKeyEnv: cfg.Summarizer.APIKeyEnv,
		Timeout:   time.Duration(cfg.Summarizer.TimeoutSecs) * time.Second,
	})
	embedder := hf.NewClient(hf.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		Model:     cfg.Embedder.Model,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})

	ingestor := ingest.New(extract.New(log), summarizer, embedder, st.Books,
		cfg.Server.UploadDir, cfg.Extractor.MaxTokens, log)
	engine := recommend.New(st.Books, st.Reviews, log)

	api := httpapi.New(httpapi.Config{
		Books:      st.Books,
		Users:      st.Users,
		Reviews:    st.Reviews,
		Ingestor:   ingestor,
		Summarizer: summarizer,
		Engine:     engine,
		Tokens:     auth.NewTokens([]byte(secret)),
		MaxUpload:  int64(cfg.Server.MaxUploadMBytes) << 20,
		Log:        log,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.Router(),
	}

	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownSecs)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
