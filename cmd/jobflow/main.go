package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobflow/internal/ai/gemini"
	"jobflow/internal/ats"
	"jobflow/internal/config"
	"jobflow/internal/httpapi"
	"jobflow/internal/jobtext"
	"jobflow/internal/logger"
	"jobflow/internal/resume"
	"jobflow/internal/secrets"
	"jobflow/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Optional .env for local development; secrets may also live in
	// the OS keychain.
	_ = godotenv.Load()

	dataDir := os.Getenv("JOBFLOW_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".jobflow")
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfg, validation := config.NormalizeAndValidate(cfg)
	if !validation.OK() {
		return fmt.Errorf("config invalid: %v", validation.Errors)
	}
	if cfg.App.DataDir != "" {
		dataDir = cfg.App.DataDir
	}

	zlog, err := logger.New(cfg.App.LogJSON, cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	for _, warn := range validation.Warnings {
		zlog.Warn("config warning", zap.String("warning", warn))
	}

	// One process per data dir; the sqlite store has a single writer.
	lock := flock.New(filepath.Join(dataDir, "jobflow.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return errors.New("another jobflow instance is already running for this data dir")
	}
	defer func() { _ = lock.Unlock() }()

	token, err := secrets.Get(secrets.AccountAPIToken)
	if err != nil {
		return fmt.Errorf("load %s: %w", secrets.AccountAPIToken, err)
	}
	geminiKey, err := secrets.Get(secrets.AccountGeminiKey)
	if err != nil {
		return fmt.Errorf("load %s: %w", secrets.AccountGeminiKey, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(filepath.Join(dataDir, "jobflow.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	generator, err := gemini.NewGenerator(ctx, geminiKey, cfg.LLM.Model, cfg.LLM.MaxOutputTokens)
	if err != nil {
		return fmt.Errorf("init gemini: %w", err)
	}

	resolver := ats.NewResolver(zlog.Named("ats"))
	extractor := jobtext.NewExtractor(resolver, zlog.Named("jobtext"), jobtext.Options{
		PerHostRPS: cfg.JobText.PerHostRPS,
		Burst:      cfg.JobText.Burst,
		Timeout:    time.Duration(cfg.JobText.TimeoutSeconds) * time.Second,
	})

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:        zlog.Named("http"),
		Resume:        resume.NewService(db),
		Customizer:    gemini.NewCustomizer(generator, zlog.Named("llm")),
		JobText:       extractor,
		Jobs:          resolver,
		Token:         token,
		MaxInputChars: cfg.Customize.MaxInputChars,
	})

	addr := net.JoinHostPort(cfg.App.Host, fmt.Sprint(cfg.App.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("listening",
			zap.String("addr", addr),
			zap.String("data_dir", dataDir),
			zap.String("model", generator.Model()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		zlog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
