package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/carousel-admin/internal/config"
	"github.com/msomdec/carousel-admin/internal/domain"
	"github.com/msomdec/carousel-admin/internal/handler"
	"github.com/msomdec/carousel-admin/internal/repository/filesystem"
	"github.com/msomdec/carousel-admin/internal/repository/sqlite"
	"github.com/msomdec/carousel-admin/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	passwordHash := cfg.AdminPasswordHash
	if passwordHash == "" {
		passwordHash, err = service.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			slog.Error("failed to hash admin password", "error", err)
			os.Exit(1)
		}
	}

	blobs, items, closeStore, err := openStores(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	authService := service.NewAuthService(service.AdminCredentials{
		Username:     cfg.AdminUser,
		PasswordHash: passwordHash,
		SigningKey:   cfg.JWTSecret,
	})
	carouselService := service.NewCarouselService(
		service.NewMediaValidator(cfg.AllowedContentTypes, cfg.MaxUploadBytes),
		blobs,
		items,
	)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5 login attempts per minute per IP, burst of 5.
	loginLimiter := service.NewTokenBucket(5.0/60.0, 5)
	go loginLimiter.RunCleanup(ctx, 5*time.Minute)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, loginLimiter, carouselService, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.LogRequests(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStores builds the blob and document stores for the configured backend.
func openStores(ctx context.Context, cfg *config.Config) (domain.BlobStore, domain.CarouselStore, func(), error) {
	if cfg.Backend == config.BackendFilesystem {
		slog.Info("using filesystem storage", "uploads", cfg.UploadsDir, "document", cfg.CarouselFile)
		return filesystem.NewBlobStore(cfg.UploadsDir), filesystem.NewDocumentStore(cfg.CarouselFile), func() {}, nil
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, nil, err
	}
	var store domain.Database = db
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	slog.Info("database migrations applied", "path", cfg.DatabasePath)

	closeDB := func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}
	return db.Blobs(), db.Documents(), closeDB, nil
}
