// Package main is the entry point for the clinic site server.
// It loads configuration, builds the content registry, connects the
// optional cache and object storage, sets up routing, and starts the HTTP
// server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pocsclinic/internal/cache"
	"pocsclinic/internal/config"
	"pocsclinic/internal/contact"
	"pocsclinic/internal/content"
	"pocsclinic/internal/handlers"
	"pocsclinic/internal/markdown"
	"pocsclinic/internal/metrics"
	"pocsclinic/internal/middleware"
	"pocsclinic/internal/registry"
	"pocsclinic/internal/render"
	"pocsclinic/internal/router"
	"pocsclinic/internal/storage"
	"pocsclinic/internal/store"
)

// renderedPages is the number of rendered article bodies kept in memory.
const renderedPages = 256

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"content_dir", cfg.ContentDir,
		"content_source", cfg.ContentSource,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Content registry, reloaded whenever blogctl appends a record.
	postStore := store.NewPostStore(cfg.RegistryPath())
	posts, err := postStore.LoadAll()
	if err != nil {
		slog.Error("failed to load content registry", "path", cfg.RegistryPath(), "error", err)
		os.Exit(1)
	}
	reg := registry.New(posts)
	metrics.ObserveReload(reg.Len(), nil)
	slog.Info("content registry loaded", "posts", reg.Len())

	// Connect to S3-compatible object storage (optional unless it is the
	// content source).
	storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicURL)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}

	var src content.Source
	switch cfg.ContentSource {
	case config.SourceHTTP:
		src = content.NewHTTPSource(cfg.ContentBaseURL)
	case config.SourceS3:
		if storageClient == nil {
			slog.Error("CONTENT_SOURCE=s3 requires S3 credentials")
			os.Exit(1)
		}
		src = content.NewS3Source(storageClient)
	default:
		src = content.FileSource{Dir: cfg.PublishedDir()}
	}

	// Connect to Valkey for the rendered page cache (optional).
	var pageCache *cache.PageCache
	if addr := cfg.ValkeyAddr(); addr != "" {
		client, err := cache.ConnectValkey(ctx, addr, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			slog.Warn("valkey unavailable, page cache disabled", "addr", addr, "error", err)
		} else {
			defer client.Close()
			pageCache = cache.NewPageCache(client, cfg.PageCacheTTL)
			slog.Info("page cache enabled", "addr", addr, "ttl", cfg.PageCacheTTL)
		}
	} else {
		slog.Warn("valkey not configured, page cache disabled")
	}

	go func() {
		onReload := func(posts int, err error) {
			metrics.ObserveReload(posts, err)
			if err == nil && pageCache != nil {
				pageCache.InvalidateAll(ctx)
			}
		}
		if err := registry.Watch(ctx, reg, postStore, cfg.RegistryPath(), onReload); err != nil {
			slog.Warn("registry hot reload disabled", "error", err)
		}
	}()

	renderer, err := render.New(nil)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}
	md, err := markdown.NewRenderer(renderedPages)
	if err != nil {
		slog.Error("failed to initialize markdown renderer", "error", err)
		os.Exit(1)
	}

	contactLimit := middleware.NewRateLimiter(cfg.ContactRateLimit, cfg.ContactWindow)
	defer contactLimit.Stop()

	h := router.Handlers{
		Public:     handlers.NewPublic(reg, src, md, renderer, pageCache, nil),
		API:        handlers.NewAPI(reg, src, nil),
		Assessment: handlers.NewAssessment(renderer, nil),
		Contact:    handlers.NewContact(contact.NewRelay(cfg.ContactRelayURL), renderer, nil),
	}
	// The draft API edits the working tree and has no authentication; it
	// is only served in development.
	if cfg.IsDev() {
		h.Drafts = handlers.NewDrafts(store.NewDraftStore(cfg.DraftIndexPath()), cfg.DraftsDir())
		slog.Info("draft API enabled", "drafts_dir", cfg.DraftsDir())
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(h, contactLimit),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can wait for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received")

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
