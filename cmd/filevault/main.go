// Command filevault serves the per-user file storage API.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/filevault/handlers"
	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
	"github.com/dmitrymomot/filevault/pkg/auth"
	"github.com/dmitrymomot/filevault/pkg/config"
	"github.com/dmitrymomot/filevault/pkg/files"
	"github.com/dmitrymomot/filevault/pkg/health"
	"github.com/dmitrymomot/filevault/pkg/logger"
	"github.com/dmitrymomot/filevault/pkg/metrics"
	"github.com/dmitrymomot/filevault/pkg/storage"
)

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		logger.New(slog.LevelInfo).Error("invalid configuration", slog.Any("error", err))
		return err
	}

	log := logger.FromConfig(cfg.Log, middlewares.RequestIDExtractor()).With("app", "filevault")

	bucket, signer, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		log.Error("storage setup failed", slog.Any("error", err))
		return err
	}

	verifier, err := auth.NewVerifier(ctx, cfg.Auth)
	if err != nil {
		log.Error("token verifier setup failed", slog.Any("error", err))
		return err
	}

	admins := cfg.Admins()
	authn := auth.NewAuthenticator(verifier, auth.NewAdminPolicy(admins...))

	m := metrics.New(metrics.DefaultNamespace)
	svc := files.NewService(bucket, signer,
		files.WithURLTTL(cfg.SignedURLTTL),
		files.WithLogger(log),
		files.WithRecorder(m),
	)

	app := internal.New(
		internal.WithContext(ctx),
		internal.WithLogger(log),
		internal.WithAddress(cfg.Address()),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Metrics(m),
			middlewares.Recover(),
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.Origins()...)),
		),
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithHandlers(
			handlers.NewSystem(
				health.Checks{"bucket": bucket.Ping},
				m.Handler(),
				health.WithLogger(log),
			),
			handlers.NewFiles(svc, authn, handlers.WithUploadMaxMemory(cfg.UploadMaxMemory)),
		),
		internal.WithShutdownHook(logger.FlushSentry()),
	)

	log.Info("filevault starting",
		slog.String("bucket", bucket.Name()),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Int("admins", len(admins)),
	)

	if err := app.Run(); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		return err
	}
	return nil
}
