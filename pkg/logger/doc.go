// Package logger builds the service's structured logger on top of log/slog.
//
// Records are JSON on stdout. A LogHandlerDecorator appends attributes pulled
// from the request context (the request id, for instance) to every record,
// and when SENTRY_DSN is set records are also forwarded to Sentry: errors
// become issues, warnings are stored as logs.
//
//	log := logger.FromConfig(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "file uploaded", slog.String("object_name", key))
//
// Without a DSN the same call path logs to stdout only, so development and
// production share one setup.
package logger
