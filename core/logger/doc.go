// Package logger builds the process logger and provides slog attribute helpers.
//
// New reads its settings from Config (LOG_LEVEL, LOG_FORMAT, SENTRY_DSN,
// SENTRY_ENVIRONMENT). Output goes to stdout as JSON unless LOG_FORMAT=text.
// With a Sentry DSN configured, warnings and errors are also shipped to Sentry.
//
//	log := logger.New(cfg, middleware.RequestIDExtractor())
//	log.Info("collection resynced",
//		logger.Collection("projects"),
//		logger.Count("items", 12),
//	)
//
// Attribute helpers return an empty slog.Attr for zero inputs, which slog
// omits from the output.
package logger
