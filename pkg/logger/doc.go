// Package logger builds *slog.Logger values for the session service and
// keeps attribute naming consistent across packages.
//
// New assembles a text or JSON handler from functional options and wraps it
// in LogHandlerDecorator, which runs registered ContextExtractor callbacks on
// every record so request-scoped values end up in the output without being
// passed around explicitly.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "sessiond"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "session identity changed",
//	    logger.Namespace("app"),
//	    logger.ClientIP(ip),
//	)
//
// Attribute helpers such as Error and SessionID return an empty slog.Attr
// for empty input, so they can be passed unconditionally.
package logger
