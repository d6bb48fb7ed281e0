// Package httpserver runs the session service's HTTP listener with graceful
// shutdown on context cancellation or SIGINT/SIGTERM, and provides a
// liveness/readiness handler.
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithOnShutdown(func() { _ = backend.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
package httpserver
