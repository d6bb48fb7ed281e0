package sessionstore

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/nsession/pkg/logger"
	"github.com/dmitrymomot/nsession/pkg/session"
)

// LoggerExtractor adds the id of the request's session to log records once
// the session has started.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		store, ok := session.StoreFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		h, ok := store.(*Handle)
		if !ok || h.ID() == "" {
			return slog.Attr{}, false
		}
		return logger.SessionID(h.ID()), true
	}
}
