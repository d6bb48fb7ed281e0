package sessionstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/nsession/pkg/logger"
)

// Backend persists the shared data of a session under its id.
type Backend interface {
	// Load returns the data stored for token or ErrSessionNotFound
	Load(ctx context.Context, token string) (map[string]any, error)

	// Save stores data for token, expiring after ttl (0 keeps it forever)
	Save(ctx context.Context, token string, data map[string]any, ttl time.Duration) error

	// Delete removes the record for token
	Delete(ctx context.Context, token string) error
}

// Collector is implemented by backends that need an explicit sweep to drop
// expired records.
type Collector interface {
	DeleteExpired(ctx context.Context) error
}

// RunGC sweeps expired records every interval until ctx is done.
func RunGC(ctx context.Context, c Collector, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		return
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			if err := c.DeleteExpired(ctx); err != nil {
				log.ErrorContext(ctx, "session garbage collection failed",
					logger.Component("sessionstore"),
					logger.Event("session.gc"),
					logger.Error(err),
				)
				continue
			}
			log.DebugContext(ctx, "expired sessions removed",
				logger.Component("sessionstore"),
				logger.Event("session.gc"),
				logger.Duration(time.Since(start)),
			)
		}
	}
}

// cloneData deep-copies nested maps and slices so callers never share
// mutable state with a backend.
func cloneData(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneData(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
