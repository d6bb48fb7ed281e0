package session

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/nsession/pkg/logger"
)

// Middleware opens a namespaced session for every request and stores it in
// the request context. The request context must already carry a Store (see
// WithStore); several middlewares with different namespaces share it.
//
// Invalid options panic at construction time.
func Middleware(opts Options, options ...Option) func(http.Handler) http.Handler {
	if err := opts.validate(); err != nil {
		panic("session: invalid middleware options: " + err.Error())
	}

	holder := &Session{log: slog.New(slog.DiscardHandler)}
	for _, opt := range options {
		opt(holder)
	}
	log := holder.log.With(logger.Component("session"), logger.Namespace(opts.Namespace))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			store, ok := StoreFromContext(ctx)
			if !ok {
				log.ErrorContext(ctx, "no session store in request context", logger.Error(ErrNoStore))
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}

			sess, err := Open(ctx, store, opts, options...)
			if err != nil {
				log.ErrorContext(ctx, "failed to start session", logger.Error(err))
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
		})
	}
}
