package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/nsession/pkg/httpserver"
	"github.com/dmitrymomot/nsession/pkg/logger"
	"github.com/dmitrymomot/nsession/pkg/requestid"
	"github.com/dmitrymomot/nsession/pkg/session"
	"github.com/dmitrymomot/nsession/pkg/sessionstore"
)

// namespaces are mounted over the same store on every request.
var namespaces = []string{"app", "cart"}

const maxValueSize = 64 << 10

func newRouter(rt *sessionstore.Runtime, opts session.Options, log *slog.Logger, probes ...func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, probes...))

	r.Group(func(r chi.Router) {
		r.Use(rt.Middleware)
		for _, ns := range namespaces {
			o := opts
			o.Namespace = ns
			r.Use(session.Middleware(o, session.WithLogger(log)))
		}

		h := &handlers{log: log}
		r.Route("/{ns}", func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/destroy", h.destroy)
			r.Get("/{key}", h.get)
			r.Put("/{key}", h.put)
			r.Delete("/{key}", h.remove)
		})
	})

	return r
}

type handlers struct {
	log *slog.Logger
}

func (h *handlers) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context(), chi.URLParam(r, "ns"))
	if !ok {
		http.Error(w, "unknown namespace", http.StatusNotFound)
	}
	return s, ok
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		h.json(w, r, http.StatusOK, s.Values())
	}
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	v, ok := s.Get(key)
	if !ok {
		http.Error(w, "key not found", http.StatusNotFound)
		return
	}
	h.json(w, r, http.StatusOK, map[string]any{"key": key, "value": v})
}

// put stores the request body. Valid JSON is stored decoded, anything else
// as a plain string.
func (h *handlers) put(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxValueSize))
	if err != nil {
		http.Error(w, "value too large", http.StatusRequestEntityTooLarge)
		return
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		value = string(body)
	}
	s.Set(chi.URLParam(r, "key"), value)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) remove(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		s.Remove(chi.URLParam(r, "key"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) destroy(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Destroy(r.Context()); err != nil {
		h.log.ErrorContext(r.Context(), "failed to destroy session", logger.Namespace(s.Namespace()), logger.Error(err))
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) json(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.ErrorContext(r.Context(), "failed to encode response", logger.Error(err))
	}
}
