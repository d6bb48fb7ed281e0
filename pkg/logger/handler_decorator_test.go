package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nsession/pkg/logger"
)

type sessionKey struct{}

func sessionExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(sessionKey{}).(string)
	return logger.SessionID(id), ok
}

func TestLogHandlerDecorator(t *testing.T) {
	t.Run("no extractors returns the wrapped handler", func(t *testing.T) {
		next := slog.NewJSONHandler(&bytes.Buffer{}, nil)
		assert.Same(t, next, logger.NewLogHandlerDecorator(next, nil))
	})

	t.Run("adds extracted attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := slog.New(logger.NewLogHandlerDecorator(slog.NewJSONHandler(buf, nil), sessionExtractor))

		ctx := context.WithValue(context.Background(), sessionKey{}, "abcdefghijkl")
		log.With(logger.Component("sessionstore")).WithGroup("req").InfoContext(ctx, "committed")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "sessionstore", entry["component"])
		req, ok := entry["req"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "abcdefgh…", req["session_id"])
	})

	t.Run("skips empty attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := slog.New(logger.NewLogHandlerDecorator(slog.NewJSONHandler(buf, nil), sessionExtractor))

		ctx := context.WithValue(context.Background(), sessionKey{}, "")
		log.InfoContext(ctx, "no session yet")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.NotContains(t, entry, "session_id")
		assert.NotContains(t, entry, "")
	})
}
