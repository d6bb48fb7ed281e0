package session_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nsession/pkg/session"
)

func TestMergeRecursive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dst  map[string]any
		src  map[string]any
		want map[string]any
	}{
		{
			name: "nested maps merge key by key",
			dst:  map[string]any{"a": 1, "b": map[string]any{"x": 1, "y": 2}},
			src:  map[string]any{"b": map[string]any{"y": 3, "z": 4}, "c": 5},
			want: map[string]any{"a": 1, "b": map[string]any{"x": 1, "y": 3, "z": 4}, "c": 5},
		},
		{
			name: "scalar replaces map",
			dst:  map[string]any{"b": map[string]any{"x": 1}},
			src:  map[string]any{"b": "flat"},
			want: map[string]any{"b": "flat"},
		},
		{
			name: "map replaces scalar",
			dst:  map[string]any{"b": "flat"},
			src:  map[string]any{"b": map[string]any{"x": 1}},
			want: map[string]any{"b": map[string]any{"x": 1}},
		},
		{
			name: "lists are replaced",
			dst:  map[string]any{"l": []any{1, 2, 3}},
			src:  map[string]any{"l": []any{9}},
			want: map[string]any{"l": []any{9}},
		},
		{
			name: "nil destination",
			src:  map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
		{
			name: "empty source",
			dst:  map[string]any{"a": 1},
			src:  map[string]any{},
			want: map[string]any{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, session.MergeRecursive(tt.dst, tt.src))
		})
	}
}

func TestMergeRecursive_InPlace(t *testing.T) {
	t.Parallel()

	dst := map[string]any{"a": 1}
	got := session.MergeRecursive(dst, map[string]any{"b": 2})
	assert.Equal(t, reflect.ValueOf(dst).Pointer(), reflect.ValueOf(got).Pointer())
	assert.Equal(t, 2, dst["b"])
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates missing slot", func(t *testing.T) {
		t.Parallel()

		global := map[string]any{}
		m, err := session.Register(global, "ns")
		require.NoError(t, err)
		assert.Empty(t, m)
		assert.Contains(t, global, "ns")
	})

	t.Run("keeps existing map", func(t *testing.T) {
		t.Parallel()

		existing := map[string]any{"k": "v"}
		global := map[string]any{"ns": existing}
		m, err := session.Register(global, "ns")
		require.NoError(t, err)
		assert.Equal(t, reflect.ValueOf(existing).Pointer(), reflect.ValueOf(m).Pointer())
		assert.Equal(t, "v", m["k"])
	})

	t.Run("resets non-map slot", func(t *testing.T) {
		t.Parallel()

		global := map[string]any{"ns": "scalar", "other": 1}
		m, err := session.Register(global, "ns")
		assert.ErrorIs(t, err, session.ErrNamespaceCollision)
		require.NotNil(t, m)
		assert.Empty(t, m)
		assert.IsType(t, map[string]any{}, global["ns"])
		assert.Equal(t, 1, global["other"])
	})
}
