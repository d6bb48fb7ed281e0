package session

import "strings"

// Register makes sure global holds a map under namespace and returns that
// map. A missing slot is created. A slot holding anything but a map is reset
// to an empty map and ErrNamespaceCollision is returned alongside it; the
// returned map is usable in both cases.
func Register(global map[string]any, namespace string) (map[string]any, error) {
	slot, ok := global[namespace]
	if !ok {
		m := make(map[string]any)
		global[namespace] = m
		return m, nil
	}

	if m, isMap := slot.(map[string]any); isMap && m != nil {
		return m, nil
	}

	m := make(map[string]any)
	global[namespace] = m
	return m, ErrNamespaceCollision
}

// MergeRecursive merges src into dst in place and returns dst.
// Values of src replace values of dst, except when both sides hold a map:
// those are merged key by key. Keys of dst missing from src are kept.
func MergeRecursive(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, sv := range src {
		sm, srcIsMap := sv.(map[string]any)
		dm, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap && dm != nil {
			MergeRecursive(dm, sm)
			continue
		}
		dst[k] = sv
	}
	return dst
}

// view is the namespaced window over the shared data. Before activation it
// writes into a private buffer; once bound it works directly on the slot map.
type view struct {
	buffer map[string]any
	live   map[string]any
	bound  bool
}

func newView() *view {
	return &view{buffer: make(map[string]any)}
}

func (v *view) data() map[string]any {
	if v.bound {
		return v.live
	}
	return v.buffer
}

// bind merges buffered writes into live and aliases it from now on.
func (v *view) bind(live map[string]any) {
	if len(v.buffer) > 0 {
		MergeRecursive(live, v.buffer)
	}
	v.live = live
	v.bound = true
	v.buffer = nil
}

func (v *view) unbind() {
	v.live = nil
	v.bound = false
	v.buffer = make(map[string]any)
}

const pathSeparator = "."

func lookup(m map[string]any, key string) (any, bool) {
	if val, ok := m[key]; ok {
		return val, true
	}
	if !strings.Contains(key, pathSeparator) {
		return nil, false
	}

	parts := strings.Split(key, pathSeparator)
	cur := m
	for i, part := range parts {
		val, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, isMap := val.(map[string]any)
		if !isMap {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

func assign(m map[string]any, key string, value any) {
	if _, ok := m[key]; ok || !strings.Contains(key, pathSeparator) {
		m[key] = value
		return
	}

	parts := strings.Split(key, pathSeparator)
	cur := m
	for _, part := range parts[:len(parts)-1] {
		next, isMap := cur[part].(map[string]any)
		if !isMap || next == nil {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

func unset(m map[string]any, key string) {
	if _, ok := m[key]; ok || !strings.Contains(key, pathSeparator) {
		delete(m, key)
		return
	}

	parts := strings.Split(key, pathSeparator)
	cur := m
	for _, part := range parts[:len(parts)-1] {
		next, isMap := cur[part].(map[string]any)
		if !isMap {
			return
		}
		cur = next
	}
	delete(cur, parts[len(parts)-1])
}
