package httpd

import (
    "dqx0.com/go/minihttp/httpd/internal/http1"
)

// Header is a case-insensitive single-valued header mapping that keeps
// insertion order for serialization. Keys are stored in canonical MIME
// form; setting an existing key replaces its value in place.
type Header struct {
    keys []string
    vals []string
}

func (h *Header) Get(key string) string {
    k := http1.CanonicalHeaderKey(key)
    for i, have := range h.keys {
        if have == k {
            return h.vals[i]
        }
    }
    return ""
}

func (h *Header) Set(key, value string) {
    k := http1.CanonicalHeaderKey(key)
    for i, have := range h.keys {
        if have == k {
            h.vals[i] = value
            return
        }
    }
    h.keys = append(h.keys, k)
    h.vals = append(h.vals, value)
}

func (h *Header) Del(key string) {
    k := http1.CanonicalHeaderKey(key)
    for i, have := range h.keys {
        if have == k {
            h.keys = append(h.keys[:i], h.keys[i+1:]...)
            h.vals = append(h.vals[:i], h.vals[i+1:]...)
            return
        }
    }
}

func (h *Header) Len() int {
    return len(h.keys)
}

// Each calls fn for every header in insertion order.
func (h *Header) Each(fn func(key, value string)) {
    for i, k := range h.keys {
        fn(k, h.vals[i])
    }
}

func (h *Header) fields() []http1.Field {
    out := make([]http1.Field, len(h.keys))
    for i, k := range h.keys {
        out[i] = http1.Field{Name: k, Value: h.vals[i]}
    }
    return out
}
