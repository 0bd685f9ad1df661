package response

import (
	"bytes"
	"encoding/json"
	"strings"
)

// HeaderValue holds either a single header value or, when the header was
// repeated, every value in the order it was seen.
type HeaderValue struct {
	multi  bool
	values []string
}

func Single(v string) HeaderValue {
	return HeaderValue{values: []string{v}}
}

func Multiple(vs ...string) HeaderValue {
	return HeaderValue{multi: true, values: append([]string{}, vs...)}
}

// IsMulti reports whether the header occurred more than once.
func (h HeaderValue) IsMulti() bool {
	return h.multi
}

func (h HeaderValue) Values() []string {
	return append([]string{}, h.values...)
}

func (h HeaderValue) First() string {
	if len(h.values) == 0 {
		return ""
	}
	return h.values[0]
}

func (h HeaderValue) Last() string {
	if len(h.values) == 0 {
		return ""
	}
	return h.values[len(h.values)-1]
}

// String joins multiple values with ", " the way they would be folded on the wire.
func (h HeaderValue) String() string {
	return strings.Join(h.values, ", ")
}

func (h HeaderValue) append(v string) HeaderValue {
	return HeaderValue{multi: true, values: append(h.Values(), v)}
}

// Interface returns a string for single values and a []string otherwise.
func (h HeaderValue) Interface() any {
	if h.multi {
		return h.Values()
	}
	return h.First()
}

func (h HeaderValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Interface())
}

// NormalizeName lower-cases ASCII letters and replaces every other byte
// outside [a-z0-9] with an underscore, one underscore per byte.
func NormalizeName(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case 'A' <= c && c <= 'Z':
			b[i] = c + ('a' - 'A')
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// Headers maps normalized header names to their values, remembering the
// order in which names were first seen. The zero value is ready to use.
type Headers struct {
	names  []string
	values map[string]HeaderValue
}

// Add records a header occurrence. A name seen before turns into a
// multi-valued entry.
func (h *Headers) Add(name, value string) {
	key := NormalizeName(name)
	if h.values == nil {
		h.values = make(map[string]HeaderValue)
	}
	existing, ok := h.values[key]
	if !ok {
		h.names = append(h.names, key)
		h.values[key] = Single(value)
		return
	}
	h.values[key] = existing.append(value)
}

// Lookup finds a header by name. The name is normalized first, so
// "Content-Type" and "content_type" address the same entry.
func (h Headers) Lookup(name string) (HeaderValue, bool) {
	v, ok := h.values[NormalizeName(name)]
	return v, ok
}

// Get returns the header value, or the zero HeaderValue when absent.
func (h Headers) Get(name string) HeaderValue {
	v, _ := h.Lookup(name)
	return v
}

func (h Headers) Has(name string) bool {
	_, ok := h.Lookup(name)
	return ok
}

// Names returns normalized names in first-seen order.
func (h Headers) Names() []string {
	return append([]string{}, h.names...)
}

func (h Headers) Len() int {
	return len(h.names)
}

// Map flattens the headers into plain Go values (string or []string).
func (h Headers) Map() map[string]any {
	out := make(map[string]any, len(h.names))
	for _, name := range h.names {
		out[name] = h.values[name].Interface()
	}
	return out
}

// MarshalJSON writes the headers as an object, keeping first-seen order.
func (h Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range h.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(h.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
