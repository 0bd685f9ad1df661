package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when no decoder is registered for the
// response format, or the format cannot be detected.
var ErrUnknownFormat = errors.New("unknown response format")

var contentTypePattern = regexp.MustCompile(`(\w+)/([\w.+-]+)(;.+)?`)

// Decoder turns a response body into structured data.
type Decoder func(body []byte) (any, error)

// Registry maps format names (e.g. "json") to decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry returns a registry preloaded with the json and yaml decoders.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]Decoder)}
	r.Register("json", DecodeJSON)
	r.Register("yaml", DecodeYAML)
	r.Register("yml", DecodeYAML)
	return r
}

// Register adds or replaces the decoder for format.
func (r *Registry) Register(format string, d Decoder) {
	r.decoders[strings.ToLower(format)] = d
}

func (r *Registry) Lookup(format string) (Decoder, bool) {
	d, ok := r.decoders[strings.ToLower(format)]
	return d, ok
}

func DecodeJSON(body []byte) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func DecodeYAML(body []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// FormatFromContentType extracts a short format name from a media type:
// "application/json; charset=utf-8" gives "json", "application/problem+json"
// gives "json" and "application/x-yaml" gives "yaml".
func FormatFromContentType(contentType string) string {
	m := contentTypePattern.FindStringSubmatch(contentType)
	if m == nil {
		return ""
	}
	sub := strings.ToLower(m[2])
	if i := strings.LastIndexByte(sub, '+'); i >= 0 {
		sub = sub[i+1:]
	}
	return strings.TrimPrefix(sub, "x-")
}

// Format returns the response format detected from its Content-Type.
func (r *Result) Format() string {
	return FormatFromContentType(r.ContentType())
}

// Decode decodes the body with the decoder for format. An empty format
// falls back to the one detected from the Content-Type header.
func (r *Result) Decode(reg *Registry, format string) (any, error) {
	if format == "" {
		format = r.Format()
	}
	if format == "" {
		return nil, fmt.Errorf("%w: no content type", ErrUnknownFormat)
	}
	d, ok := reg.Lookup(format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	v, err := d([]byte(r.Body))
	if err != nil {
		return nil, fmt.Errorf("decoding %s body: %w", format, err)
	}
	return v, nil
}

// Get looks up a gjson path in a JSON body.
func (r *Result) Get(path string) gjson.Result {
	return gjson.Get(r.Body, path)
}
