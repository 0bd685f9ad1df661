package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/restclient/packages/response"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	StatusLines []string         `json:"statusLines"`
	StatusCode  int              `json:"statusCode"`
	Headers     response.Headers `json:"headers"`
	Body        string           `json:"body"`
	Decoded     any              `json:"decoded,omitempty"`
}

// JSONFormatter formats parsed responses as JSON
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		indent: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithJSONWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// WithCompact disables indentation.
func WithCompact(compact bool) JSONOption {
	return func(f *JSONFormatter) {
		f.indent = !compact
	}
}

func (f *JSONFormatter) Format(res *response.Result, decoded any) error {
	out := JSONOutput{
		StatusLines: res.StatusLines,
		StatusCode:  res.StatusCode(),
		Headers:     res.Headers,
		Body:        res.Body,
		Decoded:     decoded,
	}

	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(out)
}
