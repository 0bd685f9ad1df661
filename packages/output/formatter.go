package output

import (
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/restclient/packages/response"
)

// Formatter writes a parsed response. Decoded is the structured body when the
// caller asked for decoding, nil otherwise.
type Formatter interface {
	Format(res *response.Result, decoded any) error
}

// New returns the formatter registered under name.
func New(name string, w io.Writer, noColor bool) (Formatter, error) {
	switch name {
	case "", "console":
		return NewConsoleFormatter(WithWriter(w), WithNoColor(noColor)), nil
	case "json":
		return NewJSONFormatter(WithJSONWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}
