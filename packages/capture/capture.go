package capture

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/restclient/packages/response"
	"github.com/tidwall/gjson"
)

type Source string

const (
	SourceBody   Source = "body"
	SourceHeader Source = "header"
	SourceStatus Source = "status"
	SourceLines  Source = "lines"
)

type Capture struct {
	Name   string
	Source Source
	Path   string
}

// Parse reads a capture definition of the form name=source[:path].
func Parse(def string) (*Capture, error) {
	name, spec, ok := strings.Cut(def, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return nil, fmt.Errorf("invalid capture %q (expected name=source[:path])", def)
	}
	source, path, _ := strings.Cut(strings.TrimSpace(spec), ":")

	c := &Capture{Name: name, Source: Source(source), Path: path}
	switch c.Source {
	case SourceBody, SourceStatus, SourceLines:
	case SourceHeader:
		if path == "" {
			return nil, fmt.Errorf("capture %q: header source needs a name", name)
		}
	default:
		return nil, fmt.Errorf("capture %q: unknown source %q", name, source)
	}
	return c, nil
}

type Extractor struct {
	result   *response.Result
	bodyJSON gjson.Result
	isJSON   bool
}

func NewExtractor(res *response.Result) *Extractor {
	e := &Extractor{
		result: res,
	}
	if gjson.Valid(res.Body) {
		e.bodyJSON = gjson.Parse(res.Body)
		e.isJSON = true
	}
	return e
}

func (e *Extractor) Extract(c *Capture) (any, bool) {
	switch c.Source {
	case SourceBody:
		return e.extractFromBody(c.Path)
	case SourceHeader:
		return e.extractFromHeader(c.Path)
	case SourceStatus:
		return e.result.StatusCode(), true
	case SourceLines:
		return e.result.StatusLines, true
	default:
		return nil, false
	}
}

func (e *Extractor) extractFromBody(path string) (any, bool) {
	if !e.isJSON {
		if path == "" {
			return e.result.Body, true
		}
		return nil, false
	}

	if path == "" {
		return e.bodyJSON.Value(), true
	}

	result := e.bodyJSON.Get(path)
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

func (e *Extractor) extractFromHeader(name string) (any, bool) {
	value, ok := e.result.Headers.Lookup(name)
	if !ok {
		return nil, false
	}
	return value.Interface(), true
}

// ExtractAll runs every capture and returns the values that were found.
func ExtractAll(res *response.Result, captures []*Capture) map[string]any {
	extractor := NewExtractor(res)
	results := make(map[string]any)

	for _, c := range captures {
		if value, ok := extractor.Extract(c); ok {
			results[c.Name] = value
		}
	}

	return results
}
