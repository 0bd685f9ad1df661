package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromContentType(t *testing.T) {
	tests := map[string]string{
		"application/json":                 "json",
		"application/json; charset=utf-8":  "json",
		"application/problem+json":         "json",
		"application/x-yaml":               "yaml",
		"text/html":                        "html",
		"":                                 "",
		"garbage":                          "",
		"application/vnd.api+json; v=2":    "json",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatFromContentType(in), in)
	}
}

func TestResult_DecodeJSON(t *testing.T) {
	res := Parse("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"SERVER\":{\"REQUEST_METHOD\":\"GET\"},\"n\":[1,2]}")

	v, err := res.Decode(NewRegistry(), "")
	require.NoError(t, err)

	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"REQUEST_METHOD": "GET"}, obj["SERVER"])
	assert.Equal(t, "GET", res.Get("SERVER.REQUEST_METHOD").String())
	assert.Equal(t, int64(2), res.Get("n.1").Int())
}

func TestResult_DecodeYAML(t *testing.T) {
	res := Parse("HTTP/1.1 200 OK\r\nContent-Type: application/x-yaml\r\n\r\nname: demo\nitems:\n  - a\n  - b\n")

	v, err := res.Decode(NewRegistry(), "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "demo", "items": []any{"a", "b"}}, v)
}

func TestResult_DecodeExplicitFormatWins(t *testing.T) {
	res := Parse("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\n[1]")

	v, err := res.Decode(NewRegistry(), "json")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1)}, v)
}

func TestResult_DecodeErrors(t *testing.T) {
	reg := NewRegistry()

	_, err := Parse("HTTP/1.1 200 OK\r\n\r\n{}").Decode(reg, "")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Parse("HTTP/1.1 200 OK\r\nContent-Type: text/csv\r\n\r\na,b").Decode(reg, "")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Parse("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{oops").Decode(reg, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownFormat)
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	reg.Register("CSV", func(body []byte) (any, error) {
		return string(body), nil
	})

	_, ok := reg.Lookup("csv")
	assert.True(t, ok)

	v, err := Parse("HTTP/1.1 200 OK\r\nContent-Type: text/csv\r\n\r\na,b").Decode(reg, "")
	require.NoError(t, err)
	assert.Equal(t, "a,b", v)
}
