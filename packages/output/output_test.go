package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/abdul-hamid-achik/restclient/packages/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiStatus = "HTTP/1.1 100 Continue\r\n\r\nHTTP/1.1 200 OK\r\nSet-Cookie: a=1\r\nSet-Cookie: b=2\r\nContent-Type: application/json\r\n\r\n{\"ok\":true}"

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	require.NoError(t, f.Format(response.Parse(multiStatus), nil))

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 100 Continue\nHTTP/1.1 200 OK\n")
	assert.Contains(t, out, "set_cookie: [a=1, b=2]\n")
	assert.Contains(t, out, "content_type: application/json\n")
	assert.Contains(t, out, `{"ok":true}`)
}

func TestConsoleFormatter_DecodedAndHeadersOnly(t *testing.T) {
	res := response.Parse(multiStatus)

	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))
	require.NoError(t, f.Format(res, map[string]any{"ok": true}))
	assert.Contains(t, buf.String(), "\"ok\": true")

	buf.Reset()
	f = NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithHeadersOnly(true))
	require.NoError(t, f.Format(res, nil))
	assert.NotContains(t, buf.String(), `{"ok":true}`)
}

func TestConsoleFormatter_NoStatusLine(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))
	require.NoError(t, f.Format(response.Parse("garbage"), nil))
	assert.Contains(t, buf.String(), "(no status line)")
	assert.Contains(t, buf.String(), "garbage")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(WithJSONWriter(&buf), WithCompact(true))

	require.NoError(t, f.Format(response.Parse(multiStatus), nil))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, []any{"HTTP/1.1 100 Continue", "HTTP/1.1 200 OK"}, out["statusLines"])
	assert.Equal(t, float64(200), out["statusCode"])
	assert.Equal(t, map[string]any{
		"set_cookie":   []any{"a=1", "b=2"},
		"content_type": "application/json",
	}, out["headers"])
	assert.Equal(t, `{"ok":true}`, out["body"])
	assert.NotContains(t, out, "decoded")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	f, err := New("json", &buf, true)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	f, err = New("", &buf, true)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleFormatter{}, f)

	_, err = New("xml", &buf, true)
	assert.Error(t, err)
}
