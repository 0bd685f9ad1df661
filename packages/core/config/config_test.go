package config

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/restclient/packages/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.IsDefault())
	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetIndexedQueries())
	assert.Equal(t, 30000, cfg.Timeout)
}

func TestFindAndLoadConfig_NoFile(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsDefault())
}

func TestLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".restclient.json")
	content := `{
  "baseURL": "https://api.example.com",
  "format": "json",
  "indexedQueries": true,
  "headers": {"Accept": "application/json"},
  "parameters": {"token": "abc", "ids": [1, 2]}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.GetIndexedQueries())
	assert.Equal(t, "application/json", cfg.Headers["Accept"])
	assert.Equal(t, 30000, cfg.Timeout, "defaults survive")
	assert.False(t, cfg.IsDefault())
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restclient.yaml")
	content := "baseURL: http://localhost:8080\ntimeout: 500\nvalidateSSL: false\nparameters:\n  page: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 500, cfg.Timeout)
	assert.False(t, cfg.GetValidateSSL())
	assert.Equal(t, map[string]any{"page": 1}, cfg.Parameters)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"A": "1"}

	merged := base.Merge(&Config{
		BaseURL:        "http://x",
		Headers:        map[string]string{"B": "2"},
		IndexedQueries: BoolPtr(true),
	})

	assert.Equal(t, "http://x", merged.BaseURL)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, merged.Headers)
	assert.True(t, merged.GetIndexedQueries())
	assert.Equal(t, map[string]string{"A": "1"}, base.Headers, "base untouched")
	assert.Same(t, base, base.Merge(nil))
}

func TestApplyEnv(t *testing.T) {
	cfg, err := DefaultConfig().ApplyEnv(map[string]string{
		"BASE_URL":        "http://env",
		"TIMEOUT":         "1500",
		"INDEXED_QUERIES": "true",
		"VALIDATE_SSL":    "false",
		"RATE_LIMIT":      "2.5",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://env", cfg.BaseURL)
	assert.Equal(t, 1500, cfg.Timeout)
	assert.True(t, cfg.GetIndexedQueries())
	assert.False(t, cfg.GetValidateSSL())
	assert.Equal(t, 2.5, cfg.RateLimit)

	_, err = DefaultConfig().ApplyEnv(map[string]string{"TIMEOUT": "soon"})
	assert.Error(t, err)
	_, err = DefaultConfig().ApplyEnv(map[string]string{"NO_COLOR": "maybe"})
	assert.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	var seen *http.Request
	fake := http.TransportFunc(func(ctx context.Context, req *http.Request) (string, error) {
		seen = req
		return "HTTP/1.1 204 No Content\r\n\r\n", nil
	})

	cfg := DefaultConfig().Merge(&Config{
		BaseURL:        "http://api.test",
		UserAgent:      "cfg-agent",
		IndexedQueries: BoolPtr(true),
		Parameters:     map[string]any{"ids": []any{"a", "b"}},
	})
	opts, err := cfg.ClientOptions()
	require.NoError(t, err)

	client := http.NewClient(append(opts, http.WithTransport(fake))...)
	res, err := client.Get(context.Background(), "items", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 204, res.StatusCode())
	assert.Equal(t, "http://api.test/items?ids%5B0%5D=a&ids%5B1%5D=b", seen.URL)
	assert.Equal(t, "cfg-agent", seen.Headers["User-Agent"])
}

func TestClientOptions_Errors(t *testing.T) {
	_, err := (&Config{Transport: "carrier-pigeon"}).ClientOptions()
	assert.Error(t, err)

	_, err = (&Config{Parameters: map[string]any{"bad": map[string]any{}}}).ClientOptions()
	assert.Error(t, err)

	_, err = (&Config{Proxy: "not a proxy"}).ClientOptions()
	assert.ErrorContains(t, err, "invalid proxy")

	_, err = (&Config{Proxy: "http://%zz"}).ClientOptions()
	assert.ErrorContains(t, err, "invalid proxy")

	opts, err := (&Config{Transport: "resty", Proxy: "http://proxy.test:3128"}).ClientOptions()
	require.NoError(t, err)
	assert.NotEmpty(t, opts)
}

func TestClientOptions_TransportsHonourRedirectSetting(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "/final" {
			w.WriteHeader(nethttp.StatusOK)
			return
		}
		nethttp.Redirect(w, r, "/final", nethttp.StatusFound)
	}))
	defer server.Close()

	for _, transport := range []string{"http", "resty"} {
		t.Run(transport, func(t *testing.T) {
			opts, err := (&Config{Transport: transport, FollowRedirects: BoolPtr(false)}).ClientOptions()
			require.NoError(t, err)

			res, err := http.NewClient(opts...).Get(context.Background(), server.URL+"/start", nil, nil)
			require.NoError(t, err)
			assert.Equal(t, 302, res.StatusCode())

			opts, err = (&Config{Transport: transport}).ClientOptions()
			require.NoError(t, err)

			res, err = http.NewClient(opts...).Get(context.Background(), server.URL+"/start", nil, nil)
			require.NoError(t, err)
			assert.Equal(t, 200, res.StatusCode())
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := DefaultConfig().Merge(&Config{BaseURL: "http://saved", Format: "json"})
			require.NoError(t, cfg.SaveConfig(path))

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, "http://saved", loaded.BaseURL)
			assert.Equal(t, "json", loaded.Format)
			assert.True(t, loaded.GetFollowRedirects())
		})
	}
}
