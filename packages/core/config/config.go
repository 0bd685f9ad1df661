package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/restclient/packages/http"
	"github.com/abdul-hamid-achik/restclient/packages/query"
	"gopkg.in/yaml.v3"
)

// Config represents the restclient configuration
type Config struct {
	BaseURL         string            `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	Format          string            `json:"format,omitempty" yaml:"format,omitempty"`
	UserAgent       string            `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	Headers         map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`       // Default headers for all requests
	Parameters      map[string]any    `json:"parameters,omitempty" yaml:"parameters,omitempty"` // Default parameters for all requests
	IndexedQueries  *bool             `json:"indexedQueries,omitempty" yaml:"indexedQueries,omitempty"`
	Timeout         int               `json:"timeout,omitempty" yaml:"timeout,omitempty"` // milliseconds
	FollowRedirects *bool             `json:"followRedirects,omitempty" yaml:"followRedirects,omitempty"`
	MaxRedirects    int               `json:"maxRedirects,omitempty" yaml:"maxRedirects,omitempty"`
	ValidateSSL     *bool             `json:"validateSSL,omitempty" yaml:"validateSSL,omitempty"`
	Proxy           string            `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	RateLimit       float64           `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"` // requests per second
	RequestIDHeader string            `json:"requestIDHeader,omitempty" yaml:"requestIDHeader,omitempty"`
	Transport       string            `json:"transport,omitempty" yaml:"transport,omitempty"` // "http" or "resty"
	LogLevel        string            `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	NoColor         *bool             `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetIndexedQueries returns the indexed queries setting, defaulting to false
func (c *Config) GetIndexedQueries() bool {
	return getBool(c.IndexedQueries, false)
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".restclient.json",
	"restclient.json",
	".restclient.yaml",
	".restclient.yml",
	"restclient.yaml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.BaseURL != "" {
		result.BaseURL = other.BaseURL
	}
	if other.Format != "" {
		result.Format = other.Format
	}
	if other.UserAgent != "" {
		result.UserAgent = other.UserAgent
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}
	if other.RequestIDHeader != "" {
		result.RequestIDHeader = other.RequestIDHeader
	}
	if other.Transport != "" {
		result.Transport = other.Transport
	}
	if other.LogLevel != "" {
		result.LogLevel = other.LogLevel
	}

	// Boolean flags - only override if explicitly set in other config
	if other.IndexedQueries != nil {
		result.IndexedQueries = other.IndexedQueries
	}
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	// Merge headers
	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	// Merge parameters
	if len(other.Parameters) > 0 {
		params := make(map[string]any, len(result.Parameters)+len(other.Parameters))
		for k, v := range result.Parameters {
			params[k] = v
		}
		for k, v := range other.Parameters {
			params[k] = v
		}
		result.Parameters = params
	}

	return &result
}

// ApplyEnv overrides settings from environment variables. Keys are given
// without the RESTCLIENT_ prefix (BASE_URL, FORMAT, TIMEOUT, ...).
func (c *Config) ApplyEnv(vars map[string]string) (*Config, error) {
	override := &Config{
		BaseURL:         vars["BASE_URL"],
		Format:          vars["FORMAT"],
		UserAgent:       vars["USER_AGENT"],
		Proxy:           vars["PROXY"],
		RequestIDHeader: vars["REQUEST_ID_HEADER"],
		Transport:       vars["TRANSPORT"],
		LogLevel:        vars["LOG_LEVEL"],
	}

	if v := vars["TIMEOUT"]; v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEOUT %q: %w", v, err)
		}
		override.Timeout = ms
	}
	if v := vars["RATE_LIMIT"]; v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", v, err)
		}
		override.RateLimit = rps
	}

	bools := map[string]**bool{
		"INDEXED_QUERIES":  &override.IndexedQueries,
		"FOLLOW_REDIRECTS": &override.FollowRedirects,
		"VALIDATE_SSL":     &override.ValidateSSL,
		"NO_COLOR":         &override.NoColor,
	}
	for key, dst := range bools {
		v := vars[key]
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = BoolPtr(b)
	}

	return c.Merge(override), nil
}

// ClientOptions turns the configuration into options for http.NewClient.
func (c *Config) ClientOptions() ([]http.ClientOption, error) {
	params, err := query.FromMap(c.Parameters)
	if err != nil {
		return nil, fmt.Errorf("config parameters: %w", err)
	}

	opts := []http.ClientOption{
		http.WithBaseURL(c.BaseURL),
		http.WithFormat(c.Format),
		http.WithHeaders(c.Headers),
		http.WithParameters(params),
		http.WithIndexedQueries(c.GetIndexedQueries()),
		http.WithFollowRedirects(c.GetFollowRedirects()),
		http.WithValidateSSL(c.GetValidateSSL()),
		http.WithProxy(c.Proxy),
		http.WithRateLimit(c.RateLimit),
		http.WithRequestID(c.RequestIDHeader),
	}
	if c.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(c.UserAgent))
	}
	if c.Timeout > 0 {
		opts = append(opts, http.WithTimeout(time.Duration(c.Timeout)*time.Millisecond))
	}
	if c.MaxRedirects > 0 {
		opts = append(opts, http.WithMaxRedirects(c.MaxRedirects))
	}

	if c.Proxy != "" {
		if _, err := http.ParseProxyURL(c.Proxy); err != nil {
			return nil, fmt.Errorf("invalid proxy: %w", err)
		}
	}
	switch strings.ToLower(c.Transport) {
	case "", "http":
	case "resty":
		opts = append(opts, http.WithRestyTransport())
	default:
		return nil, fmt.Errorf("unknown transport %q", c.Transport)
	}

	return opts, nil
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
