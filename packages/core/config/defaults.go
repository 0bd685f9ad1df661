package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:         30000, // 30 seconds
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    10,
		ValidateSSL:     BoolPtr(true),
		IndexedQueries:  BoolPtr(false),
		LogLevel:        "warn",
		NoColor:         BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.BaseURL == defaults.BaseURL &&
		c.Format == defaults.Format &&
		c.UserAgent == defaults.UserAgent &&
		c.Timeout == defaults.Timeout &&
		c.GetFollowRedirects() == defaults.GetFollowRedirects() &&
		c.MaxRedirects == defaults.MaxRedirects &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.GetIndexedQueries() == defaults.GetIndexedQueries() &&
		c.Proxy == defaults.Proxy &&
		c.RateLimit == defaults.RateLimit &&
		c.RequestIDHeader == defaults.RequestIDHeader &&
		c.Transport == defaults.Transport &&
		len(c.Headers) == 0 &&
		len(c.Parameters) == 0 &&
		c.LogLevel == defaults.LogLevel &&
		c.GetNoColor() == defaults.GetNoColor()
}
