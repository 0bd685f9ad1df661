// Package config handles configuration loading and management for restclient.
//
// It provides functionality for:
//   - Loading configuration from .restclient.json or .restclient.yaml files
//   - Default configuration values
//   - RESTCLIENT_* environment overrides
//   - Turning a configuration into client options
package config
