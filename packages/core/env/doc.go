// Package env handles environment variables and variable resolution for restclient.
//
// It provides functionality for:
//   - Loading .env files
//   - Collecting RESTCLIENT_* variables from the process environment
//   - Variable interpolation using {{variable}} syntax in URLs, headers and parameters
package env
