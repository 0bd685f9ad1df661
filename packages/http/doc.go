// Package http provides a small REST client.
//
// It builds requests from ordered parameters and hands them to a Transport
// that returns the raw response text, which is then parsed by the response
// package:
//   - Base URL and format extension handling
//   - Query string or form body encoding, with indexed or "[]" arrays
//   - Default headers, parameters and User-Agent
//   - Informational (1xx) responses preserved in the raw text
//   - Pluggable body decoders (json, yaml)
package http
