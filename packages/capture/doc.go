// Package capture extracts values from parsed responses.
//
// It supports capturing values from:
//   - Response body (gjson paths, JSON bodies only)
//   - Response headers (by normalized name)
//   - Response status code and status lines
//
// Captures are written as name=source[:path], e.g. "id=body:data.id",
// "type=header:content_type" or "code=status".
package capture
