// Package query encodes ordered request parameters as form-urlencoded strings.
//
// The encoding matches what browsers produce for form submissions:
//   - alphanumerics and "-_." are kept literal
//   - space becomes "+"
//   - every other byte becomes %XX (upper-case hex)
//
// List values are written either as repeated "key[]" pairs or, when indexed
// encoding is requested, as "key[0]", "key[1]", ...
package query
