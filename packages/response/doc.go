// Package response parses raw HTTP/1.x response text.
//
// A raw response may hold several message blocks when informational (1xx)
// responses precede the final one. Every block contributes its status line;
// only the last block's headers and body are kept. Header names are
// normalized (lower-cased, non-alphanumerics replaced by "_") and repeated
// headers fold into a multi-valued entry.
//
// The parser is lenient: it never fails, and input it cannot make sense of
// ends up in the body.
package response
