package http

import (
	"strings"

	"github.com/abdul-hamid-achik/restclient/packages/query"
)

// Request is what a Transport receives: everything already encoded.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

func NewRequest(method, requestURL string) *Request {
	return &Request{
		Method:  strings.ToUpper(method),
		URL:     requestURL,
		Headers: make(map[string]string),
	}
}

// SetHeader sets a header, replacing any existing entry whose name matches
// key case-insensitively.
func (r *Request) SetHeader(key, value string) *Request {
	setHeader(r.Headers, key, value)
	return r
}

// setHeader stores key in m after dropping entries that differ from it only
// in case.
func setHeader(m map[string]string, key, value string) {
	for k := range m {
		if k != key && strings.EqualFold(k, key) {
			delete(m, k)
		}
	}
	m[key] = value
}

// Header returns the value of a header, matching the name case-insensitively.
func (r *Request) Header(key string) (string, bool) {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

func (r *Request) SetBody(body string) *Request {
	r.Body = body
	return r
}

// Body is the payload of a call: either parameters to be form encoded, or a
// raw string sent as-is.
type Body struct {
	params query.Params
	raw    string
	isRaw  bool
}

// Form wraps parameters. They go into the query string for GET and HEAD and
// into a form-encoded body for every other method.
func Form(params query.Params) Body {
	return Body{params: params}
}

// Raw wraps a preformatted payload such as a JSON document.
func Raw(s string) Body {
	return Body{raw: s, isRaw: true}
}

// NoBody is a call without parameters.
var NoBody = Body{}

// IsRaw reports whether the body was built with Raw.
func (b Body) IsRaw() bool {
	return b.isRaw
}

func sendsQuery(method string) bool {
	return method == "GET" || method == "HEAD"
}

// JoinURL joins a relative URL onto a base. Absolute URLs and an empty base
// leave the URL untouched.
func JoinURL(base, rawURL string) string {
	if base == "" || strings.Contains(rawURL, "://") {
		return rawURL
	}
	if rawURL == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rawURL, "/")
}

// AppendQuery adds an encoded query to a URL, using "&" when it already has one.
func AppendQuery(rawURL, encoded string) string {
	if encoded == "" {
		return rawURL
	}
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + encoded
	}
	return rawURL + "?" + encoded
}

// withExtension appends ".ext" to the path part of a URL.
func withExtension(rawURL, ext string) string {
	path, rawQuery, found := strings.Cut(rawURL, "?")
	path += "." + ext
	if found {
		return path + "?" + rawQuery
	}
	return path
}

// buildRequest turns a call into a Request ready for the transport.
func (c *Client) buildRequest(method, rawURL string, body Body, headers map[string]string) *Request {
	req := NewRequest(method, JoinURL(c.baseURL, rawURL))
	if c.format != "" {
		req.URL = withExtension(req.URL, c.format)
	}

	for k, v := range c.headers {
		req.SetHeader(k, v)
	}
	for k, v := range headers {
		req.SetHeader(k, v)
	}
	if _, ok := req.Header("User-Agent"); !ok && c.userAgent != "" {
		req.SetHeader("User-Agent", c.userAgent)
	}

	var payload string
	if body.isRaw {
		payload = body.raw
	} else {
		payload = query.Encode(c.parameters.Merge(body.params), c.indexed)
	}

	if sendsQuery(req.Method) {
		req.URL = AppendQuery(req.URL, payload)
		return req
	}

	req.SetBody(payload)
	if !body.isRaw && payload != "" {
		if _, ok := req.Header("Content-Type"); !ok {
			req.SetHeader("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	return req
}
