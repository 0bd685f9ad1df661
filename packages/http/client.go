package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/abdul-hamid-achik/restclient/packages/query"
	"github.com/abdul-hamid-achik/restclient/packages/response"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Version is reported in the default User-Agent.
const Version = "0.2.0"

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// DefaultUserAgent is sent when no User-Agent is configured.
var DefaultUserAgent = "restclient/" + Version

// ErrTransport wraps every error returned by the transport.
var ErrTransport = errors.New("transport error")

// Client executes REST calls and keeps the last parsed response.
//
// A Client is not safe for concurrent use: the last response is overwritten
// by every call. Use one Client per logical caller.
type Client struct {
	baseURL         string
	format          string
	userAgent       string
	headers         map[string]string
	parameters      query.Params
	indexed         bool
	timeout         time.Duration
	followRedirect  bool
	maxRedirects    int
	validateSSL     bool
	proxyURL        string
	requestIDHeader string

	transport Transport
	useResty  bool
	limiter   *rate.Limiter
	logger    *zap.Logger
	decoders  *response.Registry
	parser    *response.Parser
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		userAgent:      DefaultUserAgent,
		headers:        make(map[string]string),
		timeout:        DefaultTimeout,
		followRedirect: true,
		maxRedirects:   DefaultMaxRedirects,
		validateSSL:    true,
		logger:         zap.NewNop(),
		decoders:       response.NewRegistry(),
		parser:         response.NewParser(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		if c.useResty {
			c.transport = newRestyTransport(c)
		} else {
			c.transport = newHTTPTransport(c)
		}
	}

	return c
}

// WithBaseURL sets the URL that relative request URLs are joined onto.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithFormat appends ".format" to every request path and decodes bodies with
// the matching decoder regardless of Content-Type.
func WithFormat(format string) ClientOption {
	return func(c *Client) {
		c.format = format
	}
}

func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		setHeader(c.headers, key, value)
	}
}

// WithHeaders sets multiple default headers for all requests
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			setHeader(c.headers, k, v)
		}
	}
}

// WithParameters sets parameters sent ahead of the call parameters on every
// form-encoded request.
func WithParameters(params query.Params) ClientOption {
	return func(c *Client) {
		c.parameters = c.parameters.Merge(params)
	}
}

// WithIndexedQueries switches list encoding from "key[]" to "key[0]", "key[1]", ...
func WithIndexedQueries(indexed bool) ClientOption {
	return func(c *Client) {
		c.indexed = indexed
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.followRedirect = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests. A URL rejected by
// ParseProxyURL is logged and ignored.
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithTransport replaces the default net/http transport. Timeout, redirect,
// SSL and proxy options only apply to the built-in transports.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.transport = t
		c.useResty = false
	}
}

// WithRestyTransport sends requests through resty instead of net/http. The
// timeout, redirect, SSL and proxy options apply to it as well.
func WithRestyTransport() ClientOption {
	return func(c *Client) {
		c.transport = nil
		c.useResty = true
	}
}

func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithRequestID stamps a fresh UUID into the named header on every request.
func WithRequestID(header string) ClientOption {
	return func(c *Client) {
		c.requestIDHeader = header
	}
}

// WithDecoder registers a body decoder for a format.
func WithDecoder(format string, d response.Decoder) ClientOption {
	return func(c *Client) {
		c.decoders.Register(format, d)
	}
}

// Execute sends a request and parses the raw response. The parsed result is
// also kept as the client's last response.
func (c *Client) Execute(ctx context.Context, method, url string, body Body, headers map[string]string) (*response.Result, error) {
	req := c.buildRequest(method, url, body, headers)
	if c.requestIDHeader != "" {
		req.SetHeader(c.requestIDHeader, uuid.NewString())
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	start := time.Now()
	raw, err := c.transport.RoundTrip(ctx, req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, req.URL, err)
	}

	res := c.parser.Parse(raw)
	c.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Strings("status_lines", res.StatusLines),
		zap.Int("body_bytes", len(res.Body)),
		zap.Duration("duration", duration),
	)
	return res, nil
}

func (c *Client) Get(ctx context.Context, url string, params query.Params, headers map[string]string) (*response.Result, error) {
	return c.Execute(ctx, http.MethodGet, url, Form(params), headers)
}

func (c *Client) Head(ctx context.Context, url string, params query.Params, headers map[string]string) (*response.Result, error) {
	return c.Execute(ctx, http.MethodHead, url, Form(params), headers)
}

func (c *Client) Post(ctx context.Context, url string, body Body, headers map[string]string) (*response.Result, error) {
	return c.Execute(ctx, http.MethodPost, url, body, headers)
}

func (c *Client) Put(ctx context.Context, url string, body Body, headers map[string]string) (*response.Result, error) {
	return c.Execute(ctx, http.MethodPut, url, body, headers)
}

func (c *Client) Patch(ctx context.Context, url string, body Body, headers map[string]string) (*response.Result, error) {
	return c.Execute(ctx, http.MethodPatch, url, body, headers)
}

func (c *Client) Delete(ctx context.Context, url string, body Body, headers map[string]string) (*response.Result, error) {
	return c.Execute(ctx, http.MethodDelete, url, body, headers)
}

// Last returns the most recent parsed response, or nil before the first call.
func (c *Client) Last() *response.Result {
	return c.parser.Last()
}

// ParseResponse parses raw response text as if it had come from the
// transport, replacing the last response.
func (c *Client) ParseResponse(raw string) *response.Result {
	return c.parser.Parse(raw)
}

// Decode decodes the body of the last response. The configured format takes
// precedence over the response Content-Type.
func (c *Client) Decode() (any, error) {
	last := c.parser.Last()
	if last == nil {
		return nil, errors.New("no response to decode")
	}
	return last.Decode(c.decoders, c.format)
}
