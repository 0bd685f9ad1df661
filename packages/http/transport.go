package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/textproto"
	neturl "net/url"
	"strings"

	"go.uber.org/zap"
)

// Transport performs the network call and returns the raw response text:
// status line(s), headers, blank line, body.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (string, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (string, error)

func (f TransportFunc) RoundTrip(ctx context.Context, req *Request) (string, error) {
	return f(ctx, req)
}

// HTTPTransport is the default Transport, built on net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps an existing http.Client. A nil client uses
// http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

func newHTTPTransport(c *Client) *HTTPTransport {
	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	// Configure TLS verification
	if !c.validateSSL {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	// Configure proxy if specified
	if c.proxyURL != "" {
		proxyURL, err := ParseProxyURL(c.proxyURL)
		if err != nil {
			c.logger.Warn("ignoring proxy", zap.String("proxy", c.proxyURL), zap.Error(err))
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return NewHTTPTransport(&http.Client{
		Transport:     transport,
		Timeout:       c.timeout,
		CheckRedirect: c.checkRedirect,
	})
}

// checkRedirect is the redirect policy shared by the built-in transports.
// When redirects are off, or the limit is reached, the redirect response
// itself is returned.
func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if !c.followRedirect {
		return http.ErrUseLastResponse
	}
	if len(via) >= c.maxRedirects {
		return http.ErrUseLastResponse
	}
	return nil
}

// ParseProxyURL parses a proxy URL, requiring a scheme and a host.
func ParseProxyURL(raw string) (*neturl.URL, error) {
	u, err := neturl.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy %q: missing scheme or host", raw)
	}
	return u, nil
}

func (t *HTTPTransport) RoundTrip(ctx context.Context, req *Request) (string, error) {
	var raw strings.Builder
	ctx = traceInformational(ctx, &raw)

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return "", err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", err
	}

	writeBlock(&raw, httpResp.Proto, httpResp.Status, httpResp.Header)
	raw.Write(respBody)
	return raw.String(), nil
}

// traceInformational renders every 1xx response received for the request
// into w, ahead of the final response.
func traceInformational(ctx context.Context, w *strings.Builder) context.Context {
	return httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		Got1xxResponse: func(code int, header textproto.MIMEHeader) error {
			status := fmt.Sprintf("%d %s", code, http.StatusText(code))
			writeBlock(w, "HTTP/1.1", status, http.Header(header))
			return nil
		},
	})
}

// writeBlock writes a status line, the headers and the terminating blank line.
func writeBlock(w *strings.Builder, proto, status string, header http.Header) {
	w.WriteString(strings.TrimSpace(proto + " " + status))
	w.WriteString("\r\n")
	_ = header.Write(w)
	w.WriteString("\r\n")
}
