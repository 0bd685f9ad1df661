package http

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RestyTransport is a Transport backed by a resty client.
type RestyTransport struct {
	client *resty.Client
}

func NewRestyTransport(timeout time.Duration) *RestyTransport {
	c := resty.New()
	c.SetTimeout(timeout)
	return &RestyTransport{client: c}
}

// newRestyTransport builds a resty transport honouring the client's timeout,
// redirect, SSL and proxy settings.
func newRestyTransport(c *Client) *RestyTransport {
	rc := resty.New().
		SetTimeout(c.timeout).
		SetRedirectPolicy(resty.RedirectPolicyFunc(c.checkRedirect))

	if !c.validateSSL {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	if c.proxyURL != "" {
		if _, err := ParseProxyURL(c.proxyURL); err != nil {
			c.logger.Warn("ignoring proxy", zap.String("proxy", c.proxyURL), zap.Error(err))
		} else {
			rc.SetProxy(c.proxyURL)
		}
	}

	return NewRestyTransportFrom(rc)
}

// NewRestyTransportFrom reuses a configured resty client.
func NewRestyTransportFrom(c *resty.Client) *RestyTransport {
	return &RestyTransport{client: c}
}

func (t *RestyTransport) RoundTrip(ctx context.Context, req *Request) (string, error) {
	var raw strings.Builder
	ctx = traceInformational(ctx, &raw)

	r := t.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if req.Body != "" {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return "", err
	}

	writeBlock(&raw, resp.Proto(), resp.Status(), resp.Header())
	raw.Write(resp.Body())
	return raw.String(), nil
}
