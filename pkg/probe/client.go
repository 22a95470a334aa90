package probe

import (
	"fmt"
	"net/http"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// HTTPClient is the transport seam; tests substitute a plain client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// tlsWrapper adapts the fingerprinting client to net/http types.
// Stream CDNs fingerprint their callers, so a stock transport gets 403s
// that a real player would not.
type tlsWrapper struct {
	inner tls_client.HttpClient
}

func (w *tlsWrapper) Do(req *http.Request) (*http.Response, error) {
	fReq := &fhttp.Request{
		Method:     req.Method,
		URL:        req.URL,
		Proto:      req.Proto,
		ProtoMajor: req.ProtoMajor,
		ProtoMinor: req.ProtoMinor,
		Header:     make(fhttp.Header, len(req.Header)),
		Body:       req.Body,
		Host:       req.Host,
	}
	for k, v := range req.Header {
		fReq.Header[k] = v
	}

	resp, err := w.inner.Do(fReq)
	if err != nil {
		return nil, err
	}

	netResp := &http.Response{
		Status:        resp.Status,
		StatusCode:    resp.StatusCode,
		Proto:         resp.Proto,
		ProtoMajor:    resp.ProtoMajor,
		ProtoMinor:    resp.ProtoMinor,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
		Header:        make(http.Header, len(resp.Header)),
	}
	for k, v := range resp.Header {
		netResp.Header[k] = v
	}

	return netResp, nil
}

// NewClient builds the probe transport with a short timeout; a probe is a
// health check, not a download.
func NewClient(timeoutSec int) (HTTPClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeoutSec),
		tls_client.WithClientProfile(profiles.DefaultClientProfile),
		tls_client.WithRandomTLSExtensionOrder(),
	}

	c, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	return &tlsWrapper{inner: c}, nil
}
