// Package probe answers one question: does the resolved stream URL respond
// to a real client right now? It reads headers only, never media bytes.
package probe

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Mordokay/StreamSound/pkg/models"
)

// Prober issues lightweight reachability checks against stream URLs.
type Prober struct {
	Client HTTPClient
}

// New builds a Prober backed by the fingerprinting client.
func New(timeoutSec int) (*Prober, error) {
	client, err := NewClient(timeoutSec)
	if err != nil {
		return nil, err
	}
	return &Prober{Client: client}, nil
}

// Probe HEADs the stream URL, falling back to a zero-length ranged GET for
// servers that reject HEAD. Failures are reported in the result, never as
// an error: an unreachable stream is an answer, not a fault.
func (p *Prober) Probe(ctx context.Context, streamURL string) *models.ProbeResult {
	res := p.request(ctx, http.MethodHead, streamURL)
	if res.Error == "" && (res.Status == http.StatusMethodNotAllowed || res.Status == http.StatusNotImplemented) {
		slog.Debug("HEAD rejected, retrying with ranged GET", "status", res.Status)
		res = p.request(ctx, http.MethodGet, streamURL)
	}
	return res
}

func (p *Prober) request(ctx context.Context, method, streamURL string) *models.ProbeResult {
	req, err := http.NewRequestWithContext(ctx, method, streamURL, nil)
	if err != nil {
		return &models.ProbeResult{Error: err.Error()}
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return &models.ProbeResult{Error: err.Error()}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("failed to close probe body", "err", cerr)
		}
	}()

	return &models.ProbeResult{
		Reachable:     resp.StatusCode < 400,
		Status:        resp.StatusCode,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}
}
