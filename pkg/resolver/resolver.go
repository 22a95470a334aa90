// Package resolver turns a raw extractor record into the normalized stream
// document served to clients.
package resolver

import (
	"context"
	"log/slog"

	"github.com/Mordokay/StreamSound/pkg/extractor"
	"github.com/Mordokay/StreamSound/pkg/models"
)

// Extractor resolves a video URL to a raw metadata record.
type Extractor interface {
	Resolve(ctx context.Context, url string, preferHLS bool) (*extractor.RawInfo, error)
}

// Prober checks whether a resolved stream URL actually answers.
type Prober interface {
	Probe(ctx context.Context, streamURL string) *models.ProbeResult
}

// Service owns the extractor and the optional stream prober.
type Service struct {
	Extractor Extractor
	// Prober may be nil, which disables probing regardless of the request.
	Prober Prober
}

// Request is one resolution request.
type Request struct {
	URL       string
	PreferHLS bool
	Probe     bool
}

// Resolve invokes the extractor, normalizes its record and optionally
// probes the resolved stream URL. The error, when non-nil, is one of the
// extractor's typed errors.
func (s *Service) Resolve(ctx context.Context, req Request) (*models.ResolveResponse, error) {
	raw, err := s.Extractor.Resolve(ctx, req.URL, req.PreferHLS)
	if err != nil {
		return nil, err
	}

	info := Normalize(raw)

	resp := &models.ResolveResponse{
		OK:          true,
		StreamInfo:  info,
		OriginalURL: req.URL,
		PreferHLS:   req.PreferHLS,
	}

	if req.Probe && s.Prober != nil && info.StreamURL != "" {
		resp.Probe = s.Prober.Probe(ctx, info.StreamURL)
		slog.Debug("stream probed", "reachable", resp.Probe.Reachable, "status", resp.Probe.Status)
	}

	slog.Info("stream resolved",
		"title", info.Title,
		"ext", info.Ext,
		"prefer_hls", req.PreferHLS,
		"has_stream", info.StreamURL != "")

	return resp, nil
}
