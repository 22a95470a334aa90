package models

// StreamInfo is the normalized view of one resolved stream. Fields missing
// from the extractor output stay empty and are omitted from the JSON body
// rather than filled with fabricated defaults.
type StreamInfo struct {
	Title    string  `json:"title,omitempty"`
	Uploader string  `json:"uploader,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Ext      string  `json:"ext,omitempty"`
	// StreamURL is the direct playable media URL selected by the extractor.
	StreamURL string `json:"stream_url,omitempty"`
	// ThumbnailURL is the widest thumbnail the source offers.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	// ShortDescription comes from the source verbatim, or is derived by
	// truncating the long description.
	ShortDescription string `json:"shortDescription,omitempty"`
	// ExpireTS is the unix timestamp from the stream URL's expire query
	// parameter. ExpireHuman is set iff ExpireTS is.
	ExpireTS    *int64 `json:"expire_ts,omitempty"`
	ExpireHuman string `json:"expire_human,omitempty"`
}

// ProbeResult reports whether the resolved stream URL answered a
// lightweight reachability check.
type ProbeResult struct {
	Reachable     bool   `json:"reachable"`
	Status        int    `json:"status,omitempty"`
	ContentType   string `json:"content_type,omitempty"`
	ContentLength int64  `json:"content_length,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ResolveResponse is the success body of /resolve.
type ResolveResponse struct {
	OK bool `json:"ok"`
	StreamInfo
	// OriginalURL echoes the requested URL verbatim.
	OriginalURL string       `json:"original_url"`
	PreferHLS   bool         `json:"prefer_hls"`
	Probe       *ProbeResult `json:"probe,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
