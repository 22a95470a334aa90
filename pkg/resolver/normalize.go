package resolver

import (
	"net/url"
	"strconv"
	"time"

	"github.com/Mordokay/StreamSound/pkg/extractor"
	"github.com/Mordokay/StreamSound/pkg/models"
)

// Long descriptions are cut to shortDescLimit runes with an ellipsis once
// they pass shortDescCutoff. The one-rune gap between the two is kept
// as-is: existing clients were built against exactly this arithmetic.
const (
	shortDescCutoff = 198
	shortDescLimit  = 197
)

const expireTimeLayout = "2006-01-02T15:04:05"

// Normalize reshapes a raw extractor record into the wire form. Missing
// source fields stay empty; nothing is defaulted.
func Normalize(raw *extractor.RawInfo) models.StreamInfo {
	info := models.StreamInfo{
		Title:            raw.Title,
		Uploader:         raw.Uploader,
		Duration:         raw.Duration,
		Ext:              raw.Ext,
		StreamURL:        raw.URL,
		ThumbnailURL:     widestThumbnail(raw.Thumbnails),
		ShortDescription: shortDescription(raw.ShortDescription, raw.Description),
	}

	if ts, ok := expireTimestamp(raw.URL); ok {
		info.ExpireTS = &ts
		info.ExpireHuman = time.Unix(ts, 0).Format(expireTimeLayout)
	}

	return info
}

// widestThumbnail picks the URL of the widest candidate. A thumbnail with
// no width counts as width 0. Among equal widths the later entry wins.
func widestThumbnail(thumbs []extractor.Thumbnail) string {
	if len(thumbs) == 0 {
		return ""
	}
	best := thumbs[0]
	for _, t := range thumbs[1:] {
		if t.Width >= best.Width {
			best = t
		}
	}
	return best.URL
}

// shortDescription prefers the source's own short form and otherwise trims
// the long description, counting characters rather than bytes.
func shortDescription(short, full string) string {
	if short != "" {
		return short
	}
	runes := []rune(full)
	if len(runes) > shortDescCutoff {
		return string(runes[:shortDescLimit]) + "…"
	}
	return full
}

// expireTimestamp extracts the expire query parameter from a stream URL.
// Anything unparseable simply yields no timestamp; expiry is advisory.
func expireTimestamp(streamURL string) (int64, bool) {
	if streamURL == "" {
		return 0, false
	}
	u, err := url.Parse(streamURL)
	if err != nil {
		return 0, false
	}
	raw := u.Query().Get("expire")
	if raw == "" {
		return 0, false
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}
