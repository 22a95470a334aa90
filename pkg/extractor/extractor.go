// Package extractor shells out to yt-dlp to resolve a video URL into a
// direct audio stream URL and metadata. It classifies failures into the
// three terminal kinds the API layer maps to HTTP statuses: could not run
// the tool, the tool rejected the request, the tool emitted garbage.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// FormatHLS prefers an HLS (m3u8) audio stream with a bestaudio fallback;
// FormatM4A prefers a progressive m4a stream with the same fallback.
const (
	FormatHLS = "bestaudio[protocol^=m3u8]/bestaudio"
	FormatM4A = "bestaudio[ext=m4a]/bestaudio"
)

// Thumbnail is one candidate thumbnail descriptor from yt-dlp.
type Thumbnail struct {
	URL   string  `json:"url"`
	Width float64 `json:"width"`
}

// RawInfo is the subset of the yt-dlp metadata record the service reads.
// Every field is optional in the source output.
type RawInfo struct {
	Title            string      `json:"title"`
	Uploader         string      `json:"uploader"`
	Duration         float64     `json:"duration"`
	Ext              string      `json:"ext"`
	URL              string      `json:"url"`
	Thumbnails       []Thumbnail `json:"thumbnails"`
	ShortDescription string      `json:"shortDescription"`
	Description      string      `json:"description"`
}

// runFunc executes the extractor binary and returns its stdout and stderr.
// Tests substitute their own implementation.
type runFunc func(ctx context.Context, binary string, args, env []string) (stdout, stderr []byte, err error)

// Extractor invokes the yt-dlp binary with a bounded timeout and a
// per-invocation environment copy.
type Extractor struct {
	Binary  string
	Env     []string
	Timeout time.Duration

	run runFunc
}

// New returns an Extractor for the given binary. env is the complete
// environment for the subprocess (typically config.Environ()).
func New(binary string, env []string, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Extractor{
		Binary:  binary,
		Env:     env,
		Timeout: timeout,
		run:     runCommand,
	}
}

// FormatExpression returns the yt-dlp format selector for the request.
func FormatExpression(preferHLS bool) string {
	if preferHLS {
		return FormatHLS
	}
	return FormatM4A
}

// Resolve runs yt-dlp against url and returns the parsed metadata record.
// The returned error is one of *InvokeError, *ExecError or *OutputError.
func (e *Extractor) Resolve(ctx context.Context, url string, preferHLS bool) (*RawInfo, error) {
	format := FormatExpression(preferHLS)
	args := []string{"-f", format, "--dump-json", url}

	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	slog.Debug("invoking extractor", "binary", e.Binary, "format", format, "url", url)

	start := time.Now()
	stdout, stderr, err := e.run(ctx, e.Binary, args, e.Env)
	if err != nil {
		return nil, classifyRunError(ctx, err, stderr)
	}
	slog.Debug("extractor finished", "elapsed", time.Since(start).Round(time.Millisecond))

	return ParseOutput(stdout)
}

// ParseOutput decodes the last newline-delimited JSON document in the
// extractor's stdout. yt-dlp prints one line per entry when a URL expands
// to a playlist; only the final entry is kept, matching long-standing
// client expectations.
func ParseOutput(stdout []byte) (*RawInfo, error) {
	trimmed := bytes.TrimRight(stdout, "\r\n \t")
	if len(trimmed) == 0 {
		return nil, &OutputError{Err: errors.New("empty output")}
	}

	lines := bytes.Split(trimmed, []byte("\n"))
	last := bytes.TrimSpace(lines[len(lines)-1])

	var info RawInfo
	if err := json.Unmarshal(last, &info); err != nil {
		return nil, &OutputError{Err: err}
	}
	return &info, nil
}

func classifyRunError(ctx context.Context, err error, stderr []byte) error {
	// A timed-out process also exits non-zero after the kill, so the
	// context verdict is checked before the exit code.
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return &InvokeError{Err: fmt.Errorf("timed out: %w", ctxErr)}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExecError{Stderr: strings.TrimSpace(string(stderr))}
	}
	return &InvokeError{Err: err}
}

func runCommand(ctx context.Context, binary string, args, env []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
