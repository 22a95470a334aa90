package extractor

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func TestFormatExpression(t *testing.T) {
	if got := FormatExpression(false); got != "bestaudio[ext=m4a]/bestaudio" {
		t.Errorf("default format = %q", got)
	}
	if got := FormatExpression(true); got != "bestaudio[protocol^=m3u8]/bestaudio" {
		t.Errorf("hls format = %q", got)
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name      string
		stdout    string
		wantTitle string
		wantErr   bool
	}{
		{"single record", `{"title":"one"}`, "one", false},
		{"trailing newline", "{\"title\":\"one\"}\n", "one", false},
		{"playlist keeps last line", "{\"title\":\"first\"}\n{\"title\":\"second\"}\n{\"title\":\"third\"}\n", "third", false},
		{"crlf output", "{\"title\":\"one\"}\r\n", "one", false},
		{"empty output", "", "", true},
		{"whitespace only", "  \n\t\n", "", true},
		{"malformed json", "{not json", "", true},
		{"malformed last line", "{\"title\":\"good\"}\n{broken", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseOutput([]byte(tt.stdout))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var outErr *OutputError
				if !errors.As(err, &outErr) {
					t.Errorf("error type = %T, want *OutputError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", info.Title, tt.wantTitle)
			}
		})
	}
}

func TestParseOutputFields(t *testing.T) {
	stdout := `{"title":"x","uploader":"u","duration":12.5,"ext":"m4a","url":"https://cdn/a.m4a","thumbnails":[{"width":100,"url":"A"}],"shortDescription":"sd","description":"d"}`

	info, err := ParseOutput([]byte(stdout))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Uploader != "u" || info.Duration != 12.5 || info.Ext != "m4a" {
		t.Errorf("unexpected fields: %+v", info)
	}
	if info.URL != "https://cdn/a.m4a" {
		t.Errorf("url = %q", info.URL)
	}
	if len(info.Thumbnails) != 1 || info.Thumbnails[0].URL != "A" {
		t.Errorf("thumbnails = %+v", info.Thumbnails)
	}
}

func TestResolveArguments(t *testing.T) {
	var gotBinary string
	var gotArgs []string
	var gotEnv []string

	e := New("yt-dlp", []string{"PATH=/fake"}, time.Second)
	e.run = func(ctx context.Context, binary string, args, env []string) ([]byte, []byte, error) {
		gotBinary, gotArgs, gotEnv = binary, args, env
		return []byte(`{"title":"t"}`), nil, nil
	}

	if _, err := e.Resolve(context.Background(), "https://example.com/v", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBinary != "yt-dlp" {
		t.Errorf("binary = %q", gotBinary)
	}
	want := []string{"-f", "bestaudio[protocol^=m3u8]/bestaudio", "--dump-json", "https://example.com/v"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, gotArgs[i], want[i])
		}
	}
	if len(gotEnv) != 1 || gotEnv[0] != "PATH=/fake" {
		t.Errorf("env = %v, want configured snapshot", gotEnv)
	}
}

func TestResolveNonZeroExit(t *testing.T) {
	e := New("yt-dlp", nil, time.Second)
	e.run = func(ctx context.Context, binary string, args, env []string) ([]byte, []byte, error) {
		return nil, []byte("ERROR: video unavailable\n"), &exec.ExitError{}
	}

	_, err := e.Resolve(context.Background(), "https://example.com/v", false)
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ExecError", err)
	}
	if execErr.Error() != "ERROR: video unavailable" {
		t.Errorf("message = %q, want trimmed stderr", execErr.Error())
	}
}

func TestResolveNonZeroExitEmptyStderr(t *testing.T) {
	e := New("yt-dlp", nil, time.Second)
	e.run = func(ctx context.Context, binary string, args, env []string) ([]byte, []byte, error) {
		return nil, nil, &exec.ExitError{}
	}

	_, err := e.Resolve(context.Background(), "https://example.com/v", false)
	if err == nil || err.Error() != "yt-dlp failed" {
		t.Errorf("err = %v, want generic yt-dlp failed", err)
	}
}

func TestResolveLaunchFailure(t *testing.T) {
	e := New("yt-dlp", nil, time.Second)
	e.run = func(ctx context.Context, binary string, args, env []string) ([]byte, []byte, error) {
		return nil, nil, errors.New(`exec: "yt-dlp": executable file not found in $PATH`)
	}

	_, err := e.Resolve(context.Background(), "https://example.com/v", false)
	var invErr *InvokeError
	if !errors.As(err, &invErr) {
		t.Fatalf("error type = %T, want *InvokeError", err)
	}
}

func TestResolveTimeout(t *testing.T) {
	e := New("yt-dlp", nil, 10*time.Millisecond)
	e.run = func(ctx context.Context, binary string, args, env []string) ([]byte, []byte, error) {
		<-ctx.Done()
		// a killed process reports a non-zero exit; the classifier must
		// still file this under invocation failure
		return nil, []byte("killed"), &exec.ExitError{}
	}

	_, err := e.Resolve(context.Background(), "https://example.com/v", false)
	var invErr *InvokeError
	if !errors.As(err, &invErr) {
		t.Fatalf("error type = %T, want *InvokeError", err)
	}
}
