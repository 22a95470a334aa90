package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbeReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Type", "audio/mp4")
		w.Header().Set("Content-Length", "1234")
	}))
	defer srv.Close()

	p := &Prober{Client: srv.Client()}
	res := p.Probe(context.Background(), srv.URL+"/a.m4a")

	if !res.Reachable {
		t.Errorf("reachable = false: %+v", res)
	}
	if res.Status != 200 {
		t.Errorf("status = %d, want 200", res.Status)
	}
	if res.ContentType != "audio/mp4" {
		t.Errorf("content_type = %q", res.ContentType)
	}
	if res.ContentLength != 1234 {
		t.Errorf("content_length = %d, want 1234", res.ContentLength)
	}
}

func TestProbeForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := &Prober{Client: srv.Client()}
	res := p.Probe(context.Background(), srv.URL)

	if res.Reachable {
		t.Error("403 must not count as reachable")
	}
	if res.Status != 403 {
		t.Errorf("status = %d, want 403", res.Status)
	}
}

func TestProbeFallsBackToRangedGet(t *testing.T) {
	var sawRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sawRange = r.Header.Get("Range")
		w.WriteHeader(http.StatusPartialContent)
	}))
	defer srv.Close()

	p := &Prober{Client: srv.Client()}
	res := p.Probe(context.Background(), srv.URL)

	if !res.Reachable {
		t.Errorf("reachable = false after GET fallback: %+v", res)
	}
	if sawRange != "bytes=0-0" {
		t.Errorf("range header = %q, want bytes=0-0", sawRange)
	}
}

func TestProbeConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // point at a dead server

	p := &Prober{Client: http.DefaultClient}
	res := p.Probe(context.Background(), srv.URL)

	if res.Reachable {
		t.Error("dead server must not be reachable")
	}
	if res.Error == "" {
		t.Error("connection failure must carry an error string")
	}
}
