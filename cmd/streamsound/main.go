package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http/cgi"
	"os"

	"golang.org/x/time/rate"

	"github.com/Mordokay/StreamSound/pkg/api"
	"github.com/Mordokay/StreamSound/pkg/config"
	"github.com/Mordokay/StreamSound/pkg/extractor"
	"github.com/Mordokay/StreamSound/pkg/logger"
	"github.com/Mordokay/StreamSound/pkg/models"
	"github.com/Mordokay/StreamSound/pkg/probe"
	"github.com/Mordokay/StreamSound/pkg/resolver"
)

const probeTimeoutSec = 15

func main() {
	configPath := flag.String("config", "", "Path to TOML config file")
	port := flag.Int("port", 0, "Port for the HTTP server (overrides config)")
	extractorPath := flag.String("extractor", "", "Path to the yt-dlp binary (overrides config)")
	timeoutSec := flag.Int("timeout", 0, "Max seconds per extractor invocation (overrides config)")

	urlFlag := flag.String("url", "", "Resolve a single URL, print the JSON document and exit")
	hlsFlag := flag.Bool("hls", false, "Prefer an HLS stream (one-shot mode)")
	probeFlag := flag.Bool("probe", false, "Probe the resolved stream (one-shot mode)")

	cgiMode := flag.Bool("cgi", false, "Serve a single request as a CGI program")
	webMode := flag.Bool("onweb", false, "Enable simple Web UI")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	jsonLogs := flag.Bool("json-logs", false, "Emit log lines as JSON")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *extractorPath != "" {
		cfg.ExtractorPath = *extractorPath
	}
	if *timeoutSec != 0 {
		cfg.TimeoutSec = *timeoutSec
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *jsonLogs {
		cfg.JSONLogs = true
	}
	if *webMode {
		cfg.WebUI = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}

	logger.SetupGlobal(cfg.Debug, cfg.JSONLogs)

	svc := &resolver.Service{
		Extractor: extractor.New(cfg.ExtractorPath, cfg.Environ(), cfg.Timeout()),
	}
	if prober, perr := probe.New(probeTimeoutSec); perr != nil {
		slog.Warn("stream probing unavailable", "err", perr)
	} else {
		svc.Prober = prober
	}

	// One-shot CLI
	if *urlFlag != "" {
		resolveOnce(svc, *urlFlag, *hlsFlag, *probeFlag)
		return
	}

	srv := &api.Server{
		Port:         cfg.Port,
		Resolver:     svc,
		Limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		ProbeDefault: cfg.ProbeStreams,
	}

	// CGI hosting: one request per process, no listener.
	if *cgiMode {
		if cerr := cgi.Serve(srv.Handler(false)); cerr != nil {
			slog.Error("CGI serving failed", "err", cerr)
			os.Exit(1)
		}
		return
	}

	if sterr := srv.Start(cfg.WebUI); sterr != nil {
		slog.Error("Server crashed", "err", sterr)
		os.Exit(1)
	}
}

// resolveOnce prints the same JSON document the HTTP handler would emit.
func resolveOnce(svc *resolver.Service, url string, preferHLS, probeStream bool) {
	enc := json.NewEncoder(os.Stdout)

	resp, err := svc.Resolve(context.Background(), resolver.Request{
		URL:       url,
		PreferHLS: preferHLS,
		Probe:     probeStream,
	})
	if err != nil {
		_ = enc.Encode(models.ErrorResponse{OK: false, Error: err.Error()})
		os.Exit(1)
	}
	_ = enc.Encode(resp)
}
