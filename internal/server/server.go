// Package server exposes the HTTP surface: extraction endpoints, stream
// redirect, and health.
package server

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"audiobridge/internal/cache"
	"audiobridge/internal/extract"
	"audiobridge/internal/logging"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "audiobridge"

// Options carries the long-lived dependencies injected at process start.
type Options struct {
	Logger *slog.Logger
	// Primary serves /extract and /stream. It may be nil when startup
	// provisioning failed; affected requests then answer 503.
	Primary extract.Extractor
	// Simple serves /extract-simple through an independent extraction path.
	Simple extract.Extractor
	// Cache is the optional metadata cache; nil disables caching.
	Cache *cache.Metadata
	// Limiter is the optional request limiter; nil disables limiting.
	Limiter *rate.Limiter
}

// Server handles the REST surface. All state is read-only after construction;
// requests share nothing mutable.
type Server struct {
	logger  *slog.Logger
	primary extract.Extractor
	simple  extract.Extractor
	cache   *cache.Metadata
	limiter *rate.Limiter
}

// New builds a Server from injected dependencies.
func New(opts Options) *Server {
	return &Server{
		logger:  logging.WithComponent(opts.Logger, "server"),
		primary: opts.Primary,
		simple:  opts.Simple,
		cache:   opts.Cache,
		limiter: opts.Limiter,
	}
}

// Handler returns the routed and middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/extract", s.handleExtract)
	mux.HandleFunc("/extract-simple", s.handleExtractSimple)
	mux.HandleFunc("/stream", s.handleStream)
	mux.HandleFunc("/health", s.handleHealth)

	var handler http.Handler = mux
	handler = s.cors(handler)
	handler = s.rateLimit(handler)
	handler = s.logRequests(handler)
	handler = s.recoverPanics(handler)
	return handler
}
