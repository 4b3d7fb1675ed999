package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"audiobridge/internal/extract"
	"audiobridge/internal/formats"
	"audiobridge/internal/logging"
	"audiobridge/internal/media"
)

// Substitutes for metadata the backend could not provide.
const (
	defaultTitle  = "Unknown Title"
	defaultArtist = "Unknown Artist"
)

// errNoAudio marks extraction that succeeded but exposed no audio variant.
var errNoAudio = errors.New("no audio formats available")

type extractResponse struct {
	AudioURL  string  `json:"audioUrl"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
	Format    string  `json:"format"`
	Quality   any     `json:"quality"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	videoID := r.URL.Query().Get("videoId")
	if videoID == "" {
		s.writeError(w, http.StatusBadRequest, "bad_request", "missing required query parameter: videoId")
		return
	}

	info, best, err := s.resolve(r.Context(), s.primary, videoID)
	if err != nil {
		s.writeResolveError(w, videoID, err)
		return
	}
	s.writeJSON(w, http.StatusOK, assemble(videoID, info, best, false))
}

// handleExtractSimple serves the same envelope through the independent
// library-backed path. Its one naming quirk: quality is always numeric.
func (s *Server) handleExtractSimple(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	videoID := r.URL.Query().Get("videoId")
	if videoID == "" {
		s.writeError(w, http.StatusBadRequest, "bad_request", "missing required query parameter: videoId")
		return
	}

	info, best, err := s.resolve(r.Context(), s.simple, videoID)
	if err != nil {
		s.writeResolveError(w, videoID, err)
		return
	}
	s.writeJSON(w, http.StatusOK, assemble(videoID, info, best, true))
}

// handleStream redirects to the chosen audio URL. Parameter validation
// answers JSON like the extract endpoints; downstream failures answer plain
// text.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	videoID := r.URL.Query().Get("videoId")
	if videoID == "" {
		s.writeError(w, http.StatusBadRequest, "bad_request", "missing required query parameter: videoId")
		return
	}

	_, best, err := s.resolve(r.Context(), s.primary, videoID)
	switch {
	case errors.Is(err, extract.ErrNotReady):
		http.Error(w, "Extraction backend not initialized", http.StatusServiceUnavailable)
	case errors.Is(err, errNoAudio):
		http.Error(w, "No audio stream found", http.StatusNotFound)
	case err != nil:
		s.logger.Error("stream extraction failed", slog.String("video_id", videoID), logging.Error(err))
		http.Error(w, "Extraction failed: "+err.Error(), http.StatusInternalServerError)
	default:
		http.Redirect(w, r, best.URL, http.StatusFound)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// resolve runs the fetch-then-select pipeline for one request.
func (s *Server) resolve(ctx context.Context, backend extract.Extractor, videoID string) (*media.Info, media.Format, error) {
	if backend == nil {
		return nil, media.Format{}, extract.ErrNotReady
	}

	info := s.cache.Get(ctx, backend.Name(), videoID)
	if info == nil {
		fetched, err := backend.Fetch(ctx, videoID)
		if err != nil {
			return nil, media.Format{}, err
		}
		info = fetched
		s.cache.Put(ctx, backend.Name(), videoID, info)
	}

	best, ok := formats.BestAudio(info.Formats)
	if !ok {
		return info, media.Format{}, errNoAudio
	}
	return info, best, nil
}

func (s *Server) writeResolveError(w http.ResponseWriter, videoID string, err error) {
	switch {
	case errors.Is(err, extract.ErrNotReady):
		s.writeError(w, http.StatusServiceUnavailable, "service_unavailable", err.Error())
	case errors.Is(err, errNoAudio):
		s.writeError(w, http.StatusNotFound, "not_found", "no audio formats available for "+videoID)
	default:
		s.logger.Error("extraction failed", slog.String("video_id", videoID), logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "extraction_failed", err.Error())
	}
}

// assemble maps the selected format and metadata into the flat envelope,
// filling defaults for anything the backend left blank.
func assemble(videoID string, info *media.Info, best media.Format, numericQuality bool) extractResponse {
	resp := extractResponse{
		AudioURL:  best.URL,
		Title:     info.Title,
		Artist:    info.Uploader,
		Thumbnail: info.Thumbnail,
		Duration:  info.Duration,
		Format:    best.Ext,
	}
	if resp.Title == "" {
		resp.Title = defaultTitle
	}
	if resp.Artist == "" {
		resp.Artist = defaultArtist
	}
	if resp.Thumbnail == "" {
		resp.Thumbnail = fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
	}
	switch {
	case numericQuality:
		resp.Quality = int(best.Bitrate)
	case best.Bitrate > 0:
		resp.Quality = int(best.Bitrate)
	default:
		resp.Quality = "unknown"
	}
	return resp
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: code, Message: message})
}
