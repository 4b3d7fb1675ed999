// Package extract resolves video identifiers into stream metadata through an
// extraction backend. Backends own all network access to the video platform;
// the rest of the service depends only on the Extractor capability.
package extract

import (
	"context"
	"errors"

	"audiobridge/internal/media"
)

// ErrNotReady reports that a backend was never initialized, typically because
// startup provisioning could not locate its external tool.
var ErrNotReady = errors.New("extraction backend not initialized")

// Extractor resolves a content identifier into metadata and format variants.
type Extractor interface {
	// Name identifies the backend in logs and cache keys.
	Name() string
	// Fetch resolves videoID into metadata and the full list of format
	// variants. Failures of the underlying tool or library are returned
	// as-is; callers surface the message verbatim.
	Fetch(ctx context.Context, videoID string) (*media.Info, error)
}

// WatchURL builds the canonical platform URL for a video identifier.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
