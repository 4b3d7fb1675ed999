package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"audiobridge/internal/media"
)

const defaultYTDLPTimeout = 45 * time.Second

// YTDLPConfig controls how the yt-dlp binary is invoked.
type YTDLPConfig struct {
	// Path is the resolved binary path, usually from Provision.
	Path string
	// ClientProfile is passed as --extractor-args youtube:player_client=<profile>.
	ClientProfile string
	// CookiesFile, when set, is passed as --cookies <file>.
	CookiesFile string
	// Timeout bounds a single invocation.
	Timeout time.Duration
}

// YTDLP shells out to the yt-dlp binary for metadata extraction.
type YTDLP struct {
	cfg YTDLPConfig
}

// NewYTDLP returns a backend invoking the configured yt-dlp binary.
func NewYTDLP(cfg YTDLPConfig) *YTDLP {
	if cfg.Path == "" {
		cfg.Path = "yt-dlp"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultYTDLPTimeout
	}
	return &YTDLP{cfg: cfg}
}

// Name implements Extractor.
func (y *YTDLP) Name() string { return "ytdlp" }

// Fetch implements Extractor.
func (y *YTDLP) Fetch(ctx context.Context, videoID string) (*media.Info, error) {
	ctx, cancel := context.WithTimeout(ctx, y.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, y.cfg.Path, y.args(videoID)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return nil, fmt.Errorf("yt-dlp: %v: %s", err, detail)
		}
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	info, err := decodeInfo(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("yt-dlp output: %w", err)
	}
	info.ID = videoID
	return info, nil
}

func (y *YTDLP) args(videoID string) []string {
	args := []string{
		"--dump-single-json",
		"--no-warnings",
		"--no-check-certificates",
		"--no-playlist",
		"--skip-download",
	}
	if y.cfg.ClientProfile != "" {
		args = append(args, "--extractor-args", "youtube:player_client="+y.cfg.ClientProfile)
	}
	if y.cfg.CookiesFile != "" {
		args = append(args, "--cookies", y.cfg.CookiesFile)
	}
	return append(args, WatchURL(videoID))
}

type ytdlpFormat struct {
	URL    string  `json:"url"`
	VCodec string  `json:"vcodec"`
	ACodec string  `json:"acodec"`
	ABR    float64 `json:"abr"`
	Ext    string  `json:"ext"`
}

type ytdlpInfo struct {
	Title     string        `json:"title"`
	Uploader  string        `json:"uploader"`
	Channel   string        `json:"channel"`
	Thumbnail string        `json:"thumbnail"`
	Duration  float64       `json:"duration"`
	Formats   []ytdlpFormat `json:"formats"`
}

func decodeInfo(raw []byte) (*media.Info, error) {
	var payload ytdlpInfo
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	uploader := payload.Uploader
	if uploader == "" {
		uploader = payload.Channel
	}

	info := &media.Info{
		Title:     payload.Title,
		Uploader:  uploader,
		Thumbnail: payload.Thumbnail,
		Duration:  payload.Duration,
		Formats:   make([]media.Format, 0, len(payload.Formats)),
	}
	for _, f := range payload.Formats {
		info.Formats = append(info.Formats, media.Format{
			URL:        f.URL,
			VideoCodec: f.VCodec,
			AudioCodec: f.ACodec,
			Bitrate:    f.ABR,
			Ext:        f.Ext,
		})
	}
	return info, nil
}
