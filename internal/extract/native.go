package extract

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/kkdai/youtube/v2"

	"audiobridge/internal/media"
)

// Native extracts metadata without the yt-dlp binary, using the pure-Go
// youtube client. It is the independent extraction path behind
// /extract-simple and can also serve as the primary backend.
type Native struct {
	client youtube.Client
}

// NewNative returns a library-backed extraction backend.
func NewNative() *Native {
	return &Native{}
}

// Name implements Extractor.
func (n *Native) Name() string { return "native" }

// Fetch implements Extractor. Stream URLs are resolved only for variants that
// carry audio; video-only variants stay in the list for selection purposes
// but never need a playable URL here.
func (n *Native) Fetch(ctx context.Context, videoID string) (*media.Info, error) {
	video, err := n.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}

	info := &media.Info{
		ID:       videoID,
		Title:    video.Title,
		Uploader: video.Author,
		Duration: video.Duration.Seconds(),
		Formats:  make([]media.Format, 0, len(video.Formats)),
	}
	if len(video.Thumbnails) > 0 {
		// Thumbnails are ordered smallest to largest.
		info.Thumbnail = video.Thumbnails[len(video.Thumbnails)-1].URL
	}

	for i := range video.Formats {
		f := &video.Formats[i]
		mapped := mapNativeFormat(f)
		if mapped.HasAudio() && mapped.URL == "" {
			resolved, err := n.client.GetStreamURLContext(ctx, video, f)
			if err != nil {
				// Ciphered variant we cannot resolve; drop it rather
				// than hand out an unplayable URL.
				continue
			}
			mapped.URL = resolved
		}
		info.Formats = append(info.Formats, mapped)
	}
	return info, nil
}

func mapNativeFormat(f *youtube.Format) media.Format {
	vcodec, acodec := codecsFromMime(f.MimeType, f.AudioChannels)
	abr := float64(f.AverageBitrate)
	if abr == 0 {
		abr = float64(f.Bitrate)
	}
	return media.Format{
		URL:        f.URL,
		VideoCodec: vcodec,
		AudioCodec: acodec,
		Bitrate:    abr / 1000, // bits/s -> kbps, the scale yt-dlp reports abr in
		Ext:        extFromMime(f.MimeType),
	}
}

// codecsFromMime derives the vcodec/acodec sentinels from a MIME type such as
// `video/mp4; codecs="avc1.4d401f, mp4a.40.2"`.
func codecsFromMime(mimeType string, audioChannels int) (vcodec, acodec string) {
	vcodec, acodec = media.CodecNone, media.CodecNone

	mediaType, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return
	}
	var codecs []string
	for _, c := range strings.Split(params["codecs"], ",") {
		if c = strings.TrimSpace(c); c != "" {
			codecs = append(codecs, c)
		}
	}

	switch {
	case strings.HasPrefix(mediaType, "audio/"):
		if len(codecs) > 0 {
			acodec = codecs[0]
		}
	case strings.HasPrefix(mediaType, "video/"):
		if len(codecs) > 0 {
			vcodec = codecs[0]
		}
		if len(codecs) > 1 {
			acodec = codecs[1]
		} else if audioChannels > 0 {
			// Muxed legacy formats sometimes list a single codec.
			acodec = "unknown"
		}
	}
	return
}

func extFromMime(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "audio/mp4":
		return "m4a"
	case "audio/webm":
		return "webm"
	case "audio/mpeg":
		return "mp3"
	default:
		if idx := strings.IndexByte(mediaType, '/'); idx >= 0 {
			return mediaType[idx+1:]
		}
		return ""
	}
}
