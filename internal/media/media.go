// Package media defines the normalized metadata model shared by all
// extraction backends.
package media

// CodecNone is the sentinel backends use for an absent audio or video track.
const CodecNone = "none"

// Format is one representation of the content's media stream. Formats are
// received wholesale from an extraction backend and never constructed or
// mutated locally.
type Format struct {
	URL        string  `json:"url"`
	VideoCodec string  `json:"vcodec"`
	AudioCodec string  `json:"acodec"`
	Bitrate    float64 `json:"abr"`
	Ext        string  `json:"ext"`
}

// HasAudio reports whether the format carries an audio track.
func (f Format) HasAudio() bool {
	return f.AudioCodec != "" && f.AudioCodec != CodecNone
}

// HasVideo reports whether the format carries a video track.
func (f Format) HasVideo() bool {
	return f.VideoCodec != "" && f.VideoCodec != CodecNone
}

// AudioOnly reports whether the format is audio-eligible: an audio track
// present and no video track.
func (f Format) AudioOnly() bool {
	return f.HasAudio() && !f.HasVideo()
}

// Info is the descriptive record for a piece of content together with every
// format variant the backend resolved for it.
type Info struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Uploader  string   `json:"uploader"`
	Thumbnail string   `json:"thumbnail"`
	Duration  float64  `json:"duration"`
	Formats   []Format `json:"formats"`
}
