// Package formats implements the audio format selection policy.
package formats

import "audiobridge/internal/media"

// BestAudio chooses the single best audio variant from a backend's format
// list. Audio-only variants are preferred; when none exist, any variant
// carrying an audio track qualifies. Within a tier the variant with the
// highest average bitrate wins, a missing bitrate counts as zero, and ties
// keep the backend's original order. A false result means the content exposes
// no audio at all, which is a valid outcome rather than an error.
func BestAudio(list []media.Format) (media.Format, bool) {
	if best, ok := maxBitrate(list, media.Format.AudioOnly); ok {
		return best, true
	}
	return maxBitrate(list, media.Format.HasAudio)
}

func maxBitrate(list []media.Format, eligible func(media.Format) bool) (media.Format, bool) {
	var best media.Format
	found := false
	for _, f := range list {
		if !eligible(f) {
			continue
		}
		if !found || f.Bitrate > best.Bitrate {
			best = f
			found = true
		}
	}
	return best, found
}
