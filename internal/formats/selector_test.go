package formats

import (
	"testing"

	"audiobridge/internal/media"
)

func TestBestAudioPrefersAudioOnly(t *testing.T) {
	list := []media.Format{
		{URL: "v", VideoCodec: "avc1", AudioCodec: "mp4a", Bitrate: 256, Ext: "mp4"},
		{URL: "a1", VideoCodec: "none", AudioCodec: "opus", Bitrate: 128, Ext: "webm"},
		{URL: "a2", VideoCodec: "none", AudioCodec: "mp4a", Bitrate: 160, Ext: "m4a"},
	}

	got, ok := BestAudio(list)
	if !ok {
		t.Fatal("BestAudio() found nothing")
	}
	if got.URL != "a2" {
		t.Fatalf("BestAudio() picked %q, want a2", got.URL)
	}
}

func TestBestAudioTieKeepsOriginalOrder(t *testing.T) {
	list := []media.Format{
		{URL: "first", VideoCodec: "none", AudioCodec: "opus", Bitrate: 128},
		{URL: "second", VideoCodec: "none", AudioCodec: "mp4a", Bitrate: 128},
	}

	got, ok := BestAudio(list)
	if !ok {
		t.Fatal("BestAudio() found nothing")
	}
	if got.URL != "first" {
		t.Fatalf("tie picked %q, want first", got.URL)
	}
}

func TestBestAudioMissingBitrateCountsAsZero(t *testing.T) {
	list := []media.Format{
		{URL: "nobr", VideoCodec: "none", AudioCodec: "opus"},
		{URL: "low", VideoCodec: "none", AudioCodec: "mp4a", Bitrate: 48},
	}

	got, ok := BestAudio(list)
	if !ok {
		t.Fatal("BestAudio() found nothing")
	}
	if got.URL != "low" {
		t.Fatalf("BestAudio() picked %q, want low", got.URL)
	}
}

func TestBestAudioFallsBackToMuxed(t *testing.T) {
	list := []media.Format{
		{URL: "silent", VideoCodec: "vp9", AudioCodec: "none", Bitrate: 900, Ext: "webm"},
		{URL: "muxed-lo", VideoCodec: "avc1", AudioCodec: "mp4a", Bitrate: 96, Ext: "mp4"},
		{URL: "muxed-hi", VideoCodec: "avc1", AudioCodec: "mp4a", Bitrate: 192, Ext: "mp4"},
	}

	got, ok := BestAudio(list)
	if !ok {
		t.Fatal("BestAudio() found nothing")
	}
	if got.URL != "muxed-hi" {
		t.Fatalf("fallback picked %q, want muxed-hi", got.URL)
	}
}

func TestBestAudioEmptyCodecMeansAbsent(t *testing.T) {
	// An empty vcodec is the same sentinel as "none": still audio-only.
	list := []media.Format{
		{URL: "a", VideoCodec: "", AudioCodec: "opus", Bitrate: 70},
	}

	got, ok := BestAudio(list)
	if !ok {
		t.Fatal("BestAudio() found nothing")
	}
	if got.URL != "a" {
		t.Fatalf("BestAudio() picked %q, want a", got.URL)
	}
}

func TestBestAudioNoAudioAnywhere(t *testing.T) {
	cases := [][]media.Format{
		nil,
		{},
		{
			{URL: "v1", VideoCodec: "avc1", AudioCodec: "none", Bitrate: 500},
			{URL: "v2", VideoCodec: "vp9", AudioCodec: "", Bitrate: 700},
		},
	}

	for i, list := range cases {
		if _, ok := BestAudio(list); ok {
			t.Fatalf("case %d: BestAudio() found a format, want none", i)
		}
	}
}
