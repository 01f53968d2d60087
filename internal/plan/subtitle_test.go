package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/encodeplan/internal/config"
	"github.com/backmassage/encodeplan/internal/media"
)

func TestIsBitmapSubtitle(t *testing.T) {
	for _, codec := range []string{
		"hdmv_pgs_subtitle", "pgssub", "pgs",
		"dvd_subtitle", "dvdsub", "vobsub",
		"dvb_subtitle", "dvbsub", "xsub",
		"HDMV_PGS_SUBTITLE", " dvdsub ",
	} {
		assert.True(t, IsBitmapSubtitle(codec), codec)
	}
	for _, codec := range []string{"subrip", "srt", "ass", "ssa", "webvtt", "mov_text", ""} {
		assert.False(t, IsBitmapSubtitle(codec), codec)
	}
}

func TestSubtitleAdmissible(t *testing.T) {
	text := media.Track{Index: 0, CodecFormat: "subrip", LanguageCode: "eng"}
	bitmap := media.Track{Index: 1, CodecFormat: "hdmv_pgs_subtitle", LanguageCode: "jpn"}

	ok, _ := SubtitleAdmissible(text, config.ContainerMP4)
	assert.True(t, ok, "text subtitles remux into mp4")

	ok, _ = SubtitleAdmissible(bitmap, config.ContainerMKV)
	assert.True(t, ok, "mkv carries bitmap subtitles")

	for _, c := range []config.Container{config.ContainerMP4, config.ContainerMOV} {
		ok, w := SubtitleAdmissible(bitmap, c)
		assert.False(t, ok)
		assert.Equal(t, "0:s:1", w.TrackRef)
		assert.Contains(t, w.Reason, "hdmv_pgs_subtitle")
		assert.Contains(t, w.Reason, "jpn")
	}
}

func TestSubtitleAdmissible_UnknownLanguage(t *testing.T) {
	bitmap := media.Track{Index: 0, CodecFormat: "vobsub"}
	ok, w := SubtitleAdmissible(bitmap, config.ContainerMP4)
	assert.False(t, ok)
	assert.Contains(t, w.Reason, "und")
}
