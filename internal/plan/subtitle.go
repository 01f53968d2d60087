package plan

import (
	"fmt"
	"strings"

	"github.com/backmassage/encodeplan/internal/config"
	"github.com/backmassage/encodeplan/internal/media"
)

// bitmapSubCodecs lists image-based subtitle formats: DVD/DVB/Blu-ray picture
// subtitles and their common aliases. These cannot be converted to mov_text,
// so MP4-family containers must drop them.
var bitmapSubCodecs = map[string]bool{
	"hdmv_pgs_subtitle": true,
	"pgssub":            true,
	"pgs":               true,
	"dvd_subtitle":      true,
	"dvdsub":            true,
	"vobsub":            true,
	"dvb_subtitle":      true,
	"dvbsub":            true,
	"xsub":              true,
}

// IsBitmapSubtitle reports whether the codec token names an image-based
// subtitle format. Matching is case-insensitive; unknown tokens are assumed
// text-based.
func IsBitmapSubtitle(codecFormat string) bool {
	return bitmapSubCodecs[strings.ToLower(strings.TrimSpace(codecFormat))]
}

// SubtitleAdmissible checks one embedded subtitle track against the target
// container. MKV remuxes anything; the MP4 family only carries text
// subtitles. Inadmissible tracks are dropped from the stream map with a
// warning — this check never fails the synthesis.
func SubtitleAdmissible(track media.Track, container config.Container) (bool, Warning) {
	if !container.IsMP4Family() || !IsBitmapSubtitle(track.CodecFormat) {
		return true, Warning{}
	}

	ref := fmt.Sprintf("0:s:%d", track.Index)
	label := track.LanguageCode
	if label == "" {
		label = "und"
	}
	return false, Warning{
		TrackRef: ref,
		Reason: fmt.Sprintf("bitmap subtitle %q (%s) cannot be carried in %s; track skipped",
			track.CodecFormat, label, container),
	}
}
