package plan

import (
	"math"
	"strings"

	"github.com/backmassage/encodeplan/internal/config"
	"github.com/backmassage/encodeplan/internal/media"
)

// Estimation constants. The baseline floor and fallback are deliberately
// conservative; the estimate is advisory, not a guarantee.
const (
	baselineFloorKbps    = 500  // minimum assumed video bitrate
	baselineFallbackKbps = 3000 // used when the source bitrate is unknown
	audioCopyKbps        = 192  // per-track assumption for passthrough
	audioEncodeKbps      = 128  // per-track assumption for re-encode
	referenceCRF         = 23   // unity point of the quality curve
	hardwareFactor       = 1.2  // hardware encoders trade size for speed
)

// efficientCodecs are the modern high-efficiency source formats. Converting
// away from one of these costs bitrate; converting to one saves it.
var efficientCodecs = map[string]bool{
	"hevc": true, "h265": true, "vp9": true, "av1": true,
}

// Estimate predicts the output file size for the current configuration.
// It mirrors the synthesizer factor for factor: the resolution adjustment
// uses the identical ScaleTarget rule that produces the -vf filter, so the
// estimate always describes the command that was generated.
//
// Steps: baseline from the overall source bitrate (minus an audio
// allowance), codec-family conversion factor, resolution factor, quality
// curve around CRF 23, hardware-encoder factor, then audio and duration.
// An unknown or zero duration suppresses the estimate entirely.
func Estimate(desc *media.Descriptor, cfg config.Config, sel config.Selection) SizeEstimate {
	if desc == nil || desc.DurationSeconds <= 0 {
		return SizeEstimate{}
	}

	cfg.Normalize()

	// 1. Baseline video bitrate in kbps.
	videoKbps := float64(baselineFallbackKbps)
	if desc.OverallBitrateBps > 0 {
		audioAllowance := math.Max(float64(audioEncodeKbps*len(desc.AudioTracks)), 256)
		videoKbps = math.Max(baselineFloorKbps, float64(desc.OverallBitrateBps)/1000-audioAllowance)
	}

	// 2. Codec-family conversion.
	srcEfficient := sourceIsEfficient(desc)
	dstEfficient := cfg.VideoCodec.IsHEVC()
	switch {
	case srcEfficient && !dstEfficient:
		videoKbps *= 1.6
	case !srcEfficient && dstEfficient:
		videoKbps *= 0.6
	}

	// 3. Resolution factor via the shared scale rule.
	if srcW, srcH := desc.Resolution(); srcW > 0 && srcH > 0 {
		if w, h, scaled := ScaleTarget(srcW, srcH, cfg.ScaleMode, cfg.CustomWidth); scaled {
			videoKbps *= float64(w*h) / float64(srcW*srcH)
		}
	}

	// 4. Quality curve: each 6 CRF points below 23 roughly doubles bitrate.
	videoKbps *= math.Pow(2, float64(referenceCRF-cfg.CRF)/6)

	// 5. Hardware encoders need more bitrate for the same quality.
	if cfg.VideoCodec.IsHardware() {
		videoKbps *= hardwareFactor
	}

	// 6. Audio.
	var audioKbps float64
	selected := len(sel.AudioIndices())
	switch cfg.AudioCodec {
	case config.AudioNone:
	case config.AudioCopy:
		audioKbps = float64(audioCopyKbps * selected)
	default:
		audioKbps = float64(audioEncodeKbps * selected)
	}

	// 7. Total.
	mb := (videoKbps + audioKbps) * desc.DurationSeconds / 8 / 1024
	return SizeEstimate{Known: true, MB: mb}
}

func sourceIsEfficient(desc *media.Descriptor) bool {
	v := desc.PrimaryVideo()
	if v == nil {
		return false
	}
	return efficientCodecs[strings.ToLower(v.CodecFormat)]
}
