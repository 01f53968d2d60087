package plan

import (
	"math"

	"github.com/backmassage/encodeplan/internal/config"
)

// ScaleTarget computes the output dimensions for a scale mode. This is the
// single shared rule behind both the -vf scale filter and the estimator's
// resolution factor; keep it that way.
//
// The capped modes constrain height (720/1080), the custom mode constrains
// width, and only when the source exceeds the limit — never upscale. The
// free dimension follows the aspect ratio rounded to the nearest even value
// (encoder requirement). Unknown source dimensions pass through unscaled.
func ScaleTarget(srcW, srcH int, mode config.ScaleMode, customWidth int) (w, h int, scaled bool) {
	if srcW <= 0 || srcH <= 0 {
		return srcW, srcH, false
	}

	switch mode {
	case config.ScaleCap720, config.ScaleCap1080:
		limit := 720
		if mode == config.ScaleCap1080 {
			limit = 1080
		}
		if srcH <= limit {
			return srcW, srcH, false
		}
		return evenRound(float64(srcW) * float64(limit) / float64(srcH)), limit, true

	case config.ScaleCustomWidth:
		if customWidth <= 0 || srcW <= customWidth {
			return srcW, srcH, false
		}
		return customWidth, evenRound(float64(srcH) * float64(customWidth) / float64(srcW)), true
	}

	return srcW, srcH, false
}

// evenRound rounds to the nearest even integer.
func evenRound(v float64) int {
	return int(math.Round(v/2)) * 2
}
