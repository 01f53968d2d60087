package plan

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/encodeplan/internal/config"
	"github.com/backmassage/encodeplan/internal/media"
)

// hevcSource matches estimation scenario A/B: 5 Mbps overall, 600 s, one
// audio track, 1080p HEVC video.
func hevcSource() *media.Descriptor {
	return &media.Descriptor{
		DurationSeconds:   600,
		OverallBitrateBps: 5_000_000,
		VideoTracks: []media.VideoTrack{
			{CodecFormat: "hevc", Width: 1920, Height: 1080},
		},
		AudioTracks: []media.Track{{Index: 0, CodecFormat: "aac"}},
	}
}

func TestEstimate_BaselineScenario(t *testing.T) {
	// baseline = 5000 - max(128*1, 256) = 4744 kbps; same codec family,
	// CRF 23 and original scale are unity factors; copied audio adds 192.
	// (4744+192) * 600 / 8 / 1024 ≈ 361.5 MB.
	desc := hevcSource()
	cfg := config.DefaultConfig()
	cfg.VideoCodec = config.CodecH265
	cfg.AudioCodec = config.AudioCopy

	est := Estimate(desc, cfg, allSelected(desc))
	require.True(t, est.Known)
	assert.InDelta(t, 361.5, est.MB, 1.0)
}

func TestEstimate_ResolutionFactorMatchesScaleRule(t *testing.T) {
	// Scenario B: cap720 from 1080p scales the video bitrate by
	// (1280*720)/(1920*1080) ≈ 0.444.
	desc := hevcSource()
	cfg := config.DefaultConfig()
	cfg.VideoCodec = config.CodecH265
	cfg.AudioCodec = config.AudioCopy

	base := Estimate(desc, cfg, allSelected(desc))
	cfg.ScaleMode = config.ScaleCap720
	capped := Estimate(desc, cfg, allSelected(desc))

	require.True(t, base.Known)
	require.True(t, capped.Known)

	factor := float64(1280*720) / float64(1920*1080)
	wantVideo := 4744 * factor
	wantMB := (wantVideo + 192) * 600 / 8 / 1024
	assert.InDelta(t, wantMB, capped.MB, 1.0)
	assert.Less(t, capped.MB, base.MB)
}

// The consistency law: the dimensions the estimator scales by are the
// dimensions the synthesizer writes into the filter, for every mode.
func TestEstimate_ConsistentWithSynthesizedFilter(t *testing.T) {
	desc := hevcSource()
	sel := allSelected(desc)

	for _, mode := range []config.ScaleMode{
		config.ScaleOriginal, config.ScaleCap720, config.ScaleCap1080, config.ScaleCustomWidth,
	} {
		cfg := config.DefaultConfig()
		cfg.ScaleMode = mode
		cfg.CustomWidth = 854

		res := Synthesize(desc, cfg, sel, nil, "movie.mkv")
		w, h, scaled := ScaleTarget(1920, 1080, mode, 854)
		if scaled {
			assert.Contains(t, res.Command, fmt.Sprintf("-vf scale=%d:%d", w, h), string(mode))
		} else {
			assert.NotContains(t, res.Command, "-vf", string(mode))
		}
	}
}

func TestEstimate_SuppressedWithoutDuration(t *testing.T) {
	desc := hevcSource()
	desc.DurationSeconds = 0

	for _, mode := range []config.ScaleMode{config.ScaleOriginal, config.ScaleCap720} {
		cfg := config.DefaultConfig()
		cfg.ScaleMode = mode
		est := Estimate(desc, cfg, allSelected(desc))
		assert.False(t, est.Known)
		assert.Empty(t, est.String())
	}

	est := Estimate(nil, config.DefaultConfig(), config.NewSelection())
	assert.False(t, est.Known)
}

func TestEstimate_UnknownBitrateFallback(t *testing.T) {
	desc := hevcSource()
	desc.OverallBitrateBps = 0
	cfg := config.DefaultConfig()
	cfg.VideoCodec = config.CodecH265
	cfg.AudioCodec = config.AudioNone

	// Fallback baseline 3000 kbps, no audio: 3000*600/8/1024 ≈ 219.7 MB.
	est := Estimate(desc, cfg, allSelected(desc))
	require.True(t, est.Known)
	assert.InDelta(t, 219.7, est.MB, 0.5)
}

func TestEstimate_BaselineFloor(t *testing.T) {
	desc := hevcSource()
	desc.OverallBitrateBps = 400_000 // 400 kbps, below the 500 floor after allowance
	cfg := config.DefaultConfig()
	cfg.VideoCodec = config.CodecH265
	cfg.AudioCodec = config.AudioNone

	est := Estimate(desc, cfg, allSelected(desc))
	require.True(t, est.Known)
	assert.InDelta(t, 500.0*600/8/1024, est.MB, 0.5)
}

func TestEstimate_CodecFamilyFactors(t *testing.T) {
	desc := hevcSource()
	sel := allSelected(desc)

	cfg := config.DefaultConfig()
	cfg.AudioCodec = config.AudioNone

	cfg.VideoCodec = config.CodecH265 // hevc → hevc: unity
	same := Estimate(desc, cfg, sel)
	cfg.VideoCodec = config.CodecH264 // hevc → h264: ×1.6
	toLegacy := Estimate(desc, cfg, sel)
	assert.InDelta(t, same.MB*1.6, toLegacy.MB, 0.5)

	desc.VideoTracks[0].CodecFormat = "h264"
	cfg.VideoCodec = config.CodecH265 // h264 → hevc: ×0.6
	toEfficient := Estimate(desc, cfg, sel)
	assert.InDelta(t, same.MB*0.6, toEfficient.MB, 0.5)
}

func TestEstimate_QualityCurve(t *testing.T) {
	desc := hevcSource()
	sel := allSelected(desc)
	cfg := config.DefaultConfig()
	cfg.VideoCodec = config.CodecH265
	cfg.AudioCodec = config.AudioNone

	cfg.CRF = 23
	unity := Estimate(desc, cfg, sel)
	cfg.CRF = 17 // six points lower doubles the video bitrate
	doubled := Estimate(desc, cfg, sel)
	assert.InDelta(t, unity.MB*2, doubled.MB, 0.5)
}

func TestEstimate_HardwareFactor(t *testing.T) {
	desc := hevcSource()
	sel := allSelected(desc)
	cfg := config.DefaultConfig()
	cfg.AudioCodec = config.AudioNone

	cfg.VideoCodec = config.CodecH265
	software := Estimate(desc, cfg, sel)
	cfg.VideoCodec = config.CodecH265HW
	hardware := Estimate(desc, cfg, sel)
	assert.InDelta(t, software.MB*1.2, hardware.MB, 0.5)
}

func TestEstimate_AudioSelectionCount(t *testing.T) {
	desc := hevcSource()
	desc.AudioTracks = append(desc.AudioTracks, media.Track{Index: 1, CodecFormat: "ac3"})
	cfg := config.DefaultConfig()
	cfg.VideoCodec = config.CodecH265

	both := allSelected(desc)
	one := config.NewSelection()
	one.SetAudio(0, true)

	cfg.AudioCodec = config.AudioCopy
	withBoth := Estimate(desc, cfg, both)
	withOne := Estimate(desc, cfg, one)
	// 192 kbps per selected track over 600 s is ~14 MB.
	assert.InDelta(t, withBoth.MB-withOne.MB, 192.0*600/8/1024, 0.5)

	cfg.AudioCodec = config.AudioNone
	muted := Estimate(desc, cfg, both)
	assert.Less(t, muted.MB, withOne.MB)
}

func TestSizeEstimate_String(t *testing.T) {
	assert.Equal(t, "361.5 MB", SizeEstimate{Known: true, MB: 361.52}.String())
	assert.Equal(t, "1.50 GB", SizeEstimate{Known: true, MB: 1536}.String())
	assert.Empty(t, SizeEstimate{}.String())

	s := SizeEstimate{Known: true, MB: 1023.9}.String()
	assert.True(t, strings.HasSuffix(s, "MB"))
}
