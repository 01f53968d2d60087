package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/encodeplan/internal/media"
)

func TestNormalize_ClampsCRF(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CRF = 99
	cfg.Normalize()
	assert.Equal(t, CRFMax, cfg.CRF)

	cfg.CRF = -5
	cfg.Normalize()
	assert.Equal(t, CRFMin, cfg.CRF)
}

func TestNormalize_CRFZeroIsLegal(t *testing.T) {
	// CRF 0 with a lossy codec is odd but accepted as the user's intent.
	cfg := DefaultConfig()
	cfg.CRF = 0
	cfg.Normalize()
	assert.Equal(t, 0, cfg.CRF)
}

func TestNormalize_DefaultsBadEnums(t *testing.T) {
	cfg := Config{
		Container:   Container("avi"),
		VideoCodec:  VideoCodec("xvid"),
		AudioCodec:  AudioCodec("mp3?"),
		ScaleMode:   ScaleMode("stretch"),
		SpeedPreset: "warp9",
		CustomWidth: -100,
	}
	cfg.Normalize()
	assert.Equal(t, ContainerMP4, cfg.Container)
	assert.Equal(t, CodecH264, cfg.VideoCodec)
	assert.Equal(t, AudioAAC, cfg.AudioCodec)
	assert.Equal(t, ScaleOriginal, cfg.ScaleMode)
	assert.Equal(t, "medium", cfg.SpeedPreset)
	assert.Equal(t, DefaultCustomWidth, cfg.CustomWidth)
}

func TestValidate_RejectsBadEnums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Container = Container("avi")
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.VideoCodec = VideoCodec("xvid")
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestContainerFamily(t *testing.T) {
	assert.True(t, ContainerMP4.IsMP4Family())
	assert.True(t, ContainerMOV.IsMP4Family())
	assert.False(t, ContainerMKV.IsMP4Family())
}

func TestVideoCodecFamilies(t *testing.T) {
	assert.True(t, CodecH265.IsHEVC())
	assert.True(t, CodecH265HW.IsHEVC())
	assert.False(t, CodecH264.IsHEVC())

	assert.True(t, CodecH264HW.IsHardware())
	assert.True(t, CodecH265HW.IsHardware())
	assert.False(t, CodecH265.IsHardware())
}

func TestSelection_SelectAll(t *testing.T) {
	d := &media.Descriptor{
		AudioTracks:    []media.Track{{Index: 0}, {Index: 1}, {Index: 2}},
		SubtitleTracks: []media.Track{{Index: 0}},
	}
	sel := NewSelection()
	sel.SetAudio(7, true) // stale entry from a previous file
	sel.SelectAll(d)

	assert.Equal(t, []int{0, 1, 2}, sel.AudioIndices())
	assert.Equal(t, []int{0}, sel.SubtitleIndices())
}

func TestSelection_SortedIndices(t *testing.T) {
	sel := NewSelection()
	sel.SetAudio(2, true)
	sel.SetAudio(0, true)
	sel.SetAudio(1, true)
	sel.SetAudio(0, false)
	assert.Equal(t, []int{1, 2}, sel.AudioIndices())

	sel.SetAudio(-1, true) // negative indices are ignored
	assert.Equal(t, []int{1, 2}, sel.AudioIndices())
}

func TestSelection_CloneIsIndependent(t *testing.T) {
	sel := NewSelection()
	sel.SetSubtitle(0, true)
	c := sel.Clone()
	c.SetSubtitle(0, false)
	assert.Equal(t, []int{0}, sel.SubtitleIndices())
	assert.Empty(t, c.SubtitleIndices())
}
