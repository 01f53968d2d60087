// Package config holds the user-owned encoding configuration and track
// selection. All fields are mutated only through the session setters;
// Normalize clamps out-of-range numeric values silently instead of
// surfacing them as errors.
package config

import (
	"errors"
	"strings"
)

// --- Enum types for validated string fields ---

// Container is the output container format.
type Container string

const (
	ContainerMP4 Container = "mp4" // Default; broad compatibility, text subtitles only.
	ContainerMKV Container = "mkv" // Matroska; full subtitle passthrough.
	ContainerMOV Container = "mov" // QuickTime; same subtitle constraints as MP4.
)

// IsMP4Family reports whether the container only supports text-based
// subtitle remuxing (mov_text). MP4 and MOV share the QuickTime atom
// structure and its subtitle limitations.
func (c Container) IsMP4Family() bool {
	return c == ContainerMP4 || c == ContainerMOV
}

// Extension returns the file extension without the dot.
func (c Container) Extension() string {
	return string(c)
}

// VideoCodec selects the video encoder.
type VideoCodec string

const (
	CodecH264   VideoCodec = "libx264"    // Software H.264 (default).
	CodecH265   VideoCodec = "libx265"    // Software HEVC.
	CodecH264HW VideoCodec = "h264_nvenc" // Hardware H.264.
	CodecH265HW VideoCodec = "hevc_nvenc" // Hardware HEVC.
)

// IsHEVC reports whether the encoder produces HEVC output. MP4-family
// containers need -tag:v hvc1 for these so common playback stacks
// recognize the stream.
func (v VideoCodec) IsHEVC() bool {
	return v == CodecH265 || v == CodecH265HW
}

// IsHardware reports whether the encoder is a hardware one. Hardware
// encoders use their own constant-quality flag and a fixed speed preset.
func (v VideoCodec) IsHardware() bool {
	return v == CodecH264HW || v == CodecH265HW
}

// AudioCodec selects audio handling: passthrough, mute, or re-encode.
type AudioCodec string

const (
	AudioCopy AudioCodec = "copy"    // Pass streams through unchanged.
	AudioNone AudioCodec = "none"    // Drop all audio (-an).
	AudioAAC  AudioCodec = "aac"     // Re-encode to AAC (default).
	AudioOpus AudioCodec = "libopus" // Re-encode to Opus.
)

// Bitrate returns the fixed re-encode target for the codec, or "" for
// copy/none where no bitrate flag is emitted.
func (a AudioCodec) Bitrate() string {
	switch a {
	case AudioAAC, AudioOpus:
		return "128k"
	default:
		return ""
	}
}

// ScaleMode selects output resolution handling.
type ScaleMode string

const (
	ScaleOriginal    ScaleMode = "original" // Keep source dimensions (default).
	ScaleCap720      ScaleMode = "720p"     // Cap height at 720 when the source exceeds it.
	ScaleCap1080     ScaleMode = "1080p"    // Cap height at 1080 when the source exceeds it.
	ScaleCustomWidth ScaleMode = "custom"   // Cap width at CustomWidth when the source exceeds it.
)

// CRF bounds shared by the supported encoders.
const (
	CRFMin     = 0
	CRFMax     = 51
	CRFDefault = 23
)

// DefaultCustomWidth is substituted when CustomWidth is non-positive.
const DefaultCustomWidth = 1280

// speedPresets holds the named x264/x265 speed presets; membership is what
// Normalize checks.
var speedPresets = map[string]bool{
	"ultrafast": true, "superfast": true, "veryfast": true, "faster": true,
	"fast": true, "medium": true, "slow": true, "slower": true, "veryslow": true,
	"placebo": true,
}

// Config is the mutable encoding configuration aggregate. CustomWidth stays
// meaningful only while ScaleMode is ScaleCustomWidth but is never reset on
// mode changes, so toggling back restores the prior value.
type Config struct {
	Container        Container
	VideoCodec       VideoCodec
	AudioCodec       AudioCodec
	CRF              int
	SpeedPreset      string
	ScaleMode        ScaleMode
	CustomWidth      int
	WorkingDirectory string
}

// DefaultConfig returns the configuration used before any user input:
// MP4 + H.264 + AAC at CRF 23, medium preset, original resolution.
func DefaultConfig() Config {
	return Config{
		Container:   ContainerMP4,
		VideoCodec:  CodecH264,
		AudioCodec:  AudioAAC,
		CRF:         CRFDefault,
		SpeedPreset: "medium",
		ScaleMode:   ScaleOriginal,
		CustomWidth: DefaultCustomWidth,
	}
}

// Normalize clamps or defaults every out-of-range field in place. It never
// returns an error: configuration anomalies are repaired, not reported
// (a CRF of 0 with a lossy codec is odd but valid and left alone).
func (c *Config) Normalize() {
	if c.CRF < CRFMin {
		c.CRF = CRFMin
	}
	if c.CRF > CRFMax {
		c.CRF = CRFMax
	}
	if c.CustomWidth <= 0 {
		c.CustomWidth = DefaultCustomWidth
	}
	if !speedPresets[c.SpeedPreset] {
		c.SpeedPreset = "medium"
	}
	switch c.Container {
	case ContainerMP4, ContainerMKV, ContainerMOV:
	default:
		c.Container = ContainerMP4
	}
	switch c.VideoCodec {
	case CodecH264, CodecH265, CodecH264HW, CodecH265HW:
	default:
		c.VideoCodec = CodecH264
	}
	switch c.AudioCodec {
	case AudioCopy, AudioNone, AudioAAC, AudioOpus:
	default:
		c.AudioCodec = AudioAAC
	}
	switch c.ScaleMode {
	case ScaleOriginal, ScaleCap720, ScaleCap1080, ScaleCustomWidth:
	default:
		c.ScaleMode = ScaleOriginal
	}
	c.WorkingDirectory = strings.TrimSpace(c.WorkingDirectory)
}

// Validate checks that enum fields hold valid values. The CLI calls it after
// flag parsing so typos fail loudly there; the session uses Normalize
// instead and never fails.
func (c *Config) Validate() error {
	switch c.Container {
	case ContainerMP4, ContainerMKV, ContainerMOV:
	default:
		return errors.New("invalid container (use 'mp4', 'mkv' or 'mov')")
	}
	switch c.VideoCodec {
	case CodecH264, CodecH265, CodecH264HW, CodecH265HW:
	default:
		return errors.New("invalid video codec (use 'libx264', 'libx265', 'h264_nvenc' or 'hevc_nvenc')")
	}
	switch c.AudioCodec {
	case AudioCopy, AudioNone, AudioAAC, AudioOpus:
	default:
		return errors.New("invalid audio codec (use 'copy', 'none', 'aac' or 'libopus')")
	}
	switch c.ScaleMode {
	case ScaleOriginal, ScaleCap720, ScaleCap1080, ScaleCustomWidth:
	default:
		return errors.New("invalid scale mode (use 'original', '720p', '1080p' or 'custom')")
	}
	return nil
}
