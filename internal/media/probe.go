package media

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DecodeProbeJSON converts raw ffprobe JSON output (from
// `ffprobe -print_format json -show_format -show_streams`) into a Descriptor.
// Pure decoding: no subprocess is ever spawned by this package. Numeric
// fields ffprobe reports as strings parse leniently to zero when absent or
// malformed, so a partially probed file still yields a usable Descriptor.
func DecodeProbeJSON(data []byte) (*Descriptor, error) {
	var raw probeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode probe JSON: %w", err)
	}
	return buildDescriptor(&raw), nil
}

// --- ffprobe JSON wire types ---

type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type probeStream struct {
	Index        int               `json:"index"`
	CodecName    string            `json:"codec_name"`
	CodecTag     string            `json:"codec_tag_string"`
	CodecType    string            `json:"codec_type"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	BitRate      string            `json:"bit_rate"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	Disposition  map[string]int    `json:"disposition"`
	Tags         map[string]string `json:"tags"`
}

// --- Conversion from wire types to the domain model ---

func buildDescriptor(raw *probeOutput) *Descriptor {
	d := &Descriptor{
		ContainerFormat:   raw.Format.FormatName,
		DurationSeconds:   parseFloat(raw.Format.Duration),
		FileSizeBytes:     parseInt64(raw.Format.Size),
		OverallBitrateBps: parseInt64(raw.Format.BitRate),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			// Cover art is not a video track.
			if s.Disposition["attached_pic"] == 1 {
				continue
			}
			d.VideoTracks = append(d.VideoTracks, VideoTrack{
				CodecFormat:   s.CodecName,
				CodecID:       s.CodecTag,
				Width:         s.Width,
				Height:        s.Height,
				FrameRateText: s.AvgFrameRate,
				BitRateText:   s.BitRate,
			})
		case "audio":
			d.AudioTracks = append(d.AudioTracks, convertTrack(s, len(d.AudioTracks)))
		case "subtitle":
			d.SubtitleTracks = append(d.SubtitleTracks, convertTrack(s, len(d.SubtitleTracks)))
		}
	}
	return d
}

// convertTrack assigns the per-type stream index, not the absolute container
// index: -map 0:a:N and -map 0:s:N count within the type.
func convertTrack(s *probeStream, typeIndex int) Track {
	return Track{
		Index:        typeIndex,
		CodecFormat:  s.CodecName,
		LanguageCode: s.Tags["language"],
		Title:        s.Tags["title"],
		IsDefault:    s.Disposition["default"] == 1,
		Details:      s.CodecTag,
	}
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
