package media

// VideoTrack holds the parsed properties of a single video stream.
type VideoTrack struct {
	CodecFormat   string
	CodecID       string
	Width         int
	Height        int
	FrameRateText string
	BitRateText   string
}

// Track holds the parsed properties of a single audio or subtitle stream.
// Index is the per-type stream index (0:a:Index / 0:s:Index), not the
// absolute stream index in the container.
type Track struct {
	Index        int
	CodecFormat  string
	LanguageCode string
	Title        string
	IsDefault    bool
	Details      string
}

// Descriptor is the fully parsed description of one media file. It is owned
// by the external analysis step and never mutated by the planning core.
// Numeric fields may be zero when the source metadata is incomplete;
// consumers degrade rather than fail (estimates are suppressed, synthesis
// proceeds).
type Descriptor struct {
	ContainerFormat   string
	DurationSeconds   float64
	FileSizeBytes     int64
	OverallBitrateBps int64
	VideoTracks       []VideoTrack
	AudioTracks       []Track
	SubtitleTracks    []Track
}

// PrimaryVideo returns the first video track, or nil when the file has none
// (audio-only sources still get a synthesized command).
func (d *Descriptor) PrimaryVideo() *VideoTrack {
	if len(d.VideoTracks) == 0 {
		return nil
	}
	return &d.VideoTracks[0]
}

// Resolution returns the primary video dimensions, or (0, 0) when unknown.
func (d *Descriptor) Resolution() (w, h int) {
	v := d.PrimaryVideo()
	if v == nil {
		return 0, 0
	}
	return v.Width, v.Height
}
