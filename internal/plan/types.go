package plan

import "fmt"

// Warning is one advisory produced while synthesizing a command, e.g. a
// subtitle track demoted out of the stream map. Warnings are replaced
// wholesale on every synthesis pass; none survive a configuration change.
type Warning struct {
	TrackRef string // stream reference the warning is about, e.g. "0:s:1"
	Reason   string
}

func (w Warning) String() string {
	return w.TrackRef + ": " + w.Reason
}

// ExternalSubtitle is a subtitle file attached alongside the source media.
// ID is opaque and stable across field edits; attachment order is preserved
// and determines ffmpeg input ordering. External subtitles are assumed
// text-based and are never rejected by the admissibility check.
type ExternalSubtitle struct {
	ID           string
	SourceRef    string
	LanguageCode string
	Title        string
}

// Result is the output of one synthesis pass.
type Result struct {
	Command  string
	Warnings []Warning
}

// SizeEstimate is the predicted output size. Known is false when the source
// duration is missing or zero; a nonsensical number is never reported.
type SizeEstimate struct {
	Known bool
	MB    float64
}

// String formats the estimate, switching to GB at 1024 MB. Unknown
// estimates format as an empty string.
func (e SizeEstimate) String() string {
	if !e.Known {
		return ""
	}
	if e.MB >= 1024 {
		return fmt.Sprintf("%.2f GB", e.MB/1024)
	}
	return fmt.Sprintf("%.1f MB", e.MB)
}
