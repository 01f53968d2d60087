package config

import (
	"sort"

	"github.com/backmassage/encodeplan/internal/media"
)

// Selection holds the chosen embedded audio and subtitle track indices.
// Membership is what matters; mapped streams are always emitted in ascending
// index order regardless of toggle order.
type Selection struct {
	Audio    map[int]struct{}
	Subtitle map[int]struct{}
}

// NewSelection returns an empty selection with both sets allocated.
func NewSelection() Selection {
	return Selection{
		Audio:    make(map[int]struct{}),
		Subtitle: make(map[int]struct{}),
	}
}

// SelectAll resets the selection to every audio and subtitle track of the
// descriptor. This is the policy on a new descriptor: all tracks of both
// kinds start selected.
func (s *Selection) SelectAll(d *media.Descriptor) {
	s.Audio = make(map[int]struct{}, len(d.AudioTracks))
	for i := range d.AudioTracks {
		s.Audio[i] = struct{}{}
	}
	s.Subtitle = make(map[int]struct{}, len(d.SubtitleTracks))
	for i := range d.SubtitleTracks {
		s.Subtitle[i] = struct{}{}
	}
}

// SetAudio adds or removes an audio track index.
func (s *Selection) SetAudio(index int, on bool) {
	setIndex(s.Audio, index, on)
}

// SetSubtitle adds or removes a subtitle track index.
func (s *Selection) SetSubtitle(index int, on bool) {
	setIndex(s.Subtitle, index, on)
}

func setIndex(set map[int]struct{}, index int, on bool) {
	if index < 0 {
		return
	}
	if on {
		set[index] = struct{}{}
	} else {
		delete(set, index)
	}
}

// AudioIndices returns the selected audio indices in ascending order.
func (s *Selection) AudioIndices() []int {
	return sortedIndices(s.Audio)
}

// SubtitleIndices returns the selected subtitle indices in ascending order.
func (s *Selection) SubtitleIndices() []int {
	return sortedIndices(s.Subtitle)
}

func sortedIndices(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy, used when handing the selection to the
// pure synthesis and estimation functions.
func (s *Selection) Clone() Selection {
	c := Selection{
		Audio:    make(map[int]struct{}, len(s.Audio)),
		Subtitle: make(map[int]struct{}, len(s.Subtitle)),
	}
	for i := range s.Audio {
		c.Audio[i] = struct{}{}
	}
	for i := range s.Subtitle {
		c.Subtitle[i] = struct{}{}
	}
	return c
}
