// Package session owns the mutable planning state for one media file and
// keeps the derived output coherent.
//
// Every setter runs one full synchronous recompute of {command, warnings,
// estimate} before returning, so no caller ever observes partial or stale
// state. Computation is never implicit in field assignment: the setters are
// thin wrappers around recompute(), which delegates to the pure functions in
// the plan package. The session is owned by a single goroutine (the UI event
// loop in practice) and holds no locks.
package session

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/backmassage/encodeplan/internal/config"
	"github.com/backmassage/encodeplan/internal/log"
	"github.com/backmassage/encodeplan/internal/media"
	"github.com/backmassage/encodeplan/internal/plan"
	"github.com/backmassage/encodeplan/internal/preset"
)

// Output is the coherent derived state of one recompute pass. Warnings are
// replaced wholesale each pass; a configuration change can never leave a
// stale warning behind.
type Output struct {
	Command  string
	Warnings []plan.Warning
	Estimate plan.SizeEstimate
}

// Session aggregates the descriptor (read-only, externally produced), the
// encoding configuration, the track selection, and the external subtitle
// list, plus the last computed Output.
type Session struct {
	descriptor     *media.Descriptor
	sourceFileName string
	cfg            config.Config
	sel            config.Selection
	externals      []plan.ExternalSubtitle

	out    Output
	logger zerolog.Logger
}

// New returns a session with default configuration and no descriptor. The
// initial Output is already computed, so Output() is valid immediately.
func New() *Session {
	s := &Session{
		cfg:    config.DefaultConfig(),
		sel:    config.NewSelection(),
		logger: log.WithComponent("session"),
	}
	s.recompute()
	return s
}

// recompute runs one full synthesis + estimation pass. It is the only place
// derived state is written.
func (s *Session) recompute() {
	res := plan.Synthesize(s.descriptor, s.cfg, s.sel, s.externals, s.sourceFileName)
	s.out = Output{
		Command:  res.Command,
		Warnings: res.Warnings,
		Estimate: plan.Estimate(s.descriptor, s.cfg, s.sel),
	}

	s.logger.Debug().
		Int("warnings", len(s.out.Warnings)).
		Bool("estimate_known", s.out.Estimate.Known).
		Str("container", string(s.cfg.Container)).
		Msg("recomputed plan")
}

// Output returns the last computed pass. The warning slice is shared;
// callers treat it as read-only.
func (s *Session) Output() Output {
	return s.out
}

// Config returns a copy of the current encoding configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}

// --- Descriptor ---

// SetDescriptor installs a newly analyzed file. Track selection resets to
// all tracks of both kinds; configuration and external subtitles carry over.
func (s *Session) SetDescriptor(d *media.Descriptor, sourceFileName string) {
	s.descriptor = d
	s.sourceFileName = sourceFileName
	s.sel = config.NewSelection()
	if d != nil {
		s.sel.SelectAll(d)
	}
	s.recompute()
}

// --- Configuration setters ---

func (s *Session) SetContainer(c config.Container) {
	s.cfg.Container = c
	s.recompute()
}

func (s *Session) SetVideoCodec(v config.VideoCodec) {
	s.cfg.VideoCodec = v
	s.recompute()
}

func (s *Session) SetAudioCodec(a config.AudioCodec) {
	s.cfg.AudioCodec = a
	s.recompute()
}

func (s *Session) SetCRF(crf int) {
	s.cfg.CRF = crf
	s.recompute()
}

func (s *Session) SetSpeedPreset(preset string) {
	s.cfg.SpeedPreset = preset
	s.recompute()
}

func (s *Session) SetScaleMode(m config.ScaleMode) {
	// CustomWidth is retained across mode changes on purpose: toggling back
	// to custom restores the prior value.
	s.cfg.ScaleMode = m
	s.recompute()
}

func (s *Session) SetCustomWidth(w int) {
	s.cfg.CustomWidth = w
	s.recompute()
}

func (s *Session) SetWorkingDirectory(dir string) {
	s.cfg.WorkingDirectory = dir
	s.recompute()
}

// --- Track selection ---

func (s *Session) SetAudioTrack(index int, selected bool) {
	s.sel.SetAudio(index, selected)
	s.recompute()
}

func (s *Session) SetSubtitleTrack(index int, selected bool) {
	s.sel.SetSubtitle(index, selected)
	s.recompute()
}

// --- Presets ---

// ApplyPreset applies the catalog entry with the given id atomically and
// reports whether it exists. An unknown id changes nothing and triggers no
// recompute.
func (s *Session) ApplyPreset(id string) bool {
	p, ok := preset.ByID(id)
	if !ok {
		return false
	}
	preset.Apply(p, &s.cfg)
	s.recompute()
	return true
}

// ActivePreset returns the id of the catalog entry the current
// configuration still matches, or "" when none does.
func (s *Session) ActivePreset() string {
	for _, p := range preset.Catalog() {
		if preset.IsActive(p, &s.cfg) {
			return p.ID
		}
	}
	return ""
}

// --- External subtitles ---

// AddExternalSubtitle attaches a subtitle file and returns its opaque id.
// Attachment order is preserved and determines input ordering.
func (s *Session) AddExternalSubtitle(sourceRef, languageCode, title string) string {
	es := plan.ExternalSubtitle{
		ID:           uuid.NewString(),
		SourceRef:    sourceRef,
		LanguageCode: languageCode,
		Title:        title,
	}
	s.externals = append(s.externals, es)
	s.recompute()
	return es.ID
}

// UpdateExternalSubtitle edits the language and title of an attachment in
// place; the id and the attachment position are stable across edits.
func (s *Session) UpdateExternalSubtitle(id, languageCode, title string) bool {
	for i := range s.externals {
		if s.externals[i].ID == id {
			s.externals[i].LanguageCode = languageCode
			s.externals[i].Title = title
			s.recompute()
			return true
		}
	}
	return false
}

// RemoveExternalSubtitle detaches by id, preserving the order of the rest.
func (s *Session) RemoveExternalSubtitle(id string) bool {
	for i := range s.externals {
		if s.externals[i].ID == id {
			s.externals = append(s.externals[:i], s.externals[i+1:]...)
			s.recompute()
			return true
		}
	}
	return false
}

// ExternalSubtitles returns the attachments in order. The slice is a copy.
func (s *Session) ExternalSubtitles() []plan.ExternalSubtitle {
	out := make([]plan.ExternalSubtitle, len(s.externals))
	copy(out, s.externals)
	return out
}
