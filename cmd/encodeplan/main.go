// Command encodeplan generates an ffmpeg invocation, compatibility
// warnings, and an output size estimate from a saved ffprobe JSON document
// and an encoding configuration.
//
// It never runs ffmpeg or ffprobe itself: the input is the JSON a probe
// produced earlier, and the output is text on stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/backmassage/encodeplan/internal/display"
	"github.com/backmassage/encodeplan/internal/log"
	"github.com/backmassage/encodeplan/internal/media"
	"github.com/backmassage/encodeplan/internal/preset"
	"github.com/backmassage/encodeplan/internal/session"
)

// version is injected at build time via -ldflags.
var version = "1.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		return 2
	}

	if opts.showVersion {
		fmt.Println("encodeplan v" + version)
		return 0
	}
	if opts.listPresets {
		printPresets()
		return 0
	}

	log.Configure(log.Config{Level: opts.logLevel, Console: true})
	logger := log.WithComponent("cli")

	if err := opts.cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "encodeplan: %v\n", err)
		return 1
	}

	s := session.New()

	// Descriptor first: selection defaults depend on it.
	var desc *media.Descriptor
	if opts.probePath != "" {
		if opts.sourceName == "" {
			fmt.Fprintln(os.Stderr, "encodeplan: -source is required with -probe")
			return 1
		}
		desc, err = loadDescriptor(opts.probePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encodeplan: %v\n", err)
			return 1
		}
		s.SetDescriptor(desc, opts.sourceName)
	}

	if opts.preset != "" {
		if !s.ApplyPreset(opts.preset) {
			fmt.Fprintf(os.Stderr, "encodeplan: unknown preset %q (see -list-presets)\n", opts.preset)
			return 1
		}
	}
	applyConfigFlags(s, opts)

	if err := applySelection(s, desc, opts); err != nil {
		fmt.Fprintf(os.Stderr, "encodeplan: %v\n", err)
		return 1
	}

	for _, es := range opts.externalSubs {
		s.AddExternalSubtitle(es.path, es.language, es.title)
	}

	printReport(s, desc, logger)
	return 0
}

func loadDescriptor(path string) (*media.Descriptor, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read probe document: %w", err)
	}
	return media.DecodeProbeJSON(data)
}

// applyConfigFlags layers explicitly passed flags over the session config.
// When no preset was applied the flag values equal the parsed config anyway;
// when one was, only flags the user actually typed override the snapshot.
func applyConfigFlags(s *session.Session, opts *options) {
	if opts.preset == "" {
		cfg := opts.cfg
		s.SetContainer(cfg.Container)
		s.SetVideoCodec(cfg.VideoCodec)
		s.SetAudioCodec(cfg.AudioCodec)
		s.SetCRF(cfg.CRF)
		s.SetSpeedPreset(cfg.SpeedPreset)
		s.SetScaleMode(cfg.ScaleMode)
		s.SetCustomWidth(cfg.CustomWidth)
		s.SetWorkingDirectory(cfg.WorkingDirectory)
		return
	}
	if opts.set["container"] {
		s.SetContainer(opts.cfg.Container)
	}
	if opts.set["video-codec"] {
		s.SetVideoCodec(opts.cfg.VideoCodec)
	}
	if opts.set["audio-codec"] {
		s.SetAudioCodec(opts.cfg.AudioCodec)
	}
	if opts.set["crf"] {
		s.SetCRF(opts.cfg.CRF)
	}
	if opts.set["speed"] {
		s.SetSpeedPreset(opts.cfg.SpeedPreset)
	}
	if opts.set["scale"] {
		s.SetScaleMode(opts.cfg.ScaleMode)
	}
	if opts.set["width"] {
		s.SetCustomWidth(opts.cfg.CustomWidth)
	}
	if opts.set["out-dir"] {
		s.SetWorkingDirectory(opts.cfg.WorkingDirectory)
	}
}

func applySelection(s *session.Session, desc *media.Descriptor, opts *options) error {
	if desc == nil {
		return nil
	}

	audio, allAudio, err := parseTrackList(opts.audioTracks)
	if err != nil {
		return fmt.Errorf("-audio: %w", err)
	}
	if !allAudio {
		for i := range desc.AudioTracks {
			s.SetAudioTrack(i, false)
		}
		for _, i := range audio {
			s.SetAudioTrack(i, true)
		}
	}

	subs, allSubs, err := parseTrackList(opts.subtitleTracks)
	if err != nil {
		return fmt.Errorf("-sub: %w", err)
	}
	if !allSubs {
		for i := range desc.SubtitleTracks {
			s.SetSubtitleTrack(i, false)
		}
		for _, i := range subs {
			s.SetSubtitleTrack(i, true)
		}
	}
	return nil
}

func printReport(s *session.Session, desc *media.Descriptor, logger zerolog.Logger) {
	if desc != nil {
		fmt.Printf("source:   %s, %s", display.FormatDuration(desc.DurationSeconds),
			display.FormatBytes(desc.FileSizeBytes))
		if desc.OverallBitrateBps > 0 {
			fmt.Printf(", %s", display.FormatBitrateLabel(desc.OverallBitrateBps/1000))
		}
		fmt.Println()
	}

	out := s.Output()
	for _, w := range out.Warnings {
		logger.Warn().Str("track", w.TrackRef).Msg(w.Reason)
	}

	if active := s.ActivePreset(); active != "" {
		fmt.Printf("preset:   %s\n", active)
	}
	if out.Estimate.Known {
		fmt.Printf("estimate: %s\n", out.Estimate)
	} else {
		fmt.Println("estimate: unavailable (source duration unknown)")
	}
	fmt.Println()
	fmt.Println(out.Command)
}

func printPresets() {
	for _, p := range preset.Catalog() {
		fmt.Printf("%-12s %s\n", p.ID, p.Title)
		fmt.Printf("             %s\n", p.Description)
		fmt.Printf("             %s / %s / crf %d / %s / %s\n",
			p.Snapshot.Container, p.Snapshot.VideoCodec, p.Snapshot.CRF,
			p.Snapshot.AudioCodec, p.Snapshot.ScaleMode)
	}
}
