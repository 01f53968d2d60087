package main

// CLI flag parsing. Flags are grouped into input, encoding, selection, and
// utility. A preset (if any) is applied first; explicitly passed flags then
// override individual snapshot fields, mirroring how the interactive flow
// layers user tweaks on top of an applied preset.

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/encodeplan/internal/config"
)

// options holds everything parsed from the command line.
type options struct {
	probePath  string // ffprobe JSON document ("-" for stdin)
	sourceName string // original media file name the command refers to

	preset string
	cfg    config.Config
	// set records which config flags were passed explicitly, so they can
	// override an applied preset.
	set map[string]bool

	audioTracks    string // comma-separated indices, "all" or "none"
	subtitleTracks string
	externalSubs   externalSubFlags

	listPresets bool
	showVersion bool
	logLevel    string
}

// externalSubFlags collects repeatable -add-sub values of the form
// "path[,language[,title]]".
type externalSubFlags []externalSubSpec

type externalSubSpec struct {
	path, language, title string
}

func (e *externalSubFlags) String() string {
	parts := make([]string, len(*e))
	for i, s := range *e {
		parts[i] = s.path
	}
	return strings.Join(parts, ";")
}

func (e *externalSubFlags) Set(value string) error {
	fields := strings.SplitN(value, ",", 3)
	if fields[0] == "" {
		return fmt.Errorf("empty subtitle path in %q", value)
	}
	spec := externalSubSpec{path: fields[0]}
	if len(fields) > 1 {
		spec.language = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		spec.title = strings.TrimSpace(fields[2])
	}
	*e = append(*e, spec)
	return nil
}

// parseFlags parses args (without the program name) into options.
func parseFlags(args []string) (*options, error) {
	opts := &options{cfg: config.DefaultConfig(), set: map[string]bool{}}

	fs := flag.NewFlagSet("encodeplan", flag.ContinueOnError)

	// Input.
	fs.StringVar(&opts.probePath, "probe", "", "ffprobe JSON document describing the source ('-' for stdin)")
	fs.StringVar(&opts.sourceName, "source", "", "source media file name the generated command refers to")

	// Encoding.
	fs.StringVar(&opts.preset, "preset", "", "apply a preset from the catalog before other flags")
	container := fs.String("container", string(opts.cfg.Container), "output container: mp4, mkv, mov")
	videoCodec := fs.String("video-codec", string(opts.cfg.VideoCodec), "video encoder: libx264, libx265, h264_nvenc, hevc_nvenc")
	audioCodec := fs.String("audio-codec", string(opts.cfg.AudioCodec), "audio handling: copy, none, aac, libopus")
	crf := fs.Int("crf", opts.cfg.CRF, "constant rate factor (0-51, lower is higher quality)")
	speed := fs.String("speed", opts.cfg.SpeedPreset, "software encoder speed preset")
	scale := fs.String("scale", string(opts.cfg.ScaleMode), "scale mode: original, 720p, 1080p, custom")
	width := fs.Int("width", opts.cfg.CustomWidth, "target width for -scale custom")
	outDir := fs.String("out-dir", "", "working directory for the output file")

	// Selection.
	fs.StringVar(&opts.audioTracks, "audio", "all", "audio tracks to keep: 'all', 'none', or comma-separated indices")
	fs.StringVar(&opts.subtitleTracks, "sub", "all", "subtitle tracks to keep: 'all', 'none', or comma-separated indices")
	fs.Var(&opts.externalSubs, "add-sub", "attach an external subtitle: path[,language[,title]] (repeatable)")

	// Utility.
	fs.BoolVar(&opts.listPresets, "list-presets", false, "print the preset catalog and exit")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.cfg.Container = config.Container(*container)
	opts.cfg.VideoCodec = config.VideoCodec(*videoCodec)
	opts.cfg.AudioCodec = config.AudioCodec(*audioCodec)
	opts.cfg.CRF = *crf
	opts.cfg.SpeedPreset = *speed
	opts.cfg.ScaleMode = config.ScaleMode(*scale)
	opts.cfg.CustomWidth = *width
	opts.cfg.WorkingDirectory = *outDir

	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	return opts, nil
}

// parseTrackList turns "all" / "none" / "0,2,3" into selection instructions.
// Returns (indices, selectAll).
func parseTrackList(value string) ([]int, bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return nil, true, nil
	case "none":
		return nil, false, nil
	}
	var indices []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, false, fmt.Errorf("invalid track index %q", part)
		}
		indices = append(indices, n)
	}
	return indices, false, nil
}
