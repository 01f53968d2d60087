package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/encodeplan/internal/config"
	"github.com/backmassage/encodeplan/internal/media"
)

// nvencPreset is the fixed speed preset for the hardware encoders. Speed
// selection is not exposed for that family.
const nvencPreset = "p4"

// Synthesize constructs the complete ffmpeg command string for one file,
// plus the warnings for any tracks demoted along the way. It is pure and
// deterministic: identical inputs yield a byte-identical command.
//
// Argument order is load-bearing — stream maps and output subtitle indices
// are positional. The sections run in fixed order: inputs, video map, audio
// maps, embedded subtitle maps (admissibility-checked), external subtitle
// maps with metadata, video codec + quality flags, scale filter, audio
// flags, subtitle codec, container flags, output path. Every path argument
// is double-quoted.
//
// The function never fails for a structurally valid configuration; cfg is
// normalized before use so out-of-range numerics are clamped, not
// propagated.
func Synthesize(desc *media.Descriptor, cfg config.Config, sel config.Selection,
	externals []ExternalSubtitle, sourceFileName string) Result {

	cfg.Normalize()

	args := make([]string, 0, 48)
	var warnings []Warning

	// --- Inputs: primary media first, then externals in attachment order ---
	args = append(args, "ffmpeg", "-i", quote(sourceFileName))
	for _, es := range externals {
		args = append(args, "-i", quote(es.SourceRef))
	}

	// --- Video map: stream 0 of the primary input, always ---
	args = append(args, "-map", "0:v:0")

	// --- Audio maps: ascending selected indices, skipped entirely when muted ---
	if cfg.AudioCodec != config.AudioNone && desc != nil {
		for _, i := range sel.AudioIndices() {
			if i >= len(desc.AudioTracks) {
				continue
			}
			args = append(args, "-map", fmt.Sprintf("0:a:%d", i))
		}
	}

	// --- Embedded subtitle maps: admissible tracks only ---
	// outputSubtitleIndex counts mapped subtitle streams; demoted tracks
	// consume no output slot.
	outputSubtitleIndex := 0
	if desc != nil {
		for _, i := range sel.SubtitleIndices() {
			if i >= len(desc.SubtitleTracks) {
				continue
			}
			ok, w := SubtitleAdmissible(desc.SubtitleTracks[i], cfg.Container)
			if !ok {
				warnings = append(warnings, w)
				continue
			}
			args = append(args, "-map", fmt.Sprintf("0:s:%d", i))
			outputSubtitleIndex++
		}
	}

	// --- External subtitle maps: one single-stream input each, with
	// language/title metadata on the current output subtitle slot ---
	for inputIdx, es := range externals {
		args = append(args, "-map", fmt.Sprintf("%d:0", inputIdx+1))
		if es.LanguageCode != "" {
			args = append(args,
				fmt.Sprintf("-metadata:s:s:%d", outputSubtitleIndex),
				"language="+es.LanguageCode)
		}
		if es.Title != "" {
			args = append(args,
				fmt.Sprintf("-metadata:s:s:%d", outputSubtitleIndex),
				"title="+quote(es.Title))
		}
		outputSubtitleIndex++
	}

	// --- Video codec ---
	args = append(args, "-c:v", string(cfg.VideoCodec))
	// All supported encoders are H.264/HEVC family: force 4:2:0 planar for
	// playback compatibility.
	args = append(args, "-pix_fmt", "yuv420p")
	if cfg.VideoCodec.IsHEVC() && cfg.Container.IsMP4Family() {
		args = append(args, "-tag:v", "hvc1")
	}

	// --- Quality ---
	if cfg.VideoCodec.IsHardware() {
		args = append(args, "-cq", strconv.Itoa(cfg.CRF), "-preset", nvencPreset)
	} else {
		args = append(args, "-crf", strconv.Itoa(cfg.CRF), "-preset", cfg.SpeedPreset)
	}

	// --- Scale filter: shared rule with the estimator ---
	if desc != nil {
		srcW, srcH := desc.Resolution()
		if w, h, scaled := ScaleTarget(srcW, srcH, cfg.ScaleMode, cfg.CustomWidth); scaled {
			args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", w, h))
		}
	}

	// --- Audio flags ---
	switch cfg.AudioCodec {
	case config.AudioNone:
		args = append(args, "-an")
	case config.AudioCopy:
		args = append(args, "-c:a", "copy")
	default:
		args = append(args, "-c:a", string(cfg.AudioCodec), "-b:a", cfg.AudioCodec.Bitrate())
	}

	// --- Subtitle codec: only when at least one subtitle stream is mapped ---
	if outputSubtitleIndex > 0 {
		if cfg.Container.IsMP4Family() {
			args = append(args, "-c:s", "mov_text")
		} else {
			args = append(args, "-c:s", "copy")
		}
	}

	// --- Container finalization: front-load the index for the MP4 family ---
	if cfg.Container.IsMP4Family() {
		args = append(args, "-movflags", "+faststart")
	}

	// --- Output path ---
	args = append(args, quote(OutputPath(cfg.WorkingDirectory, sourceFileName, cfg.Container)))

	return Result{
		Command:  strings.Join(args, " "),
		Warnings: warnings,
	}
}

// OutputPath derives the output file location: the working directory
// (trimmed of trailing separators, separator style inferred from the
// presence of a backslash) joined with <sourceBaseName>_compressed.<ext>,
// or the bare filename when no working directory is set.
func OutputPath(workingDir, sourceFileName string, container config.Container) string {
	name := baseName(sourceFileName) + "_compressed." + container.Extension()

	workingDir = strings.TrimRight(workingDir, "/\\")
	if workingDir == "" {
		return name
	}

	sep := "/"
	if strings.Contains(workingDir, "\\") {
		sep = "\\"
	}
	return workingDir + sep + name
}

// baseName strips any directory prefix (either separator style) and the
// final extension from a file name.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndex(path, "."); i > 0 {
		path = path[:i]
	}
	return path
}

func quote(s string) string {
	return `"` + s + `"`
}
