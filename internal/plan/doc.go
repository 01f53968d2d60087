// Package plan synthesizes the ffmpeg invocation and the size estimate for
// one media file from the descriptor, the encoding configuration, the track
// selection, and the external subtitle list.
//
// Both entry points are pure functions:
//   - Synthesize: ordered inputs, stream maps, and per-codec flags joined
//     into a single command string plus the warning list (synth.go)
//   - Estimate: multi-factor heuristic output size prediction (estimate.go)
//
// The scale-mode → target-dimensions rule lives in exactly one place
// (ScaleTarget, scale.go) and is consumed by both, so the estimate can never
// drift from the command it describes. Subtitle/container admissibility is
// checked by SubtitleAdmissible (subtitle.go); conflicts demote to warnings,
// never to errors.
package plan
