// Package media defines the typed description of a source media file and
// decodes ffprobe JSON output into it.
//
// A Descriptor is produced by the external metadata analyzer and treated as
// read-only for the lifetime of one file. Track lists are ordered by source
// stream index per track type: the position within each list IS the stream
// index used in -map arguments (zero-based, no gaps).
package media
