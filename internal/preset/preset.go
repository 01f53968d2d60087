// Package preset ships the named configuration snapshots. The catalog is a
// versioned YAML document embedded at build time: adding or removing a
// preset is a data change, not a code change.
package preset

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/encodeplan/internal/config"
)

//go:embed presets.yaml
var presetsYAML []byte

// Snapshot is the exact set of configuration fields a preset overwrites.
// CustomWidth, WorkingDirectory, and the track selection are deliberately
// not part of it.
type Snapshot struct {
	Container   config.Container  `yaml:"container"`
	VideoCodec  config.VideoCodec `yaml:"video_codec"`
	CRF         int               `yaml:"crf"`
	SpeedPreset string            `yaml:"speed_preset"`
	AudioCodec  config.AudioCodec `yaml:"audio_codec"`
	ScaleMode   config.ScaleMode  `yaml:"scale_mode"`
}

// Preset is one named configuration snapshot.
type Preset struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Snapshot    Snapshot `yaml:"snapshot"`
}

type catalogFile struct {
	Version int      `yaml:"version"`
	Presets []Preset `yaml:"presets"`
}

var (
	loadOnce sync.Once
	catalog  []Preset
	loadErr  error
)

func load() {
	var f catalogFile
	if err := yaml.Unmarshal(presetsYAML, &f); err != nil {
		loadErr = fmt.Errorf("decode embedded preset catalog: %w", err)
		return
	}
	catalog = f.Presets
}

// Catalog returns the ordered preset list. The returned slice is a copy;
// callers cannot mutate the embedded table.
func Catalog() []Preset {
	loadOnce.Do(load)
	if loadErr != nil {
		// The embedded document is part of the build; a decode failure is a
		// packaging bug, not a runtime condition.
		panic(loadErr)
	}
	out := make([]Preset, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks a preset up by its id.
func ByID(id string) (Preset, bool) {
	for _, p := range Catalog() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Apply overwrites exactly the snapshot fields on cfg, atomically. Custom
// width, working directory, and track selection are untouched, so applying
// a preset never loses per-file state.
func Apply(p Preset, cfg *config.Config) {
	cfg.Container = p.Snapshot.Container
	cfg.VideoCodec = p.Snapshot.VideoCodec
	cfg.CRF = p.Snapshot.CRF
	cfg.SpeedPreset = p.Snapshot.SpeedPreset
	cfg.AudioCodec = p.Snapshot.AudioCodec
	cfg.ScaleMode = p.Snapshot.ScaleMode
}

// IsActive reports whether cfg still matches the preset. The speed preset is
// excluded from the comparison on purpose: encode speed affects time, not
// output correctness, so nudging only speed keeps the preset indicator lit.
func IsActive(p Preset, cfg *config.Config) bool {
	return cfg.Container == p.Snapshot.Container &&
		cfg.VideoCodec == p.Snapshot.VideoCodec &&
		cfg.CRF == p.Snapshot.CRF &&
		cfg.AudioCodec == p.Snapshot.AudioCodec &&
		cfg.ScaleMode == p.Snapshot.ScaleMode
}
