package config

import "sort"

var Presets = map[string]*Config{
	"default": {
		GridSize: DefaultGridSize, Dz: DefaultDz, FPS: DefaultFPS,
		ProgressInterval: DefaultProgressInterval, MinChunk: DefaultMinChunk,
	},
	"medium": {
		GridSize: 20000, Dz: DefaultDz, FPS: DefaultFPS,
		ProgressInterval: DefaultProgressInterval, MinChunk: DefaultMinChunk,
	},
	"small": {
		GridSize: 2000, Dz: DefaultDz, FPS: 30,
		ProgressInterval: DefaultProgressInterval, MinChunk: 256,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
