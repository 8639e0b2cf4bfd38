package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"legacy": {
		Precision: DefaultPrecision, Rounding: DefaultRounding, Dimensions: "legacy",
		Format: DefaultFormat, DataDir: DefaultDataDir, LogMode: DefaultLogMode,
	},
	"report": {
		Precision: DefaultPrecision, Rounding: DefaultRounding, Dimensions: DefaultDimensions,
		Format: "macro", DataDir: DefaultDataDir, LogMode: "prod",
	},
	"quick": {
		Precision: 6, Rounding: "half_up", Dimensions: DefaultDimensions,
		Format: DefaultFormat, DataDir: DefaultDataDir, LogMode: DefaultLogMode,
	},
	"high": {
		Precision: 50, Rounding: DefaultRounding, Dimensions: DefaultDimensions,
		Format: DefaultFormat, DataDir: DefaultDataDir, LogMode: DefaultLogMode,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
