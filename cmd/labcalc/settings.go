package main

import (
	"fmt"
	"strings"

	"github.com/san-kum/labcalc/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "LABCALC"

// settingKeys maps config keys to the persistent flags that override them.
var settingKeys = map[string]string{
	"precision":  "precision",
	"rounding":   "rounding",
	"dimensions": "dimensions",
	"format":     "format",
	"data_dir":   "data",
	"log_mode":   "log-mode",
}

// loadSettings resolves the effective configuration. Later sources win:
// built-in defaults, --preset, --config file, LABCALC_* environment, flags.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	base := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		base = p
	}

	v := viper.New()
	v.SetDefault("precision", base.Precision)
	v.SetDefault("rounding", base.Rounding)
	v.SetDefault("dimensions", base.Dimensions)
	v.SetDefault("format", base.Format)
	v.SetDefault("data_dir", base.DataDir)
	v.SetDefault("log_mode", base.LogMode)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Root().PersistentFlags()
	for key, flag := range settingKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind --%s: %w", flag, err)
		}
	}

	cfg := &config.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
