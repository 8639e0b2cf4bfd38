package config

import (
	"fmt"
	"os"

	"github.com/san-kum/labcalc/internal/decimal"
	"github.com/san-kum/labcalc/internal/physnum"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPrecision  = decimal.DefaultPrecision
	DefaultRounding   = "half_even"
	DefaultDimensions = "strict"
	DefaultFormat     = "plain"
	DefaultDataDir    = "runs"
	DefaultLogMode    = "dev"
)

type Config struct {
	Precision  int    `yaml:"precision" mapstructure:"precision"`
	Rounding   string `yaml:"rounding" mapstructure:"rounding"`
	Dimensions string `yaml:"dimensions" mapstructure:"dimensions"`
	Format     string `yaml:"format" mapstructure:"format"`
	DataDir    string `yaml:"data_dir" mapstructure:"data_dir"`
	LogMode    string `yaml:"log_mode" mapstructure:"log_mode"`
}

func DefaultConfig() *Config {
	return &Config{
		Precision:  DefaultPrecision,
		Rounding:   DefaultRounding,
		Dimensions: DefaultDimensions,
		Format:     DefaultFormat,
		DataDir:    DefaultDataDir,
		LogMode:    DefaultLogMode,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field without touching process state.
func (c *Config) Validate() error {
	if _, err := c.DecimalContext(); err != nil {
		return err
	}
	if _, err := physnum.ParseDimensionPolicy(c.Dimensions); err != nil {
		return err
	}
	if _, err := physnum.ParseFormatMode(c.Format); err != nil {
		return err
	}
	switch c.LogMode {
	case "", "dev", "debug", "prod", "off":
	default:
		return fmt.Errorf("config: unknown log mode %q", c.LogMode)
	}
	return nil
}

func (c *Config) DecimalContext() (decimal.Context, error) {
	r, err := decimal.ParseRounding(c.Rounding)
	if err != nil {
		return decimal.Context{}, err
	}
	ctx := decimal.Context{Precision: c.Precision, Rounding: r}
	if err := ctx.Validate(); err != nil {
		return decimal.Context{}, err
	}
	return ctx, nil
}

func (c *Config) FormatMode() physnum.FormatMode {
	m, _ := physnum.ParseFormatMode(c.Format)
	return m
}

// Apply installs the decimal context and dimension policy process-wide.
func (c *Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}
	ctx, _ := c.DecimalContext()
	if err := decimal.SetContext(ctx); err != nil {
		return err
	}
	p, _ := physnum.ParseDimensionPolicy(c.Dimensions)
	physnum.SetDimensionPolicy(p)
	return nil
}
