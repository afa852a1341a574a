package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/evdnx/gowave/filter"
	"github.com/evdnx/gowave/logger"
	"github.com/evdnx/gowave/wavelet"
	"gopkg.in/yaml.v3"
)

// StrategyConfig holds all tunable parameters of the wavelet indicator
// plugin. Bounds and defaults live in the parameter declarations in
// params.go.
type StrategyConfig struct {
	// Filter
	Window      int    `yaml:"window"`      // default 512, power of two
	Horizon     int    `yaml:"horizon"`     // default 0 = no extrapolation
	Wavelet     string `yaml:"wavelet"`     // default "haar"
	Mode        string `yaml:"mode"`        // default "smooth"
	Threshold   string `yaml:"threshold"`   // "std" (default) or "universal"
	KnotSpacing int    `yaml:"knotSpacing"` // default 64

	// ScaleDivisor divides the scaled prediction gap (default 10).
	ScaleDivisor float64 `yaml:"scaleDivisor"`

	// Companion indicator thresholds
	RSIOverbought float64 `yaml:"rsiOverbought"` // default 70
	RSIOversold   float64 `yaml:"rsiOversold"`   // default 30
	MFIOverbought float64 `yaml:"mfiOverbought"` // default 80
	MFIOversold   float64 `yaml:"mfiOversold"`   // default 20

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// Options converts the section into logger options.
func (l LogConfig) Options() logger.Options {
	return logger.Options{
		Level:      l.Level,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
	}
}

// Default returns the configuration built from every parameter's default.
func Default() StrategyConfig {
	return StrategyConfig{
		Window:        WindowParam.Default,
		Horizon:       HorizonParam.Default,
		Wavelet:       "haar",
		Mode:          "smooth",
		Threshold:     "std",
		KnotSpacing:   KnotSpacingParam.Default,
		ScaleDivisor:  ScaleDivisorParam.DefaultFloat(),
		RSIOverbought: RSIOverboughtParam.DefaultFloat(),
		RSIOversold:   RSIOversoldParam.DefaultFloat(),
		MFIOverbought: MFIOverboughtParam.DefaultFloat(),
		MFIOversold:   MFIOversoldParam.DefaultFloat(),
		Log:           LogConfig{Level: "info", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 14},
	}
}

// Validate checks that all fields are within their declared bounds.
// It returns the first encountered error, allowing the caller to surface a
// clear configuration problem before any bar is processed.
func (c *StrategyConfig) Validate() error {
	if err := WindowParam.Check(c.Window); err != nil {
		return err
	}
	// The host warms up for Window bars and expects a power of two.
	if c.Window&(c.Window-1) != 0 {
		return fmt.Errorf("window (%d) must be a power of two", c.Window)
	}
	if err := HorizonParam.Check(c.Horizon); err != nil {
		return err
	}
	if err := KnotSpacingParam.Check(c.KnotSpacing); err != nil {
		return err
	}
	w, err := wavelet.Lookup(c.Wavelet)
	if err != nil {
		return err
	}
	if c.Window < w.Len() {
		return fmt.Errorf("window (%d) is shorter than the %s filter (%d taps)", c.Window, w.Name, w.Len())
	}
	if _, err := wavelet.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := wavelet.ParsePolicy(c.Threshold); err != nil {
		return err
	}
	for _, chk := range []struct {
		p DecimalParam
		v float64
	}{
		{ScaleDivisorParam, c.ScaleDivisor},
		{RSIOverboughtParam, c.RSIOverbought},
		{RSIOversoldParam, c.RSIOversold},
		{MFIOverboughtParam, c.MFIOverbought},
		{MFIOversoldParam, c.MFIOversold},
	} {
		if err := chk.p.Check(chk.v); err != nil {
			return err
		}
	}
	if c.RSIOverbought == c.RSIOversold {
		return errors.New("RSIOverbought and RSIOversold cannot be equal")
	}
	if c.MFIOverbought == c.MFIOversold {
		return errors.New("MFIOverbought and MFIOversold cannot be equal")
	}
	return nil
}

// Filter builds the wavelet filter described by the configuration.
func (c StrategyConfig) Filter() (*filter.Filter, error) {
	w, err := wavelet.Lookup(c.Wavelet)
	if err != nil {
		return nil, err
	}
	mode, err := wavelet.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	policy, err := wavelet.ParsePolicy(c.Threshold)
	if err != nil {
		return nil, err
	}
	return filter.New(c.Window,
		filter.WithWavelet(w),
		filter.WithMode(mode),
		filter.WithPolicy(policy),
		filter.WithKnotSpacing(c.KnotSpacing),
	)
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (StrategyConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return StrategyConfig{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return StrategyConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return StrategyConfig{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
