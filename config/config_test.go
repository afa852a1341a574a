package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Window != 512 || cfg.Horizon != 0 || cfg.ScaleDivisor != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidateFailsOnNonPowerOfTwoWindow(t *testing.T) {
	cfg := Default()
	cfg.Window = 500
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for window 500")
	}
}

func TestValidateFailsOnWindowShorterThanWavelet(t *testing.T) {
	cfg := Default()
	cfg.Window = 4
	cfg.Wavelet = "db4"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for a 4-sample db4 window")
	}
}

func TestValidateFailsOnUnknownNames(t *testing.T) {
	for _, mutate := range []func(*StrategyConfig){
		func(c *StrategyConfig) { c.Wavelet = "mexh" },
		func(c *StrategyConfig) { c.Mode = "antisymmetric" },
		func(c *StrategyConfig) { c.Threshold = "soft" },
	} {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", cfg)
		}
	}
}

func TestValidateFailsOnBounds(t *testing.T) {
	cfg := Default()
	cfg.Horizon = 65
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for horizon 65")
	}

	cfg = Default()
	cfg.RSIOverbought = 70.125 // more than two decimals
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for three decimals")
	}

	cfg = Default()
	cfg.RSIOverbought = 50
	cfg.RSIOversold = 50
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for equal RSI thresholds")
	}
}

func TestDecimalParamCheck(t *testing.T) {
	p := Dec("x", "-1", "1", "0.01", 2)
	if err := p.Check(0.25); err != nil {
		t.Fatalf("expected 0.25 to pass, got %v", err)
	}
	if err := p.Check(1.5); err == nil {
		t.Fatal("expected 1.5 to fail the upper bound")
	}
	if got := p.DefaultFloat(); got != 0.01 {
		t.Fatalf("expected default 0.01, got %v", got)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	body := "window: 64\nhorizon: 3\nwavelet: db2\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window != 64 || cfg.Horizon != 3 || cfg.Wavelet != "db2" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Mode != "smooth" || cfg.KnotSpacing != 64 || cfg.Log.MaxBackups != 3 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.Log.Level)
	}

	f, err := cfg.Filter()
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if f.Size() != 64 {
		t.Fatalf("expected filter size 64, got %d", f.Size())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	if err := os.WriteFile(path, []byte("window: 100\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "power of two") {
		t.Fatalf("expected power-of-two error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
