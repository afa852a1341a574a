package strategy

import (
	"math"
	"testing"

	"github.com/evdnx/gowave/config"
	"github.com/evdnx/gowave/testutils"
	"github.com/evdnx/gowave/types"
)

// barsFromCloses wraps closes into bars with a one-unit range and constant
// volume.
func barsFromCloses(closes []float64) []types.Bar {
	out := make([]types.Bar, len(closes))
	for i, p := range closes {
		out[i] = types.Bar{Open: p, High: p + 0.5, Low: p - 0.5, Close: p, Volume: 1000}
	}
	return out
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func wave(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := float64(i)
		out[i] = 100 + 0.05*x + 3*math.Sin(x/4)
	}
	return out
}

// buildConfig returns the defaults with a short window so tests warm up fast.
func buildConfig() config.StrategyConfig {
	cfg := config.Default()
	cfg.Window = 8
	cfg.Log = config.LogConfig{Level: "debug"}
	return cfg
}

// buildDWT creates a strategy with a mock logger. Every test uses its own key
// so the package-level metrics do not bleed between tests.
func buildDWT(t *testing.T, pair string, cfg config.StrategyConfig) (*DWTPredict, *testutils.MockLogger) {
	t.Helper()
	log := testutils.NewMockLogger()
	s, err := NewDWTPredict(types.Key{Pair: pair, Timeframe: "1m"}, cfg, log)
	if err != nil {
		t.Fatalf("NewDWTPredict failed: %v", err)
	}
	return s, log
}

func feedBars(s *DWTPredict, bars []types.Bar) []types.Indicators {
	rows := make([]types.Indicators, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, s.ProcessBar(b))
	}
	return rows
}
