package strategy

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gowave/metrics"
	"github.com/evdnx/gowave/types"
)

func TestNewDWTPredictRejectsInvalidConfig(t *testing.T) {
	cfg := buildConfig()
	cfg.Window = 12
	if _, err := NewDWTPredict(types.Key{Pair: "BAD", Timeframe: "1m"}, cfg, nil); err == nil {
		t.Fatal("expected error for a window that is not a power of two")
	}
}

func TestDWTPredictWarmup(t *testing.T) {
	s, _ := buildDWT(t, "WARM", buildConfig())
	rows := feedBars(s, barsFromCloses(ramp(10, 100, 1)))

	for i := 0; i < 7; i++ {
		r := rows[i]
		assert.Equal(t, i, r.Index)
		assert.False(t, r.Ready, "bar %d should still be warming up", i)
		assert.True(t, math.IsNaN(r.Predict))
		assert.True(t, math.IsNaN(r.PredictDiff))
		assert.GreaterOrEqual(t, r.RSI, 0.0)
		assert.LessOrEqual(t, r.RSI, 100.0)
	}
	for i := 7; i < 10; i++ {
		assert.True(t, rows[i].Ready, "bar %d should be ready", i)
	}
	assert.Equal(t, 10, s.Bars())

	key := "WARM@1m"
	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.FilterFallbacks.WithLabelValues(key, metrics.ReasonWarmup)))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.FilterEvaluations.WithLabelValues(key)))
	assert.Equal(t, 10.0, testutil.ToFloat64(metrics.BarsProcessed.WithLabelValues(key)))
}

func TestDWTPredictRampColumns(t *testing.T) {
	s, _ := buildDWT(t, "RAMP", buildConfig())
	rows := feedBars(s, barsFromCloses(ramp(20, 100, 1)))

	last := rows[19]
	require.True(t, last.Ready)
	assert.InDelta(t, last.Close, last.Predict, 1e-6)
	assert.Equal(t, last.Predict, last.Forecast)
	// window {112..119}: mean 115.5, population std sqrt(5.25)
	assert.InDelta(t, 3.5/math.Sqrt(5.25), last.Scaled, 1e-9)
	assert.InDelta(t, 0.0, last.PredictDiff, 1e-6)

	assert.Equal(t, last, s.Last())
	assert.InDelta(t, last.Predict, testutil.ToFloat64(metrics.PredictValue.WithLabelValues("RAMP@1m")), 1e-12)
}

func TestDWTPredictForecastHorizon(t *testing.T) {
	cfg := buildConfig()
	cfg.Horizon = 3
	s, log := buildDWT(t, "HORIZON", cfg)
	rows := feedBars(s, barsFromCloses(ramp(12, 50, 0.5)))

	last := rows[11]
	require.True(t, last.Ready)
	assert.InDelta(t, 55.5, last.Predict, 1e-6)
	assert.InDelta(t, 57.0, last.Forecast, 1e-4)
	assert.Equal(t, 0, log.Count("forecast_fallback"))
}

func TestDWTPredictBadBarIsSkipped(t *testing.T) {
	s, log := buildDWT(t, "BADBAR", buildConfig())
	bars := barsFromCloses(wave(30))
	bars[15].Close = math.NaN()

	rows := feedBars(s, bars)
	assert.False(t, rows[15].Ready)
	assert.True(t, math.IsNaN(rows[15].Predict))
	assert.Equal(t, 1, log.Count("bad_bar"))
	series, ok := log.FieldString("bad_bar", "series")
	require.True(t, ok)
	assert.Equal(t, "BADBAR@1m", series)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FilterFallbacks.WithLabelValues("BADBAR@1m", metrics.ReasonBadBar)))

	// The bad bar never enters the window, so the next bar is still valid.
	assert.True(t, rows[16].Ready)
	assert.False(t, math.IsNaN(rows[16].Predict))
	assert.Equal(t, 29, rows[29].Index)
}

func TestDWTPredictMatchesBatchFilter(t *testing.T) {
	cfg := buildConfig()
	s, _ := buildDWT(t, "BATCH", cfg)
	closes := wave(40)
	rows := feedBars(s, barsFromCloses(closes))

	f, err := cfg.Filter()
	require.NoError(t, err)
	want := f.ApplyAll(closes)
	for i := 7; i < len(closes); i++ {
		if rows[i].Predict != want[i] {
			t.Fatalf("bar %d: streaming %v, batch %v", i, rows[i].Predict, want[i])
		}
	}
}

func TestDWTPredictForecastFollowsOscillation(t *testing.T) {
	cfg := buildConfig()
	cfg.Window = 512
	cfg.Horizon = 1
	s, log := buildDWT(t, "OSC", cfg)
	closes := make([]float64, 512)
	for i := range closes {
		x := float64(i)
		closes[i] = 100 + 0.01*x + 5*math.Sin(x/10)
	}
	rows := feedBars(s, barsFromCloses(closes))

	last := rows[511]
	require.True(t, last.Ready)
	slope := 0.01 + 0.5*math.Cos(511.0/10)
	assert.InDelta(t, last.Predict+slope, last.Forecast, 0.3)
	assert.Equal(t, 0, log.Count("forecast_fallback"))
}
