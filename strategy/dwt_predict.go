package strategy

import (
	"errors"
	"math"

	"github.com/evdnx/gowave/config"
	"github.com/evdnx/gowave/filter"
	"github.com/evdnx/gowave/logger"
	"github.com/evdnx/gowave/metrics"
	"github.com/evdnx/gowave/scaler"
	"github.com/evdnx/gowave/types"
)

// DWTPredict computes the wavelet prediction columns for one series, one bar
// at a time. It only produces indicators; entry and exit decisions belong to
// the host.
type DWTPredict struct {
	*BaseStrategy
	last types.Indicators
}

// NewDWTPredict builds the suite and filter for key and injects a logger.
func NewDWTPredict(key types.Key, cfg config.StrategyConfig, log logger.Logger) (*DWTPredict, error) {
	base, err := NewBaseStrategy(key, cfg, defaultSuiteFactory(cfg), log)
	if err != nil {
		return nil, err
	}
	return &DWTPredict{BaseStrategy: base}, nil
}

// ProcessBar feeds one bar and returns its indicator row. Rows produced
// during warm-up, or for a window the filter rejects, have Ready false; the
// next bar is unaffected.
func (d *DWTPredict) ProcessBar(bar types.Bar) types.Indicators {
	nan := math.NaN()
	row := types.Indicators{
		Index:       d.bars,
		Close:       bar.Close,
		Predict:     nan,
		Forecast:    nan,
		Scaled:      nan,
		PredictDiff: nan,
		RSI:         nan,
		MFI:         nan,
	}
	d.bars++
	metrics.BarsProcessed.WithLabelValues(d.series()).Inc()

	if !validBar(bar) {
		d.Log.Warn("bad_bar",
			logger.String("series", d.series()),
			logger.Int("bar", row.Index),
			logger.Float64("close", bar.Close),
		)
		d.fallback(metrics.ReasonBadBar)
		d.last = row
		return row
	}

	d.feedSuite(bar)
	row.RSI, row.MFI = d.companions()
	d.recordPrice(bar.Close)

	if !d.hasHistory() {
		d.fallback(metrics.ReasonWarmup)
		d.last = row
		return row
	}

	est, err := d.stream.Estimate(d.Cfg.Horizon)
	metrics.FilterEvaluations.WithLabelValues(d.series()).Inc()
	if err != nil {
		reason := metrics.ReasonNumeric
		if errors.Is(err, filter.ErrInsufficientData) {
			reason = metrics.ReasonWarmup
		}
		d.Log.Warn("filter_error",
			logger.String("series", d.series()),
			logger.Int("bar", row.Index),
			logger.Err(err),
		)
		d.fallback(reason)
		d.last = row
		return row
	}
	if est.Fallback != nil {
		d.Log.Warn("forecast_fallback",
			logger.String("series", d.series()),
			logger.Int("horizon", d.Cfg.Horizon),
			logger.Err(est.Fallback),
		)
		d.fallback(metrics.ReasonExtrapolation)
	}

	mean, std := scaler.Stats(d.stream.Values())
	row.Predict = est.Model
	row.Forecast = est.Forecast
	row.Scaled = scaler.Scale(bar.Close, mean, std)
	row.PredictDiff = (scaler.Scale(est.Model, mean, std) - row.Scaled) / d.Cfg.ScaleDivisor
	row.Ready = true

	metrics.PredictValue.WithLabelValues(d.series()).Set(est.Model)
	d.last = row
	return row
}

// Last returns the row produced by the most recent ProcessBar call.
func (d *DWTPredict) Last() types.Indicators { return d.last }

// Bars returns the number of bars processed so far.
func (d *DWTPredict) Bars() int { return d.bars }
