package strategy

import (
	"math"

	"github.com/evdnx/goti"
	"github.com/evdnx/gowave/config"
	"github.com/evdnx/gowave/filter"
	"github.com/evdnx/gowave/logger"
	"github.com/evdnx/gowave/metrics"
	"github.com/evdnx/gowave/types"
)

// BaseStrategy bundles the common dependencies and helpers.
type BaseStrategy struct {
	Log   logger.Logger
	Cfg   config.StrategyConfig
	Suite *goti.IndicatorSuite
	Key   types.Key

	stream *filter.Stream
	bars   int
}

// NewBaseStrategy validates the config, creates the indicator suite (using
// the supplied factory) and the wavelet filter stream. Concrete plugins call
// this from their own constructors.
func NewBaseStrategy(key types.Key, cfg config.StrategyConfig,
	suiteFactory func() (*goti.IndicatorSuite, error),
	log logger.Logger) (*BaseStrategy, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := cfg.Filter()
	if err != nil {
		return nil, err
	}
	suite, err := suiteFactory()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BaseStrategy{
		Log:    log,
		Cfg:    cfg,
		Suite:  suite,
		Key:    key,
		stream: filter.NewStream(f),
	}, nil
}

// defaultSuiteFactory builds a goti suite with the configured oscillator
// thresholds.
func defaultSuiteFactory(cfg config.StrategyConfig) func() (*goti.IndicatorSuite, error) {
	return func() (*goti.IndicatorSuite, error) {
		ic := goti.DefaultConfig()
		ic.RSIOverbought = cfg.RSIOverbought
		ic.RSIOversold = cfg.RSIOversold
		ic.MFIOverbought = cfg.MFIOverbought
		ic.MFIOversold = cfg.MFIOversold
		return goti.NewIndicatorSuiteWithConfig(ic)
	}
}

func (b *BaseStrategy) series() string { return b.Key.String() }

// recordPrice pushes a close into the filter window.
func (b *BaseStrategy) recordPrice(price float64) {
	b.stream.Push(price)
}

// hasHistory reports whether the filter window is warmed up.
func (b *BaseStrategy) hasHistory() bool {
	return b.stream.Ready()
}

// feedSuite forwards the bar to the companion indicators; a rejected bar is
// logged and otherwise ignored.
func (b *BaseStrategy) feedSuite(bar types.Bar) {
	if err := b.Suite.Add(bar.High, bar.Low, bar.Close, bar.Volume); err != nil {
		b.Log.Warn("suite_add_error",
			logger.String("series", b.series()),
			logger.Int("bar", b.bars),
			logger.Err(err),
		)
	}
}

// companions returns RSI and MFI, falling back to the neutral 50 while the
// suite warms up.
func (b *BaseStrategy) companions() (rsi, mfi float64) {
	rsi, err := b.Suite.GetRSI().Calculate()
	if err != nil || math.IsNaN(rsi) {
		rsi = 50
	}
	mfi, err = b.Suite.GetMFI().Calculate()
	if err != nil || math.IsNaN(mfi) {
		mfi = 50
	}
	return rsi, mfi
}

// fallback records a position that produced no value or a degraded one.
func (b *BaseStrategy) fallback(reason string) {
	metrics.FilterFallbacks.WithLabelValues(b.series(), reason).Inc()
}

func validBar(bar types.Bar) bool {
	return !math.IsNaN(bar.Close) && !math.IsInf(bar.Close, 0)
}
