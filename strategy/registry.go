package strategy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/evdnx/gowave/config"
	"github.com/evdnx/gowave/logger"
	"github.com/evdnx/gowave/types"
)

// Registry owns one DWTPredict per series key. Each strategy keeps its own
// window, so series never share filter state.
type Registry struct {
	mu     sync.Mutex
	cfg    config.StrategyConfig
	log    logger.Logger
	series map[types.Key]*DWTPredict
}

// NewRegistry validates cfg once up front; strategies are created lazily.
func NewRegistry(cfg config.StrategyConfig, log logger.Logger) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		cfg:    cfg,
		log:    log,
		series: make(map[types.Key]*DWTPredict),
	}, nil
}

// Get returns the strategy for key, creating it on first use.
func (r *Registry) Get(key types.Key) (*DWTPredict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.series[key]; ok {
		return s, nil
	}
	s, err := NewDWTPredict(key, r.cfg, r.log)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", key, err)
	}
	r.series[key] = s
	return s, nil
}

// Keys lists the registered series in a stable order.
func (r *Registry) Keys() []types.Key {
	r.mu.Lock()
	keys := make([]types.Key, 0, len(r.series))
	for k := range r.series {
		keys = append(keys, k)
	}
	r.mu.Unlock()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Backfill replays historical bars for several series concurrently, at most
// workers at a time. Bars of one series are processed in order by a single
// goroutine. A cancelled context stops every series at its next bar; the rows
// produced so far are still returned.
func (r *Registry) Backfill(ctx context.Context, feeds map[types.Key][]types.Bar, workers int) (map[types.Key][]types.Indicators, error) {
	if workers < 1 {
		workers = 1
	}
	var (
		mu   sync.Mutex
		out  = make(map[types.Key][]types.Indicators, len(feeds))
		errs []error
	)
	p := pool.New().WithMaxGoroutines(workers)
	for key, bars := range feeds {
		s, err := r.Get(key)
		if err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			continue
		}
		p.Go(func() {
			rows := make([]types.Indicators, 0, len(bars))
			var runErr error
			for _, bar := range bars {
				if err := ctx.Err(); err != nil {
					runErr = fmt.Errorf("backfill %s: %w", key, err)
					break
				}
				rows = append(rows, s.ProcessBar(bar))
			}
			mu.Lock()
			out[key] = rows
			if runErr != nil {
				errs = append(errs, runErr)
			}
			mu.Unlock()
		})
	}
	p.Wait()

	r.log.Info("backfill_done",
		logger.Int("series", len(feeds)),
		logger.Int("workers", workers),
		logger.Int("errors", len(errs)),
		logger.Bool("cancelled", ctx.Err() != nil),
	)
	return out, errors.Join(errs...)
}
