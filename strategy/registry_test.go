package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gowave/testutils"
	"github.com/evdnx/gowave/types"
)

func TestRegistryGetIsLazyAndStable(t *testing.T) {
	r, err := NewRegistry(buildConfig(), testutils.NewMockLogger())
	require.NoError(t, err)

	k := types.Key{Pair: "REG", Timeframe: "5m"}
	a, err := r.Get(k)
	require.NoError(t, err)
	b, err := r.Get(k)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = r.Get(types.Key{Pair: "ABC", Timeframe: "5m"})
	require.NoError(t, err)
	assert.Equal(t, []types.Key{{Pair: "ABC", Timeframe: "5m"}, k}, r.Keys())
}

func TestNewRegistryRejectsInvalidConfig(t *testing.T) {
	cfg := buildConfig()
	cfg.Wavelet = "sym99"
	_, err := NewRegistry(cfg, nil)
	assert.Error(t, err)
}

func TestBackfillMatchesSequential(t *testing.T) {
	cfg := buildConfig()
	log := testutils.NewMockLogger()
	r, err := NewRegistry(cfg, log)
	require.NoError(t, err)

	feeds := map[types.Key][]types.Bar{
		{Pair: "BF1", Timeframe: "1m"}: barsFromCloses(wave(50)),
		{Pair: "BF2", Timeframe: "1m"}: barsFromCloses(ramp(30, 10, 2)),
		{Pair: "BF3", Timeframe: "1m"}: barsFromCloses(ramp(5, 1, 1)),
	}
	got, err := r.Backfill(context.Background(), feeds, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, log.Count("backfill_done"))

	for key, bars := range feeds {
		seq, _ := buildDWT(t, key.Pair+"_SEQ", cfg)
		want := feedBars(seq, bars)
		rows := got[key]
		require.Len(t, rows, len(bars))
		for i := range rows {
			assert.Equal(t, want[i].Ready, rows[i].Ready, "%s bar %d", key, i)
			if want[i].Ready {
				assert.Equal(t, want[i].Predict, rows[i].Predict, "%s bar %d", key, i)
				assert.Equal(t, want[i].PredictDiff, rows[i].PredictDiff, "%s bar %d", key, i)
			}
		}
	}
}

func TestBackfillCancelled(t *testing.T) {
	log := testutils.NewMockLogger()
	r, err := NewRegistry(buildConfig(), log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := r.Backfill(ctx, map[types.Key][]types.Bar{
		{Pair: "CXL", Timeframe: "1m"}: barsFromCloses(ramp(20, 1, 1)),
	}, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	assert.Empty(t, got[types.Key{Pair: "CXL", Timeframe: "1m"}])
	cancelled, ok := log.FieldBool("backfill_done", "cancelled")
	require.True(t, ok)
	assert.True(t, cancelled)
}
