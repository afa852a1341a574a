// Package frame appends the wavelet indicator columns to a gota DataFrame of
// historical bars.
package frame

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/evdnx/gowave/config"
	"github.com/evdnx/gowave/scaler"
)

// Output column names.
const (
	ColPredict     = "dwt_predict"
	ColForecast    = "dwt_forecast"
	ColScaled      = "scaled"
	ColPredictDiff = "dwt_predict_diff"
)

// closeColumns are accepted spellings of the close column, in lookup order.
var closeColumns = []string{"Close", "close"}

// CloseColumn returns the name of the close column in df.
func CloseColumn(df dataframe.DataFrame) (string, error) {
	names := df.Names()
	for _, want := range closeColumns {
		for _, n := range names {
			if n == want {
				return n, nil
			}
		}
	}
	return "", fmt.Errorf("dataframe has no 'Close' column (columns: %v)", names)
}

// Populate evaluates the filter at every row of df and returns a copy with
// the indicator columns appended. Rows whose window is incomplete or invalid
// hold NaN in every added column.
func Populate(df dataframe.DataFrame, cfg config.StrategyConfig) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, df.Err
	}
	col, err := CloseColumn(df)
	if err != nil {
		return df, err
	}
	if err := cfg.Validate(); err != nil {
		return df, err
	}
	f, err := cfg.Filter()
	if err != nil {
		return df, err
	}

	closes := df.Col(col).Float()
	predict, forecast := f.EstimateAll(closes, cfg.Horizon)

	sc := scaler.NewRolling(cfg.Window)
	scaled := sc.FitTransform(closes)
	scaledPredict, err := sc.Transform(predict)
	if err != nil {
		return df, err
	}
	diff := make([]float64, len(closes))
	for i := range closes {
		if math.IsNaN(predict[i]) {
			scaled[i] = math.NaN()
			diff[i] = math.NaN()
			continue
		}
		diff[i] = (scaledPredict[i] - scaled[i]) / cfg.ScaleDivisor
	}

	out := df.Copy()
	for _, s := range []series.Series{
		series.New(predict, series.Float, ColPredict),
		series.New(forecast, series.Float, ColForecast),
		series.New(scaled, series.Float, ColScaled),
		series.New(diff, series.Float, ColPredictDiff),
	} {
		out = out.Mutate(s)
		if out.Err != nil {
			return df, fmt.Errorf("add column %s: %w", s.Name, out.Err)
		}
	}
	return out, nil
}
