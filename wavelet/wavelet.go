// Package wavelet implements single-level discrete wavelet transforms with
// boundary extension and hard thresholding of the resulting coefficients.
package wavelet

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Wavelet is an orthogonal two-channel filter bank.
type Wavelet struct {
	Name  string
	DecLo []float64
	DecHi []float64
	RecLo []float64
	RecHi []float64
}

// Len returns the filter length (support size).
func (w Wavelet) Len() int { return len(w.RecLo) }

// scaling filters (reconstruction low-pass), normalised to sum sqrt(2)
var scaling = map[string][]float64{
	"haar": {math.Sqrt2 / 2, math.Sqrt2 / 2},
	"db2": {
		0.48296291314469025, 0.836516303737469,
		0.22414386804185735, -0.12940952255092145,
	},
	"db3": {
		0.3326705529509569, 0.8068915093133388, 0.4598775021193313,
		-0.13501102001039084, -0.08544127388224149, 0.035226291882100656,
	},
	"db4": {
		0.23037781330885523, 0.7148465705525415, 0.6308807679295904,
		-0.02798376941698385, -0.18703481171888114, 0.030841381835986965,
		0.032883011666982945, -0.010597401784997278,
	},
}

// db1 and bior1.1 share the Haar filters.
var aliases = map[string]string{
	"db1":     "haar",
	"bior1.1": "haar",
}

// Haar returns the Haar wavelet.
func Haar() Wavelet {
	w, _ := Lookup("haar")
	return w
}

// Lookup builds the filter bank for a named wavelet.
func Lookup(name string) (Wavelet, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[key]; ok {
		key = a
	}
	recLo, ok := scaling[key]
	if !ok {
		return Wavelet{}, fmt.Errorf("unknown wavelet %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return newOrthogonal(key, recLo), nil
}

// Names lists the supported wavelet names.
func Names() []string {
	out := make([]string, 0, len(scaling)+len(aliases))
	for k := range scaling {
		out = append(out, k)
	}
	for k := range aliases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// newOrthogonal derives the remaining filters from the scaling filter using
// the quadrature-mirror relations:
//
//	DecLo[k] = RecLo[F-1-k]
//	DecHi[k] = (-1)^(k+1) * RecLo[k]
//	RecHi[k] = DecHi[F-1-k]
func newOrthogonal(name string, recLo []float64) Wavelet {
	f := len(recLo)
	w := Wavelet{
		Name:  name,
		DecLo: make([]float64, f),
		DecHi: make([]float64, f),
		RecLo: append([]float64(nil), recLo...),
		RecHi: make([]float64, f),
	}
	for k := 0; k < f; k++ {
		w.DecLo[k] = recLo[f-1-k]
		if k%2 == 0 {
			w.DecHi[k] = -recLo[k]
		} else {
			w.DecHi[k] = recLo[k]
		}
	}
	for k := 0; k < f; k++ {
		w.RecHi[k] = w.DecHi[f-1-k]
	}
	return w
}
