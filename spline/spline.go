// Package spline fits cubic B-splines by least squares and evaluates them
// inside and beyond the fitted range.
package spline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Degree of the fitted polynomial pieces.
const Degree = 3

var errTooFewPoints = errors.New("too few points for a cubic spline")

// Spline is a fitted cubic spline on a clamped knot vector with evenly spaced
// interior knots.
type Spline struct {
	t    []float64 // full knot vector, Degree+1 copies of each end
	coef []float64 // one per B-spline basis function
}

// Fit fits a cubic spline with interiorKnots evenly spaced interior knots to
// the points (x[i], y[i]). x must be strictly increasing and contain at least
// Degree+1+interiorKnots points.
func Fit(x, y []float64, interiorKnots int) (*Spline, error) {
	n := len(x)
	if n != len(y) {
		return nil, fmt.Errorf("x and y lengths differ: %d vs %d", n, len(y))
	}
	if interiorKnots < 0 {
		interiorKnots = 0
	}
	p := Degree + 1 + interiorKnots
	if n < p {
		return nil, fmt.Errorf("%w: have %d, need %d", errTooFewPoints, n, p)
	}
	for i := 1; i < n; i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("x must be strictly increasing (index %d)", i)
		}
	}
	s := &Spline{t: knotVector(x[0], x[n-1], interiorKnots)}

	a := mat.NewDense(n, p, nil)
	var nb [Degree + 1]float64
	for i, xi := range x {
		mu := s.span(xi)
		s.basis(mu, xi, &nb)
		for r, v := range nb {
			a.Set(i, mu-Degree+r, v)
		}
	}
	b := mat.NewVecDense(n, append([]float64(nil), y...))

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}
	s.coef = make([]float64, p)
	for i := range s.coef {
		s.coef[i] = coef.AtVec(i)
		if math.IsNaN(s.coef[i]) || math.IsInf(s.coef[i], 0) {
			return nil, errors.New("spline coefficients are not finite")
		}
	}
	return s, nil
}

// FitSmoothing fits a cubic spline whose residual sum of squares does not
// exceed smoothing. It starts from startKnots interior knots and halves the
// knot spacing until the bound holds or every point carries a coefficient.
// If a refinement cannot be solved, the last solvable fit is returned.
func FitSmoothing(x, y []float64, smoothing float64, startKnots int) (*Spline, error) {
	limit := len(x) - Degree - 1
	m := startKnots
	if m < 0 {
		m = 0
	}
	if limit >= 0 && m > limit {
		m = limit
	}
	var best *Spline
	for {
		s, err := Fit(x, y, m)
		if err != nil {
			if best != nil {
				return best, nil
			}
			return nil, err
		}
		best = s
		if s.RSS(x, y) <= smoothing || m >= limit {
			return best, nil
		}
		m = min(2*m+1, limit)
	}
}

// At evaluates the spline at x. Outside the fitted range the first or last
// cubic piece is continued, which is what makes it usable for extrapolation.
func (s *Spline) At(x float64) float64 {
	var nb [Degree + 1]float64
	mu := s.span(x)
	s.basis(mu, x, &nb)
	var v float64
	for r, b := range nb {
		v += b * s.coef[mu-Degree+r]
	}
	return v
}

// RSS returns the residual sum of squares of the spline against the points.
func (s *Spline) RSS(x, y []float64) float64 {
	var rss float64
	for i := range x {
		d := s.At(x[i]) - y[i]
		rss += d * d
	}
	return rss
}

// Knots returns the number of interior knots.
func (s *Spline) Knots() int { return len(s.t) - 2*(Degree+1) }

func knotVector(a, b float64, interior int) []float64 {
	t := make([]float64, 0, interior+2*(Degree+1))
	for range Degree + 1 {
		t = append(t, a)
	}
	for j := 1; j <= interior; j++ {
		t = append(t, a+(b-a)*float64(j)/float64(interior+1))
	}
	for range Degree + 1 {
		t = append(t, b)
	}
	return t
}

// span returns the index mu of the knot interval [t[mu], t[mu+1]) holding x,
// clamped to the first and last non-empty interval.
func (s *Spline) span(x float64) int {
	first := Degree
	last := len(s.t) - Degree - 2
	if x < s.t[first+1] {
		return first
	}
	if x >= s.t[last] {
		return last
	}
	// smallest i with t[i] > x, minus one
	return sort.Search(len(s.t), func(i int) bool { return s.t[i] > x }) - 1
}

// basis fills nb with the Degree+1 B-splines that are non-zero on interval
// mu, evaluated at x. With mu fixed the values are polynomials in x, so x may
// lie outside the interval.
func (s *Spline) basis(mu int, x float64, nb *[Degree + 1]float64) {
	var left, right [Degree + 1]float64
	nb[0] = 1
	for j := 1; j <= Degree; j++ {
		left[j] = x - s.t[mu+1-j]
		right[j] = s.t[mu+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := nb[r] / (right[r+1] + left[j-r])
			nb[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		nb[j] = saved
	}
}

// KnotsFor picks the interior knot count for n points with roughly one knot
// every spacing points, capped so the fit stays overdetermined.
func KnotsFor(n, spacing int) int {
	if spacing <= 0 || n <= 0 {
		return 0
	}
	k := n/spacing - 1
	if limit := n - Degree - 1; k > limit {
		k = limit
	}
	if k < 0 {
		k = 0
	}
	return k
}
