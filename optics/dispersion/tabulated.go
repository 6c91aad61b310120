package dispersion

import (
	"slices"
	"sort"
)

func init() {
	Register(KindTabulated, newTabulatedPairs)
}

type tabulated struct {
	lambdas []float64
	ns      []float64
	slopes  []float64
}

// NewTabulated builds a formula from sampled (λ, n) points using piecewise
// cubic Hermite interpolation with three-point tangents. Queries outside
// the sampled span extrapolate linearly along the boundary tangent.
func NewTabulated(lambdas, ns []float64) (Formula, error) {
	if len(lambdas) != len(ns) {
		return nil, &ConfigError{Kind: KindTabulated, Reason: "wavelength and index sample counts differ"}
	}

	if len(lambdas) < 2 {
		return nil, &ConfigError{Kind: KindTabulated, Reason: "needs at least 2 samples"}
	}

	if !sort.Float64sAreSorted(lambdas) {
		return nil, &ConfigError{Kind: KindTabulated, Reason: "wavelength samples must be ascending"}
	}

	for i := 1; i < len(lambdas); i++ {
		if lambdas[i] == lambdas[i-1] {
			return nil, &ConfigError{Kind: KindTabulated, Reason: "duplicate wavelength sample"}
		}
	}

	t := &tabulated{
		lambdas: slices.Clone(lambdas),
		ns:      slices.Clone(ns),
	}
	t.slopes = tangents(t.lambdas, t.ns)

	return t, nil
}

// newTabulatedPairs adapts NewTabulated to the registry builder signature,
// taking interleaved (λ, n) pairs.
func newTabulatedPairs(coefficients []float64) (Formula, error) {
	if len(coefficients)%2 != 0 {
		return nil, &ConfigError{Kind: KindTabulated, Reason: "incomplete trailing sample pair"}
	}

	n := len(coefficients) / 2
	lambdas := make([]float64, n)
	ns := make([]float64, n)

	for i := range n {
		lambdas[i] = coefficients[2*i]
		ns[i] = coefficients[2*i+1]
	}

	return NewTabulated(lambdas, ns)
}

func tangents(xs, ys []float64) []float64 {
	n := len(xs)
	m := make([]float64, n)

	m[0] = (ys[1] - ys[0]) / (xs[1] - xs[0])
	m[n-1] = (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])

	for i := 1; i < n-1; i++ {
		m[i] = (ys[i+1] - ys[i-1]) / (xs[i+1] - xs[i-1])
	}

	return m
}

func (f *tabulated) Kind() string { return KindTabulated }

func (f *tabulated) Coefficients() []float64 {
	out := make([]float64, 0, 2*len(f.lambdas))
	for i := range f.lambdas {
		out = append(out, f.lambdas[i], f.ns[i])
	}

	return out
}

// segment returns the index i such that the query falls in
// [lambdas[i], lambdas[i+1]], clamped to the boundary segments.
func (f *tabulated) segment(lambda float64) int {
	i := sort.SearchFloat64s(f.lambdas, lambda) - 1
	if i < 0 {
		i = 0
	}

	if i > len(f.lambdas)-2 {
		i = len(f.lambdas) - 2
	}

	return i
}

func (f *tabulated) N(lambda float64) float64 {
	// Linear extrapolation outside the sampled span.
	if lambda <= f.lambdas[0] {
		return f.ns[0] + f.slopes[0]*(lambda-f.lambdas[0])
	}

	last := len(f.lambdas) - 1
	if lambda >= f.lambdas[last] {
		return f.ns[last] + f.slopes[last]*(lambda-f.lambdas[last])
	}

	i := f.segment(lambda)
	h := f.lambdas[i+1] - f.lambdas[i]
	t := (lambda - f.lambdas[i]) / h

	h00 := (1 + 2*t) * (1 - t) * (1 - t)
	h10 := t * (1 - t) * (1 - t)
	h01 := t * t * (3 - 2*t)
	h11 := t * t * (t - 1)

	return h00*f.ns[i] + h10*h*f.slopes[i] + h01*f.ns[i+1] + h11*h*f.slopes[i+1]
}

func (f *tabulated) DNDLambda(lambda float64) float64 {
	if lambda <= f.lambdas[0] {
		return f.slopes[0]
	}

	last := len(f.lambdas) - 1
	if lambda >= f.lambdas[last] {
		return f.slopes[last]
	}

	i := f.segment(lambda)
	h := f.lambdas[i+1] - f.lambdas[i]
	t := (lambda - f.lambdas[i]) / h

	d00 := 6 * t * (t - 1)
	d10 := (1 - t) * (1 - 3*t)
	d01 := -d00
	d11 := t * (3*t - 2)

	return (d00*f.ns[i]+d01*f.ns[i+1])/h + d10*f.slopes[i] + d11*f.slopes[i+1]
}
