package dispersion

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ultrafast-optics/ultrafast/internal/deriv"
)

// Catalog type strings for the built-in formula kinds.
const (
	KindSellmeier  = "formula 1"
	KindSellmeier2 = "formula 2"
	KindPolynomial = "formula 3"
	KindRIInfo     = "formula 4"
	KindCauchy     = "formula 5"
	KindGases      = "formula 6"
	KindHerzberger = "formula 7"
	KindRetro      = "formula 8"
	KindExotic     = "formula 9"
	KindTabulated  = "tabulated n"
)

// Formula is a parametric dispersion relation.
//
// N returns the real refractive index at a wavelength in µm. Formulas are
// pure functions of wavelength; range validation belongs to the material
// that owns the formula.
type Formula interface {
	Kind() string
	N(lambda float64) float64
	Coefficients() []float64
}

// Differentiable is implemented by formulas with a closed-form first
// derivative. Kinds without one fall back to numeric differentiation.
type Differentiable interface {
	Formula
	DNDLambda(lambda float64) float64
}

// DNDLambda returns dn/dλ at lambda, analytically when the formula
// provides it and by central difference otherwise.
func DNDLambda(f Formula, lambda float64) float64 {
	if d, ok := f.(Differentiable); ok {
		return d.DNDLambda(lambda)
	}

	return deriv.First(f.N, lambda)
}

// D2NDLambda2 returns d²n/dλ² at lambda. When an analytic first derivative
// exists it is differentiated once numerically, which is considerably more
// accurate than a double numeric difference.
func D2NDLambda2(f Formula, lambda float64) float64 {
	if d, ok := f.(Differentiable); ok {
		return deriv.First(d.DNDLambda, lambda)
	}

	return deriv.Second(f.N, lambda)
}

// Builder constructs a formula from an ordered coefficient sequence.
type Builder func(coefficients []float64) (Formula, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Builder{
		KindSellmeier:  NewSellmeier,
		KindSellmeier2: NewSellmeier2,
		KindPolynomial: NewPolynomial,
		KindRIInfo:     NewRIInfo,
		KindCauchy:     NewCauchy,
		KindGases:      NewGases,
		KindHerzberger: NewHerzberger,
		KindRetro:      NewRetro,
		KindExotic:     NewExotic,
	}
)

// Register makes a builder available under the given catalog type string.
// Registering an already known kind replaces the previous builder.
func Register(kind string, b Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[kind] = b
}

// New constructs a formula of the given kind from its coefficients.
// Unknown kinds fail with a ConfigError.
func New(kind string, coefficients []float64) (Formula, error) {
	registryMu.RLock()
	b, ok := registry[kind]
	registryMu.RUnlock()

	if !ok {
		return nil, &ConfigError{Kind: kind, Reason: "unknown formula kind"}
	}

	return b(coefficients)
}

// Kinds returns the registered formula kinds in sorted order.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}

	sort.Strings(kinds)

	return kinds
}

// ConfigError reports an invalid or incomplete formula configuration.
type ConfigError struct {
	Kind   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dispersion: %s: %s", e.Kind, e.Reason)
}
