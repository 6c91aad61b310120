// Package material models dispersive optical materials: a named dispersion
// formula together with the wavelength range over which it is validated.
//
// Evaluations outside the validated range fail with a [RangeError] unless
// the material was constructed with the Unbounded override. Derived
// quantities (group index, group velocity, group-velocity dispersion) come
// from differentiating the index with respect to wavelength.
package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/ultrafast-optics/ultrafast/optics/dispersion"
	"github.com/ultrafast-optics/ultrafast/optics/units"
)

var (
	ErrNoFormula = errors.New("material: dispersion formula is required")
	ErrNoRange   = errors.New("material: valid wavelength range is required unless unbounded")
)

// RangeError reports a query outside a material's validated domain.
type RangeError struct {
	Quantity string
	Value    float64
	Min      float64
	Max      float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("material: %s %g outside valid range [%g, %g]",
		e.Quantity, e.Value, e.Min, e.Max)
}

// Config describes a material. Range bounds are wavelengths in µm; a
// reversed range is reordered rather than rejected.
type Config struct {
	Name       string
	Formula    dispersion.Formula
	RangeMin   float64
	RangeMax   float64
	References string
	Comments   string

	// Unbounded disables range enforcement. Evaluations then extrapolate
	// beyond the validated domain without any signal.
	Unbounded bool
}

// Material is immutable after construction.
type Material struct {
	cfg Config
}

// New constructs a material from cfg.
func New(cfg Config) (*Material, error) {
	if cfg.Formula == nil {
		return nil, ErrNoFormula
	}

	if cfg.RangeMin > cfg.RangeMax {
		cfg.RangeMin, cfg.RangeMax = cfg.RangeMax, cfg.RangeMin
	}

	if !cfg.Unbounded && (cfg.RangeMin <= 0 || cfg.RangeMax <= 0) {
		return nil, ErrNoRange
	}

	return &Material{cfg: cfg}, nil
}

func (m *Material) Name() string { return m.cfg.Name }

func (m *Material) References() string { return m.cfg.References }

func (m *Material) Comments() string { return m.cfg.Comments }

func (m *Material) Formula() dispersion.Formula { return m.cfg.Formula }

func (m *Material) Unbounded() bool { return m.cfg.Unbounded }

// Range returns the validated wavelength range in µm.
func (m *Material) Range() (min, max float64) {
	return m.cfg.RangeMin, m.cfg.RangeMax
}

func (m *Material) checkWavelength(lambda float64) error {
	if m.cfg.Unbounded {
		return nil
	}

	if lambda < m.cfg.RangeMin || lambda > m.cfg.RangeMax {
		return &RangeError{
			Quantity: "wavelength",
			Value:    lambda,
			Min:      m.cfg.RangeMin,
			Max:      m.cfg.RangeMax,
		}
	}

	return nil
}

// Index returns the refractive index at a wavelength in µm.
func (m *Material) Index(lambda float64) (float64, error) {
	if err := m.checkWavelength(lambda); err != nil {
		return 0, err
	}

	return m.cfg.Formula.N(lambda), nil
}

// Sample evaluates the refractive index at each wavelength, reusing dst
// when it has matching length. Any out-of-range wavelength fails the whole
// call before dst is written.
func (m *Material) Sample(dst, lambdas []float64) ([]float64, error) {
	for _, lambda := range lambdas {
		if err := m.checkWavelength(lambda); err != nil {
			return nil, err
		}
	}

	if len(dst) != len(lambdas) {
		dst = make([]float64, len(lambdas))
	}

	for i, lambda := range lambdas {
		dst[i] = m.cfg.Formula.N(lambda)
	}

	return dst, nil
}

// GroupIndex returns ng = n - λ·dn/dλ at a wavelength in µm.
func (m *Material) GroupIndex(lambda float64) (float64, error) {
	if err := m.checkWavelength(lambda); err != nil {
		return 0, err
	}

	n := m.cfg.Formula.N(lambda)
	dn := dispersion.DNDLambda(m.cfg.Formula, lambda)

	return n - lambda*dn, nil
}

// GroupVelocity returns vg = c/ng in µm/fs at a wavelength in µm.
func (m *Material) GroupVelocity(lambda float64) (float64, error) {
	ng, err := m.GroupIndex(lambda)
	if err != nil {
		return 0, err
	}

	return units.C / ng, nil
}

// GVD returns the group-velocity dispersion β₂ = λ³/(2πc²)·d²n/dλ²
// in fs²/µm at a wavelength in µm.
func (m *Material) GVD(lambda float64) (float64, error) {
	if err := m.checkWavelength(lambda); err != nil {
		return 0, err
	}

	d2n := dispersion.D2NDLambda2(m.cfg.Formula, lambda)

	return lambda * lambda * lambda * d2n / (2 * math.Pi * units.C * units.C), nil
}

// Wavevector returns the effective wavevector k = ω·n/c in rad/µm at an
// angular frequency in rad/fs.
func (m *Material) Wavevector(omega float64) (float64, error) {
	lambda := units.Wavelength(omega)

	if err := m.checkFrequency(omega, lambda); err != nil {
		return 0, err
	}

	return omega * m.cfg.Formula.N(lambda) / units.C, nil
}

// Brewster returns the Brewster angle in radians at an angular frequency in
// rad/fs for rays incident from inc. A nil inc means vacuum (n = 1).
func (m *Material) Brewster(omega float64, inc *Material) (float64, error) {
	lambda := units.Wavelength(omega)

	if err := m.checkFrequency(omega, lambda); err != nil {
		return 0, err
	}

	nInc := 1.0
	if inc != nil {
		var err error

		nInc, err = inc.Index(lambda)
		if err != nil {
			return 0, err
		}
	}

	return math.Atan(m.cfg.Formula.N(lambda) / nInc), nil
}

// checkFrequency reports frequency-domain range violations in frequency
// terms rather than translating them back to wavelengths.
func (m *Material) checkFrequency(omega, lambda float64) error {
	if m.cfg.Unbounded {
		return nil
	}

	if lambda < m.cfg.RangeMin || lambda > m.cfg.RangeMax {
		return &RangeError{
			Quantity: "frequency",
			Value:    omega,
			Min:      units.Frequency(m.cfg.RangeMax),
			Max:      units.Frequency(m.cfg.RangeMin),
		}
	}

	return nil
}
