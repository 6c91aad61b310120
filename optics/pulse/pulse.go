package pulse

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/ultrafast-optics/ultrafast/optics/material"
	"github.com/ultrafast-optics/ultrafast/optics/units"
)

var (
	ErrInvalidFWHM       = errors.New("pulse: FWHM must be positive")
	ErrInvalidWavelength = errors.New("pulse: center wavelength must be positive")
	ErrInvalidThickness  = errors.New("pulse: thickness must not be negative")
	ErrNoPeak            = errors.New("pulse: intensity profile has no peak")
)

const (
	defaultSamples      = 4096
	defaultWindowFWHMs  = 40.0
	fourLn2             = 4 * math.Ln2
	minWindowOverLength = 4.0
)

// Gaussian is a transform-limited Gaussian pulse. FWHM is the intensity
// full width at half maximum in fs; Lambda0 the center wavelength in µm.
type Gaussian struct {
	FWHM    float64
	Lambda0 float64
}

// Validate checks the pulse parameters.
func (g Gaussian) Validate() error {
	if g.FWHM <= 0 {
		return ErrInvalidFWHM
	}

	if g.Lambda0 <= 0 {
		return ErrInvalidWavelength
	}

	return nil
}

// Envelope returns the field amplitude at time t in fs, normalized to unit
// peak.
func (g Gaussian) Envelope(t float64) float64 {
	return math.Exp(-2 * math.Ln2 * t * t / (g.FWHM * g.FWHM))
}

// BroadenedFWHM returns the analytic intensity FWHM after accumulating the
// quadratic spectral phase β₂·z (fs²) under pure group-velocity dispersion.
func (g Gaussian) BroadenedFWHM(beta2z float64) float64 {
	r := fourLn2 * beta2z / (g.FWHM * g.FWHM)

	return g.FWHM * math.Sqrt(1+r*r)
}

// Config holds propagation grid parameters.
type Config struct {
	// Samples is the FFT grid size; it is rounded up to a power of two.
	Samples int

	// Window is the time span of the grid in fs. Zero selects a window
	// proportional to the pulse duration.
	Window float64
}

// Result holds a propagated pulse sampled on its time grid.
type Result struct {
	Time      []float64    // fs, centered on zero
	Field     []complex128 // envelope, unit peak magnitude before propagation
	Intensity []float64    // |field|², normalized to unit peak
	FWHM      float64      // measured intensity FWHM in fs
}

// PropagateQuadratic applies the quadratic spectral phase ½·β₂z·ω² to the
// pulse envelope. beta2z is the accumulated GVD in fs².
func PropagateQuadratic(g Gaussian, beta2z float64, cfg Config) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return propagate(g, cfg, func(omega float64) float64 {
		return 0.5 * beta2z * omega * omega
	})
}

// PropagateMaterial propagates the pulse through thickness z (µm) of m,
// applying the material's full spectral phase k(ω)·z with the constant and
// group delays removed. The center wavelength must lie in the material's
// validated range; for bounded materials the spectral tails evaluate the
// formula clamped to the range edges, where the pulse carries no energy,
// while unbounded materials extrapolate at the true per-bin wavelength.
// Bins at or below zero absolute frequency accumulate no phase.
func PropagateMaterial(g Gaussian, m *material.Material, z float64, cfg Config) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if z < 0 {
		return nil, ErrInvalidThickness
	}

	omega0 := units.Frequency(g.Lambda0)

	k0, err := m.Wavevector(omega0)
	if err != nil {
		return nil, err
	}

	ng, err := m.GroupIndex(g.Lambda0)
	if err != nil {
		return nil, err
	}

	k1 := ng / units.C
	unbounded := m.Unbounded()
	lambdaMin, lambdaMax := m.Range()
	formula := m.Formula()

	return propagate(g, cfg, func(omega float64) float64 {
		omegaAbs := omega0 + omega
		if omegaAbs <= 0 {
			return 0
		}

		lambda := units.Wavelength(omegaAbs)
		if !unbounded {
			lambda = math.Min(math.Max(lambda, lambdaMin), lambdaMax)
		}

		k := omegaAbs * formula.N(lambda) / units.C

		return (k - k0 - k1*omega) * z
	})
}

// propagate samples the envelope, applies the spectral phase, and measures
// the resulting intensity profile.
func propagate(g Gaussian, cfg Config, phase func(omega float64) float64) (*Result, error) {
	n := cfg.Samples
	if n <= 0 {
		n = defaultSamples
	}

	n = nextPowerOf2(n)

	window := cfg.Window
	if window <= 0 {
		window = defaultWindowFWHMs * g.FWHM
	}

	if window < minWindowOverLength*g.FWHM {
		window = minWindowOverLength * g.FWHM
	}

	dt := window / float64(n)

	time := make([]float64, n)
	field := make([]complex128, n)

	for i := range field {
		time[i] = (float64(i) - float64(n)/2) * dt
		field[i] = complex(g.Envelope(time[i]), 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("pulse: failed to create FFT plan: %w", err)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, field); err != nil {
		return nil, fmt.Errorf("pulse: forward FFT failed: %w", err)
	}

	for k := range spectrum {
		p := phase(binFrequency(k, n, dt))
		if math.IsNaN(p) || math.IsInf(p, 0) {
			// Outside the formula's real-index domain; no physical pulse
			// carries energy there.
			spectrum[k] = 0
			continue
		}

		spectrum[k] *= cmplx.Exp(complex(0, -p))
	}

	if err := plan.Inverse(field, spectrum); err != nil {
		return nil, fmt.Errorf("pulse: inverse FFT failed: %w", err)
	}

	intensity, err := intensityProfile(field)
	if err != nil {
		return nil, err
	}

	fwhm, err := MeasureFWHM(time, intensity)
	if err != nil {
		return nil, err
	}

	return &Result{
		Time:      time,
		Field:     field,
		Intensity: intensity,
		FWHM:      fwhm,
	}, nil
}

// binFrequency maps an FFT bin to its angular frequency in rad/fs relative
// to the carrier, with the usual wraparound for negative frequencies.
func binFrequency(k, n int, dt float64) float64 {
	kk := k
	if kk >= n/2 {
		kk -= n
	}

	return 2 * math.Pi * float64(kk) / (float64(n) * dt)
}

// intensityProfile computes |field|² normalized to unit peak.
func intensityProfile(field []complex128) ([]float64, error) {
	n := len(field)

	re := make([]float64, n)
	im := make([]float64, n)

	for i, v := range field {
		re[i] = real(v)
		im[i] = imag(v)
	}

	intensity := make([]float64, n)
	vecmath.Power(intensity, re, im)

	peak := 0.0
	for _, v := range intensity {
		if v > peak {
			peak = v
		}
	}

	if peak <= 0 {
		return nil, ErrNoPeak
	}

	vecmath.ScaleBlock(intensity, intensity, 1/peak)

	return intensity, nil
}

// MeasureFWHM returns the full width at half maximum of a sampled
// intensity profile, interpolating linearly between samples at the
// half-maximum crossings.
func MeasureFWHM(time, intensity []float64) (float64, error) {
	if len(intensity) < 3 || len(time) != len(intensity) {
		return 0, ErrNoPeak
	}

	peakIdx := 0
	for i, v := range intensity {
		if v > intensity[peakIdx] {
			peakIdx = i
		}
	}

	if peakIdx == 0 || peakIdx == len(intensity)-1 {
		return 0, ErrNoPeak
	}

	half := intensity[peakIdx] / 2

	left := peakIdx
	for left > 0 && intensity[left] > half {
		left--
	}

	if intensity[left] > half {
		return 0, ErrNoPeak
	}

	right := peakIdx
	for right < len(intensity)-1 && intensity[right] > half {
		right++
	}

	if intensity[right] > half {
		return 0, ErrNoPeak
	}

	tLeft := crossing(time[left], time[left+1], intensity[left], intensity[left+1], half)
	tRight := crossing(time[right-1], time[right], intensity[right-1], intensity[right], half)

	return tRight - tLeft, nil
}

func crossing(t0, t1, v0, v1, target float64) float64 {
	if v1 == v0 {
		return t0
	}

	return t0 + (target-v0)/(v1-v0)*(t1-t0)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
