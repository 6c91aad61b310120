// Package deriv provides central-difference numeric differentiation for
// smooth scalar functions. It backs the derivative-based quantities of the
// dispersion formulas that have no closed-form derivative.
package deriv

import "math"

const (
	// Step scale factors chosen for float64 rounding: eps^(1/3) for first
	// derivatives, eps^(1/4) for second derivatives.
	firstStepScale  = 6.0554544523933395e-6
	secondStepScale = 1.2207031250000000e-4
)

// First computes df/dx at x using a five-point central difference stencil.
func First(f func(float64) float64, x float64) float64 {
	h := step(x, firstStepScale)

	return (f(x-2*h) - 8*f(x-h) + 8*f(x+h) - f(x+2*h)) / (12 * h)
}

// Second computes d²f/dx² at x using a five-point central difference stencil.
func Second(f func(float64) float64, x float64) float64 {
	h := step(x, secondStepScale)

	return (-f(x-2*h) + 16*f(x-h) - 30*f(x) + 16*f(x+h) - f(x+2*h)) / (12 * h * h)
}

func step(x, scale float64) float64 {
	h := scale * math.Max(math.Abs(x), 1)

	// Force h to be exactly representable around x so the stencil spacing
	// carries no rounding error of its own.
	temp := x + h

	return temp - x
}
