// Package units defines the unit system shared by the optics packages.
//
// Wavelengths are expressed in µm, times in fs, and angular frequencies in
// rad/fs. These units keep catalog coefficients (which are tabulated against
// µm) and femtosecond pulse durations in the same numeric range, so no
// scaling factors appear in the formulas.
package units

import "math"

// C is the speed of light in µm/fs.
const C = 0.299792458

// Frequency converts a wavelength in µm to an angular frequency in rad/fs.
func Frequency(lambda float64) float64 {
	return 2 * math.Pi * C / lambda
}

// Wavelength converts an angular frequency in rad/fs to a wavelength in µm.
func Wavelength(omega float64) float64 {
	return 2 * math.Pi * C / omega
}
