// Package pulse propagates ultrashort Gaussian pulses through dispersive
// materials using FFT spectral-phase application.
//
// The envelope is sampled on a centered time grid, transformed to the
// frequency domain, multiplied by the material's spectral phase
// exp(-i·k(ω)·z) with the constant and group delays removed, and
// transformed back. The group-delay removal keeps the envelope centered on
// the grid, so broadening and chirp remain visible for arbitrary
// propagation lengths.
//
// # Usage
//
// Propagate a 10 fs pulse at 800 nm through 1 mm of a catalog material:
//
//	g := pulse.Gaussian{FWHM: 10, Lambda0: 0.8}
//	res, _ := pulse.PropagateMaterial(g, silica, 1000, pulse.Config{})
//	fmt.Println(res.FWHM)
//
// For pure-GVD studies, apply a quadratic phase directly:
//
//	res, _ := pulse.PropagateQuadratic(g, beta2z, pulse.Config{})
package pulse
