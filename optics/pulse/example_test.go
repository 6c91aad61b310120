package pulse_test

import (
	"fmt"

	"github.com/ultrafast-optics/ultrafast/optics/pulse"
)

func ExamplePropagateQuadratic() {
	g := pulse.Gaussian{FWHM: 10, Lambda0: 0.8}

	// Roughly 1 mm of fused silica at 800 nm.
	res, err := pulse.PropagateQuadratic(g, 36.162, pulse.Config{})
	if err != nil {
		panic(err)
	}

	fmt.Printf("in:  %.1f fs\n", g.FWHM)
	fmt.Printf("out: %.1f fs\n", res.FWHM)
	// Output:
	// in:  10.0 fs
	// out: 14.2 fs
}
