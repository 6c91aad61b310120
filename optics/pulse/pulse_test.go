package pulse

import (
	"math"
	"testing"

	"github.com/ultrafast-optics/ultrafast/internal/testutil"
	"github.com/ultrafast-optics/ultrafast/optics/dispersion"
	"github.com/ultrafast-optics/ultrafast/optics/material"
)

func silica(t *testing.T) *material.Material {
	t.Helper()

	f, err := dispersion.NewSellmeier([]float64{
		0, 0.6961663, 0.0684043, 0.4079426, 0.1162414, 0.8974794, 9.896161,
	})
	if err != nil {
		t.Fatalf("NewSellmeier: %v", err)
	}

	m, err := material.New(material.Config{
		Name:     "SiO2 (Malitson)",
		Formula:  f,
		RangeMin: 0.21,
		RangeMax: 3.71,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return m
}

func TestValidate(t *testing.T) {
	if err := (Gaussian{FWHM: 10, Lambda0: 0.8}).Validate(); err != nil {
		t.Fatalf("valid pulse rejected: %v", err)
	}

	if err := (Gaussian{FWHM: 0, Lambda0: 0.8}).Validate(); err != ErrInvalidFWHM {
		t.Fatalf("expected ErrInvalidFWHM, got %v", err)
	}

	if err := (Gaussian{FWHM: 10}).Validate(); err != ErrInvalidWavelength {
		t.Fatalf("expected ErrInvalidWavelength, got %v", err)
	}
}

func TestPropagateZeroPhasePreservesFWHM(t *testing.T) {
	g := Gaussian{FWHM: 20, Lambda0: 0.8}

	res, err := PropagateQuadratic(g, 0, Config{})
	if err != nil {
		t.Fatalf("PropagateQuadratic: %v", err)
	}

	if math.Abs(res.FWHM-g.FWHM) > 1e-3*g.FWHM {
		t.Fatalf("zero phase changed FWHM: got %v want %v", res.FWHM, g.FWHM)
	}
}

func TestPropagateQuadraticMatchesAnalytic(t *testing.T) {
	g := Gaussian{FWHM: 10, Lambda0: 0.8}

	// 1 mm of fused silica at 800 nm accumulates about 36.16 fs².
	beta2z := 36.162

	res, err := PropagateQuadratic(g, beta2z, Config{})
	if err != nil {
		t.Fatalf("PropagateQuadratic: %v", err)
	}

	want := g.BroadenedFWHM(beta2z)
	if math.Abs(res.FWHM-want)/want > 1e-3 {
		t.Fatalf("broadening mismatch: got %.4f want %.4f", res.FWHM, want)
	}

	// Negative GVD broadens an unchirped pulse identically.
	res2, err := PropagateQuadratic(g, -beta2z, Config{})
	if err != nil {
		t.Fatalf("PropagateQuadratic: %v", err)
	}

	if math.Abs(res2.FWHM-res.FWHM)/want > 1e-6 {
		t.Fatalf("sign asymmetry: %v vs %v", res2.FWHM, res.FWHM)
	}
}

func TestPropagateMaterialNearQuadratic(t *testing.T) {
	m := silica(t)
	g := Gaussian{FWHM: 10, Lambda0: 0.8}

	gvd, err := m.GVD(g.Lambda0)
	if err != nil {
		t.Fatalf("GVD: %v", err)
	}

	z := 1000.0 // 1 mm in µm

	res, err := PropagateMaterial(g, m, z, Config{})
	if err != nil {
		t.Fatalf("PropagateMaterial: %v", err)
	}

	testutil.RequireFinite(t, res.Intensity)

	// Higher-order dispersion shifts the result a little off the pure-GVD
	// prediction for a 10 fs pulse, so the tolerance stays loose.
	want := g.BroadenedFWHM(gvd * z)
	if math.Abs(res.FWHM-want)/want > 0.02 {
		t.Fatalf("material broadening: got %.4f want %.4f", res.FWHM, want)
	}
}

func TestPropagateMaterialUnbounded(t *testing.T) {
	m, err := material.New(material.Config{
		Name:      "SiO2 (Malitson, extrapolated)",
		Formula:   silica(t).Formula(),
		Unbounded: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g := Gaussian{FWHM: 10, Lambda0: 0.8}

	gvd, err := m.GVD(g.Lambda0)
	if err != nil {
		t.Fatalf("GVD: %v", err)
	}

	z := 1000.0

	res, err := PropagateMaterial(g, m, z, Config{})
	if err != nil {
		t.Fatalf("PropagateMaterial: %v", err)
	}

	testutil.RequireFinite(t, res.Intensity)

	// A rangeless material must still disperse the pulse.
	want := g.BroadenedFWHM(gvd * z)
	if math.Abs(res.FWHM-want)/want > 0.02 {
		t.Fatalf("unbounded broadening: got %.4f want %.4f", res.FWHM, want)
	}
}

func TestPropagateMaterialZeroThickness(t *testing.T) {
	m := silica(t)
	g := Gaussian{FWHM: 15, Lambda0: 0.8}

	res, err := PropagateMaterial(g, m, 0, Config{})
	if err != nil {
		t.Fatalf("PropagateMaterial: %v", err)
	}

	if math.Abs(res.FWHM-g.FWHM) > 1e-3*g.FWHM {
		t.Fatalf("zero thickness changed FWHM: got %v", res.FWHM)
	}

	if _, err := PropagateMaterial(g, m, -1, Config{}); err != ErrInvalidThickness {
		t.Fatalf("expected ErrInvalidThickness, got %v", err)
	}
}

func TestPropagateMaterialOutOfRangeCarrier(t *testing.T) {
	m := silica(t)
	g := Gaussian{FWHM: 10, Lambda0: 5.0}

	_, err := PropagateMaterial(g, m, 100, Config{})
	if err == nil {
		t.Fatalf("carrier outside material range should fail")
	}
}

func TestMeasureFWHM(t *testing.T) {
	n := 1001
	dt := 0.1
	fwhm := 12.0

	time := make([]float64, n)
	intensity := make([]float64, n)

	for i := range time {
		time[i] = (float64(i) - float64(n)/2) * dt
		intensity[i] = math.Exp(-fourLn2 * time[i] * time[i] / (fwhm * fwhm))
	}

	got, err := MeasureFWHM(time, intensity)
	if err != nil {
		t.Fatalf("MeasureFWHM: %v", err)
	}

	if math.Abs(got-fwhm) > 1e-2 {
		t.Fatalf("FWHM mismatch: got %v want %v", got, fwhm)
	}

	if _, err := MeasureFWHM(time, make([]float64, n)); err != ErrNoPeak {
		t.Fatalf("flat profile: expected ErrNoPeak, got %v", err)
	}
}

func TestResultGridShape(t *testing.T) {
	g := Gaussian{FWHM: 10, Lambda0: 0.8}

	res, err := PropagateQuadratic(g, 10, Config{Samples: 1000, Window: 300})
	if err != nil {
		t.Fatalf("PropagateQuadratic: %v", err)
	}

	// Samples round up to a power of two.
	if len(res.Time) != 1024 || len(res.Field) != 1024 || len(res.Intensity) != 1024 {
		t.Fatalf("grid sizes: %d/%d/%d", len(res.Time), len(res.Field), len(res.Intensity))
	}

	if span := res.Time[len(res.Time)-1] - res.Time[0]; math.Abs(span-300*1023.0/1024.0) > 1e-9 {
		t.Fatalf("window span mismatch: %v", span)
	}
}
