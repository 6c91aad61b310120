package catalog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultrafast-optics/ultrafast/optics/dispersion"
)

const malitsonYAML = `REFERENCES: "I. H. Malitson. Interspecimen comparison of the refractive index of fused silica, JOSA 55, 1205-1209 (1965)"
COMMENTS: "Fused silica at 20 °C"
DATA:
  - type: formula 1
    wavelength_range: "0.21 3.71"
    coefficients: "0 0.6961663 0.0684043 0.4079426 0.1162414 0.8974794 9.896161"
`

const tabulatedYAML = `REFERENCES: "synthetic"
DATA:
  - type: tabulated n
    data: |
      0.40 1.470
      0.60 1.458
      0.80 1.453
      1.00 1.450
`

func TestDecodeFormulaEntry(t *testing.T) {
	entry, err := Decode(strings.NewReader(malitsonYAML))
	require.NoError(t, err)

	require.Len(t, entry.Data, 1)
	assert.Equal(t, "formula 1", entry.Data[0].Type)
	assert.Contains(t, entry.References, "Malitson")

	m, err := entry.Material("SiO2/Malitson")
	require.NoError(t, err)

	n, err := m.Index(0.5876)
	require.NoError(t, err)
	assert.InDelta(t, 1.45846, n, 1e-4)

	min, max := m.Range()
	assert.Equal(t, 0.21, min)
	assert.Equal(t, 3.71, max)
}

func TestDecodeTabulatedEntry(t *testing.T) {
	entry, err := Decode(strings.NewReader(tabulatedYAML))
	require.NoError(t, err)

	m, err := entry.Material("synthetic")
	require.NoError(t, err)

	// Knot values reproduce exactly; the range comes from the sampled span.
	n, err := m.Index(0.6)
	require.NoError(t, err)
	assert.InDelta(t, 1.458, n, 1e-12)

	min, max := m.Range()
	assert.Equal(t, 0.4, min)
	assert.Equal(t, 1.0, max)

	_, err = m.Index(1.2)
	assert.Error(t, err)
}

func TestLegacyRangeKey(t *testing.T) {
	entry, err := Decode(strings.NewReader(`DATA:
  - type: formula 5
    range: "1.0 0.3"
    coefficients: "1.45 0.004 -2"
`))
	require.NoError(t, err)

	m, err := entry.Material("cauchy")
	require.NoError(t, err)

	// A descending range is reordered.
	min, max := m.Range()
	assert.Equal(t, 0.3, min)
	assert.Equal(t, 1.0, max)
}

func TestEncodeRoundTrip(t *testing.T) {
	entry, err := Decode(strings.NewReader(malitsonYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, entry.Encode(&buf))

	again, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, entry.References, again.References)
	assert.Equal(t, entry.Comments, again.Comments)
	require.Len(t, again.Data, 1)
	assert.Equal(t, entry.Data[0].Type, again.Data[0].Type)
	assert.Equal(t, entry.Data[0].WavelengthRange, again.Data[0].WavelengthRange)
	assert.Equal(t, entry.Data[0].Coefficients, again.Data[0].Coefficients)
}

func TestBuildUnbounded(t *testing.T) {
	entry, err := Decode(strings.NewReader(malitsonYAML))
	require.NoError(t, err)

	m, err := entry.Build("SiO2", BuildOptions{Unbounded: true})
	require.NoError(t, err)

	_, err = m.Index(5.0)
	assert.NoError(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"not yaml": "\t{{",
		"bad coefficient": `DATA:
  - type: formula 1
    wavelength_range: "0.2 1.0"
    coefficients: "0 abc 1.0"
`,
		"bad range arity": `DATA:
  - type: formula 1
    wavelength_range: "0.2 1.0 2.0"
    coefficients: "0 0.5 0.1"
`,
		"bad table row": `DATA:
  - type: tabulated n
    data: "0.5"
`,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			entry, err := Decode(strings.NewReader(src))
			if err == nil {
				_, err = entry.Material(name)
			}

			var parseErr *ParseError
			require.Error(t, err)
			assert.True(t, errors.As(err, &parseErr), "want ParseError, got %v", err)
		})
	}
}

func TestFormulaOutOfFamilyRange(t *testing.T) {
	entry, err := Decode(strings.NewReader(`DATA:
  - type: formula 42
    wavelength_range: "0.2 1.0"
    coefficients: "1 2 3"
`))
	require.NoError(t, err)

	_, err = entry.Material("weird")

	var cfgErr *dispersion.ConfigError
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr), "want ConfigError, got %v", err)
}

func TestNoDispersionData(t *testing.T) {
	entry, err := Decode(strings.NewReader(`REFERENCES: "k only"
DATA:
  - type: tabulated k
    data: "0.5 0.001"
`))
	require.NoError(t, err)

	_, err = entry.Material("k-only")
	assert.ErrorIs(t, err, ErrNoData)
}
