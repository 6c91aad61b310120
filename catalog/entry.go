// Package catalog reads and writes refractiveindex.info-style material
// records: YAML files holding one or more DATA blocks (an analytic formula
// kind with coefficients, or tabulated samples) plus bibliographic
// metadata. Records are immutable once decoded.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ultrafast-optics/ultrafast/optics/dispersion"
	"github.com/ultrafast-optics/ultrafast/optics/material"
)

// ErrNoData reports an entry without any usable dispersion block.
var ErrNoData = errors.New("catalog: no usable dispersion data in entry")

// ParseError reports a malformed catalog record.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("catalog: parse entry: %v", e.Err)
	}

	return fmt.Sprintf("catalog: parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Entry is a raw catalog record. The upper-case field names follow the
// database file convention.
type Entry struct {
	References string      `yaml:"REFERENCES,omitempty"`
	Comments   string      `yaml:"COMMENTS,omitempty"`
	Data       []DataBlock `yaml:"DATA"`
}

// DataBlock is one dispersion dataset within an entry. Formula blocks carry
// space-separated coefficients; tabulated blocks carry whitespace-separated
// (λ, n) or (λ, n, k) rows. The wavelength range appears either under the
// current `wavelength_range` key or the legacy `range` key.
type DataBlock struct {
	Type            string `yaml:"type"`
	WavelengthRange string `yaml:"wavelength_range,omitempty"`
	LegacyRange     string `yaml:"range,omitempty"`
	Coefficients    string `yaml:"coefficients,omitempty"`
	Data            string `yaml:"data,omitempty"`
}

// Decode reads a YAML entry.
func Decode(r io.Reader) (*Entry, error) {
	var e Entry

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&e); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &e, nil
}

// Encode writes the entry back as YAML. A decoded entry re-encodes with its
// formula kind, range, and coefficient strings intact.
func (e *Entry) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("catalog: encode entry: %w", err)
	}

	return nil
}

// BuildOptions controls material construction from an entry.
type BuildOptions struct {
	// Unbounded builds the material without range enforcement.
	Unbounded bool
}

// Material builds a bounded material named name from the entry.
func (e *Entry) Material(name string) (*material.Material, error) {
	return e.Build(name, BuildOptions{})
}

// Build constructs a material from the first usable DATA block: the first
// analytic formula block if present, otherwise the first tabulated-n block.
func (e *Entry) Build(name string, opts BuildOptions) (*material.Material, error) {
	block := e.dispersionBlock()
	if block == nil {
		return nil, ErrNoData
	}

	formula, min, max, err := block.formula()
	if err != nil {
		return nil, err
	}

	return material.New(material.Config{
		Name:       name,
		Formula:    formula,
		RangeMin:   min,
		RangeMax:   max,
		References: e.References,
		Comments:   e.Comments,
		Unbounded:  opts.Unbounded,
	})
}

func (e *Entry) dispersionBlock() *DataBlock {
	for i := range e.Data {
		if strings.HasPrefix(e.Data[i].Type, "formula") {
			return &e.Data[i]
		}
	}

	for i := range e.Data {
		if strings.HasPrefix(e.Data[i].Type, "tabulated n") {
			return &e.Data[i]
		}
	}

	return nil
}

func (b *DataBlock) formula() (dispersion.Formula, float64, float64, error) {
	if strings.HasPrefix(b.Type, "formula") {
		return b.analyticFormula()
	}

	return b.tabulatedFormula()
}

func (b *DataBlock) analyticFormula() (dispersion.Formula, float64, float64, error) {
	min, max, err := b.rangeBounds()
	if err != nil {
		return nil, 0, 0, err
	}

	coeff, err := parseFloats(b.Coefficients)
	if err != nil {
		return nil, 0, 0, &ParseError{Err: fmt.Errorf("coefficients: %w", err)}
	}

	f, err := dispersion.New(b.Type, coeff)
	if err != nil {
		return nil, 0, 0, err
	}

	return f, min, max, nil
}

func (b *DataBlock) tabulatedFormula() (dispersion.Formula, float64, float64, error) {
	lambdas, ns, err := parseTable(b.Data)
	if err != nil {
		return nil, 0, 0, &ParseError{Err: fmt.Errorf("tabulated data: %w", err)}
	}

	f, err := dispersion.NewTabulated(lambdas, ns)
	if err != nil {
		return nil, 0, 0, err
	}

	// An explicit range key wins over the sampled span.
	if b.WavelengthRange != "" || b.LegacyRange != "" {
		min, max, err := b.rangeBounds()
		if err != nil {
			return nil, 0, 0, err
		}

		return f, min, max, nil
	}

	return f, lambdas[0], lambdas[len(lambdas)-1], nil
}

func (b *DataBlock) rangeBounds() (float64, float64, error) {
	raw := b.WavelengthRange
	if raw == "" {
		raw = b.LegacyRange
	}

	bounds, err := parseFloats(raw)
	if err != nil {
		return 0, 0, &ParseError{Err: fmt.Errorf("wavelength range: %w", err)}
	}

	if len(bounds) != 2 {
		return 0, 0, &ParseError{Err: fmt.Errorf("wavelength range: want 2 bounds, got %d", len(bounds))}
	}

	if bounds[0] > bounds[1] {
		bounds[0], bounds[1] = bounds[1], bounds[0]
	}

	return bounds[0], bounds[1], nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.New("empty numeric list")
	}

	out := make([]float64, len(fields))

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d %q: %w", i, f, err)
		}

		out[i] = v
	}

	return out, nil
}

// parseTable reads whitespace-separated rows of λ and n, ignoring a
// trailing extinction column when present.
func parseTable(s string) ([]float64, []float64, error) {
	var lambdas, ns []float64

	for lineNo, line := range strings.Split(s, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("line %d: want at least 2 columns, got %d", lineNo+1, len(fields))
		}

		lambda, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d wavelength: %w", lineNo+1, err)
		}

		n, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d index: %w", lineNo+1, err)
		}

		lambdas = append(lambdas, lambda)
		ns = append(ns, n)
	}

	if len(lambdas) == 0 {
		return nil, nil, errors.New("no samples")
	}

	return lambdas, ns, nil
}
