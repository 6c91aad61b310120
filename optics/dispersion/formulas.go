package dispersion

import (
	"math"
	"slices"
)

// herzbergerPole is the fixed pole position (µm²) of the Herzberger form.
const herzbergerPole = 0.028

type base struct {
	kind  string
	coeff []float64
}

func (b *base) Kind() string { return b.kind }

func (b *base) Coefficients() []float64 { return slices.Clone(b.coeff) }

func newBase(kind string, coefficients []float64) base {
	return base{kind: kind, coeff: slices.Clone(coefficients)}
}

// requireTermPairs validates the common "constant plus term pairs" layout:
// one leading coefficient followed by complete (A, B) pairs.
func requireTermPairs(kind string, coefficients []float64) error {
	if len(coefficients) < 1 {
		return &ConfigError{Kind: kind, Reason: "missing coefficients"}
	}

	if len(coefficients)%2 != 1 {
		return &ConfigError{Kind: kind, Reason: "incomplete trailing term pair"}
	}

	return nil
}

type sellmeier struct{ base }

// NewSellmeier builds the preferred Sellmeier form
// n² = 1 + C₀ + Σ Bᵢλ²/(λ²−Cᵢ²).
func NewSellmeier(coefficients []float64) (Formula, error) {
	if err := requireTermPairs(KindSellmeier, coefficients); err != nil {
		return nil, err
	}

	return &sellmeier{newBase(KindSellmeier, coefficients)}, nil
}

func (f *sellmeier) N(lambda float64) float64 {
	l2 := lambda * lambda

	n2 := 1 + f.coeff[0]
	for i := 1; i+1 < len(f.coeff); i += 2 {
		b, c := f.coeff[i], f.coeff[i+1]
		n2 += b * l2 / (l2 - c*c)
	}

	return math.Sqrt(n2)
}

func (f *sellmeier) DNDLambda(lambda float64) float64 {
	l2 := lambda * lambda

	dn2 := 0.0
	for i := 1; i+1 < len(f.coeff); i += 2 {
		b, c := f.coeff[i], f.coeff[i+1]
		den := l2 - c*c
		dn2 += -2 * b * c * c * lambda / (den * den)
	}

	return dn2 / (2 * f.N(lambda))
}

type sellmeier2 struct{ base }

// NewSellmeier2 builds the Sellmeier-2 form n² = 1 + C₀ + Σ Bᵢλ²/(λ²−Cᵢ),
// with resonance positions given directly in µm².
func NewSellmeier2(coefficients []float64) (Formula, error) {
	if err := requireTermPairs(KindSellmeier2, coefficients); err != nil {
		return nil, err
	}

	return &sellmeier2{newBase(KindSellmeier2, coefficients)}, nil
}

func (f *sellmeier2) N(lambda float64) float64 {
	l2 := lambda * lambda

	n2 := 1 + f.coeff[0]
	for i := 1; i+1 < len(f.coeff); i += 2 {
		b, c := f.coeff[i], f.coeff[i+1]
		n2 += b * l2 / (l2 - c)
	}

	return math.Sqrt(n2)
}

func (f *sellmeier2) DNDLambda(lambda float64) float64 {
	l2 := lambda * lambda

	dn2 := 0.0
	for i := 1; i+1 < len(f.coeff); i += 2 {
		b, c := f.coeff[i], f.coeff[i+1]
		den := l2 - c
		dn2 += -2 * b * c * lambda / (den * den)
	}

	return dn2 / (2 * f.N(lambda))
}

type polynomial struct{ base }

// NewPolynomial builds the polynomial form n² = C₀ + Σ Aᵢλ^Pᵢ.
func NewPolynomial(coefficients []float64) (Formula, error) {
	if err := requireTermPairs(KindPolynomial, coefficients); err != nil {
		return nil, err
	}

	return &polynomial{newBase(KindPolynomial, coefficients)}, nil
}

func (f *polynomial) N(lambda float64) float64 {
	n2 := f.coeff[0]
	for i := 1; i+1 < len(f.coeff); i += 2 {
		a, p := f.coeff[i], f.coeff[i+1]
		n2 += a * math.Pow(lambda, p)
	}

	return math.Sqrt(n2)
}

func (f *polynomial) DNDLambda(lambda float64) float64 {
	dn2 := 0.0
	for i := 1; i+1 < len(f.coeff); i += 2 {
		a, p := f.coeff[i], f.coeff[i+1]
		dn2 += a * p * math.Pow(lambda, p-1)
	}

	return dn2 / (2 * f.N(lambda))
}

type riinfo struct{ base }

// NewRIInfo builds the refractiveindex.info mixed form: two resonance terms
// C₁λ^C₂/(λ²−C₃^C₄) and C₅λ^C₆/(λ²−C₇^C₈) followed by power-law pairs.
func NewRIInfo(coefficients []float64) (Formula, error) {
	if len(coefficients) < 9 {
		return nil, &ConfigError{Kind: KindRIInfo, Reason: "needs at least 9 coefficients"}
	}

	if (len(coefficients)-9)%2 != 0 {
		return nil, &ConfigError{Kind: KindRIInfo, Reason: "incomplete trailing term pair"}
	}

	return &riinfo{newBase(KindRIInfo, coefficients)}, nil
}

func (f *riinfo) N(lambda float64) float64 {
	l2 := lambda * lambda

	n2 := f.coeff[0]
	for _, i := range []int{1, 5} {
		a, p1, c, p2 := f.coeff[i], f.coeff[i+1], f.coeff[i+2], f.coeff[i+3]
		n2 += a * math.Pow(lambda, p1) / (l2 - math.Pow(c, p2))
	}

	for i := 9; i+1 < len(f.coeff); i += 2 {
		a, p := f.coeff[i], f.coeff[i+1]
		n2 += a * math.Pow(lambda, p)
	}

	return math.Sqrt(n2)
}

type cauchy struct{ base }

// NewCauchy builds the Cauchy form n = C₀ + Σ Aᵢλ^Pᵢ.
func NewCauchy(coefficients []float64) (Formula, error) {
	if err := requireTermPairs(KindCauchy, coefficients); err != nil {
		return nil, err
	}

	return &cauchy{newBase(KindCauchy, coefficients)}, nil
}

func (f *cauchy) N(lambda float64) float64 {
	n := f.coeff[0]
	for i := 1; i+1 < len(f.coeff); i += 2 {
		a, p := f.coeff[i], f.coeff[i+1]
		n += a * math.Pow(lambda, p)
	}

	return n
}

func (f *cauchy) DNDLambda(lambda float64) float64 {
	dn := 0.0
	for i := 1; i+1 < len(f.coeff); i += 2 {
		a, p := f.coeff[i], f.coeff[i+1]
		dn += a * p * math.Pow(lambda, p-1)
	}

	return dn
}

type gases struct{ base }

// NewGases builds the gas form n = 1 + C₀ + Σ Bᵢ/(Cᵢ−λ⁻²).
func NewGases(coefficients []float64) (Formula, error) {
	if err := requireTermPairs(KindGases, coefficients); err != nil {
		return nil, err
	}

	return &gases{newBase(KindGases, coefficients)}, nil
}

func (f *gases) N(lambda float64) float64 {
	invL2 := 1 / (lambda * lambda)

	n := 1 + f.coeff[0]
	for i := 1; i+1 < len(f.coeff); i += 2 {
		b, c := f.coeff[i], f.coeff[i+1]
		n += b / (c - invL2)
	}

	return n
}

func (f *gases) DNDLambda(lambda float64) float64 {
	invL2 := 1 / (lambda * lambda)
	invL3 := invL2 / lambda

	dn := 0.0
	for i := 1; i+1 < len(f.coeff); i += 2 {
		b, c := f.coeff[i], f.coeff[i+1]
		den := c - invL2
		dn += -2 * b * invL3 / (den * den)
	}

	return dn
}

type herzberger struct{ base }

// NewHerzberger builds the Herzberger infrared form
// n = C₀ + C₁/(λ²−0.028) + C₂/(λ²−0.028)² + C₃λ² + C₄λ⁴ + ...
func NewHerzberger(coefficients []float64) (Formula, error) {
	if len(coefficients) < 3 {
		return nil, &ConfigError{Kind: KindHerzberger, Reason: "needs at least 3 coefficients"}
	}

	return &herzberger{newBase(KindHerzberger, coefficients)}, nil
}

func (f *herzberger) N(lambda float64) float64 {
	l2 := lambda * lambda
	den := l2 - herzbergerPole

	n := f.coeff[0] + f.coeff[1]/den + f.coeff[2]/(den*den)

	power := l2
	for _, c := range f.coeff[3:] {
		n += c * power
		power *= l2
	}

	return n
}

func (f *herzberger) DNDLambda(lambda float64) float64 {
	l2 := lambda * lambda
	den := l2 - herzbergerPole

	dn := -2*lambda*f.coeff[1]/(den*den) - 4*lambda*f.coeff[2]/(den*den*den)

	power := lambda
	for i, c := range f.coeff[3:] {
		exp := float64(2 * (i + 1))
		dn += c * exp * power
		power *= l2
	}

	return dn
}

type retro struct{ base }

// NewRetro builds the Lorentz-Lorenz ("retro") form with
// α = C₀ + C₁λ²/(λ²−C₂) + C₃λ² and n² = (1+2α)/(1−α).
func NewRetro(coefficients []float64) (Formula, error) {
	if len(coefficients) != 4 {
		return nil, &ConfigError{Kind: KindRetro, Reason: "needs exactly 4 coefficients"}
	}

	return &retro{newBase(KindRetro, coefficients)}, nil
}

func (f *retro) N(lambda float64) float64 {
	l2 := lambda * lambda
	alpha := f.coeff[0] + f.coeff[1]*l2/(l2-f.coeff[2]) + f.coeff[3]*l2

	return math.Sqrt((1 + 2*alpha) / (1 - alpha))
}

type exotic struct{ base }

// NewExotic builds the exotic resonance form
// n² = C₀ + C₁/(λ²−C₂) + C₃(λ−C₄)/((λ−C₄)²+C₅).
func NewExotic(coefficients []float64) (Formula, error) {
	if len(coefficients) != 6 {
		return nil, &ConfigError{Kind: KindExotic, Reason: "needs exactly 6 coefficients"}
	}

	return &exotic{newBase(KindExotic, coefficients)}, nil
}

func (f *exotic) N(lambda float64) float64 {
	l2 := lambda * lambda
	shift := lambda - f.coeff[4]

	n2 := f.coeff[0]
	n2 += f.coeff[1] / (l2 - f.coeff[2])
	n2 += f.coeff[3] * shift / (shift*shift + f.coeff[5])

	return math.Sqrt(n2)
}
