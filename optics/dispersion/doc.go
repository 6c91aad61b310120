// Package dispersion implements parametric dispersion relations mapping
// wavelength to refractive index.
//
// The nine analytic formula families of the refractiveindex.info database
// are built in, alongside interpolated tabulated-n data:
//
//   - [KindSellmeier]:  n² = 1 + C₀ + Σ Bᵢλ²/(λ²−Cᵢ²)  (preferred)
//   - [KindSellmeier2]: n² = 1 + C₀ + Σ Bᵢλ²/(λ²−Cᵢ)
//   - [KindPolynomial]: n² = C₀ + Σ Aᵢλ^Pᵢ
//   - [KindRIInfo]:     mixed resonance/power-law form
//   - [KindCauchy]:     n  = C₀ + Σ Aᵢλ^Pᵢ
//   - [KindGases]:      n  = 1 + C₀ + Σ Bᵢ/(Cᵢ−λ⁻²)
//   - [KindHerzberger]: infrared polynomial with 0.028 µm² poles
//   - [KindRetro]:      Lorentz-Lorenz form
//   - [KindExotic]:     resonance form with an asymmetric term
//   - [KindTabulated]:  cubic Hermite interpolation of (λ, n) samples
//
// Wavelengths are in µm throughout, matching the catalog convention.
//
// Formula kinds are resolved through a registry keyed by the catalog
// `type` string, so additional families can be added with [Register]
// without touching this package.
package dispersion
