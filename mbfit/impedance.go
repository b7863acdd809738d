package mbfit

import (
	"math"
	"math/cmplx"
)

// === Kernel ===

// KernelParams is the full physical input set for a delegated surface
// impedance evaluation. Gap is the dimensionless gap proxy Delta(T)/Delta0,
// Vgap0 the zero-temperature gap energy in eV.
type KernelParams struct {
	Freq      float64 // resonance frequency (Hz)
	Thickness float64 // film thickness (m)
	T         float64 // temperature (K)
	Gap       float64 // gap proxy tanh(1.74 sqrt(Tc/T - 1))
	Method    string  // kernel method tag, e.g. "mb"
	SigmaN    float64 // normal-state conductivity (S/m)
	Tc        float64 // critical temperature (K)
	Vgap0     float64 // zero-temperature gap energy (eV)
	Lambda0   float64 // zero-temperature penetration depth (m)
}

// Kernel is the delegated Mattis-Bardeen surface-impedance routine. It must
// satisfy the same physical contract as the built-in asymptotic formula:
// complex output Zs = Rs + jXs with Rs >= 0, continuous with the asymptotic
// result in the regime where both are valid.
type Kernel interface {
	SurfaceImpedance(p KernelParams) (complex128, error)
}

// === Model ===

// Model evaluates the superconducting surface impedance as a function of
// temperature. The material constants are fixed at construction and never
// mutated; only (Tc, alpha/lambda) vary during fitting.
type Model struct {
	Lambda0       float64 // zero-temperature penetration depth (m)
	FilmThickness float64 // film thickness (m)
	SigmaN        float64 // normal-state conductivity (S/m)

	// UseAlternateKernel selects the delegated kernel instead of the
	// asymptotic BCS formula. Kernel defaults to ThinFilmKernel.
	UseAlternateKernel bool
	Kernel             Kernel
}

// NewModel builds a Model from a validated Config.
func NewModel(cfg *Config) *Model {
	m := &Model{
		Lambda0:            cfg.PenetrationDepth,
		FilmThickness:      cfg.FilmThickness,
		SigmaN:             cfg.NormalConductivity,
		UseAlternateKernel: cfg.UseAlternateImpedanceKernel,
		Kernel:             cfg.Kernel,
	}
	if m.Kernel == nil {
		m.Kernel = ThinFilmKernel{}
	}
	return m
}

// SurfaceImpedance computes Zs = Rs + jXs at temperature T for trial
// critical temperature Tc and resonance frequency fc. Valid only for
// 0 < T < Tc and fc > 0; outside that domain a DomainError is returned.
func (m *Model) SurfaceImpedance(T, Tc, fc float64) (complex128, error) {
	if T <= 0 || Tc <= 0 || T >= Tc || fc <= 0 {
		return 0, &DomainError{Op: "surface_impedance", T: T, Tc: Tc, Fc: fc}
	}

	// BCS gap interpolation and zero-temperature gap energy (eV).
	gap := math.Tanh(gapTanhCoef * math.Sqrt(Tc/T-1.0))
	vgap0 := gapRatio * BoltzmannEV * Tc

	if m.UseAlternateKernel {
		return m.Kernel.SurfaceImpedance(KernelParams{
			Freq:      fc,
			Thickness: m.FilmThickness,
			T:         T,
			Gap:       gap,
			Method:    "mb",
			SigmaN:    m.SigmaN,
			Tc:        Tc,
			Vgap0:     vgap0,
			Lambda0:   m.Lambda0,
		})
	}

	s1, s2 := conductivityRatios(T, Tc, fc, vgap0)
	sigma := complex(m.SigmaN*s1, -m.SigmaN*s2)
	return cmplx.Sqrt(complex(0, Mu0*2*math.Pi*fc) / sigma), nil
}

// conductivityRatios evaluates the asymptotic Mattis-Bardeen expressions for
// sigma1/sigman and sigma2/sigman in the hf << Delta, kT << Delta regime.
// x = hf / 2kT is the photon-to-thermal energy ratio; K0(x) diverges as
// x -> 0, which is why the model excludes T <= 0.
func conductivityRatios(T, Tc, fc, vgap0 float64) (s1, s2 float64) {
	x := PlanckJ * fc / (2 * BoltzmannJ * T)
	photonEV := PlanckJ * fc / ElectronVolt
	boltz := math.Exp(-gapRatio * Tc / T)

	s1 = (4 * vgap0 / photonEV) * boltz * math.Sinh(x) * besselK0(x)
	s2 = math.Pi * vgap0 / photonEV *
		(1 - math.Sqrt(2*BoltzmannEV*T/vgap0)*boltz -
			2*boltz*math.Exp(-x)*besselI0(x))
	return s1, s2
}

// === ThinFilmKernel ===

// ThinFilmKernel is the default delegated kernel: the same local-limit
// Mattis-Bardeen conductivity as the asymptotic formula, with the bulk
// impedance corrected for finite film thickness by coth(gamma*d). For
// thickness much larger than the penetration depth coth -> 1 and the two
// strategies coincide.
type ThinFilmKernel struct{}

func (ThinFilmKernel) SurfaceImpedance(p KernelParams) (complex128, error) {
	if p.T <= 0 || p.Tc <= 0 || p.T >= p.Tc || p.Freq <= 0 {
		return 0, &DomainError{Op: "thin_film_kernel", T: p.T, Tc: p.Tc, Fc: p.Freq}
	}
	s1, s2 := conductivityRatios(p.T, p.Tc, p.Freq, p.Vgap0)
	sigma := complex(p.SigmaN*s1, -p.SigmaN*s2)
	jwmu := complex(0, Mu0*2*math.Pi*p.Freq)

	zsBulk := cmplx.Sqrt(jwmu / sigma)
	gamma := cmplx.Sqrt(jwmu * sigma)
	// coth(gamma d): the impedance of a film backed by vacuum rises as the
	// film thins below the effective penetration depth.
	return zsBulk / cmplx.Tanh(gamma*complex(p.Thickness, 0)), nil
}
