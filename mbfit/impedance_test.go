package mbfit

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() *Model {
	return NewModel(DefaultConfig())
}

func TestSurfaceImpedance_DomainErrors(t *testing.T) {
	m := testModel()
	cases := []struct {
		name       string
		T, Tc, fc  float64
	}{
		{"zero temperature", 0, 1.2, 5e9},
		{"negative temperature", -0.1, 1.2, 5e9},
		{"at critical temperature", 1.2, 1.2, 5e9},
		{"above critical temperature", 1.3, 1.2, 5e9},
		{"zero frequency", 0.1, 1.2, 0},
		{"negative critical temperature", 0.1, -1.2, 5e9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := m.SurfaceImpedance(c.T, c.Tc, c.fc)
			var domErr *DomainError
			require.ErrorAs(t, err, &domErr)
		})
	}
}

func TestSurfaceImpedance_ResistanceNonNegative(t *testing.T) {
	m := testModel()
	const Tc, fc = 1.2, 5e9
	for T := 0.05; T < Tc; T += 0.05 {
		zs, err := m.SurfaceImpedance(T, Tc, fc)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, real(zs), 0.0, "Rs(%g)", T)
	}
}

func TestSurfaceImpedance_ResistanceMonotonic(t *testing.T) {
	// Thermal quasiparticle loss increases toward Tc.
	m := testModel()
	const Tc, fc = 1.2, 5e9
	prev := -1.0
	for T := 0.1; T < 0.95*Tc; T += 0.05 {
		zs, err := m.SurfaceImpedance(T, Tc, fc)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, real(zs), prev, "Rs(%g)", T)
		prev = real(zs)
	}
}

func TestSurfaceImpedance_Deterministic(t *testing.T) {
	m := testModel()
	a, err := m.SurfaceImpedance(0.3, 1.2, 5e9)
	require.NoError(t, err)
	b, err := m.SurfaceImpedance(0.3, 1.2, 5e9)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestThinFilmKernel_MatchesAsymptoticForThickFilm(t *testing.T) {
	// With the default 5 mm film the coth correction is exactly 1 in
	// double precision, so the delegated kernel must coincide with the
	// asymptotic formula.
	asym := testModel()
	cfg := DefaultConfig()
	cfg.UseAlternateImpedanceKernel = true
	alt := NewModel(cfg)

	for _, T := range []float64{0.1, 0.3, 0.6, 0.9} {
		a, err := asym.SurfaceImpedance(T, 1.2, 5e9)
		require.NoError(t, err)
		b, err := alt.SurfaceImpedance(T, 1.2, 5e9)
		require.NoError(t, err)
		assert.InEpsilon(t, real(a), real(b), 1e-9, "Rs at T=%g", T)
		assert.InEpsilon(t, imag(a), imag(b), 1e-9, "Xs at T=%g", T)
	}
}

func TestThinFilmKernel_ThinFilmRaisesImpedance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseAlternateImpedanceKernel = true
	cfg.FilmThickness = 20e-9
	thin := NewModel(cfg)

	thick := testModel()
	a, err := thick.SurfaceImpedance(0.3, 1.2, 5e9)
	require.NoError(t, err)
	b, err := thin.SurfaceImpedance(0.3, 1.2, 5e9)
	require.NoError(t, err)
	assert.Greater(t, cmplx.Abs(b), cmplx.Abs(a))
}

func TestSurfaceImpedance_CustomKernelInjection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseAlternateImpedanceKernel = true
	cfg.Kernel = kernelFunc(func(p KernelParams) (complex128, error) {
		// The model must forward the full physical parameter set.
		assert.Equal(t, "mb", p.Method)
		assert.Equal(t, 5e9, p.Freq)
		assert.Equal(t, cfg.FilmThickness, p.Thickness)
		assert.Equal(t, cfg.NormalConductivity, p.SigmaN)
		assert.Equal(t, cfg.PenetrationDepth, p.Lambda0)
		assert.InDelta(t, gapRatio*BoltzmannEV*1.2, p.Vgap0, 1e-12)
		return complex(1, 2), nil
	})
	m := NewModel(cfg)

	zs, err := m.SurfaceImpedance(0.3, 1.2, 5e9)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 2), zs)
}

type kernelFunc func(p KernelParams) (complex128, error)

func (f kernelFunc) SurfaceImpedance(p KernelParams) (complex128, error) { return f(p) }

func TestThinFilmKernel_DomainError(t *testing.T) {
	k := ThinFilmKernel{}
	_, err := k.SurfaceImpedance(KernelParams{Freq: 5e9, T: 1.3, Tc: 1.2})
	var domErr *DomainError
	assert.True(t, errors.As(err, &domErr))
}
