package mbfit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig trims the Monte Carlo resample count so the band stage stays
// fast under `go test`.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.MonteCarloResamples = 200
	return cfg
}

func synthesize(t *testing.T, obj *Objective, temps []float64, Tc, p float64) []float64 {
	t.Helper()
	data, err := obj.Eval(temps, Tc, p)
	require.NoError(t, err)
	return data
}

func TestFitGeneric_RoundTripQiAlpha(t *testing.T) {
	temps := []float64{0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45}
	cfg := testConfig()
	// Start away from the truth so convergence is meaningful.
	cfg.InitialGuess.Tc = 1.0
	cfg.InitialGuess.Alpha = 3e-6

	m := NewModel(cfg)
	obj, err := NewObjective(m, LawQi, ParamAlpha, temps, 5e9, cfg.AlphaSim)
	require.NoError(t, err)

	const trueTc, trueAlpha = 1.2, 1e-5
	data := synthesize(t, obj, temps, trueTc, trueAlpha)

	out, err := FitGeneric(temps, data, obj, cfg)
	require.NoError(t, err)

	assert.InEpsilon(t, trueTc, out.Params[0], 1e-3)
	assert.InEpsilon(t, trueAlpha, out.Params[1], 1e-3)
	// Zero added noise: reported standard errors must be near zero.
	assert.Less(t, out.StdErrors[0], 1e-6)
	assert.Less(t, out.StdErrors[1], 1e-6)
}

func TestFitGeneric_RoundTripFcAlpha(t *testing.T) {
	temps := []float64{0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45}
	cfg := testConfig()
	cfg.InitialGuess.Tc = 1.05
	cfg.InitialGuess.Alpha = 4e-5

	m := NewModel(cfg)
	obj, err := NewObjective(m, LawFc, ParamAlpha, temps, 5e9, cfg.AlphaSim)
	require.NoError(t, err)

	const trueTc, trueAlpha = 1.2, 2e-5
	data := synthesize(t, obj, temps, trueTc, trueAlpha)

	out, err := FitGeneric(temps, data, obj, cfg)
	require.NoError(t, err)
	assert.InEpsilon(t, trueTc, out.Params[0], 1e-3)
	assert.InEpsilon(t, trueAlpha, out.Params[1], 1e-3)
}

func TestFitGeneric_RoundTripLambda(t *testing.T) {
	temps := []float64{0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45}
	cfg := testConfig()
	cfg.InitialGuess.Tc = 1.1
	cfg.InitialGuess.Lambda = 90e-9

	m := NewModel(cfg)
	obj, err := NewObjective(m, LawQi, ParamLambda, temps, 5e9, cfg.AlphaSim)
	require.NoError(t, err)

	const trueTc, trueLambda = 1.2, 65e-9
	data := synthesize(t, obj, temps, trueTc, trueLambda)

	out, err := FitGeneric(temps, data, obj, cfg)
	require.NoError(t, err)
	assert.InEpsilon(t, trueTc, out.Params[0], 1e-2)
	assert.InEpsilon(t, trueLambda, out.Params[1], 1e-2)
	// Lambda parameterization labels carry the simulation alpha line.
	assert.Contains(t, out.Label, "lambda_L")
	assert.Contains(t, out.Label, "alpha_s")
}

func TestFitGeneric_DenseGridSpansObservedRange(t *testing.T) {
	temps := []float64{0.1, 0.2, 0.3, 0.4}
	cfg := testConfig()
	m := NewModel(cfg)
	obj, err := NewObjective(m, LawQi, ParamAlpha, temps, 5e9, cfg.AlphaSim)
	require.NoError(t, err)
	data := synthesize(t, obj, temps, 1.2, 1e-5)

	out, err := FitGeneric(temps, data, obj, cfg)
	require.NoError(t, err)

	require.Len(t, out.DenseT, DenseGridPoints)
	require.Len(t, out.Prediction, DenseGridPoints)
	require.Len(t, out.Upper, DenseGridPoints)
	require.Len(t, out.Lower, DenseGridPoints)
	assert.Equal(t, 0.1, out.DenseT[0])
	assert.Equal(t, 0.4, out.DenseT[DenseGridPoints-1])
}

func TestFitGeneric_PredictionContinuousAtReference(t *testing.T) {
	temps := []float64{0.1, 0.2, 0.3, 0.4}
	cfg := testConfig()
	m := NewModel(cfg)
	for _, law := range []Law{LawQi, LawFc} {
		obj, err := NewObjective(m, law, ParamAlpha, temps, 5e9, cfg.AlphaSim)
		require.NoError(t, err)
		data := synthesize(t, obj, temps, 1.2, 1e-5)

		out, err := FitGeneric(temps, data, obj, cfg)
		require.NoError(t, err)
		// Both laws are deltas relative to T0: the fitted curve starts at 0.
		assert.InDelta(t, 0.0, out.Prediction[0], 1e-12)
	}
}

func TestFitGeneric_BarelyIdentifiableInflatesErrors(t *testing.T) {
	// Two points, two free parameters: no residual degrees of freedom.
	temps := []float64{0.2, 0.4}
	cfg := testConfig()
	m := NewModel(cfg)
	obj, err := NewObjective(m, LawQi, ParamAlpha, temps, 5e9, cfg.AlphaSim)
	require.NoError(t, err)
	data := synthesize(t, obj, temps, 1.2, 1e-5)

	out, err := FitGeneric(temps, data, obj, cfg)
	if err != nil {
		var convErr *FitConvergenceError
		require.ErrorAs(t, err, &convErr)
		return
	}
	assert.True(t, math.IsInf(out.StdErrors[0], 1), "Tc error must not be spuriously small")
	assert.True(t, math.IsInf(out.StdErrors[1], 1), "alpha error must not be spuriously small")
}

func TestFitGeneric_ShapeErrors(t *testing.T) {
	cfg := testConfig()
	m := NewModel(cfg)
	temps := []float64{0.1, 0.2, 0.3}
	obj, err := NewObjective(m, LawQi, ParamAlpha, temps, 5e9, cfg.AlphaSim)
	require.NoError(t, err)

	var shapeErr *DatasetShapeError
	_, err = FitGeneric(temps, []float64{0, 0}, obj, cfg)
	require.ErrorAs(t, err, &shapeErr)

	_, err = FitGeneric([]float64{0.1}, []float64{0}, obj, cfg)
	require.ErrorAs(t, err, &shapeErr)
}

func TestFitGeneric_RecoversFromDomainViolatingSteps(t *testing.T) {
	// An initial guess with Tc barely above the hottest observation forces
	// the solvers through penalty territory; the fit must still converge
	// rather than surface a DomainError mid-optimization.
	temps := []float64{0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45}
	cfg := testConfig()
	cfg.InitialGuess.Tc = 0.5
	cfg.InitialGuess.Alpha = 1e-5

	m := NewModel(cfg)
	obj, err := NewObjective(m, LawQi, ParamAlpha, temps, 5e9, cfg.AlphaSim)
	require.NoError(t, err)
	data := synthesize(t, obj, temps, 1.2, 1e-5)

	out, err := FitGeneric(temps, data, obj, cfg)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.2, out.Params[0], 0.05)
}

func TestFitGeneric_NoisyDataReportsFiniteErrors(t *testing.T) {
	temps := []float64{0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45}
	cfg := testConfig()
	m := NewModel(cfg)
	obj, err := NewObjective(m, LawQi, ParamAlpha, temps, 5e9, cfg.AlphaSim)
	require.NoError(t, err)

	data := synthesize(t, obj, temps, 1.2, 1e-5)
	// Deterministic perturbation at roughly 2% of the signal range.
	for i := range data {
		if i%2 == 0 {
			data[i] *= 1.02
		} else {
			data[i] *= 0.98
		}
	}

	out, err := FitGeneric(temps, data, obj, cfg)
	require.NoError(t, err)
	assert.Greater(t, out.ResidualStd, 0.0)
	for i, se := range out.StdErrors {
		assert.False(t, math.IsInf(se, 0), "std error %d", i)
		assert.False(t, math.IsNaN(se), "std error %d", i)
	}
}
