package mbfit

import (
	"errors"
	"math"

	"github.com/maorshutman/lm"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	// DenseGridPoints is the length of the evaluation grid spanning the
	// observed temperature range.
	DenseGridPoints = 1000

	// covRidge is the ridge added to J^T J before inversion, guarding
	// near-singular Jacobians when the data barely constrains a parameter.
	covRidge = 1e-8

	// penaltyResidual replaces each squared residual when a solver step
	// leaves the model's physical domain (e.g. proposes Tc <= T0). Large
	// but finite so the solver can step back.
	penaltyResidual = 1e6

	lmIterations = 200
	lmObjTol     = 1e-16
)

// FitOutcome is the complete result of one top-level fit: authoritative
// parameters with standard errors, the dense fitted curve, the Monte Carlo
// prediction band, and a formatted label for the (out-of-scope) renderer.
// Params[0] is Tc; Params[1] is alpha or lambdaL per the parameterization.
type FitOutcome struct {
	Params    [NumFitParams]float64
	StdErrors [NumFitParams]float64

	// LMParams is the Levenberg-Marquardt optimum, logged and kept as a
	// cross-check diagnostic. Params (Nelder-Mead curve fit) is
	// authoritative.
	LMParams [NumFitParams]float64

	DenseT     []float64
	Prediction []float64
	Upper      []float64
	Lower      []float64

	ResidualStd float64
	Label       string
}

// FitGeneric runs both solvers on the objective and assembles the outcome.
// A derivative-based Levenberg-Marquardt pass minimizes the squared-residual
// function; an independent Nelder-Mead pass minimizes the sum of squared
// prediction errors and is authoritative for the reported parameters.
// Domain violations during optimization become finite penalties; a domain
// violation at the converged point is fatal and surfaces as DomainError.
func FitGeneric(temps, observed []float64, obj *Objective, cfg *Config) (*FitOutcome, error) {
	n := len(temps)
	if n != len(observed) {
		return nil, &DatasetShapeError{Temperatures: n, Values: len(observed), Params: NumFitParams}
	}
	if n < NumFitParams {
		return nil, &DatasetShapeError{Temperatures: n, Values: n, Params: NumFitParams}
	}

	x0 := initialGuess(obj, cfg)

	// Squared-residual function with domain penalty, shared by the LM
	// solver and the numeric Jacobian for the covariance estimate.
	resFn := func(dst, x []float64) {
		r, err := obj.Residuals(x, temps, observed)
		if err != nil {
			for i := range dst {
				dst[i] = penaltyResidual
			}
			return
		}
		copy(dst, r)
	}
	numJac := lm.NumJac{Func: resFn}

	lmProb := lm.LMProblem{
		Dim:        NumFitParams,
		Size:       n,
		Func:       resFn,
		Jac:        numJac.Jac,
		InitParams: append([]float64(nil), x0...),
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}
	lmRes, lmErr := lm.LM(lmProb, &lm.Settings{Iterations: lmIterations, ObjectiveTol: lmObjTol})
	if lmErr != nil {
		last := x0
		if lmRes != nil {
			last = lmRes.X
		}
		return nil, &FitConvergenceError{
			Solver:     "levenberg-marquardt",
			Reason:     lmErr.Error(),
			LastParams: append([]float64(nil), last...),
		}
	}
	logrus.Infof("least-squares optimum: Tc=%g, p=%g", lmRes.X[0], lmRes.X[1])

	// Independent curve-fit pass on the prediction function.
	sse := func(x []float64) float64 {
		pred, err := obj.Eval(temps, x[0], x[1])
		if err != nil {
			return penaltyResidual * float64(n)
		}
		var s float64
		for i := range pred {
			d := pred[i] - observed[i]
			s += d * d
		}
		return s
	}
	nmRes, nmErr := optimize.Minimize(optimize.Problem{Func: sse},
		append([]float64(nil), x0...), nil, &optimize.NelderMead{})
	if nmErr != nil {
		last := x0
		if nmRes != nil {
			last = nmRes.X
		}
		return nil, &FitConvergenceError{
			Solver:     "nelder-mead",
			Reason:     nmErr.Error(),
			LastParams: append([]float64(nil), last...),
		}
	}
	popt := append([]float64(nil), nmRes.X...)
	logrus.Infof("curve-fit optimum: Tc=%g, p=%g (objective %g)", popt[0], popt[1], nmRes.F)

	// The converged point must itself be inside the model's domain; here a
	// violation is fatal rather than penalized.
	predAtObs, err := obj.Eval(temps, popt[0], popt[1])
	if err != nil {
		return nil, err
	}

	stdErrs, err := covarianceErrors(&numJac, obj, popt, temps, observed)
	if err != nil {
		return nil, err
	}

	out := &FitOutcome{}
	copy(out.Params[:], popt)
	copy(out.StdErrors[:], stdErrs)
	copy(out.LMParams[:], lmRes.X)

	tmin := floats.Min(temps)
	tmax := floats.Max(temps)
	out.DenseT = floats.Span(make([]float64, DenseGridPoints), tmin, tmax)
	out.Prediction, err = obj.Eval(out.DenseT, popt[0], popt[1])
	if err != nil {
		return nil, err
	}

	out.ResidualStd = ResidualStd(observed, predAtObs)
	out.Upper, out.Lower = PredictionBand(out.Prediction, out.ResidualStd,
		cfg.MonteCarloResamples, cfg.ConfidenceLevel, cfg.Seed)

	out.Label = fitLabel(obj, cfg, out)
	return out, nil
}

// initialGuess selects the starting point for the variant's second
// parameter.
func initialGuess(obj *Objective, cfg *Config) []float64 {
	if obj.Parameterization() == ParamLambda {
		return []float64{cfg.InitialGuess.Tc, cfg.InitialGuess.Lambda}
	}
	return []float64{cfg.InitialGuess.Tc, cfg.InitialGuess.Alpha}
}

// covarianceErrors derives parameter standard errors from the regularized
// covariance cov = mse * (J^T J + ridge*I)^-1 evaluated at the authoritative
// optimum. mse sums the squared per-point residuals over 2N - P, matching
// the original estimator (the residual function already returns squared
// errors, so the plain sum is an SSE).
func covarianceErrors(numJac *lm.NumJac, obj *Objective, popt, temps, observed []float64) ([]float64, error) {
	n := len(temps)
	errsOut := make([]float64, NumFitParams)

	// A dataset with no residual degrees of freedom cannot constrain the
	// error bars; report them as infinite rather than spuriously small.
	if n <= NumFitParams {
		logrus.Warnf("only %d points for %d parameters: standard errors are unidentifiable", n, NumFitParams)
		for i := range errsOut {
			errsOut[i] = math.Inf(1)
		}
		return errsOut, nil
	}

	resid, err := obj.Residuals(popt, temps, observed)
	if err != nil {
		return nil, err
	}
	mse := floats.Sum(resid) / float64(2*n-NumFitParams)

	jac := mat.NewDense(n, NumFitParams, nil)
	numJac.Jac(jac, popt)

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)
	for i := 0; i < NumFitParams; i++ {
		jtj.Set(i, i, jtj.At(i, i)+covRidge)
	}

	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, &FitConvergenceError{
				Solver:     "covariance",
				Reason:     "singular normal matrix after regularization",
				LastParams: append([]float64(nil), popt...),
			}
		}
		logrus.Warnf("ill-conditioned normal matrix (cond %g): standard errors may be inflated", float64(cond))
	}

	for i := 0; i < NumFitParams; i++ {
		v := mse * inv.At(i, i)
		if v < 0 {
			errsOut[i] = math.Inf(1)
			continue
		}
		errsOut[i] = math.Sqrt(v)
	}
	return errsOut, nil
}

// fitLabel composes the human-readable parameter summary handed to the
// renderer.
func fitLabel(obj *Objective, cfg *Config, out *FitOutcome) string {
	tc := FormatValueError("T_c", out.Params[0], out.StdErrors[0])
	if obj.Parameterization() == ParamLambda {
		lambda := FormatValueError("lambda_L", out.Params[1], out.StdErrors[1])
		alphaSim := FormatValueError("alpha_s", cfg.AlphaSim, cfg.AlphaSimError)
		return lambda + "\n" + tc + "\n" + alphaSim
	}
	alpha := FormatValueError("alpha", out.Params[1], out.StdErrors[1])
	return alpha + "\n" + tc
}
