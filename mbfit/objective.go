package mbfit

import "math"

// Law selects which physical observable is being fitted.
type Law int

const (
	// LawQi fits delta(1/Qi)(T) = alpha * (Rs(T) - Rs(T0)) / Xs(T0).
	LawQi Law = iota
	// LawFc fits delta(fc)/fc(T) = -alpha/2 * (Xs(T) - Xs(T0)) / Xs(T0).
	LawFc
)

// Parameterization selects the second fit variable alongside Tc.
type Parameterization int

const (
	// ParamAlpha fits (Tc, alpha) with Xs(T0) taken from the model.
	ParamAlpha Parameterization = iota
	// ParamLambda fits (Tc, lambdaL): the reference reactance is the analytic
	// small-signal form 2*pi*fc0*mu0*lambdaL and alpha is fixed to the
	// simulation-supplied estimate.
	ParamLambda
)

// NumFitParams is the free parameter count shared by every variant.
const NumFitParams = 2

// Objective is the parameterized prediction/residual pair for one (law,
// parameterization) variant. It replaces the four-way hand-duplicated
// function set with a single factory-built value.
type Objective struct {
	model    *Model
	law      Law
	param    Parameterization
	t0       float64 // reference temperature, min of the sweep
	fc0      float64 // resonance frequency at the reference temperature
	alphaSim float64 // fixed alpha for the lambda parameterization
}

// NewObjective builds the objective for the chosen law and parameterization.
// temps is the observed temperature set; the reference temperature T0 is its
// minimum. A zero or negative T0 leaves the impedance model undefined and
// fails with DomainError up front rather than propagating NaN.
func NewObjective(model *Model, law Law, param Parameterization, temps []float64, fc0, alphaSim float64) (*Objective, error) {
	if len(temps) == 0 {
		return nil, &DatasetShapeError{Temperatures: 0, Values: 0, Params: NumFitParams}
	}
	t0 := temps[0]
	for _, t := range temps[1:] {
		if t < t0 {
			t0 = t
		}
	}
	if t0 <= 0 || fc0 <= 0 {
		return nil, &DomainError{Op: "objective", T: t0, Fc: fc0}
	}
	return &Objective{
		model:    model,
		law:      law,
		param:    param,
		t0:       t0,
		fc0:      fc0,
		alphaSim: alphaSim,
	}, nil
}

// T0 returns the reference temperature.
func (o *Objective) T0() float64 { return o.t0 }

// Parameterization returns the variant's second-parameter interpretation.
func (o *Objective) Parameterization() Parameterization { return o.param }

// Eval computes the model prediction at each temperature in T for trial
// parameters (Tc, p). Under ParamAlpha p is alpha; under ParamLambda p is
// the penetration depth lambdaL. The impedance model is evaluated
// independently per element.
func (o *Objective) Eval(T []float64, Tc, p float64) ([]float64, error) {
	zs0, err := o.model.SurfaceImpedance(o.t0, Tc, o.fc0)
	if err != nil {
		return nil, err
	}
	rs0 := real(zs0)
	xs0 := imag(zs0)

	// Reference reactance and coupling coefficient per parameterization.
	alpha := p
	xsRef := xs0
	if o.param == ParamLambda {
		alpha = o.alphaSim
		xsRef = 2 * math.Pi * o.fc0 * Mu0 * p
	}

	out := make([]float64, len(T))
	for i, t := range T {
		zs, err := o.model.SurfaceImpedance(t, Tc, o.fc0)
		if err != nil {
			return nil, err
		}
		switch o.law {
		case LawQi:
			out[i] = alpha * (real(zs) - rs0) / xsRef
		case LawFc:
			out[i] = -0.5 * alpha * (imag(zs) - xs0) / xsRef
		}
	}
	return out, nil
}

// Residuals computes the squared prediction error per point for the solver
// parameter vector params = [Tc, p]. The squared form keeps the objective
// stable near singularities in the reference reactance.
func (o *Objective) Residuals(params []float64, T, data []float64) ([]float64, error) {
	pred, err := o.Eval(T, params[0], params[1])
	if err != nil {
		return nil, err
	}
	res := make([]float64, len(T))
	for i := range pred {
		d := pred[i] - data[i]
		res[i] = d * d
	}
	return res, nil
}
