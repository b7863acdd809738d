// Package resonator defines the contract with the external resonator
// circle-fit library that turns a raw transmission (S21) measurement into
// quality factors and a resonance frequency. File parsing and the
// damped-coupled-mode (DCM) fit itself are implemented by the collaborator;
// this package only fixes the exchange types.
package resonator

// Parameter vector indices in Result.Params for the DCM method.
const (
	ParamQL      = 0 // loaded quality factor
	ParamQcMag   = 1 // coupling quality factor magnitude
	ParamFc      = 2 // resonance frequency (Hz)
	ParamQcPhase = 3 // coupling quality factor phase (rad)
)

// Confidence-interval half-width indices in Result.ConfInts.
const (
	ConfQi = 1 // internal quality factor
	ConfFc = 5 // resonance frequency
)

// MethodConfig selects and tunes the collaborator's fit method.
type MethodConfig struct {
	Method           string    // fit method name, e.g. "DCM"
	PreprocessMethod string    // raw-data normalization mode, e.g. "linear"
	MCIterations     int       // Monte Carlo re-initialization iterations
	MCRounds         int       // samples per Monte Carlo round
	MCFix            []string  // parameter names held fixed during fitting
	ManualInit       []float64 // optional manual initial guess (nil = automatic)
	MCStepConst      float64   // Monte Carlo step-size constant
}

// Result is one converged resonator fit.
type Result struct {
	Params    []float64 // parameter vector [QL, QcMag, fc, QcPhase, ...]
	ConfInts  []float64 // confidence-interval half-width per parameter
	FitError  float64   // collaborator's fit error metric
	InitGuess []float64 // initial guess the collaborator settled on
}

// Fitter is the external resonator-fitting collaborator. source is an
// opaque handle to one temperature's transmission data (typically a file
// path).
type Fitter interface {
	Fit(source string, cfg MethodConfig) (*Result, error)
}
