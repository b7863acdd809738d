package mbfit

import "fmt"

// DomainError reports an evaluation of the surface impedance model outside
// its valid physical domain (T <= 0, T >= Tc, or fc <= 0). During
// optimization the driver converts it into a finite objective penalty; on a
// final converged point or in direct calls it is returned to the caller.
type DomainError struct {
	Op string  // operation that hit the violation
	T  float64 // temperature at the point of failure (K)
	Tc float64 // critical temperature proposed at the point of failure (K)
	Fc float64 // resonance frequency (Hz)
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: model undefined for T=%g K, Tc=%g K, fc=%g Hz (need 0 < T < Tc, fc > 0)",
		e.Op, e.T, e.Tc, e.Fc)
}

// FitConvergenceError reports that a solver failed to converge or that the
// covariance estimate is singular even after ridge regularization. LastParams
// carries the last iterate for diagnostics.
type FitConvergenceError struct {
	Solver     string
	Reason     string
	LastParams []float64
}

func (e *FitConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge: %s (last iterate %v)", e.Solver, e.Reason, e.LastParams)
}

// DatasetShapeError reports a malformed sweep dataset: mismatched array
// lengths, or fewer data points than free fit parameters. It is raised
// before any fitting begins.
type DatasetShapeError struct {
	Temperatures int
	Values       int
	Params       int
}

func (e *DatasetShapeError) Error() string {
	if e.Temperatures != e.Values {
		return fmt.Sprintf("dataset shape mismatch: %d temperatures vs %d values", e.Temperatures, e.Values)
	}
	return fmt.Sprintf("dataset underdetermined: %d points for %d free parameters", e.Temperatures, e.Params)
}
