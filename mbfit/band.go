package mbfit

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ResidualStd estimates the measurement noise as the population standard
// deviation of (observed - predicted) at the observed points.
func ResidualStd(observed, predicted []float64) float64 {
	diff := make([]float64, len(observed))
	for i := range observed {
		diff[i] = observed[i] - predicted[i]
	}
	return stat.PopStdDev(diff, nil)
}

// PredictionBand builds pointwise prediction bounds by Monte Carlo: each
// resample perturbs the dense-grid prediction with independent Gaussian
// noise of the estimated standard deviation, and the empirical quantiles at
// (1 - confidence) and confidence across resamples become the upper and
// lower curves.
//
// This construction assumes homoscedastic, model-independent noise and does
// not propagate parameter uncertainty into the prediction; it is an
// approximation pending replacement by bootstrap or delta-method
// propagation.
func PredictionBand(pred []float64, noise float64, resamples int, confidence float64, seed int64) (upper, lower []float64) {
	upper = make([]float64, len(pred))
	lower = make([]float64, len(pred))

	if noise == 0 || resamples <= 0 {
		copy(upper, pred)
		copy(lower, pred)
		return upper, lower
	}

	normal := distuv.Normal{
		Mu:    0,
		Sigma: noise,
		Src:   rand.NewPCG(uint64(seed), uint64(seed)+1),
	}

	// Noise draws are independent across grid points, so each point's
	// resample set can be generated and reduced on its own.
	draws := make([]float64, resamples)
	for i, p := range pred {
		for j := range draws {
			draws[j] = p + normal.Rand()
		}
		sort.Float64s(draws)
		upper[i] = stat.Quantile(1-confidence, stat.Empirical, draws, nil)
		lower[i] = stat.Quantile(confidence, stat.Empirical, draws, nil)
	}
	return upper, lower
}
