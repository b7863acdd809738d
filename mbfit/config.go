package mbfit

import "fmt"

// InitialGuess holds the optimizer starting point. Tc pairs with either
// Alpha or Lambda depending on the parameterization.
type InitialGuess struct {
	Tc     float64 // critical temperature guess (K)
	Alpha  float64 // loss-participation coefficient guess
	Lambda float64 // penetration depth guess (m)
}

// Config enumerates every recognized fitting option with its default.
// Construct with DefaultConfig and override fields explicitly; Validate
// rejects unphysical values before any fitting begins.
type Config struct {
	PenetrationDepth   float64 // zero-temperature London penetration depth (m)
	FilmThickness      float64 // superconducting film thickness (m)
	NormalConductivity float64 // normal-state conductivity (S/m)

	InitialGuess InitialGuess

	// UseAlternateImpedanceKernel switches from the asymptotic BCS formula
	// to the delegated kernel (Kernel, default ThinFilmKernel).
	UseAlternateImpedanceKernel bool
	Kernel                      Kernel

	ConfidenceLevel     float64 // quantile level for the prediction band
	MonteCarloResamples int     // resamples for the prediction band
	Seed                int64   // RNG seed for band resampling

	// AlphaSim is the simulation-supplied participation ratio used in the
	// lambda parameterization, with its quoted uncertainty.
	AlphaSim      float64
	AlphaSimError float64

	// PreprocessNormalization is forwarded to the resonator fitter.
	PreprocessNormalization string
}

// DefaultConfig returns the standard configuration for a thin-film aluminum
// resonator sweep.
func DefaultConfig() *Config {
	return &Config{
		PenetrationDepth:   65e-9,
		FilmThickness:      5e-3,
		NormalConductivity: 3.767e7,
		InitialGuess: InitialGuess{
			Tc:     1.2,
			Alpha:  1e-5,
			Lambda: 65e-9,
		},
		ConfidenceLevel:         0.95,
		MonteCarloResamples:     10000,
		Seed:                    1,
		AlphaSim:                1e-4,
		AlphaSimError:           1e-5,
		PreprocessNormalization: "linear",
	}
}

// Validate checks the configuration for unphysical values.
func (c *Config) Validate() error {
	if c.PenetrationDepth <= 0 {
		return fmt.Errorf("penetration_depth must be positive, got %g", c.PenetrationDepth)
	}
	if c.FilmThickness <= 0 {
		return fmt.Errorf("film_thickness must be positive, got %g", c.FilmThickness)
	}
	if c.NormalConductivity <= 0 {
		return fmt.Errorf("normal_conductivity must be positive, got %g", c.NormalConductivity)
	}
	if c.InitialGuess.Tc <= 0 {
		return fmt.Errorf("initial_guess.tc must be positive, got %g", c.InitialGuess.Tc)
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence_level must be in (0, 1), got %g", c.ConfidenceLevel)
	}
	if c.MonteCarloResamples <= 0 {
		return fmt.Errorf("monte_carlo_resamples must be positive, got %d", c.MonteCarloResamples)
	}
	if c.AlphaSim <= 0 {
		return fmt.Errorf("alpha_sim must be positive, got %g", c.AlphaSim)
	}
	return nil
}
