package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qres-lab/mbfit/mbfit"
)

// SweepFile is the YAML schema for one temperature sweep. Either the
// precomputed qi/fc arrays or a sources list must be present; the CLI only
// supports precomputed values, since the resonator circle fit lives in an
// external library.
type SweepFile struct {
	Temperatures []float64 `yaml:"temperatures"`
	Qi           []float64 `yaml:"qi"`
	QiErr        []float64 `yaml:"qi_err"`
	Fc           []float64 `yaml:"fc"`
	FcErr        []float64 `yaml:"fc_err"`
	Sources      []string  `yaml:"sources"`

	Config SweepOptions `yaml:"config"`
}

// SweepOptions are the recognized per-sweep configuration overrides.
// Absent fields keep the defaults.
type SweepOptions struct {
	PenetrationDepth   *float64 `yaml:"penetration_depth"`
	FilmThickness      *float64 `yaml:"film_thickness"`
	NormalConductivity *float64 `yaml:"normal_conductivity"`
	GuessTc            *float64 `yaml:"guess_tc"`
	GuessAlpha         *float64 `yaml:"guess_alpha"`
	GuessLambda        *float64 `yaml:"guess_lambda"`
	UseAlternateKernel *bool    `yaml:"use_alternate_impedance_kernel"`
	AlphaSim           *float64 `yaml:"alpha_sim"`
	AlphaSimError      *float64 `yaml:"alpha_sim_error"`
	Preprocess         *string  `yaml:"preprocess_normalization"`
}

// BuildConfig merges the file's overrides onto the defaults.
func (sf *SweepFile) BuildConfig(resamples int, confidence float64, seed int64) *mbfit.Config {
	cfg := mbfit.DefaultConfig()
	cfg.MonteCarloResamples = resamples
	cfg.ConfidenceLevel = confidence
	cfg.Seed = seed

	o := sf.Config
	if o.PenetrationDepth != nil {
		cfg.PenetrationDepth = *o.PenetrationDepth
		cfg.InitialGuess.Lambda = *o.PenetrationDepth
	}
	if o.FilmThickness != nil {
		cfg.FilmThickness = *o.FilmThickness
	}
	if o.NormalConductivity != nil {
		cfg.NormalConductivity = *o.NormalConductivity
	}
	if o.GuessTc != nil {
		cfg.InitialGuess.Tc = *o.GuessTc
	}
	if o.GuessAlpha != nil {
		cfg.InitialGuess.Alpha = *o.GuessAlpha
	}
	if o.GuessLambda != nil {
		cfg.InitialGuess.Lambda = *o.GuessLambda
	}
	if o.UseAlternateKernel != nil {
		cfg.UseAlternateImpedanceKernel = *o.UseAlternateKernel
	}
	if o.AlphaSim != nil {
		cfg.AlphaSim = *o.AlphaSim
	}
	if o.AlphaSimError != nil {
		cfg.AlphaSimError = *o.AlphaSimError
	}
	if o.Preprocess != nil {
		cfg.PreprocessNormalization = *o.Preprocess
	}
	return cfg
}

// ParseSweepFile decodes a YAML sweep description.
func ParseSweepFile(data []byte) (*SweepFile, error) {
	var sf SweepFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing sweep config: %w", err)
	}
	return &sf, nil
}

// LoadSweep reads a sweep YAML file and builds a ready-to-fit Sweep.
func LoadSweep(path string, resamples int, confidence float64, seed int64) (*mbfit.Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config: %w", err)
	}
	sf, err := ParseSweepFile(data)
	if err != nil {
		return nil, err
	}

	cfg := sf.BuildConfig(resamples, confidence, seed)
	sweep, err := mbfit.NewSweep(sf.Temperatures, sf.Sources, cfg, nil)
	if err != nil {
		return nil, err
	}

	if len(sf.Qi) == 0 {
		return nil, fmt.Errorf("sweep config must carry precomputed qi/fc values: resonator circle fitting is delegated to an external library")
	}
	qiErr := sf.QiErr
	if len(qiErr) == 0 {
		qiErr = make([]float64, len(sf.Qi))
	}
	fcErr := sf.FcErr
	if len(fcErr) == 0 {
		fcErr = make([]float64, len(sf.Fc))
	}
	if err := sweep.SetResults(sf.Qi, qiErr, sf.Fc, fcErr); err != nil {
		return nil, err
	}
	return sweep, nil
}
