package mbfit

import (
	"fmt"
	"math/cmplx"

	"github.com/sirupsen/logrus"

	"github.com/qres-lab/mbfit/mbfit/resonator"
)

// Default DCM Monte Carlo settings forwarded to the resonator fitter.
const (
	dcmMCIterations = 10
	dcmMCRounds     = 1000
	dcmMCStepConst  = 0.3
)

// Sweep owns one temperature sweep: the temperatures, their raw measurement
// sources, the per-temperature resonator fit results, and the fitting
// configuration. It exposes the two top-level analysis entry points.
type Sweep struct {
	Temperatures []float64
	TErr         []float64 // 5% temperature uncertainties, carried for the renderer
	Sources      []string

	// Parallel per-temperature arrays filled by FitResonatorResponses or
	// SetResults.
	Qi    []float64
	QiErr []float64
	Fc    []float64
	FcErr []float64

	cfg    *Config
	model  *Model
	fitter resonator.Fitter
}

// NewSweep validates the dataset and builds the sweep. sources may be nil
// when the caller supplies precomputed (Qi, fc) values via SetResults.
// A nil cfg selects DefaultConfig; a nil fitter is allowed until
// FitResonatorResponses is called.
func NewSweep(temps []float64, sources []string, cfg *Config, fitter resonator.Fitter) (*Sweep, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(temps) == 0 {
		return nil, &DatasetShapeError{Temperatures: 0, Values: 0, Params: NumFitParams}
	}
	if sources != nil && len(sources) != len(temps) {
		return nil, &DatasetShapeError{Temperatures: len(temps), Values: len(sources), Params: NumFitParams}
	}
	for _, t := range temps {
		if t <= 0 {
			return nil, &DomainError{Op: "sweep", T: t}
		}
	}

	terr := make([]float64, len(temps))
	for i, t := range temps {
		terr[i] = 0.05 * t
	}

	return &Sweep{
		Temperatures: append([]float64(nil), temps...),
		TErr:         terr,
		Sources:      append([]string(nil), sources...),
		cfg:          cfg,
		model:        NewModel(cfg),
		fitter:       fitter,
	}, nil
}

// FitResonatorResponses obtains one resonator fit per temperature from the
// external collaborator and aggregates Qi, fc, and their confidence
// half-widths into the parallel arrays consumed by the model fits.
// Qi is extracted as 1/(1/QL - Re(1/Qc)) with Qc = QcMag * exp(j*phase).
func (s *Sweep) FitResonatorResponses() error {
	if s.fitter == nil {
		return fmt.Errorf("no resonator fitter configured")
	}
	if len(s.Sources) != len(s.Temperatures) {
		return &DatasetShapeError{Temperatures: len(s.Temperatures), Values: len(s.Sources), Params: NumFitParams}
	}

	n := len(s.Sources)
	s.Qi = make([]float64, n)
	s.QiErr = make([]float64, n)
	s.Fc = make([]float64, n)
	s.FcErr = make([]float64, n)

	mc := resonator.MethodConfig{
		Method:           "DCM",
		PreprocessMethod: s.cfg.PreprocessNormalization,
		MCIterations:     dcmMCIterations,
		MCRounds:         dcmMCRounds,
		MCStepConst:      dcmMCStepConst,
	}

	for i, src := range s.Sources {
		res, err := s.fitter.Fit(src, mc)
		if err != nil {
			return fmt.Errorf("resonator fit at T=%g K: %w", s.Temperatures[i], err)
		}
		if len(res.Params) <= resonator.ParamQcPhase || len(res.ConfInts) <= resonator.ConfFc {
			return fmt.Errorf("resonator fit at T=%g K: short parameter vector (%d params, %d conf ints)",
				s.Temperatures[i], len(res.Params), len(res.ConfInts))
		}

		qc := complex(res.Params[resonator.ParamQcMag], 0) *
			cmplx.Exp(complex(0, res.Params[resonator.ParamQcPhase]))
		s.Qi[i] = 1.0 / (1.0/res.Params[resonator.ParamQL] - real(1.0/qc))
		s.Fc[i] = res.Params[resonator.ParamFc]
		s.QiErr[i] = res.ConfInts[resonator.ConfQi]
		s.FcErr[i] = res.ConfInts[resonator.ConfFc]

		logrus.Infof("fit T=%g K: Qi=%.3g +/- %.3g, fc=%.3g +/- %.3g",
			s.Temperatures[i], s.Qi[i], s.QiErr[i], s.Fc[i], s.FcErr[i])
	}
	return nil
}

// SetResults installs precomputed per-temperature resonator results,
// bypassing the external fitter.
func (s *Sweep) SetResults(qi, qiErr, fc, fcErr []float64) error {
	n := len(s.Temperatures)
	for _, arr := range [][]float64{qi, qiErr, fc, fcErr} {
		if len(arr) != n {
			return &DatasetShapeError{Temperatures: n, Values: len(arr), Params: NumFitParams}
		}
	}
	for i := 0; i < n; i++ {
		if qi[i] <= 0 || fc[i] <= 0 {
			return fmt.Errorf("invalid resonator result at T=%g K: Qi=%g, fc=%g (must be positive)",
				s.Temperatures[i], qi[i], fc[i])
		}
	}
	s.Qi = append([]float64(nil), qi...)
	s.QiErr = append([]float64(nil), qiErr...)
	s.Fc = append([]float64(nil), fc...)
	s.FcErr = append([]float64(nil), fcErr...)
	return nil
}

// refIndex returns the index of the minimum temperature; its Qi and fc are
// the reference values for all delta quantities.
func (s *Sweep) refIndex() int {
	ref := 0
	for i, t := range s.Temperatures {
		if t < s.Temperatures[ref] {
			ref = i
		}
	}
	return ref
}

func (s *Sweep) checkFittable() error {
	n := len(s.Temperatures)
	if len(s.Qi) != n || len(s.Fc) != n {
		return fmt.Errorf("no resonator results: call FitResonatorResponses or SetResults first")
	}
	if n < NumFitParams {
		return &DatasetShapeError{Temperatures: n, Values: n, Params: NumFitParams}
	}
	return nil
}

// FitQiVsTemperature fits delta(1/Qi)(T) to the Mattis-Bardeen model. With
// useAlphaSim the fit variable pair is (Tc, lambdaL) with alpha fixed to
// the simulation-supplied estimate; otherwise (Tc, alpha).
func (s *Sweep) FitQiVsTemperature(useAlphaSim bool) (*FitOutcome, error) {
	if err := s.checkFittable(); err != nil {
		return nil, err
	}
	ref := s.refIndex()
	data := make([]float64, len(s.Qi))
	for i, qi := range s.Qi {
		data[i] = 1.0/qi - 1.0/s.Qi[ref]
	}
	return s.fitObservable(LawQi, useAlphaSim, data)
}

// FitFcVsTemperature fits the fractional frequency shift delta(fc)/fc(T).
func (s *Sweep) FitFcVsTemperature(useAlphaSim bool) (*FitOutcome, error) {
	if err := s.checkFittable(); err != nil {
		return nil, err
	}
	ref := s.refIndex()
	fc0 := s.Fc[ref]
	data := make([]float64, len(s.Fc))
	for i, fc := range s.Fc {
		data[i] = (fc - fc0) / fc0
	}
	return s.fitObservable(LawFc, useAlphaSim, data)
}

func (s *Sweep) fitObservable(law Law, useAlphaSim bool, data []float64) (*FitOutcome, error) {
	param := ParamAlpha
	if useAlphaSim {
		param = ParamLambda
	}
	obj, err := NewObjective(s.model, law, param, s.Temperatures, s.Fc[s.refIndex()], s.cfg.AlphaSim)
	if err != nil {
		return nil, err
	}
	return FitGeneric(s.Temperatures, data, obj, s.cfg)
}
