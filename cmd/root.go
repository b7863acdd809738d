package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qres-lab/mbfit/mbfit"
)

var (
	// CLI flags for the fit command
	sweepPath   string  // YAML sweep description path
	logLevel    string  // log verbosity level
	observable  string  // which observable to fit: qi, fc, or both
	useAlphaSim bool    // fit (Tc, lambda) with simulation-supplied alpha
	resamples   int     // Monte Carlo resamples for the prediction band
	confidence  float64 // confidence level for the prediction band
	seed        int64   // RNG seed for band resampling
	outPrefix   string  // prefix for CSV curve output (empty = no files)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mbfit",
	Short: "Mattis-Bardeen temperature-sweep fitting for superconducting resonators",
}

// fitCmd runs the Qi-vs-T and/or fc-vs-T fits over a sweep description
var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit Qi and fc vs. temperature to the Mattis-Bardeen model",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if sweepPath == "" {
			logrus.Fatalf("No sweep file provided. Use --sweep.")
		}

		sweep, err := LoadSweep(sweepPath, resamples, confidence, seed)
		if err != nil {
			logrus.Fatalf("Loading sweep %s: %v", sweepPath, err)
		}

		run := func(name string, fit func(bool) (*mbfit.FitOutcome, error)) {
			out, err := fit(useAlphaSim)
			if err != nil {
				logrus.Fatalf("%s fit failed: %v", name, err)
			}
			logrus.Infof("%s fit:\n%s", name, out.Label)
			if outPrefix != "" {
				path := fmt.Sprintf("%s_%s.csv", outPrefix, name)
				if err := WriteCurveCSV(path, out); err != nil {
					logrus.Fatalf("Writing %s: %v", path, err)
				}
				logrus.Infof("Wrote fitted curve to %s", path)
			}
		}

		switch observable {
		case "qi":
			run("qi", sweep.FitQiVsTemperature)
		case "fc":
			run("fc", sweep.FitFcVsTemperature)
		case "both":
			run("qi", sweep.FitQiVsTemperature)
			run("fc", sweep.FitFcVsTemperature)
		default:
			logrus.Fatalf("Unknown observable %q (want qi, fc, or both)", observable)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	fitCmd.Flags().StringVar(&sweepPath, "sweep", "", "Path to the YAML sweep description")
	fitCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	fitCmd.Flags().StringVar(&observable, "observable", "both", "Observable to fit: qi, fc, or both")
	fitCmd.Flags().BoolVar(&useAlphaSim, "use-alpha-sim", false, "Fit (Tc, lambda_L) with alpha fixed to the simulation estimate")
	fitCmd.Flags().IntVar(&resamples, "resamples", 10000, "Monte Carlo resamples for the prediction band")
	fitCmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level for the prediction band")
	fitCmd.Flags().Int64Var(&seed, "seed", 1, "Seed for band resampling")
	fitCmd.Flags().StringVar(&outPrefix, "out", "", "Prefix for CSV curve output files")

	rootCmd.AddCommand(fitCmd)
}
