// Package mbfit fits temperature-dependent superconducting resonator
// measurements (internal quality factor Qi and resonance frequency fc) to a
// Mattis-Bardeen surface-impedance model, extracting the critical temperature
// Tc together with either a loss-participation coefficient alpha or a London
// penetration depth lambda, with uncertainty estimates.
//
// # Reading Guide
//
// Start with these three files to understand the fitting core:
//   - impedance.go: the surface impedance model Zs(T, Tc, fc) and its two
//     evaluation kernels (asymptotic BCS formula, delegated numeric routine)
//   - objective.go: builds prediction and squared-residual functions for the
//     Qi and fc laws under either parameterization
//   - driver.go: runs the Levenberg-Marquardt and Nelder-Mead solvers,
//     derives the regularized covariance, and assembles the FitOutcome
//
// # Architecture
//
// The package defines the numerical core; collaborators live behind small
// interfaces:
//   - mbfit/resonator/: contract for the external circle-fit library that
//     turns raw transmission data into (Qi, fc) per temperature
//   - Kernel: pluggable numeric Mattis-Bardeen surface-impedance routine
//     used instead of the built-in asymptotic formula when configured
//
// The Sweep orchestrator (sweep.go) owns the per-temperature dataset and
// exposes the two analysis entry points, FitQiVsTemperature and
// FitFcVsTemperature. Plotting and raw S21 parsing are out of scope; the
// FitOutcome carries everything a renderer needs (dense grid, fitted curve,
// prediction band, formatted label).
package mbfit
