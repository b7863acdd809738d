package mbfit

// Physical constants (CODATA 2018 exact values where defined).
const (
	BoltzmannJ   = 1.380649e-23      // kB in J/K
	PlanckJ      = 6.62607015e-34    // h in J*s
	ElectronVolt = 1.602176634e-19   // e in C (also J per eV)
	Mu0          = 1.25663706212e-6  // vacuum permeability in H/m
	BoltzmannEV  = BoltzmannJ / ElectronVolt // kB in eV/K
)

// BCS weak-coupling ratios used by the gap model.
const (
	gapRatio    = 1.762 // Delta0 / (kB * Tc)
	gapTanhCoef = 1.74  // coefficient in the tanh interpolation of Delta(T)
)
