package mbfit

import "math"

// Modified Bessel functions of the first and second kind, order zero,
// needed by the asymptotic surface-impedance kernel. Polynomial
// approximations from Abramowitz & Stegun 9.8.1-9.8.6 (absolute error
// below 2e-7 over the full range). gonum carries the ordinary Bessel
// functions only, so these live here.

// besselI0 returns I0(x) for x >= 0.
func besselI0(x float64) float64 {
	if x < 3.75 {
		t := (x / 3.75) * (x / 3.75)
		return 1.0 + t*(3.5156229+t*(3.0899424+t*(1.2067492+
			t*(0.2659732+t*(0.0360768+t*0.0045813)))))
	}
	t := 3.75 / x
	poly := 0.39894228 + t*(0.01328592+t*(0.00225319+t*(-0.00157565+
		t*(0.00916281+t*(-0.02057706+t*(0.02635537+
			t*(-0.01647633+t*0.00392377)))))))
	return poly * math.Exp(x) / math.Sqrt(x)
}

// besselK0 returns K0(x) for x > 0. K0 diverges as x -> 0; callers guard
// the argument away from zero.
func besselK0(x float64) float64 {
	if x <= 2.0 {
		t := x * x / 4.0
		poly := -0.57721566 + t*(0.42278420+t*(0.23069756+t*(0.03488590+
			t*(0.00262698+t*(0.00010750+t*0.00000740)))))
		return -math.Log(x/2.0)*besselI0(x) + poly
	}
	t := 2.0 / x
	poly := 1.25331414 + t*(-0.07832358+t*(0.02189568+t*(-0.01062446+
		t*(0.00587872+t*(-0.00251540+t*0.00053208)))))
	return poly * math.Exp(-x) / math.Sqrt(x)
}
