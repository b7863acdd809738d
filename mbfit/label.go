package mbfit

import (
	"fmt"
	"math"
	"strconv"
)

// FormatValueError renders "name: value ± error" with the uncertainty
// rounded to one significant figure and the value printed to the same
// decimal place. Infinite or NaN uncertainties are rendered as-is.
func FormatValueError(name string, val, valErr float64) string {
	if math.IsInf(valErr, 0) || math.IsNaN(valErr) {
		return fmt.Sprintf("%s: %.2g ± %g", name, val, valErr)
	}
	if valErr == 0 {
		return fmt.Sprintf("%s: %g ± 0", name, val)
	}

	// Round the uncertainty in decimal to dodge binary rounding artifacts,
	// then match the value's precision to the uncertainty's leading digit.
	errStr := fmt.Sprintf("%.1g", valErr)
	rErr, _ := strconv.ParseFloat(errStr, 64)
	exp := int(math.Floor(math.Log10(math.Abs(rErr))))

	digits := 1
	if val != 0 {
		vexp := int(math.Floor(math.Log10(math.Abs(val))))
		if d := vexp - exp + 1; d > 1 {
			digits = d
		}
	}
	return fmt.Sprintf("%s: %.*g ± %s", name, digits, val, errStr)
}
