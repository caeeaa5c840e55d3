package utils

import "math"

// Round2 rounds x to 2 decimal places. Pricing itself stays unrounded;
// this is applied at the HTTP boundary only.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
