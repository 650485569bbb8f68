package pipeline

import "math"

// SafeDiv returns n/d, or NaN when the denominator is zero. NaN stands for
// "metric undefined" and propagates through later arithmetic and rounding,
// so a zero denominator can never fault the pipeline.
func SafeDiv(n, d float64) float64 {
	if d == 0 {
		return math.NaN()
	}
	return n / d
}

// Round2 rounds to two decimal places. math.Round propagates NaN, so an
// undefined metric stays undefined through rounding.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
