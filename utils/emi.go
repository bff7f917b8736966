package utils

import "math"

// MonthlyEMI returns the equated monthly instalment for principal repaid over
// months at an annual percentage rate.
func MonthlyEMI(principal, annualRate float64, months int) float64 {
	if months <= 0 || principal <= 0 {
		return 0
	}
	r := annualRate / 12 / 100
	if r == 0 {
		return principal / float64(months)
	}
	f := math.Pow(1+r, float64(months))
	return principal * r * f / (f - 1)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
