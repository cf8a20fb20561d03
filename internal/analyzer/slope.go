package analyzer

import "errors"

// CalculateSlope computes the ordinary-least-squares slope of the values
// taken as y over x = 0..n-1. Units are y-delta per step.
func CalculateSlope(values []float64) (float64, error) {
	n := len(values)
	if n < 2 {
		return 0, errors.New("not enough data for slope calculation")
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0, errors.New("degenerate x range for slope calculation")
	}
	return (fn*sumXY - sumX*sumY) / denom, nil
}

// CalculateVariance computes the population variance of the values.
func CalculateVariance(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("no data for variance calculation")
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(values)), nil
}
