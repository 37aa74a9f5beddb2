package calculator

import "errors"

// RollingMean computes the simple moving average of values over the given
// window at every index. The window expands until `window` observations have
// accumulated, so the result is defined from the first value onward:
// out[i] is the mean of values[max(0,i-window+1) .. i].
func RollingMean(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out, nil
}

// RollingMax computes the trailing maximum of values over the given window at
// every index, with the same expanding-window policy as RollingMean:
// out[i] is the max of values[max(0,i-window+1) .. i].
func RollingMax(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		max := values[start]
		for j := start + 1; j <= i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}
		out[i] = max
	}
	return out, nil
}

// PctFromHigh returns how far value sits below high, in percent:
// (value/high - 1) * 100. The result is negative or zero whenever
// value <= high. ok is false when high is zero and the ratio is undefined.
func PctFromHigh(value, high float64) (pct float64, ok bool) {
	if high == 0 {
		return 0, false
	}
	return (value/high - 1) * 100, true
}
