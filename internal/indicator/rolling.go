package indicator

import "math"

// rollingMean computes the w-period simple moving average for every index
// using a running sum, so each step is O(1). Indexes with fewer than w
// trailing observations are NaN.
func rollingMean(vals []float64, w int) []float64 {
	out := make([]float64, len(vals))
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= w {
			sum -= vals[i-w]
		}
		if i >= w-1 {
			out[i] = sum / float64(w)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// trailingReturn computes Close[t]/Close[t-n] - 1, NaN for the first n rows.
func trailingReturn(closes []float64, n int) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		if i < n || closes[i-n] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = closes[i]/closes[i-n] - 1
	}
	return out
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
