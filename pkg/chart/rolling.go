package chart

// DefaultWindow is the trailing window used to smooth per-episode returns
const DefaultWindow = 50

// RollingAverage smooths a reward series with a trailing fixed-size
// window: output[i] is the mean of input[max(0, i-window+1) .. i].
// Early indices average over a partial window, so the head of the
// series is less smoothed than the tail; that asymmetry is part of the
// contract. Single pass with a running sum, no re-summation.
func RollingAverage(values []float64, window int) []float64 {
	if len(values) == 0 {
		return nil
	}
	if window < 1 {
		window = 1
	}

	out := make([]float64, len(values))
	var sum float64
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
	return out
}
