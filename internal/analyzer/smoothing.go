package analyzer

import "sort"

// Smoothing and outlier utilities. Not on the default forecast path; kept
// for ad-hoc analysis and for callers that want to pre-clean a noisy series.

// SimpleMovingAverage returns the trailing moving average with the given
// window. Entries before a full window average whatever is available.
func SimpleMovingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) == 0 {
		return nil
	}

	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
			out[i] = sum / float64(window)
			continue
		}
		out[i] = sum / float64(i+1)
	}

	return out
}

// ExponentialMovingAverage smooths the series with factor alpha in (0, 1].
func ExponentialMovingAverage(values []float64, alpha float64) []float64 {
	if len(values) == 0 || alpha <= 0 || alpha > 1 {
		return nil
	}

	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// DetectOutliersIQR returns the indices of values outside the 1.5×IQR
// fences. Needs at least four points to compute quartiles.
func DetectOutliersIQR(values []float64) []int {
	if len(values) < 4 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1

	lowFence := q1 - 1.5*iqr
	highFence := q3 + 1.5*iqr

	var outliers []int
	for i, v := range values {
		if v < lowFence || v > highFence {
			outliers = append(outliers, i)
		}
	}

	return outliers
}

// quantile interpolates linearly over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)

	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
