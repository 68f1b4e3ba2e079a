package schedule

// Series helpers for cumulative period data. Values are indexed 0..N-1 in
// chronological order; planned values are expected non-decreasing though the
// engine does not enforce it.

// AverageIncrement returns the mean per-period growth of a cumulative series,
// measured across the entire history: (last - first) / (length - 1). A
// single-element series has no measurable increment; 10% of its value stands
// in so extrapolation still moves forward.
func AverageIncrement(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	if len(series) == 1 {
		return series[0] * 0.1
	}
	return (series[len(series)-1] - series[0]) / float64(len(series)-1)
}

// ExtrapolateNext projects the next cumulative value of a series by extending
// it with the whole-history average increment.
func ExtrapolateNext(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1] + AverageIncrement(series)
}

// ClampNonNegative returns a copy of the series with negative entries raised
// to zero. Cumulative value series have no meaningful negative points.
func ClampNonNegative(series []float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

// CopySeries returns an independent copy of the series.
func CopySeries(series []float64) []float64 {
	out := make([]float64, len(series))
	copy(out, series)
	return out
}
