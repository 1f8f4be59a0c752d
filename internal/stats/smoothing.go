// Package stats implements the statistical primitives behind the demand
// forecasting engine: smoothing filters, IQR outlier detection, least-squares
// trend fitting, seasonal factor extraction and confidence intervals.
//
// Every routine degrades to a documented neutral result on insufficient data
// instead of returning an error.
package stats

// MovingAverage returns the sliding-window mean of data. The output has
// max(0, len(data)-window+1) points. A window that is not smaller than the
// series returns the input unchanged.
func MovingAverage(data []float64, window int) []float64 {
	if window <= 0 || window >= len(data) {
		return data
	}

	out := make([]float64, 0, len(data)-window+1)
	var sum float64
	for i, v := range data {
		sum += v
		if i >= window {
			sum -= data[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}

	return out
}

// ExponentialMA returns the exponentially weighted average of data. The first
// output equals the first input; alpha=0 freezes the series at that value and
// alpha=1 reproduces the input.
func ExponentialMA(data []float64, alpha float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}

	out := make([]float64, len(data))
	out[0] = data[0]
	for i := 1; i < len(data); i++ {
		out[i] = alpha*data[i] + (1-alpha)*out[i-1]
	}

	return out
}
