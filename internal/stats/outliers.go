package stats

import "sort"

// OutlierResult holds the values flagged by IQR detection, their original
// indices, and the remaining values in original order.
type OutlierResult struct {
	Outliers    []float64
	Indices     []int
	CleanedData []float64
	LowerFence  float64
	UpperFence  float64
}

// DetectOutliers flags values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Fewer
// than 4 points yields no outliers and the input as cleaned data.
func DetectOutliers(data []float64) OutlierResult {
	res := OutlierResult{
		Outliers:    []float64{},
		Indices:     []int{},
		CleanedData: append([]float64(nil), data...),
	}
	if len(data) < 4 {
		return res
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1

	res.LowerFence = q1 - 1.5*iqr
	res.UpperFence = q3 + 1.5*iqr

	res.CleanedData = res.CleanedData[:0]
	for i, v := range data {
		if v < res.LowerFence || v > res.UpperFence {
			res.Outliers = append(res.Outliers, v)
			res.Indices = append(res.Indices, i)
			continue
		}
		res.CleanedData = append(res.CleanedData, v)
	}

	return res
}

// quantile interpolates the q-th quantile of sorted data.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
