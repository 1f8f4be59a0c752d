// Package forecast turns raw order-line history into monthly demand series
// and confidence-bounded per-period forecasts.
package forecast

import (
	"sort"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// AggregateMonthly groups raw demand events into one point per populated
// calendar month, sorted ascending. Quantities within a month (including
// multiple observations on one day) are summed; empty months are absent.
func AggregateMonthly(points []domain.DemandPoint) []domain.DemandPoint {
	if len(points) == 0 {
		return nil
	}

	type bucket struct {
		qty       float64
		productID int64
	}
	buckets := make(map[time.Time]*bucket)
	for _, p := range points {
		key := monthStart(p.Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{productID: p.ProductID}
			buckets[key] = b
		}
		b.qty += p.Quantity
	}

	out := make([]domain.DemandPoint, 0, len(buckets))
	for start, b := range buckets {
		out = append(out, domain.DemandPoint{
			Date:      start,
			Quantity:  b.qty,
			ProductID: b.productID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out
}

// GroupByProduct splits mixed demand events into per-product series.
func GroupByProduct(points []domain.DemandPoint) map[int64][]domain.DemandPoint {
	grouped := make(map[int64][]domain.DemandPoint)
	for _, p := range points {
		grouped[p.ProductID] = append(grouped[p.ProductID], p)
	}

	return grouped
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
