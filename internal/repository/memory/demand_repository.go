package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository"
)

// DemandRepository is the in-memory DemandRepository.
type DemandRepository struct {
	store *Store
}

func NewDemandRepository(store *Store) *DemandRepository {
	return &DemandRepository{store: store}
}

var _ repository.DemandRepository = (*DemandRepository)(nil)

func (r *DemandRepository) DemandHistory(ctx context.Context, dealerID int64, since time.Time, productIDs []int64) ([]domain.DemandPoint, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var subset map[int64]bool
	if len(productIDs) > 0 {
		subset = make(map[int64]bool, len(productIDs))
		for _, id := range productIDs {
			subset[id] = true
		}
	}

	var points []domain.DemandPoint
	for _, p := range r.store.history[dealerID] {
		if p.Date.Before(since) {
			continue
		}
		if subset != nil && !subset[p.ProductID] {
			continue
		}
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return points, nil
}

func (r *DemandRepository) StockLevels(ctx context.Context, dealerID int64) (map[int64]float64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	levels := make(map[int64]float64, len(r.store.stock[dealerID]))
	for productID, qty := range r.store.stock[dealerID] {
		levels[productID] = qty
	}

	return levels, nil
}

func (r *DemandRepository) Products(ctx context.Context, productIDs []int64) (map[int64]*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byID := make(map[int64]*domain.Product, len(productIDs))
	for _, id := range productIDs {
		if p, ok := r.store.products[id]; ok {
			cp := *p
			byID[id] = &cp
		}
	}

	return byID, nil
}

func (r *DemandRepository) ActiveProductIDs(ctx context.Context, dealerID int64) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[int64]bool)
	var ids []int64
	for _, p := range r.store.history[dealerID] {
		if !seen[p.ProductID] {
			seen[p.ProductID] = true
			ids = append(ids, p.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}
