package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository"
)

// MarketRepository is the in-memory MarketRepository.
type MarketRepository struct {
	store *Store
}

func NewMarketRepository(store *Store) *MarketRepository {
	return &MarketRepository{store: store}
}

var _ repository.MarketRepository = (*MarketRepository)(nil)

func (r *MarketRepository) Insert(ctx context.Context, ind *domain.MarketIndicator) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.findByKey(ind.Region, ind.Name, ind.Period) != nil {
		return domain.ErrDuplicate
	}
	r.insertLocked(ind)

	return nil
}

func (r *MarketRepository) Upsert(ctx context.Context, ind *domain.MarketIndicator) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing := r.findByKey(ind.Region, ind.Name, ind.Period); existing != nil {
		ind.ID = existing.ID
		ind.CreatedAt = existing.CreatedAt
		cp := *ind
		r.store.indicators[ind.ID] = &cp
		return nil
	}
	r.insertLocked(ind)

	return nil
}

func (r *MarketRepository) ListByRegion(ctx context.Context, region string) ([]*domain.MarketIndicator, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var indicators []*domain.MarketIndicator
	for _, ind := range r.store.indicators {
		if ind.Region == region {
			cp := *ind
			indicators = append(indicators, &cp)
		}
	}
	sort.Slice(indicators, func(i, j int) bool {
		if !indicators[i].Period.Equal(indicators[j].Period) {
			return indicators[i].Period.After(indicators[j].Period)
		}
		return indicators[i].Name < indicators[j].Name
	})

	return indicators, nil
}

// findByKey must be called with the store lock held.
func (r *MarketRepository) findByKey(region, name string, period time.Time) *domain.MarketIndicator {
	for _, ind := range r.store.indicators {
		if ind.Region == region && ind.Name == name && ind.Period.Equal(period) {
			return ind
		}
	}
	return nil
}

// insertLocked must be called with the store lock held.
func (r *MarketRepository) insertLocked(ind *domain.MarketIndicator) {
	r.store.indicatorSeq++
	ind.ID = r.store.indicatorSeq
	ind.CreatedAt = time.Now()
	cp := *ind
	r.store.indicators[ind.ID] = &cp
}
