package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository"
)

// ForecastRepository is the in-memory ForecastRepository.
type ForecastRepository struct {
	store *Store
}

func NewForecastRepository(store *Store) *ForecastRepository {
	return &ForecastRepository{store: store}
}

var _ repository.ForecastRepository = (*ForecastRepository)(nil)

func (r *ForecastRepository) UpsertAll(ctx context.Context, forecasts []*domain.DemandForecast) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for _, fc := range forecasts {
		if existing := r.findByKey(fc.ConfigID, fc.ProductID, fc.PeriodStart); existing != nil {
			fc.ID = existing.ID
			fc.CreatedAt = existing.CreatedAt
			fc.UpdatedAt = now
		} else {
			r.store.forecastSeq++
			fc.ID = r.store.forecastSeq
			fc.CreatedAt = now
			fc.UpdatedAt = now
		}
		cp := *fc
		r.store.forecasts[fc.ID] = &cp
	}

	return nil
}

func (r *ForecastRepository) Insert(ctx context.Context, fc *domain.DemandForecast) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing := r.findByKey(fc.ConfigID, fc.ProductID, fc.PeriodStart); existing != nil {
		return domain.ErrDuplicate
	}

	r.store.forecastSeq++
	fc.ID = r.store.forecastSeq
	fc.CreatedAt = time.Now()
	fc.UpdatedAt = fc.CreatedAt
	cp := *fc
	r.store.forecasts[fc.ID] = &cp

	return nil
}

func (r *ForecastRepository) ListByConfig(ctx context.Context, configID int64) ([]*domain.DemandForecast, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var forecasts []*domain.DemandForecast
	for _, fc := range r.store.forecasts {
		if fc.ConfigID == configID {
			cp := *fc
			forecasts = append(forecasts, &cp)
		}
	}
	sortForecasts(forecasts)

	return forecasts, nil
}

func (r *ForecastRepository) ListByProduct(ctx context.Context, configID, productID int64) ([]*domain.DemandForecast, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var forecasts []*domain.DemandForecast
	for _, fc := range r.store.forecasts {
		if fc.ConfigID == configID && fc.ProductID == productID {
			cp := *fc
			forecasts = append(forecasts, &cp)
		}
	}
	sortForecasts(forecasts)

	return forecasts, nil
}

// findByKey must be called with the store lock held.
func (r *ForecastRepository) findByKey(configID, productID int64, periodStart time.Time) *domain.DemandForecast {
	for _, fc := range r.store.forecasts {
		if fc.ConfigID == configID && fc.ProductID == productID && fc.PeriodStart.Equal(periodStart) {
			return fc
		}
	}
	return nil
}

func sortForecasts(forecasts []*domain.DemandForecast) {
	sort.Slice(forecasts, func(i, j int) bool {
		if forecasts[i].ProductID != forecasts[j].ProductID {
			return forecasts[i].ProductID < forecasts[j].ProductID
		}
		return forecasts[i].PeriodStart.Before(forecasts[j].PeriodStart)
	})
}

// PatternRepository is the in-memory PatternRepository.
type PatternRepository struct {
	store *Store
}

func NewPatternRepository(store *Store) *PatternRepository {
	return &PatternRepository{store: store}
}

var _ repository.PatternRepository = (*PatternRepository)(nil)

func (r *PatternRepository) FindForDealer(ctx context.Context, dealerID int64) (*domain.SeasonalPattern, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var global *domain.SeasonalPattern
	for _, p := range r.store.patterns {
		if p.DealerID != nil && *p.DealerID == dealerID {
			cp := *p
			return &cp, nil
		}
		if p.DealerID == nil && global == nil {
			global = p
		}
	}
	if global != nil {
		cp := *global
		return &cp, nil
	}

	return nil, domain.ErrNotFound
}

func (r *PatternRepository) Save(ctx context.Context, p *domain.SeasonalPattern) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for _, existing := range r.store.patterns {
		if existing.Name == p.Name {
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = now
			cp := *p
			r.store.patterns[p.ID] = &cp
			return nil
		}
	}

	r.store.patternSeq++
	p.ID = r.store.patternSeq
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.store.patterns[p.ID] = &cp

	return nil
}
