package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository"
)

// ConfigRepository is the in-memory ConfigRepository.
type ConfigRepository struct {
	store *Store
}

func NewConfigRepository(store *Store) *ConfigRepository {
	return &ConfigRepository{store: store}
}

var _ repository.ConfigRepository = (*ConfigRepository)(nil)

func (r *ConfigRepository) GetByDealer(ctx context.Context, dealerID int64) (*domain.ForecastConfig, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, cfg := range r.store.configs {
		if cfg.DealerID == dealerID {
			cp := *cfg
			return &cp, nil
		}
	}

	return nil, domain.ErrNotFound
}

func (r *ConfigRepository) Create(ctx context.Context, cfg *domain.ForecastConfig) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.dealers[cfg.DealerID]; !ok {
		return domain.ErrForeignKey
	}
	for _, existing := range r.store.configs {
		if existing.DealerID == cfg.DealerID {
			return domain.ErrDuplicate
		}
	}

	r.store.configSeq++
	cfg.ID = r.store.configSeq
	cfg.CreatedAt = time.Now()
	cfg.UpdatedAt = cfg.CreatedAt

	cp := *cfg
	r.store.configs[cfg.ID] = &cp

	return nil
}

func (r *ConfigRepository) Update(ctx context.Context, cfg *domain.ForecastConfig) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.configs[cfg.ID]; !ok {
		return domain.ErrNotFound
	}

	cfg.UpdatedAt = time.Now()
	cp := *cfg
	r.store.configs[cfg.ID] = &cp

	return nil
}

// Delete cascades to the config's forecasts and suggested orders, matching
// the postgres ON DELETE CASCADE behavior.
func (r *ConfigRepository) Delete(ctx context.Context, configID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.configs[configID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.configs, configID)

	for id, fc := range r.store.forecasts {
		if fc.ConfigID == configID {
			delete(r.store.forecasts, id)
		}
	}
	for id, o := range r.store.orders {
		if o.ConfigID == configID {
			delete(r.store.orders, id)
		}
	}

	return nil
}

func (r *ConfigRepository) ListActive(ctx context.Context) ([]*domain.ForecastConfig, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var configs []*domain.ForecastConfig
	for _, cfg := range r.store.configs {
		if cfg.IsActive {
			cp := *cfg
			configs = append(configs, &cp)
		}
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].DealerID < configs[j].DealerID })

	return configs, nil
}

// DealerRepository is the in-memory DealerRepository.
type DealerRepository struct {
	store *Store
}

func NewDealerRepository(store *Store) *DealerRepository {
	return &DealerRepository{store: store}
}

var _ repository.DealerRepository = (*DealerRepository)(nil)

func (r *DealerRepository) GetByID(ctx context.Context, dealerID int64) (*domain.Dealer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dealer, ok := r.store.dealers[dealerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *dealer

	return &cp, nil
}
