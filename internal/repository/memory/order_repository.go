package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository"
)

// OrderRepository is the in-memory OrderRepository.
type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) ReplacePending(ctx context.Context, configID int64, orders []*domain.SuggestedOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, o := range r.store.orders {
		if o.ConfigID == configID && o.Status == domain.OrderStatusPending {
			delete(r.store.orders, id)
		}
	}

	now := time.Now()
	for _, o := range orders {
		r.store.orderSeq++
		o.ID = r.store.orderSeq
		o.CreatedAt = now
		o.UpdatedAt = now
		cp := *o
		r.store.orders[o.ID] = &cp
	}

	return nil
}

func (r *OrderRepository) ListByConfig(ctx context.Context, configID int64, status *domain.OrderStatus) ([]*domain.SuggestedOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var orders []*domain.SuggestedOrder
	for _, o := range r.store.orders {
		if o.ConfigID != configID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		cp := *o
		orders = append(orders, &cp)
	}

	rank := map[domain.OrderPriority]int{
		domain.PriorityCritical: 0,
		domain.PriorityHigh:     1,
		domain.PriorityNormal:   2,
		domain.PriorityLow:      3,
	}
	sort.Slice(orders, func(i, j int) bool {
		if rank[orders[i].Priority] != rank[orders[j].Priority] {
			return rank[orders[i].Priority] < rank[orders[j].Priority]
		}
		return orders[i].SuggestedQty > orders[j].SuggestedQty
	})

	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*domain.SuggestedOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o

	return &cp, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, now time.Time) (*domain.SuggestedOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	o.Transition(status, now)
	cp := *o

	return &cp, nil
}
