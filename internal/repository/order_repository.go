// internal/repository/order_repository.go
package repository

import (
	"context"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// OrderRepository persists suggested orders. ReplacePending drops only the
// config's pending suggestions before inserting the new plan; accepted,
// ordered and skipped rows survive regeneration.
type OrderRepository interface {
	ReplacePending(ctx context.Context, configID int64, orders []*domain.SuggestedOrder) error
	ListByConfig(ctx context.Context, configID int64, status *domain.OrderStatus) ([]*domain.SuggestedOrder, error)
	GetByID(ctx context.Context, orderID int64) (*domain.SuggestedOrder, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, now time.Time) (*domain.SuggestedOrder, error)
}
