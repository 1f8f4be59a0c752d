// internal/repository/config_repository.go
package repository

import (
	"context"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// ConfigRepository persists per-dealer forecast configs. One row per dealer;
// Create returns domain.ErrDuplicate on a second config and
// domain.ErrForeignKey when the dealer does not exist. Deleting a config
// cascades to its forecasts and suggested orders.
type ConfigRepository interface {
	GetByDealer(ctx context.Context, dealerID int64) (*domain.ForecastConfig, error)
	Create(ctx context.Context, cfg *domain.ForecastConfig) error
	Update(ctx context.Context, cfg *domain.ForecastConfig) error
	Delete(ctx context.Context, configID int64) error
	ListActive(ctx context.Context) ([]*domain.ForecastConfig, error)
}

// DealerRepository reads dealer identity and region from the dealer domain.
type DealerRepository interface {
	GetByID(ctx context.Context, dealerID int64) (*domain.Dealer, error)
}
