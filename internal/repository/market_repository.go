// internal/repository/market_repository.go
package repository

import (
	"context"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// MarketRepository stores externally supplied market indicators, unique per
// (region, name, period). Insert rejects duplicates with domain.ErrDuplicate;
// Upsert is the supported write path for refreshed observations.
type MarketRepository interface {
	Insert(ctx context.Context, ind *domain.MarketIndicator) error
	Upsert(ctx context.Context, ind *domain.MarketIndicator) error
	ListByRegion(ctx context.Context, region string) ([]*domain.MarketIndicator, error)
}
