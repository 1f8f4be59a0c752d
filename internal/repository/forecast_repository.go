// internal/repository/forecast_repository.go
package repository

import (
	"context"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// ForecastRepository persists generated forecasts. Rows are unique per
// (config, product, period start): Insert rejects duplicates with
// domain.ErrDuplicate, UpsertAll replaces by key inside one transaction so a
// regeneration never leaves readers with a partial set.
type ForecastRepository interface {
	UpsertAll(ctx context.Context, forecasts []*domain.DemandForecast) error
	Insert(ctx context.Context, fc *domain.DemandForecast) error
	ListByConfig(ctx context.Context, configID int64) ([]*domain.DemandForecast, error)
	ListByProduct(ctx context.Context, configID, productID int64) ([]*domain.DemandForecast, error)
}

// PatternRepository stores reusable named seasonal patterns, global or
// dealer-specific.
type PatternRepository interface {
	// FindForDealer returns the dealer's own pattern when one exists,
	// otherwise a global pattern, otherwise domain.ErrNotFound.
	FindForDealer(ctx context.Context, dealerID int64) (*domain.SeasonalPattern, error)
	Save(ctx context.Context, p *domain.SeasonalPattern) error
}
