// internal/repository/postgres/market_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

type marketRepository struct {
	db *DB
}

func NewMarketRepository(db *DB) *marketRepository {
	return &marketRepository{db: db}
}

// Insert rejects a duplicate (region, name, period) via the unique constraint.
func (r *marketRepository) Insert(ctx context.Context, ind *domain.MarketIndicator) error {
	query := `
		INSERT INTO market_indicators (
			region, name, period, value, prior_value, percent_change,
			impact_factor, confidence, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		ind.Region, ind.Name, ind.Period, ind.Value, ind.PriorValue,
		ind.PercentChange, ind.ImpactFactor, ind.Confidence, ind.Source,
	).Scan(&ind.ID, &ind.CreatedAt)
	if err != nil {
		return mapConstraintError(err)
	}

	return nil
}

// Upsert refreshes an observation keyed (region, name, period).
func (r *marketRepository) Upsert(ctx context.Context, ind *domain.MarketIndicator) error {
	query := `
		INSERT INTO market_indicators (
			region, name, period, value, prior_value, percent_change,
			impact_factor, confidence, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (region, name, period)
		DO UPDATE SET
			value = EXCLUDED.value,
			prior_value = EXCLUDED.prior_value,
			percent_change = EXCLUDED.percent_change,
			impact_factor = EXCLUDED.impact_factor,
			confidence = EXCLUDED.confidence,
			source = EXCLUDED.source
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		ind.Region, ind.Name, ind.Period, ind.Value, ind.PriorValue,
		ind.PercentChange, ind.ImpactFactor, ind.Confidence, ind.Source,
	).Scan(&ind.ID, &ind.CreatedAt)
	if err != nil {
		return mapConstraintError(err)
	}

	return nil
}

func (r *marketRepository) ListByRegion(ctx context.Context, region string) ([]*domain.MarketIndicator, error) {
	query := `
		SELECT id, region, name, period, value, prior_value, percent_change,
		       impact_factor, confidence, source, created_at
		FROM market_indicators
		WHERE region = $1
		ORDER BY period DESC, name
	`

	var indicators []*domain.MarketIndicator
	if err := sqlx.SelectContext(ctx, r.db, &indicators, query, region); err != nil {
		return nil, fmt.Errorf("failed to list market indicators: %w", err)
	}

	return indicators, nil
}
