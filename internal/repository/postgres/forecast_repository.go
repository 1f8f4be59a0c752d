// internal/repository/postgres/forecast_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) *forecastRepository {
	return &forecastRepository{db: db}
}

// UpsertAll writes a regenerated forecast set inside one transaction, keyed
// on (config_id, product_id, period_start) so re-running generation leaves
// exactly one row per key and readers never see an empty table.
func (r *forecastRepository) UpsertAll(ctx context.Context, forecasts []*domain.DemandForecast) error {
	if len(forecasts) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO demand_forecasts (
				config_id, product_id, period_start, period_type,
				forecasted_demand, lower_bound, upper_bound,
				historical_average, yoy_change, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			ON CONFLICT (config_id, product_id, period_start)
			DO UPDATE SET
				period_type = EXCLUDED.period_type,
				forecasted_demand = EXCLUDED.forecasted_demand,
				lower_bound = EXCLUDED.lower_bound,
				upper_bound = EXCLUDED.upper_bound,
				historical_average = EXCLUDED.historical_average,
				yoy_change = EXCLUDED.yoy_change,
				updated_at = NOW()
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare forecast upsert: %w", err)
		}
		defer stmt.Close()

		for _, fc := range forecasts {
			if _, err := stmt.ExecContext(ctx,
				fc.ConfigID, fc.ProductID, fc.PeriodStart, fc.PeriodType,
				fc.ForecastedDemand, fc.LowerBound, fc.UpperBound,
				fc.HistoricalAverage, fc.YoYChange,
			); err != nil {
				return mapConstraintError(err)
			}
		}

		return nil
	})
}

// Insert writes a single forecast without conflict handling; the uniqueness
// constraint rejects duplicates.
func (r *forecastRepository) Insert(ctx context.Context, fc *domain.DemandForecast) error {
	query := `
		INSERT INTO demand_forecasts (
			config_id, product_id, period_start, period_type,
			forecasted_demand, lower_bound, upper_bound,
			historical_average, yoy_change, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		fc.ConfigID, fc.ProductID, fc.PeriodStart, fc.PeriodType,
		fc.ForecastedDemand, fc.LowerBound, fc.UpperBound,
		fc.HistoricalAverage, fc.YoYChange,
	).Scan(&fc.ID, &fc.CreatedAt)
	if err != nil {
		return mapConstraintError(err)
	}

	return nil
}

func (r *forecastRepository) ListByConfig(ctx context.Context, configID int64) ([]*domain.DemandForecast, error) {
	query := `
		SELECT id, config_id, product_id, period_start, period_type,
		       forecasted_demand, lower_bound, upper_bound,
		       historical_average, yoy_change, created_at, updated_at
		FROM demand_forecasts
		WHERE config_id = $1
		ORDER BY product_id, period_start
	`

	var forecasts []*domain.DemandForecast
	if err := sqlx.SelectContext(ctx, r.db, &forecasts, query, configID); err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}

	return forecasts, nil
}

func (r *forecastRepository) ListByProduct(ctx context.Context, configID, productID int64) ([]*domain.DemandForecast, error) {
	query := `
		SELECT id, config_id, product_id, period_start, period_type,
		       forecasted_demand, lower_bound, upper_bound,
		       historical_average, yoy_change, created_at, updated_at
		FROM demand_forecasts
		WHERE config_id = $1 AND product_id = $2
		ORDER BY period_start
	`

	var forecasts []*domain.DemandForecast
	if err := sqlx.SelectContext(ctx, r.db, &forecasts, query, configID, productID); err != nil {
		return nil, fmt.Errorf("failed to list product forecasts: %w", err)
	}

	return forecasts, nil
}

type patternRepository struct {
	db *DB
}

func NewPatternRepository(db *DB) *patternRepository {
	return &patternRepository{db: db}
}

// FindForDealer prefers the dealer's own pattern over a global one.
func (r *patternRepository) FindForDealer(ctx context.Context, dealerID int64) (*domain.SeasonalPattern, error) {
	query := `
		SELECT id, name, dealer_id, factors, created_at, updated_at
		FROM seasonal_patterns
		WHERE dealer_id = $1 OR dealer_id IS NULL
		ORDER BY dealer_id NULLS LAST
		LIMIT 1
	`

	var p domain.SeasonalPattern
	if err := sqlx.GetContext(ctx, r.db, &p, query, dealerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find seasonal pattern: %w", err)
	}

	return &p, nil
}

func (r *patternRepository) Save(ctx context.Context, p *domain.SeasonalPattern) error {
	query := `
		INSERT INTO seasonal_patterns (name, dealer_id, factors, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO UPDATE
		SET dealer_id = EXCLUDED.dealer_id,
		    factors = EXCLUDED.factors,
		    updated_at = NOW()
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, p.Name, p.DealerID, p.Factors).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return mapConstraintError(err)
	}

	return nil
}
