// internal/repository/postgres/config_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

type configRepository struct {
	db *DB
}

func NewConfigRepository(db *DB) *configRepository {
	return &configRepository{db: db}
}

func (r *configRepository) GetByDealer(ctx context.Context, dealerID int64) (*domain.ForecastConfig, error) {
	query := `
		SELECT id, dealer_id, horizon_periods, history_months, confidence_level,
		       seasonality_enabled, seasonality_type, safety_stock_days, lead_time_days,
		       reorder_method, reorder_point, minimum_order_qty, order_multiple,
		       economic_order_qty, market_growth_rate, local_market_factor, is_active,
		       created_at, updated_at
		FROM forecast_configs
		WHERE dealer_id = $1
	`

	var cfg domain.ForecastConfig
	if err := sqlx.GetContext(ctx, r.db, &cfg, query, dealerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get forecast config: %w", err)
	}

	return &cfg, nil
}

// Create inserts a new config. The dealer_id unique constraint rejects a
// second config per dealer; the foreign key rejects unknown dealers.
func (r *configRepository) Create(ctx context.Context, cfg *domain.ForecastConfig) error {
	query := `
		INSERT INTO forecast_configs (
			dealer_id, horizon_periods, history_months, confidence_level,
			seasonality_enabled, seasonality_type, safety_stock_days, lead_time_days,
			reorder_method, reorder_point, minimum_order_qty, order_multiple,
			economic_order_qty, market_growth_rate, local_market_factor, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		cfg.DealerID, cfg.HorizonPeriods, cfg.HistoryMonths, cfg.ConfidenceLevel,
		cfg.SeasonalityEnabled, cfg.SeasonalityType, cfg.SafetyStockDays, cfg.LeadTimeDays,
		cfg.ReorderMethod, cfg.ReorderPoint, cfg.MinimumOrderQty, cfg.OrderMultiple,
		cfg.EconomicOrderQty, cfg.MarketGrowthRate, cfg.LocalMarketFactor, cfg.IsActive,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return mapConstraintError(err)
	}

	return nil
}

func (r *configRepository) Update(ctx context.Context, cfg *domain.ForecastConfig) error {
	query := `
		UPDATE forecast_configs SET
			horizon_periods = $2, history_months = $3, confidence_level = $4,
			seasonality_enabled = $5, seasonality_type = $6, safety_stock_days = $7,
			lead_time_days = $8, reorder_method = $9, reorder_point = $10,
			minimum_order_qty = $11, order_multiple = $12, economic_order_qty = $13,
			market_growth_rate = $14, local_market_factor = $15, is_active = $16,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		cfg.ID, cfg.HorizonPeriods, cfg.HistoryMonths, cfg.ConfidenceLevel,
		cfg.SeasonalityEnabled, cfg.SeasonalityType, cfg.SafetyStockDays,
		cfg.LeadTimeDays, cfg.ReorderMethod, cfg.ReorderPoint,
		cfg.MinimumOrderQty, cfg.OrderMultiple, cfg.EconomicOrderQty,
		cfg.MarketGrowthRate, cfg.LocalMarketFactor, cfg.IsActive,
	).Scan(&cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update forecast config: %w", err)
	}

	return nil
}

// Delete removes the config; the ON DELETE CASCADE constraints on
// demand_forecasts and suggested_orders drop the derived rows with it.
func (r *configRepository) Delete(ctx context.Context, configID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM forecast_configs WHERE id = $1`, configID)
	if err != nil {
		return fmt.Errorf("failed to delete forecast config: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *configRepository) ListActive(ctx context.Context) ([]*domain.ForecastConfig, error) {
	query := `
		SELECT id, dealer_id, horizon_periods, history_months, confidence_level,
		       seasonality_enabled, seasonality_type, safety_stock_days, lead_time_days,
		       reorder_method, reorder_point, minimum_order_qty, order_multiple,
		       economic_order_qty, market_growth_rate, local_market_factor, is_active,
		       created_at, updated_at
		FROM forecast_configs
		WHERE is_active
		ORDER BY dealer_id
	`

	var configs []*domain.ForecastConfig
	if err := sqlx.SelectContext(ctx, r.db, &configs, query); err != nil {
		return nil, fmt.Errorf("failed to list active configs: %w", err)
	}

	return configs, nil
}

type dealerRepository struct {
	db *DB
}

func NewDealerRepository(db *DB) *dealerRepository {
	return &dealerRepository{db: db}
}

func (r *dealerRepository) GetByID(ctx context.Context, dealerID int64) (*domain.Dealer, error) {
	query := `SELECT id, name, region, created_at, updated_at FROM dealers WHERE id = $1`

	var dealer domain.Dealer
	if err := sqlx.GetContext(ctx, r.db, &dealer, query, dealerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get dealer: %w", err)
	}

	return &dealer, nil
}
