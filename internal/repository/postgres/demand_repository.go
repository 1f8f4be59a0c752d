// internal/repository/postgres/demand_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

type demandRepository struct {
	db *DB
}

func NewDemandRepository(db *DB) *demandRepository {
	return &demandRepository{db: db}
}

// DemandHistory reads raw order-line events from the commerce tables.
func (r *demandRepository) DemandHistory(ctx context.Context, dealerID int64, since time.Time, productIDs []int64) ([]domain.DemandPoint, error) {
	query := `
		SELECT ol.product_id, o.ordered_at AS date, ol.quantity
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE o.dealer_id = ?
		  AND o.ordered_at >= ?
	`
	args := []interface{}{dealerID, since}

	if len(productIDs) > 0 {
		inQuery, inArgs, err := sqlx.In(`AND ol.product_id IN (?)`, productIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to build product filter: %w", err)
		}
		query += inQuery
		args = append(args, inArgs...)
	}
	query += ` ORDER BY o.ordered_at`

	query = r.db.Rebind(query)

	var points []domain.DemandPoint
	if err := sqlx.SelectContext(ctx, r.db, &points, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load demand history: %w", err)
	}

	return points, nil
}

func (r *demandRepository) StockLevels(ctx context.Context, dealerID int64) (map[int64]float64, error) {
	query := `
		SELECT product_id, quantity
		FROM stock_levels
		WHERE dealer_id = $1
	`

	var rows []struct {
		ProductID int64   `db:"product_id"`
		Quantity  float64 `db:"quantity"`
	}
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, dealerID); err != nil {
		return nil, fmt.Errorf("failed to load stock levels: %w", err)
	}

	levels := make(map[int64]float64, len(rows))
	for _, row := range rows {
		levels[row.ProductID] = row.Quantity
	}

	return levels, nil
}

func (r *demandRepository) Products(ctx context.Context, productIDs []int64) (map[int64]*domain.Product, error) {
	if len(productIDs) == 0 {
		return map[int64]*domain.Product{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, sku, name, COALESCE(unit_cost, 0) AS unit_cost, created_at, updated_at
		FROM products
		WHERE id IN (?)
	`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build products query: %w", err)
	}
	query = r.db.Rebind(query)

	var products []*domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return byID, nil
}

func (r *demandRepository) ActiveProductIDs(ctx context.Context, dealerID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT ol.product_id
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE o.dealer_id = $1
		ORDER BY ol.product_id
	`

	var ids []int64
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, dealerID); err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}

	return ids, nil
}
