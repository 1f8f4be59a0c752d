// internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `
	id, config_id, product_id, suggested_qty, economic_order_qty,
	current_stock, projected_demand, reorder_point, estimated_cost,
	priority, status, suggested_order_date, expected_delivery, reasoning,
	accepted_at, ordered_at, skipped_at, created_at, updated_at
`

// ReplacePending swaps in a freshly generated plan inside one transaction,
// dropping only the config's pending suggestions. Accepted, ordered and
// skipped rows are preserved.
func (r *orderRepository) ReplacePending(ctx context.Context, configID int64, orders []*domain.SuggestedOrder) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM suggested_orders WHERE config_id = $1 AND status = $2`,
			configID, domain.OrderStatusPending,
		); err != nil {
			return fmt.Errorf("failed to clear pending suggestions: %w", err)
		}

		query := `
			INSERT INTO suggested_orders (
				config_id, product_id, suggested_qty, economic_order_qty,
				current_stock, projected_demand, reorder_point, estimated_cost,
				priority, status, suggested_order_date, expected_delivery,
				reasoning, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
			RETURNING id, created_at
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare order insert: %w", err)
		}
		defer stmt.Close()

		for _, o := range orders {
			if err := stmt.QueryRowContext(ctx,
				o.ConfigID, o.ProductID, o.SuggestedQty, o.EconomicOrderQty,
				o.CurrentStock, o.ProjectedDemand, o.ReorderPoint, o.EstimatedCost,
				o.Priority, o.Status, o.SuggestedOrderDate, o.ExpectedDelivery,
				o.Reasoning,
			).Scan(&o.ID, &o.CreatedAt); err != nil {
				return mapConstraintError(err)
			}
		}

		return nil
	})
}

func (r *orderRepository) ListByConfig(ctx context.Context, configID int64, status *domain.OrderStatus) ([]*domain.SuggestedOrder, error) {
	query := `
		SELECT` + orderColumns + `
		FROM suggested_orders
		WHERE config_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY
			CASE priority
				WHEN 'critical' THEN 0
				WHEN 'high' THEN 1
				WHEN 'normal' THEN 2
				ELSE 3
			END,
			suggested_qty DESC
	`

	var orders []*domain.SuggestedOrder
	if err := sqlx.SelectContext(ctx, r.db, &orders, query, configID, status); err != nil {
		return nil, fmt.Errorf("failed to list suggested orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*domain.SuggestedOrder, error) {
	query := `SELECT` + orderColumns + `FROM suggested_orders WHERE id = $1`

	var order domain.SuggestedOrder
	if err := sqlx.GetContext(ctx, r.db, &order, query, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get suggested order: %w", err)
	}

	return &order, nil
}

// UpdateStatus transitions an order, stamping the matching timestamp column.
// Unknown ids fail with domain.ErrNotFound.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, now time.Time) (*domain.SuggestedOrder, error) {
	var order *domain.SuggestedOrder

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var existing domain.SuggestedOrder
		query := `SELECT` + orderColumns + `FROM suggested_orders WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &existing, query, orderID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load suggested order: %w", err)
		}

		existing.Transition(status, now)

		update := `
			UPDATE suggested_orders SET
				status = $2, accepted_at = $3, ordered_at = $4, skipped_at = $5,
				updated_at = $6
			WHERE id = $1
		`
		if _, err := tx.ExecContext(ctx, update,
			orderID, existing.Status, existing.AcceptedAt, existing.OrderedAt,
			existing.SkippedAt, existing.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		order = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
