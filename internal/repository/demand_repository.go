// internal/repository/demand_repository.go
package repository

import (
	"context"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// DemandRepository reads the engine's collaborator data: order-line history
// from the commerce domain, current stock from the inventory domain, and the
// product catalog.
type DemandRepository interface {
	// DemandHistory returns the dealer's raw order-line events since the
	// given time, optionally restricted to a product subset.
	DemandHistory(ctx context.Context, dealerID int64, since time.Time, productIDs []int64) ([]domain.DemandPoint, error)
	// StockLevels returns current on-hand stock per product.
	StockLevels(ctx context.Context, dealerID int64) (map[int64]float64, error)
	// Products resolves product rows by id.
	Products(ctx context.Context, productIDs []int64) (map[int64]*domain.Product, error)
	// ActiveProductIDs lists the products with any recorded demand for the
	// dealer.
	ActiveProductIDs(ctx context.Context, dealerID int64) ([]int64, error)
}
