package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

func TestOrderService_GeneratePlan(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")
	f.seedProduct(7, "SKU-7", 25)
	f.seedFlatDemand(1, 7, 12, 300)
	f.store.SetStock(1, 7, 0)

	ctx := context.Background()
	_, err := f.forecasts.GenerateDemandForecasts(ctx, 1, nil)
	require.NoError(t, err)

	plan, err := f.orders.GenerateSuggestedOrderPlan(ctx, 1)
	require.NoError(t, err)

	require.Len(t, plan.Orders, 1)
	order := plan.Orders[0]
	assert.Equal(t, int64(7), order.ProductID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PriorityCritical, order.Priority)
	assert.Positive(t, order.SuggestedQty)
	assert.True(t, order.EstimatedCost.Equal(decimal.NewFromInt(25).Mul(decimal.NewFromInt(int64(order.SuggestedQty)))))

	assert.Equal(t, 1, plan.Summary.TotalOrders)
	assert.Equal(t, order.SuggestedQty, plan.Summary.TotalUnits)
	assert.Equal(t, 1, plan.Summary.CriticalCount)
	assert.True(t, plan.Summary.EstimatedCost.Equal(order.EstimatedCost))
}

func TestOrderService_WellStockedDealerGetsEmptyPlan(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")
	f.seedProduct(7, "SKU-7", 25)
	f.seedFlatDemand(1, 7, 12, 300)
	f.store.SetStock(1, 7, 100000)

	plan, err := f.orders.GenerateSuggestedOrderPlan(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, plan.Orders)
	assert.Zero(t, plan.Summary.TotalOrders)
}

func TestOrderService_RegenerationReplacesPendingOnly(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")
	f.seedProduct(7, "SKU-7", 25)
	f.seedProduct(8, "SKU-8", 10)
	f.seedFlatDemand(1, 7, 12, 300)
	f.seedFlatDemand(1, 8, 12, 150)
	f.store.SetStock(1, 7, 0)
	f.store.SetStock(1, 8, 0)

	ctx := context.Background()
	plan, err := f.orders.GenerateSuggestedOrderPlan(ctx, 1)
	require.NoError(t, err)
	require.Len(t, plan.Orders, 2)

	// accept one suggestion, then regenerate
	accepted, err := f.orders.UpdateSuggestedOrderStatus(ctx, plan.Orders[0].ID, "accepted")
	require.NoError(t, err)

	plan, err = f.orders.GenerateSuggestedOrderPlan(ctx, 1)
	require.NoError(t, err)

	all, err := f.orders.GetSuggestedOrders(ctx, 1, "")
	require.NoError(t, err)

	var acceptedCount, pendingCount int
	for _, o := range all {
		switch o.Status {
		case domain.OrderStatusAccepted:
			acceptedCount++
			assert.Equal(t, accepted.ID, o.ID)
		case domain.OrderStatusPending:
			pendingCount++
		}
	}
	assert.Equal(t, 1, acceptedCount, "accepted order must survive regeneration")
	assert.Equal(t, 2, pendingCount)
}

func TestOrderService_StatusFilterAndValidation(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")
	f.seedProduct(7, "SKU-7", 25)
	f.seedFlatDemand(1, 7, 12, 300)
	f.store.SetStock(1, 7, 0)

	ctx := context.Background()
	plan, err := f.orders.GenerateSuggestedOrderPlan(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, plan.Orders)

	pending, err := f.orders.GetSuggestedOrders(ctx, 1, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, len(plan.Orders))

	skipped, err := f.orders.GetSuggestedOrders(ctx, 1, "skipped")
	require.NoError(t, err)
	assert.Empty(t, skipped)

	_, err = f.orders.GetSuggestedOrders(ctx, 1, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderService_UpdateStatusUnknownOrder(t *testing.T) {
	f := newFixture()

	_, err := f.orders.UpdateSuggestedOrderStatus(context.Background(), 999, "accepted")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderService_UpdateStatusInvalidLabel(t *testing.T) {
	f := newFixture()

	_, err := f.orders.UpdateSuggestedOrderStatus(context.Background(), 1, "launched")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderService_Timeline(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")
	f.seedProduct(7, "SKU-7", 25)
	f.seedProduct(8, "SKU-8", 10)
	f.seedFlatDemand(1, 7, 12, 300)
	f.seedFlatDemand(1, 8, 12, 150)
	f.store.SetStock(1, 7, 0)
	f.store.SetStock(1, 8, 0)

	ctx := context.Background()
	plan, err := f.orders.GenerateSuggestedOrderPlan(ctx, 1)
	require.NoError(t, err)
	require.Len(t, plan.Orders, 2)

	data, err := f.orders.GetOrderTimelineData(ctx, 1)
	require.NoError(t, err)

	// both suggestions carry today's order date, so they share one month
	require.Len(t, data.Months, 1)
	month := data.Months[0]
	assert.Equal(t, 2, month.OrderCount)
	assert.Equal(t, plan.Orders[0].SuggestedQty+plan.Orders[1].SuggestedQty, month.TotalQuantity)
	require.Len(t, month.Products, 2)
	assert.NotEmpty(t, month.Products[0].SKU)
}

func TestOrderService_TimelineExcludesSkipped(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")
	f.seedProduct(7, "SKU-7", 25)
	f.seedFlatDemand(1, 7, 12, 300)
	f.store.SetStock(1, 7, 0)

	ctx := context.Background()
	plan, err := f.orders.GenerateSuggestedOrderPlan(ctx, 1)
	require.NoError(t, err)
	require.Len(t, plan.Orders, 1)

	_, err = f.orders.UpdateSuggestedOrderStatus(ctx, plan.Orders[0].ID, "skipped")
	require.NoError(t, err)

	data, err := f.orders.GetOrderTimelineData(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, data.Months)
}
