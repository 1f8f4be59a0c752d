// internal/service/order_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/forecast"
	"github.com/dealerhub/forecast-engine/internal/planner"
	"github.com/dealerhub/forecast-engine/internal/repository"
)

// OrderService turns stored forecasts into suggested purchase orders and
// manages their lifecycle.
type OrderService struct {
	configService *ConfigService
	demand        repository.DemandRepository
	forecasts     repository.ForecastRepository
	orders        repository.OrderRepository
}

func NewOrderService(
	configService *ConfigService,
	demand repository.DemandRepository,
	forecasts repository.ForecastRepository,
	orders repository.OrderRepository,
) *OrderService {
	return &OrderService{
		configService: configService,
		demand:        demand,
		forecasts:     forecasts,
		orders:        orders,
	}
}

// GenerateSuggestedOrderPlan evaluates every active product against the
// dealer's reorder policy and replaces the pending suggestions with the new
// set. Accepted, ordered and skipped suggestions are left alone.
func (s *OrderService) GenerateSuggestedOrderPlan(ctx context.Context, dealerID int64) (*domain.OrderPlan, error) {
	cfg, err := s.configService.GetOrCreate(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	productIDs, err := s.demand.ActiveProductIDs(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}

	now := time.Now().UTC()
	plan := &domain.OrderPlan{Orders: []*domain.SuggestedOrder{}}
	plan.Summary.GeneratedAt = now
	plan.Summary.EstimatedCost = decimal.Zero

	if len(productIDs) == 0 {
		if err := s.orders.ReplacePending(ctx, cfg.ID, nil); err != nil {
			return nil, fmt.Errorf("failed to store order plan: %w", err)
		}
		return plan, nil
	}

	stock, err := s.demand.StockLevels(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock levels: %w", err)
	}
	products, err := s.demand.Products(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	since := now.AddDate(0, -cfg.HistoryMonths, 0)
	history, err := s.demand.DemandHistory(ctx, dealerID, since, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand history: %w", err)
	}
	historyByProduct := forecast.GroupByProduct(history)

	allForecasts, err := s.forecasts.ListByConfig(ctx, cfg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecasts: %w", err)
	}
	forecastsByProduct := make(map[int64][]*domain.DemandForecast)
	for _, fc := range allForecasts {
		forecastsByProduct[fc.ProductID] = append(forecastsByProduct[fc.ProductID], fc)
	}

	for _, productID := range productIDs {
		in := planner.ProductInput{
			ProductID:     productID,
			CurrentStock:  stock[productID],
			Forecasts:     forecastsByProduct[productID],
			RecentMonthly: forecast.AggregateMonthly(historyByProduct[productID]),
		}
		if p, ok := products[productID]; ok {
			in.UnitCost = p.UnitCost
		}

		order := planner.Suggest(cfg, in, now)
		if order == nil {
			continue
		}
		plan.Orders = append(plan.Orders, order)
	}

	planner.SortForPlan(plan.Orders)

	if err := s.orders.ReplacePending(ctx, cfg.ID, plan.Orders); err != nil {
		return nil, fmt.Errorf("failed to store order plan: %w", err)
	}

	for _, order := range plan.Orders {
		plan.Summary.TotalOrders++
		plan.Summary.TotalUnits += order.SuggestedQty
		plan.Summary.EstimatedCost = plan.Summary.EstimatedCost.Add(order.EstimatedCost)
		if order.Priority == domain.PriorityCritical {
			plan.Summary.CriticalCount++
		}
	}

	log.Info().
		Int64("dealer_id", dealerID).
		Int("orders", plan.Summary.TotalOrders).
		Int("critical", plan.Summary.CriticalCount).
		Msg("order plan regenerated")

	return plan, nil
}

// GetSuggestedOrders lists the dealer's suggestions, optionally filtered by
// status. An empty status label means no filter.
func (s *OrderService) GetSuggestedOrders(ctx context.Context, dealerID int64, statusLabel string) ([]*domain.SuggestedOrder, error) {
	cfg, err := s.configService.GetOrCreate(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	var status *domain.OrderStatus
	if statusLabel != "" {
		parsed, ok := domain.ParseOrderStatus(statusLabel)
		if !ok {
			return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, statusLabel)
		}
		status = &parsed
	}

	orders, err := s.orders.ListByConfig(ctx, cfg.ID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggested orders: %w", err)
	}
	return orders, nil
}

// UpdateSuggestedOrderStatus moves one suggestion to a new lifecycle state,
// stamping the matching timestamp. Unknown ids surface as not found.
func (s *OrderService) UpdateSuggestedOrderStatus(ctx context.Context, orderID int64, statusLabel string) (*domain.SuggestedOrder, error) {
	status, ok := domain.ParseOrderStatus(statusLabel)
	if !ok {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, statusLabel)
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return order, nil
}

// GetOrderTimelineData groups the dealer's non-skipped suggestions by the
// calendar month of their suggested order date.
func (s *OrderService) GetOrderTimelineData(ctx context.Context, dealerID int64) (*domain.OrderTimelineData, error) {
	cfg, err := s.configService.GetOrCreate(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByConfig(ctx, cfg.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggested orders: %w", err)
	}

	productIDs := make([]int64, 0, len(orders))
	seen := make(map[int64]bool)
	for _, order := range orders {
		if order.Status == domain.OrderStatusSkipped || seen[order.ProductID] {
			continue
		}
		seen[order.ProductID] = true
		productIDs = append(productIDs, order.ProductID)
	}

	products := map[int64]*domain.Product{}
	if len(productIDs) > 0 {
		products, err = s.demand.Products(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
	}

	return buildTimeline(orders, products), nil
}

func buildTimeline(orders []*domain.SuggestedOrder, products map[int64]*domain.Product) *domain.OrderTimelineData {
	byMonth := make(map[string]*domain.TimelineMonth)
	for _, order := range orders {
		if order.Status == domain.OrderStatusSkipped {
			continue
		}
		label := order.SuggestedOrderDate.UTC().Format(chartMonthLayout)
		month, ok := byMonth[label]
		if !ok {
			month = &domain.TimelineMonth{Month: label}
			byMonth[label] = month
		}
		month.TotalQuantity += order.SuggestedQty
		month.OrderCount++

		entry := domain.TimelineProduct{
			ProductID: order.ProductID,
			Quantity:  order.SuggestedQty,
		}
		if p, ok := products[order.ProductID]; ok {
			entry.SKU = p.SKU
			entry.Name = p.Name
		}
		month.Products = append(month.Products, entry)
	}

	labels := make([]string, 0, len(byMonth))
	for label := range byMonth {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	data := &domain.OrderTimelineData{Months: make([]domain.TimelineMonth, 0, len(labels))}
	for _, label := range labels {
		data.Months = append(data.Months, *byMonth[label])
	}
	return data
}
