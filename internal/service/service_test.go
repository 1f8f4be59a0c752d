package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dealerhub/forecast-engine/internal/cache"
	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository/memory"
	"github.com/dealerhub/forecast-engine/internal/storage"
)

// fixture wires the services against in-memory repositories.
type fixture struct {
	store     *memory.Store
	configs   *ConfigService
	forecasts *ForecastService
	orders    *OrderService

	marketRepo   *memory.MarketRepository
	patternRepo  *memory.PatternRepository
	forecastRepo *memory.ForecastRepository
	orderRepo    *memory.OrderRepository
}

func newFixture() *fixture {
	store := memory.NewStore()

	configRepo := memory.NewConfigRepository(store)
	dealerRepo := memory.NewDealerRepository(store)
	demandRepo := memory.NewDemandRepository(store)
	forecastRepo := memory.NewForecastRepository(store)
	patternRepo := memory.NewPatternRepository(store)
	marketRepo := memory.NewMarketRepository(store)
	orderRepo := memory.NewOrderRepository(store)

	configs := NewConfigService(configRepo, dealerRepo)
	forecasts := NewForecastService(
		configs, dealerRepo, demandRepo, forecastRepo, patternRepo, marketRepo,
		cache.NewNoopAnalysisCache(), storage.NewNoopArchiver(),
	)
	orders := NewOrderService(configs, demandRepo, forecastRepo, orderRepo)

	return &fixture{
		store:        store,
		configs:      configs,
		forecasts:    forecasts,
		orders:       orders,
		marketRepo:   marketRepo,
		patternRepo:  patternRepo,
		forecastRepo: forecastRepo,
		orderRepo:    orderRepo,
	}
}

func (f *fixture) seedDealer(id int64, region string) {
	f.store.AddDealer(domain.Dealer{ID: id, Name: "Dealer", Region: region})
}

func (f *fixture) seedProduct(id int64, sku string, cost int64) {
	f.store.AddProduct(domain.Product{ID: id, SKU: sku, Name: "Product " + sku, UnitCost: decimal.NewFromInt(cost)})
}

// seedFlatDemand adds `months` monthly observations for a product ending last
// month, each of the given quantity.
func (f *fixture) seedFlatDemand(dealerID, productID int64, months int, qty float64) {
	now := time.Now().UTC()
	for i := 1; i <= months; i++ {
		d := now.AddDate(0, -i, 0)
		f.store.AddDemand(dealerID, domain.DemandPoint{
			Date:      time.Date(d.Year(), d.Month(), 15, 0, 0, 0, 0, time.UTC),
			Quantity:  qty,
			ProductID: productID,
		})
	}
}
