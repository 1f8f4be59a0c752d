package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/forecast-engine/internal/cache"
	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository/memory"
	"github.com/dealerhub/forecast-engine/internal/service"
	"github.com/dealerhub/forecast-engine/internal/storage"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	configRepo := memory.NewConfigRepository(store)
	dealerRepo := memory.NewDealerRepository(store)
	demandRepo := memory.NewDemandRepository(store)
	forecastRepo := memory.NewForecastRepository(store)
	patternRepo := memory.NewPatternRepository(store)
	marketRepo := memory.NewMarketRepository(store)
	orderRepo := memory.NewOrderRepository(store)

	configService := service.NewConfigService(configRepo, dealerRepo)
	forecastService := service.NewForecastService(
		configService, dealerRepo, demandRepo, forecastRepo, patternRepo, marketRepo,
		cache.NewNoopAnalysisCache(), storage.NewNoopArchiver(),
	)
	orderService := service.NewOrderService(configService, demandRepo, forecastRepo, orderRepo)

	router := NewRouter(&Services{
		ConfigService:   configService,
		ForecastService: forecastService,
		OrderService:    orderService,
	}, nil)

	return router, store
}

func seedDealerWithDemand(store *memory.Store) {
	store.AddDealer(domain.Dealer{ID: 1, Name: "Dealer", Region: "north"})
	store.AddProduct(domain.Product{ID: 7, SKU: "SKU-7", Name: "Product 7", UnitCost: decimal.NewFromInt(25)})

	now := time.Now().UTC()
	for i := 1; i <= 12; i++ {
		d := now.AddDate(0, -i, 0)
		store.AddDemand(1, domain.DemandPoint{
			Date:      time.Date(d.Year(), d.Month(), 15, 0, 0, 0, 0, time.UTC),
			Quantity:  300,
			ProductID: 7,
		})
	}
	store.SetStock(1, 7, 0)
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetConfig_CreatesDefaults(t *testing.T) {
	router, store := newTestRouter(t)
	store.AddDealer(domain.Dealer{ID: 1, Name: "Dealer", Region: "north"})

	w := doRequest(router, http.MethodGet, "/api/v1/dealers/1/forecast/config", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg domain.ForecastConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, int64(1), cfg.DealerID)
	assert.Equal(t, domain.DefaultHorizonPeriods, cfg.HorizonPeriods)
}

func TestGetConfig_UnknownDealer(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/dealers/99/forecast/config", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetConfig_BadDealerID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/dealers/abc/forecast/config", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateConfig_PartialMerge(t *testing.T) {
	router, store := newTestRouter(t)
	store.AddDealer(domain.Dealer{ID: 1, Name: "Dealer", Region: "north"})

	w := doRequest(router, http.MethodPut, "/api/v1/dealers/1/forecast/config", gin.H{
		"horizon_periods": 6,
		"lead_time_days":  30,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var cfg domain.ForecastConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, 6, cfg.HorizonPeriods)
	assert.Equal(t, 30, cfg.LeadTimeDays)
	assert.Equal(t, domain.DefaultHistoryMonths, cfg.HistoryMonths)
}

func TestGenerateForecasts(t *testing.T) {
	router, store := newTestRouter(t)
	seedDealerWithDemand(store)

	w := doRequest(router, http.MethodPost, "/api/v1/dealers/1/forecast/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Forecasts []domain.DemandForecast `json:"forecasts"`
		Count     int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.DefaultHorizonPeriods, resp.Count)
	assert.Len(t, resp.Forecasts, resp.Count)
}

func TestGenerateForecasts_EmptySubset(t *testing.T) {
	router, store := newTestRouter(t)
	seedDealerWithDemand(store)

	w := doRequest(router, http.MethodPost, "/api/v1/dealers/1/forecast/generate", gin.H{
		"product_ids": []int64{},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
}

func TestMarketIndicatorAndAnalysis(t *testing.T) {
	router, store := newTestRouter(t)
	store.AddDealer(domain.Dealer{ID: 1, Name: "Dealer", Region: "north"})

	w := doRequest(router, http.MethodPost, "/api/v1/market/indicators", gin.H{
		"region":        "north",
		"name":          "housing_starts",
		"period":        "2026-07-01T00:00:00Z",
		"value":         110,
		"prior_value":   100,
		"impact_factor": 1.0,
		"confidence":    1.0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/dealers/1/forecast/market-analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var analysis domain.MarketAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, "north", analysis.Region)
	assert.InDelta(t, 1.1, analysis.AdjustmentFactor, 1e-9)
	assert.Equal(t, domain.OutlookPositive, analysis.OverallOutlook)
}

func TestMarketIndicator_MissingKeyRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/market/indicators", gin.H{
		"name": "fuel_price",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderPlanLifecycle(t *testing.T) {
	router, store := newTestRouter(t)
	seedDealerWithDemand(store)

	// generate forecasts, then the plan
	w := doRequest(router, http.MethodPost, "/api/v1/dealers/1/forecast/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/dealers/1/orders/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var plan domain.OrderPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Len(t, plan.Orders, 1)
	orderID := plan.Orders[0].ID
	assert.Equal(t, 1, plan.Summary.TotalOrders)

	// list with a status filter
	w = doRequest(router, http.MethodGet, "/api/v1/dealers/1/orders?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Orders []domain.SuggestedOrder `json:"orders"`
		Total  int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Total)

	// accept it
	w = doRequest(router, http.MethodPut, "/api/v1/orders/1/status", gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.SuggestedOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, orderID, updated.ID)
	assert.Equal(t, domain.OrderStatusAccepted, updated.Status)
	assert.NotNil(t, updated.AcceptedAt)

	// timeline has one month
	w = doRequest(router, http.MethodGet, "/api/v1/dealers/1/orders/timeline", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var timeline domain.OrderTimelineData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &timeline))
	require.Len(t, timeline.Months, 1)
	assert.Equal(t, 1, timeline.Months[0].OrderCount)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPut, "/api/v1/orders/999/status", gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	router, store := newTestRouter(t)
	seedDealerWithDemand(store)

	w := doRequest(router, http.MethodPost, "/api/v1/dealers/1/orders/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPut, "/api/v1/orders/1/status", gin.H{"status": "launched"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForecastChart(t *testing.T) {
	router, store := newTestRouter(t)
	seedDealerWithDemand(store)

	w := doRequest(router, http.MethodPost, "/api/v1/dealers/1/forecast/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/dealers/1/forecast/chart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var chart domain.ForecastChartData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chart))
	assert.Len(t, chart.Labels, domain.DefaultHorizonPeriods)
	require.Len(t, chart.Datasets, 4)
	for _, ds := range chart.Datasets {
		assert.Len(t, ds.Values, len(chart.Labels))
	}
}
