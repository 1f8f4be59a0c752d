// Package memory provides in-memory repository implementations with the same
// uniqueness and referential-integrity behavior as the postgres layer. They
// back the service tests and offline dry runs.
package memory

import (
	"sync"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// Store is the shared backing state for the in-memory repositories.
type Store struct {
	mu sync.RWMutex

	dealers  map[int64]*domain.Dealer
	products map[int64]*domain.Product

	configs      map[int64]*domain.ForecastConfig // by config id
	configSeq    int64
	forecasts    map[int64]*domain.DemandForecast
	forecastSeq  int64
	orders       map[int64]*domain.SuggestedOrder
	orderSeq     int64
	indicators   map[int64]*domain.MarketIndicator
	indicatorSeq int64
	patterns     map[int64]*domain.SeasonalPattern
	patternSeq   int64

	history map[int64][]domain.DemandPoint // by dealer id
	stock   map[int64]map[int64]float64    // dealer id -> product id -> qty
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		dealers:    make(map[int64]*domain.Dealer),
		products:   make(map[int64]*domain.Product),
		configs:    make(map[int64]*domain.ForecastConfig),
		forecasts:  make(map[int64]*domain.DemandForecast),
		orders:     make(map[int64]*domain.SuggestedOrder),
		indicators: make(map[int64]*domain.MarketIndicator),
		patterns:   make(map[int64]*domain.SeasonalPattern),
		history:    make(map[int64][]domain.DemandPoint),
		stock:      make(map[int64]map[int64]float64),
	}
}

// AddDealer seeds a dealer row.
func (s *Store) AddDealer(d domain.Dealer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := d
	s.dealers[d.ID] = &cp
}

// AddProduct seeds a product row.
func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.products[p.ID] = &cp
}

// AddDemand seeds order-line history for a dealer.
func (s *Store) AddDemand(dealerID int64, points ...domain.DemandPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[dealerID] = append(s.history[dealerID], points...)
}

// SetStock seeds the current stock level for a dealer/product.
func (s *Store) SetStock(dealerID, productID int64, qty float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stock[dealerID] == nil {
		s.stock[dealerID] = make(map[int64]float64)
	}
	s.stock[dealerID][productID] = qty
}
