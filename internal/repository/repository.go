// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/dealerbridge/forecast-go/internal/domain"
)

// ErrDealerNotFound aborts a whole generation run; a dealer with no row in
// the portal store has nothing to plan for.
var ErrDealerNotFound = errors.New("dealer not found")

// DealerRepository resolves dealer records from the portal store.
type DealerRepository interface {
	GetDealer(ctx context.Context, dealerID int64) (*domain.Dealer, error)
}

// ConfigRepository manages per-dealer forecast configs. GetOrCreate is the
// explicit upsert behind the lazy-defaults behavior: the first read writes
// the default row.
type ConfigRepository interface {
	GetOrCreateConfig(ctx context.Context, dealerID int64) (*domain.ForecastConfig, error)
	UpdateConfig(ctx context.Context, dealerID int64, patch *domain.ConfigPatch) (*domain.ForecastConfig, error)
}

// HistoryRepository reads demand history derived from order line items.
// Only confirmed-or-later, non-cancelled orders count as demand.
type HistoryRepository interface {
	OrderHistory(ctx context.Context, dealerID int64, productID *int64, monthsBack int) ([]domain.HistoricalDemandPoint, error)
}

// ProductRepository reads the dealer's active catalogue with stock summed
// across locations. A nil or empty ids filter returns all active products.
type ProductRepository interface {
	ActiveProducts(ctx context.Context, dealerID int64, productIDs []int64) ([]*domain.Product, error)
}

// ForecastRepository persists generated forecasts. ReplaceForecasts is
// atomic per (config, product): delete all existing rows for the pair, then
// bulk-insert the new set in one transaction.
type ForecastRepository interface {
	ReplaceForecasts(ctx context.Context, configID, productID int64, periods []domain.DemandForecast) error
	ListForecasts(ctx context.Context, configID int64, productID *int64) ([]domain.DemandForecast, error)
}

// SuggestedOrderRepository persists plan output. ReplacePending deletes
// only pending rows for the config before inserting, so accepted and
// skipped decisions survive regeneration.
type SuggestedOrderRepository interface {
	ReplacePendingOrders(ctx context.Context, configID int64, items []domain.SuggestedOrderItem) error
	ListSuggestedOrders(ctx context.Context, configID int64, status *domain.OrderStatus) ([]domain.SuggestedOrderItem, error)
	SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus, linkedOrderID *int64) error
}
