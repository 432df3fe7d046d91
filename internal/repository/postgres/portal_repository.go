package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/dealerbridge/forecast-go/internal/repository"
	"github.com/jmoiron/sqlx"
)

// portalRepository reads the dealer-portal side of the store: dealers,
// products with stock across locations, and demand history derived from
// order line items.
type portalRepository struct {
	db *DB
}

func NewPortalRepository(db *DB) *portalRepository {
	return &portalRepository{db: db}
}

func (r *portalRepository) GetDealer(ctx context.Context, dealerID int64) (*domain.Dealer, error) {
	query := `
		SELECT id, name, region, created_at, updated_at
		FROM dealers
		WHERE id = $1
	`

	var dealer domain.Dealer
	err := r.db.GetContext(ctx, &dealer, query, dealerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrDealerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dealer: %w", err)
	}

	return &dealer, nil
}

// Only these order states count as realized demand; draft and cancelled
// orders are excluded.
var demandOrderStates = []string{"confirmed", "processing", "shipped", "delivered"}

func (r *portalRepository) OrderHistory(ctx context.Context, dealerID int64, productID *int64, monthsBack int) ([]domain.HistoricalDemandPoint, error) {
	query := `
		SELECT o.order_date AS date, i.product_id, SUM(i.quantity) AS quantity
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.dealer_id = ?
		  AND o.status IN (?)
		  AND o.order_date >= NOW() - (? * INTERVAL '1 month')
	`
	args := []interface{}{dealerID, demandOrderStates, monthsBack}

	if productID != nil {
		query += " AND i.product_id = ?"
		args = append(args, *productID)
	}
	query += " GROUP BY o.order_date, i.product_id ORDER BY o.order_date"

	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build order history query: %w", err)
	}
	query = r.db.Rebind(query)

	var points []domain.HistoricalDemandPoint
	if err := r.db.SelectContext(ctx, &points, query, inArgs...); err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}

	return points, nil
}

func (r *portalRepository) ActiveProducts(ctx context.Context, dealerID int64, productIDs []int64) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.price, p.cost_price,
			COALESCE(SUM(s.quantity), 0) AS current_stock
		FROM products p
		LEFT JOIN stock_levels s ON s.product_id = p.id
		WHERE p.dealer_id = ? AND p.active = TRUE
	`
	args := []interface{}{dealerID}

	if len(productIDs) > 0 {
		query += " AND p.id IN (?)"
		args = append(args, productIDs)
	}
	query += " GROUP BY p.id, p.name, p.sku, p.price, p.cost_price ORDER BY p.name"

	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build products query: %w", err)
	}
	query = r.db.Rebind(query)

	var products []*domain.Product
	if err := r.db.SelectContext(ctx, &products, query, inArgs...); err != nil {
		return nil, fmt.Errorf("failed to get active products: %w", err)
	}

	return products, nil
}
