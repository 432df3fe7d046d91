package postgres

import (
	"context"
	"fmt"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type suggestedOrderRepository struct {
	db *DB
}

func NewSuggestedOrderRepository(db *DB) *suggestedOrderRepository {
	return &suggestedOrderRepository{db: db}
}

// ReplacePendingOrders deletes only pending rows before inserting the new
// batch. Accepted, ordered and skipped rows are dealer decisions and
// survive regeneration.
func (r *suggestedOrderRepository) ReplacePendingOrders(ctx context.Context, configID int64, items []domain.SuggestedOrderItem) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM suggested_orders WHERE config_id = $1 AND status = $2`,
			configID, domain.StatusPending)
		if err != nil {
			return fmt.Errorf("failed to delete pending orders: %w", err)
		}

		if len(items) == 0 {
			return nil
		}

		query := `
			INSERT INTO suggested_orders (
				config_id, product_id, product_name,
				suggested_order_date, expected_delivery_date,
				suggested_quantity, minimum_quantity, economic_order_qty,
				current_stock, projected_stock, projected_demand,
				estimated_cost, estimated_value,
				priority, status, linked_order_id, reasoning, created_at
			) VALUES (
				:config_id, :product_id, :product_name,
				:suggested_order_date, :expected_delivery_date,
				:suggested_quantity, :minimum_quantity, :economic_order_qty,
				:current_stock, :projected_stock, :projected_demand,
				:estimated_cost, :estimated_value,
				:priority, :status, :linked_order_id, :reasoning, NOW()
			)
		`
		if _, err := tx.NamedExecContext(ctx, query, items); err != nil {
			return fmt.Errorf("failed to insert suggested orders: %w", err)
		}

		return nil
	})
}

func (r *suggestedOrderRepository) ListSuggestedOrders(ctx context.Context, configID int64, status *domain.OrderStatus) ([]domain.SuggestedOrderItem, error) {
	query := `
		SELECT id, config_id, product_id, product_name,
			suggested_order_date, expected_delivery_date,
			suggested_quantity, minimum_quantity, economic_order_qty,
			current_stock, projected_stock, projected_demand,
			estimated_cost, estimated_value,
			priority, status, linked_order_id, reasoning, created_at
		FROM suggested_orders
		WHERE config_id = $1
	`
	args := []interface{}{configID}

	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY suggested_order_date, product_name"

	var items []domain.SuggestedOrderItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list suggested orders: %w", err)
	}

	return items, nil
}

func (r *suggestedOrderRepository) SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus, linkedOrderID *int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE suggested_orders SET status = $1, linked_order_id = $2 WHERE id = $3`,
		status, linkedOrderID, orderID)
	if err != nil {
		return fmt.Errorf("failed to set order status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check order update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("suggested order %d not found", orderID)
	}

	return nil
}
