package queries

import (
	"context"

	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOpenOrderQueryHandler retrieves a table's open order from the database.
// This is the read behind "what has this table ordered so far": the waiter's
// view of the running order, its line items, and the current total.
//
// Example:
//
//	handler := NewGetOpenOrderQueryHandler(db)
//	query, _ := NewGetOpenOrderQuery(5)
//
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // table 5 has no open order
//	}
type GetOpenOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrderQueryHandler creates a handler for open order lookups.
// Requires a GORM database connection for query execution.
func NewGetOpenOrderQueryHandler(db *gorm.DB) GetOpenOrderQueryHandler {
	return GetOpenOrderQueryHandler{db: db}
}

// Handle executes the open order lookup for the query's table.
// Returns an ObjectNotFoundError when the table has no order in New or
// InProgress status.
func (h GetOpenOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrderQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			table_number,
			status,
			total_cents,
			created_at,
			updated_at
		FROM orders
		WHERE table_number = ? AND status IN (?, ?)
		ORDER BY updated_at DESC
		LIMIT 1
	`, query.TableNumber(), order.New, order.InProgress).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("tableNumber", query.TableNumber())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return OrderResponse{}, err
	}

	if err = rows.Err(); err != nil {
		return OrderResponse{}, err
	}

	resp.Items, err = fetchLineItems(ctx, h.db, resp.ID)
	if err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}
