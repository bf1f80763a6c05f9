package queries

import (
	"context"
	"database/sql"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with its line items from the
// database, open or fulfilled.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup for the query's order ID.
// Returns an ObjectNotFoundError when no such order exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
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
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
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

// scanOrderRow maps one row of the orders projection to a response.
// The row must carry id, table_number, status, total_cents, created_at,
// updated_at in that column order.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		id          uuid.UUID
		tableNumber int
		status      int
		totalCents  int64
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := rows.Scan(&id, &tableNumber, &status, &totalCents, &createdAt, &updatedAt); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}

	total, err := kernel.NewMoneyFromCents(totalCents)
	if err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:          orderID,
		TableNumber: tableNumber,
		Status:      order.Status(status).String(),
		Total:       total,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// fetchLineItems loads the line items owned by an order in a stable order.
func fetchLineItems(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]LineItemResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			menu_item_id,
			quantity,
			unit_price_cents,
			subtotal_cents
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItemResponse, 0)
	for rows.Next() {
		var (
			id             uuid.UUID
			menuItemID     uuid.UUID
			quantity       int
			unitPriceCents int64
			subtotalCents  int64
		)

		if err = rows.Scan(&id, &menuItemID, &quantity, &unitPriceCents, &subtotalCents); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		menuID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		unitPrice, moneyErr := kernel.NewMoneyFromCents(unitPriceCents)
		if moneyErr != nil {
			return nil, moneyErr
		}
		subtotal, moneyErr := kernel.NewMoneyFromCents(subtotalCents)
		if moneyErr != nil {
			return nil, moneyErr
		}

		items = append(items, LineItemResponse{
			ID:         itemID,
			MenuItemID: menuID,
			Quantity:   quantity,
			UnitPrice:  unitPrice,
			Subtotal:   subtotal,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
