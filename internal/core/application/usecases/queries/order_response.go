package queries

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
)

// OrderResponse is the read-side projection of an order with its line items.
// Returned by both the open-order lookup and the direct order lookup.
type OrderResponse struct {
	ID          kernel.UUID
	TableNumber int
	Status      string
	Total       kernel.Money
	Items       []LineItemResponse
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineItemResponse is one position of an order as seen by readers: which menu
// item, how many units, at which captured price.
type LineItemResponse struct {
	ID         kernel.UUID
	MenuItemID kernel.UUID
	Quantity   int
	UnitPrice  kernel.Money
	Subtotal   kernel.Money
}
