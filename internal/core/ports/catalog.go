package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
)

// MenuItem is the read-only catalog view consumed by the order core.
// The catalog owns menu maintenance; the core only looks up the current
// price and availability of an item when capturing it into an order.
type MenuItem struct {
	ID        kernel.UUID
	Name      string
	Price     kernel.Money
	Available bool
}

// Catalog is the consumed interface of the menu catalog collaborator.
type Catalog interface {
	// GetItem looks up a menu item by its identifier.
	// Fails with an ObjectNotFoundError if the item does not exist.
	GetItem(ctx context.Context, id kernel.UUID) (MenuItem, error)
}
