// Package ports defines the contracts between the order lifecycle core and
// infrastructure. These interfaces establish the persistence and catalog
// boundaries, enabling dependency inversion and testability.
package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is stored together with its exclusively owned line items; every
// write persists the order row and its items as one unit, so the total
// invariant holds at every observable point.
type OrderRepository interface {
	// Add persists a new order aggregate with its line items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: the order row
	// (total, status) and any newly appended line items. Fails with an
	// ObjectNotFoundError if the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// all of its line items. Fails with an ObjectNotFoundError if absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetOpenByTable retrieves the most recently updated order for the table
	// whose status is not Fulfilled. Fails with an ObjectNotFoundError when
	// the table has no open order; callers treat that as "start a new one".
	GetOpenByTable(ctx context.Context, tableNumber int) (*order.Order, error)

	// LockTable serializes concurrent mutations for one table within the
	// current transaction. It must be called before GetOpenByTable in any
	// place-or-merge sequence; the lock is released when the transaction
	// ends. Independent tables never block each other.
	LockTable(ctx context.Context, tableNumber int) error

	// Delete removes an order and, by cascade, all of its line items.
	// Fails with an ObjectNotFoundError if the order does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteAll removes every order and all line items. Irreversible; used
	// only for the period close-out "reset sales data" operation.
	DeleteAll(ctx context.Context) error
}
