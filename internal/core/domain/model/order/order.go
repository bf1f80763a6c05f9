package order

import (
	"errors"
	"fmt"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTotalMismatch is returned when a persisted order total disagrees with
	// the sum of its line items' subtotals. Given correct derivation this is
	// unreachable; hitting it signals a programming defect or corrupted data,
	// not a user error.
	ErrTotalMismatch = errors.New("order total does not equal the sum of line item subtotals")
)

// Order represents a restaurant table order. It is the aggregate root that
// manages the order lifecycle from creation through kitchen fulfillment and
// exclusively owns its line items.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and a positive table number
//   - Its total always equals the sum of its line items' subtotals, enforced
//     on every mutation rather than recomputed on read
//   - Status transitions follow the linear New -> InProgress -> Fulfilled machine
//   - Merging new line items resets the status to New, so a kitchen
//     acknowledgment can never hide freshly added items
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tableNumber identifies the table that placed the order. Table numbers
	// are not unique across orders; a table accumulates many orders over time.
	tableNumber int

	// items are the line items exclusively owned by this order
	items []*LineItem

	// total is the order total, always the sum of item subtotals
	total kernel.Money

	// status is the current state in the order lifecycle
	status Status

	// createdAt and updatedAt are persistence timestamps. They are stamped by
	// the repository on write (touch-on-write); the aggregate only carries
	// them for restored instances.
	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new empty Order for a table: status New, total 0.00,
// no line items. This is how a table's first cart of a session starts.
//
// Parameters:
//   - id: unique identifier for the order
//   - tableNumber: positive table number placing the order
//
// Returns a validation error if any parameter is invalid.
func NewOrder(id kernel.UUID, tableNumber int) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableNumber(tableNumber),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, it restores line items, total, status, and timestamps.
//
// RestoreOrder re-verifies the total invariant: if the persisted total does
// not equal the sum of the restored line items' subtotals, it fails with
// ErrTotalMismatch instead of propagating a corrupted aggregate.
func RestoreOrder(
	id kernel.UUID,
	tableNumber int,
	items []*LineItem,
	total kernel.Money,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableNumber(tableNumber),
		o.setStatus(status),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if !total.IsEqual(o.sumOfSubtotals()) {
		return nil, fmt.Errorf("%w: stored %s, derived %s",
			ErrTotalMismatch, total, o.sumOfSubtotals())
	}

	o.total = total
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// constructor. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TableNumber returns the number of the table that placed the order.
func (o *Order) TableNumber() int {
	return o.tableNumber
}

// Items returns the order's line items. The returned slice is a copy; the
// aggregate retains exclusive ownership of the underlying entities.
func (o *Order) Items() []*LineItem {
	items := make([]*LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total. It always equals the sum of the line items'
// subtotals.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the persistence creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-write timestamp stamped by the repository.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOpen reports whether the order is still open (status not Fulfilled).
func (o *Order) IsOpen() bool {
	return o.status.IsOpen()
}

// AddItems merges new line items into the order and recomputes the total as
// part of the same mutation, keeping the total invariant intact at every
// observable point.
//
// Merging resets the order status to New: if the kitchen had already
// acknowledged the order, freshly added items must not ride along unseen.
// The lifecycle engine guarantees merges only ever target orders in New
// status; the reset here makes the rule robust against direct repository use.
//
// The merge is all-or-nothing: if any item is invalid, no item is applied.
//
// Returns:
//   - an error if the order is not constructed, items is empty, or any item
//     fails validation
func (o *Order) AddItems(items ...*LineItem) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = append(o.items, items...)
	o.total = o.sumOfSubtotals()
	o.status = New
	return nil
}

// Start marks the order as in preparation (New -> InProgress).
// Fails with ErrInvalidTransition from any other status.
func (o *Order) Start() error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Fulfill marks the order as ready (InProgress -> Fulfilled).
// Fails with ErrInvalidTransition from any other status.
func (o *Order) Fulfill() error {
	newStatus, err := o.status.Fulfill()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ChangeStatus transitions the order to an arbitrary requested status,
// validated against the state machine. An illegal request fails with
// ErrInvalidTransition and leaves the order unchanged.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// sumOfSubtotals derives the total from the owned line items.
func (o *Order) sumOfSubtotals() kernel.Money {
	var sum kernel.Money
	for _, item := range o.items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setTableNumber validates and sets the table number.
// Table numbers must be positive integers.
func (o *Order) setTableNumber(tableNumber int) error {
	if tableNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("tableNumber",
			fmt.Errorf("%d is not greater than 0", tableNumber))
	}
	o.tableNumber = tableNumber
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setItems validates and sets the line items during restoration.
func (o *Order) setItems(items []*LineItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
