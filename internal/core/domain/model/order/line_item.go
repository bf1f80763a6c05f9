package order

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrQuantityIsInvalid is returned when a line item quantity is not
	// greater than zero.
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")

	// ErrLineItemIsNotConstructed is returned when a LineItem instance was
	// not created through the NewLineItem constructor.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// LineItem is an entity owned exclusively by an Order. It records one menu
// item position of the order: the referenced menu item, the quantity, and the
// unit price captured at order time.
//
// The captured unit price is deliberately decoupled from the catalog's
// current price, so historical orders are immune to later price changes.
//
// The subtotal of a line item is always derived as quantity x unit price; it
// is never stored independently on the entity and therefore can never drift
// out of sync.
type LineItem struct {
	// id uniquely identifies the line item
	id kernel.UUID
	// menuItemID references the catalog menu item (reference, not ownership)
	menuItemID kernel.UUID
	// quantity is the number of units ordered (always > 0)
	quantity int
	// unitPrice is the menu item price captured when the item was ordered
	unitPrice kernel.Money
	// isConstructed ensures the line item was created via NewLineItem
	isConstructed bool
}

// NewLineItem creates a validated LineItem.
//
// Parameters:
//   - id: unique identifier for the line item
//   - menuItemID: identifier of the referenced catalog menu item
//   - quantity: number of units (must be greater than 0)
//   - unitPrice: menu item price captured at order time
//
// Returns an aggregated validation error if any parameter is invalid.
func NewLineItem(id, menuItemID kernel.UUID, quantity int, unitPrice kernel.Money) (*LineItem, error) {
	item := &LineItem{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreLineItem reconstructs a LineItem from persistent storage.
// The same validation rules as NewLineItem apply; persisted rows that violate
// them indicate corrupted data and are rejected.
func RestoreLineItem(id, menuItemID kernel.UUID, quantity int, unitPrice kernel.Money) (*LineItem, error) {
	return NewLineItem(id, menuItemID, quantity, unitPrice)
}

// Validate ensures the LineItem instance was properly constructed.
func (li *LineItem) Validate() error {
	if li == nil || !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (li *LineItem) ID() kernel.UUID {
	return li.id
}

// MenuItemID returns the identifier of the referenced catalog menu item.
func (li *LineItem) MenuItemID() kernel.UUID {
	return li.menuItemID
}

// Quantity returns the number of units ordered.
func (li *LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the price captured at order time.
func (li *LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Subtotal returns quantity x captured unit price. The value is computed on
// every call; there is no stored field to fall out of sync.
func (li *LineItem) Subtotal() kernel.Money {
	return li.unitPrice.Multiply(li.quantity)
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("menuItemId", err)
	}
	li.menuItemID = menuItemID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrQuantityIsInvalid, quantity)
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	li.unitPrice = unitPrice
	return nil
}
