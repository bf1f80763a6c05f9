package commands

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/guard"
)

var (
	ErrSubmitCartCommandIsNotConstructed = errors.New(
		"SubmitCartCommand must be created via NewSubmitCartCommand constructor",
	)
	ErrTableNumberIsInvalid = errors.New("table number must be greater than 0")
	ErrCartIsEmpty          = errors.New("cart must contain at least one line")
)

// CartLine is one requested position of a submitted cart: which menu item and
// how many units. Prices are not part of the request; they are captured from
// the catalog at append time.
type CartLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// SubmitCartCommand represents a table submitting a cart of menu items.
// Depending on the table's current open order, handling it either merges the
// cart into that order or starts a new one (place-or-merge).
//
// Example:
//
//	cmd, err := NewSubmitCartCommand(1, []CartLine{{MenuItemID: burgerID, Quantity: 1}})
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
//
//	handler := NewSubmitCartCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type SubmitCartCommand struct { //nolint:recvcheck //using for validation
	tableNumber int
	lines       []CartLine

	guard guard.ConstructorGuard
}

// NewSubmitCartCommand creates a command for a table's cart submission.
// Validates that the table number is positive, the cart is not empty, and
// every line references a menu item with a quantity greater than zero.
func NewSubmitCartCommand(tableNumber int, lines []CartLine) (SubmitCartCommand, error) {
	cmd := SubmitCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTableNumber(tableNumber),
		cmd.setLines(lines),
	); err != nil {
		return SubmitCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitCartCommandIsNotConstructed if validation fails.
func (c SubmitCartCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCartCommandIsNotConstructed)
}

// TableNumber returns the number of the table submitting the cart.
func (c SubmitCartCommand) TableNumber() int {
	return c.tableNumber
}

// Lines returns the requested cart lines.
func (c SubmitCartCommand) Lines() []CartLine {
	return c.lines
}

func (c *SubmitCartCommand) setTableNumber(tableNumber int) error {
	if tableNumber <= 0 {
		return fmt.Errorf("%w: got %d", ErrTableNumberIsInvalid, tableNumber)
	}

	c.tableNumber = tableNumber
	return nil
}

func (c *SubmitCartCommand) setLines(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrCartIsEmpty
	}

	for i, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("line %d: %w: got %d", i, order.ErrQuantityIsInvalid, line.Quantity)
		}
	}

	c.lines = lines
	return nil
}
