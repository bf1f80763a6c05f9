package commands

import (
	"errors"

	"tableside/internal/pkg/guard"
)

var ErrResetSalesDataCommandIsNotConstructed = errors.New(
	"ResetSalesDataCommand must be created via NewResetSalesDataCommand constructor",
)

// ResetSalesDataCommand requests the irreversible bulk deletion of all orders
// and their line items. Used only for period close-out after reporting.
//
// Example:
//
//	cmd := NewResetSalesDataCommand()
//	handler := NewResetSalesDataCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("close-out failed: %w", err)
//	}
type ResetSalesDataCommand struct {
	guard guard.ConstructorGuard
}

// NewResetSalesDataCommand creates a command to wipe all sales data.
// This is a parameterless command; the destructive scope is the whole orders
// relation.
func NewResetSalesDataCommand() ResetSalesDataCommand {
	return ResetSalesDataCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ResetSalesDataCommand) Validate() error {
	return c.guard.Validate(ErrResetSalesDataCommandIsNotConstructed)
}
