package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand represents the kitchen-facing request to move an
// order through its lifecycle: New -> InProgress when preparation begins,
// InProgress -> Fulfilled when the order is ready.
//
// Example:
//
//	cmd, err := NewSetOrderStatusCommand(orderID, order.InProgress)
//	if err != nil {
//	    return err
//	}
//	handler := NewSetOrderStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, order.ErrInvalidTransition) for illegal requests
//	}
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewSetOrderStatusCommand creates a command to request a status transition.
// Validates that the order ID is valid and the target status is a real
// status; whether the transition itself is legal is decided by the state
// machine when the command is handled.
func NewSetOrderStatusCommand(orderID kernel.UUID, status order.Status) (SetOrderStatusCommand, error) {
	cmd := SetOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetOrderStatusCommandIsNotConstructed if validation fails.
func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c SetOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested target status.
func (c SetOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *SetOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
