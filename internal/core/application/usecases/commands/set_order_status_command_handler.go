package commands

import (
	"context"
)

// SetOrderStatusCommandHandler handles kitchen status transitions.
// Loads the order, applies the requested transition through the state
// machine, and persists the result; an illegal transition fails with
// order.ErrInvalidTransition and leaves the stored order untouched.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetOrderStatusCommandHandler creates a handler for status transitions.
// Requires an OrderUoWFactory for transactional persistence.
func NewSetOrderStatusCommandHandler(uowFactory OrderUoWFactory) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status transition command.
// Uses a transaction so the read-validate-write sequence is atomic with
// respect to concurrent mutations of the same order.
func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
