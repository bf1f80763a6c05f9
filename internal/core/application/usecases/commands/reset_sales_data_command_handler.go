package commands

import (
	"context"
)

// ResetSalesDataCommandHandler performs the period close-out wipe: every
// order and every line item is removed in one transaction.
type ResetSalesDataCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResetSalesDataCommandHandler creates a handler for the close-out wipe.
func NewResetSalesDataCommandHandler(uowFactory OrderUoWFactory) ResetSalesDataCommandHandler {
	return ResetSalesDataCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle wipes all orders inside a transaction. There is no undo.
func (h *ResetSalesDataCommandHandler) Handle(ctx context.Context, cmd ResetSalesDataCommand) error {
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

	if err := uow.OrderRepository().DeleteAll(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
