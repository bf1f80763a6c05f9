package commands

import (
	"context"
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"
)

// ErrItemUnavailable is returned when a submitted cart references a menu item
// whose availability flag is off. The whole cart is rejected; no lines are
// applied.
var ErrItemUnavailable = errors.New("menu item is not available")

// SubmitCartCommandHandler implements the place-or-merge protocol, the
// customer-facing core behavior of the order lifecycle engine:
//
//  1. Look up the table's open order.
//  2. If none exists, create one.
//  3. If one exists in New status, merge the cart's lines into it.
//  4. If one exists in InProgress status, start a new order instead, so the
//     kitchen never sees items silently added to an order it already began.
//  5. Append the lines with catalog prices captured now, recomputing the
//     total in the same mutation.
//
// The whole sequence runs inside one transaction with a per-table lock held,
// so two concurrent carts for the same table serialize: no duplicate open
// orders, no lost total updates. Independent tables proceed in parallel.
//
// Example:
//
//	handler := NewSubmitCartCommandHandler(uowFactory)
//	cmd, _ := NewSubmitCartCommand(1, []CartLine{{MenuItemID: colaID, Quantity: 3}})
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("cart submission failed: %w", err)
//	}
type SubmitCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewSubmitCartCommandHandler creates a handler for cart submissions.
// Requires a CartUoWFactory for transactional order and catalog access.
func NewSubmitCartCommandHandler(uowFactory CartUoWFactory) SubmitCartCommandHandler {
	return SubmitCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cart submission and returns the identifier of the
// order the cart ended up in (existing or freshly created).
//
// Failure semantics: repository and catalog failures propagate unchanged; no
// retries; the multi-line append either fully succeeds or fully fails.
func (h *SubmitCartCommandHandler) Handle(ctx context.Context, cmd SubmitCartCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err := orderRepo.LockTable(ctx, cmd.TableNumber()); err != nil {
		return kernel.UUID{}, err
	}

	target, isNew, err := h.resolveTargetOrder(ctx, orderRepo, cmd.TableNumber())
	if err != nil {
		return kernel.UUID{}, err
	}

	items, err := h.captureLineItems(ctx, uow.Catalog(), cmd.Lines())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = target.AddItems(items...); err != nil {
		return kernel.UUID{}, err
	}

	if isNew {
		err = orderRepo.Add(ctx, target)
	} else {
		err = orderRepo.Update(ctx, target)
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return target.ID(), nil
}

// resolveTargetOrder decides between merge and create. Merges only target
// orders in New status; an open InProgress order means the kitchen already
// acknowledged it, so the cart starts a fresh order for the table.
func (h *SubmitCartCommandHandler) resolveTargetOrder(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	tableNumber int,
) (*order.Order, bool, error) {
	open, err := orderRepo.GetOpenByTable(ctx, tableNumber)
	switch {
	case err == nil && open.Status() == order.New:
		return open, false, nil
	case err == nil:
		// open but already in preparation
	case errors.Is(err, errs.ErrObjectNotFound):
		// no open order for the table
	default:
		return nil, false, err
	}

	fresh, err := order.NewOrder(kernel.NewUUID(), tableNumber)
	if err != nil {
		return nil, false, err
	}
	return fresh, true, nil
}

// captureLineItems resolves every cart line against the catalog, capturing
// the current price into a new line item. Any unknown or unavailable item
// fails the whole cart.
func (h *SubmitCartCommandHandler) captureLineItems(
	ctx context.Context,
	catalog ports.Catalog,
	lines []CartLine,
) ([]*order.LineItem, error) {
	items := make([]*order.LineItem, 0, len(lines))
	for _, line := range lines {
		menuItem, err := catalog.GetItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}

		if !menuItem.Available {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, menuItem.ID)
		}

		item, err := order.NewLineItem(kernel.NewUUID(), menuItem.ID, line.Quantity, menuItem.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
