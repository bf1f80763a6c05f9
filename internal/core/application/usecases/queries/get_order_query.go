package queries

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by identifier, regardless of status.
// Fulfilled orders stay readable until sales data is reset.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order lookup.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	q := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}
