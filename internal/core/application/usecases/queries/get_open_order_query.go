package queries

import (
	"errors"
	"fmt"

	"tableside/internal/pkg/guard"
)

var (
	ErrGetOpenOrderQueryIsNotConstructed = errors.New(
		"GetOpenOrderQuery must be created via NewGetOpenOrderQuery constructor",
	)
	ErrQueryTableNumberIsInvalid = errors.New("table number must be greater than 0")
)

// GetOpenOrderQuery retrieves a table's current open order with its line
// items. Open means status New or InProgress; a table has at most one open
// order at a time.
//
// Example:
//
//	query, err := NewGetOpenOrderQuery(5)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOpenOrderQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get table 5's order: %w", err)
//	}
//	fmt.Printf("order %s, total %s\n", resp.ID, resp.Total)
type GetOpenOrderQuery struct { //nolint:recvcheck //using for validation
	tableNumber int

	guard guard.ConstructorGuard
}

// NewGetOpenOrderQuery creates a query for a table's open order.
// Validates that the table number is positive.
func NewGetOpenOrderQuery(tableNumber int) (GetOpenOrderQuery, error) {
	q := GetOpenOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setTableNumber(tableNumber); err != nil {
		return GetOpenOrderQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOpenOrderQueryIsNotConstructed if validation fails.
func (q GetOpenOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrderQueryIsNotConstructed)
}

// TableNumber returns the number of the table whose order is requested.
func (q GetOpenOrderQuery) TableNumber() int {
	return q.tableNumber
}

func (q *GetOpenOrderQuery) setTableNumber(tableNumber int) error {
	if tableNumber <= 0 {
		return fmt.Errorf("%w: got %d", ErrQueryTableNumberIsInvalid, tableNumber)
	}

	q.tableNumber = tableNumber
	return nil
}
