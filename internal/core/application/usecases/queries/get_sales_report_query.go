package queries

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrGetSalesReportQueryIsNotConstructed = errors.New(
	"GetSalesReportQuery must be created via NewGetSalesReportQuery constructor",
)

// GetSalesReportQuery aggregates the sales period so far: how many orders sit
// in each status and how much fulfilled revenue has accumulated. Run before
// resetting sales data to close out the period.
//
// Example:
//
//	query := NewGetSalesReportQuery()
//	handler := NewGetSalesReportQueryHandler(db)
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to build sales report: %w", err)
//	}
//	fmt.Printf("fulfilled %d orders, revenue %s\n",
//	    report.FulfilledOrders, report.FulfilledRevenue)
type GetSalesReportQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSalesReportQuery creates a query for the sales period aggregation.
// This is a parameterless query over all stored orders.
func NewGetSalesReportQuery() GetSalesReportQuery {
	return GetSalesReportQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetSalesReportQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesReportQueryIsNotConstructed)
}

// GetSalesReportQueryResponse summarizes the current sales period.
// FulfilledRevenue counts only orders the kitchen completed; open orders
// contribute to the counts but not to revenue.
type GetSalesReportQueryResponse struct {
	TotalOrders      int
	NewOrders        int
	InProgressOrders int
	FulfilledOrders  int
	FulfilledRevenue kernel.Money
}
