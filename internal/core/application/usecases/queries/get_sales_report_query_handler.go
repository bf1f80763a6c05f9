package queries

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetSalesReportQueryHandler builds the sales period summary from the
// database with a single grouped aggregation.
type GetSalesReportQueryHandler struct {
	db *gorm.DB
}

// NewGetSalesReportQueryHandler creates a handler for sales report queries.
// Requires a GORM database connection for query execution.
func NewGetSalesReportQueryHandler(db *gorm.DB) GetSalesReportQueryHandler {
	return GetSalesReportQueryHandler{db: db}
}

// Handle executes the aggregation. An empty orders table yields a zero
// report, not an error.
func (h GetSalesReportQueryHandler) Handle(
	ctx context.Context,
	query GetSalesReportQuery,
) (GetSalesReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSalesReportQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(total_cents), 0)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetSalesReportQueryResponse{}, err
	}
	defer rows.Close()

	var resp GetSalesReportQueryResponse
	for rows.Next() {
		var (
			status       int
			count        int
			revenueCents int64
		)

		if err = rows.Scan(&status, &count, &revenueCents); err != nil {
			return GetSalesReportQueryResponse{}, err
		}

		resp.TotalOrders += count
		switch order.Status(status) {
		case order.New:
			resp.NewOrders = count
		case order.InProgress:
			resp.InProgressOrders = count
		case order.Fulfilled:
			resp.FulfilledOrders = count

			revenue, moneyErr := kernel.NewMoneyFromCents(revenueCents)
			if moneyErr != nil {
				return GetSalesReportQueryResponse{}, moneyErr
			}
			resp.FulfilledRevenue = resp.FulfilledRevenue.Add(revenue)
		}
	}

	if err = rows.Err(); err != nil {
		return GetSalesReportQueryResponse{}, err
	}

	return resp, nil
}
