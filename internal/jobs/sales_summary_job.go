package jobs

import (
	"context"
	"log/slog"

	"tableside/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// SalesSummaryJob logs a daily summary of the sales period shortly after
// midnight. It only reads; resetting sales data remains an explicit,
// operator-triggered action.
type SalesSummaryJob struct {
	handler queries.GetSalesReportQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSalesSummaryJob creates the daily sales summary job.
func NewSalesSummaryJob(handler queries.GetSalesReportQueryHandler, logger *slog.Logger) *SalesSummaryJob {
	return &SalesSummaryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "sales_summary_job"),
	}
}

// Start schedules the summary to run daily at 00:05.
func (j *SalesSummaryJob) Start() error {
	_, err := j.cron.AddFunc("5 0 * * *", func() {
		ctx := context.Background()

		report, reportErr := j.handler.Handle(ctx, queries.NewGetSalesReportQuery())
		if reportErr != nil {
			j.logger.ErrorContext(ctx, "Sales summary job failed", "error", reportErr)
			return
		}

		j.logger.InfoContext(ctx, "Daily sales summary",
			"total_orders", report.TotalOrders,
			"new", report.NewOrders,
			"in_progress", report.InProgressOrders,
			"fulfilled", report.FulfilledOrders,
			"fulfilled_revenue", report.FulfilledRevenue.String(),
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sales summary job started (daily at 00:05)")
	return nil
}

// Stop stops the sales summary job.
func (j *SalesSummaryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Sales summary job stopped")
}
