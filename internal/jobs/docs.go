// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// The order lifecycle itself never mutates in the background; the only job is
// read-only reporting.
//
// # Available Jobs
//
// 1. SalesSummaryJob - Runs daily at 00:05 and logs the sales report: order
// counts per status and accumulated fulfilled revenue.
//
// # Usage
//
//	job := jobs.NewSalesSummaryJob(salesReportHandler, logger)
//	if err := job.Start(); err != nil {
//		log.Fatal("Failed to start sales summary job:", err)
//	}
//	defer job.Stop()
package jobs
