// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field in their schedules.
//
// # Available Jobs
//
// 1. SLAMonitorJob - logs every active order whose stage deadline is approaching or overdue
// 2. MonthlyPerformanceJob - generates last month's performance report for every salaried staff member
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewSLAMonitorJob(deadlinesHandler, clock, "0 */5 * * * *", logger),
//		jobs.NewMonthlyPerformanceJob(reportHandler, uowFactory, clock, "0 0 2 1 * *", logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Job failures are logged and never stop the scheduler
// - Failed job starts will stop any already running jobs
package jobs
