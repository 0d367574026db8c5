package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	slaMonitorJob         *SLAMonitorJob
	monthlyPerformanceJob *MonthlyPerformanceJob
}

func NewJobManager(slaMonitorJob *SLAMonitorJob, monthlyPerformanceJob *MonthlyPerformanceJob) *JobManager {
	return &JobManager{
		slaMonitorJob:         slaMonitorJob,
		monthlyPerformanceJob: monthlyPerformanceJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.slaMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start SLA monitor job: %w", err)
	}

	if err := jm.monthlyPerformanceJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.slaMonitorJob.Stop()
		return fmt.Errorf("failed to start monthly performance job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.monthlyPerformanceJob.Stop()
	jm.slaMonitorJob.Stop()
}
