package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob  *OutboxRelayJob
	overdueWatchJob *OverdueWatchJob
}

func NewJobManager(outboxRelayJob *OutboxRelayJob, overdueWatchJob *OverdueWatchJob) *JobManager {
	return &JobManager{
		outboxRelayJob:  outboxRelayJob,
		overdueWatchJob: overdueWatchJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	return startInOrder(
		namedJob{"outbox relay", jm.outboxRelayJob},
		namedJob{"overdue watch", jm.overdueWatchJob},
	)
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueWatchJob.Stop()
	jm.outboxRelayJob.Stop()
}

type namedJob struct {
	name string
	job  job
}

// startInOrder stops the jobs already started when a later one fails.
func startInOrder(jobs ...namedJob) error {
	for i, j := range jobs {
		if err := j.job.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jobs[k].job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}
