package job

import (
	"go.uber.org/zap"
)

// Sweeper drops expired entries and reports how many were removed
type Sweeper interface {
	Sweep() int
}

// SessionSweepJob removes expired in-memory view states
type SessionSweepJob struct {
	store  Sweeper
	logger *zap.Logger
}

func NewSessionSweepJob(store Sweeper, logger *zap.Logger) *SessionSweepJob {
	return &SessionSweepJob{
		store:  store,
		logger: logger,
	}
}

// Run executes the sweep
func (j *SessionSweepJob) Run() {
	removed := j.store.Sweep()
	if removed == 0 {
		return
	}
	j.logger.Info("Removed expired view states",
		zap.Int("count", removed),
	)
}
