package job

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs jobs on cron specs
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	l := cronLogger{logger: logger.Sugar()}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(l), cron.WithChain(cron.Recover(l))),
		logger: logger,
	}
}

// cronLogger adapts zap to cron.Logger. Scheduler chatter goes to debug;
// errors, including recovered job panics, go to error.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Add registers j under spec, e.g. "@every 30s" or "*/5 * * * *"
func (s *Scheduler) Add(name, spec string, j cron.Job) error {
	if _, err := s.cron.AddJob(spec, j); err != nil {
		return fmt.Errorf("failed to schedule %s job with spec %q: %w", name, spec, err)
	}
	s.logger.Info("Job scheduled",
		zap.String("job", name),
		zap.String("spec", spec),
	)
	return nil
}

// Len returns the number of scheduled jobs
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for running jobs")
	}
}
