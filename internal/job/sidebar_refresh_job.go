package job

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ProfileRefresher is the part of view.ProfilePanel the job drives
type ProfileRefresher interface {
	Refresh(ctx context.Context) string
}

// SidebarRefreshJob re-fetches the sidebar profile on a schedule
type SidebarRefreshJob struct {
	panel   ProfileRefresher
	timeout time.Duration
	logger  *zap.Logger
}

// NewSidebarRefreshJob creates a new SidebarRefreshJob instance
func NewSidebarRefreshJob(panel ProfileRefresher, timeout time.Duration, logger *zap.Logger) *SidebarRefreshJob {
	return &SidebarRefreshJob{
		panel:   panel,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes one refresh
func (j *SidebarRefreshJob) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	result := j.panel.Refresh(ctx)

	j.logger.Debug("Sidebar refresh job completed",
		zap.String("result", result),
	)
}
