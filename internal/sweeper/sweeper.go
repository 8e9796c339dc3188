// Package sweeper runs the periodic pass moving active job postings past
// their deadline to expired.
package sweeper

import (
	"context"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"

	"github.com/crewup/crewup-api/internal/service"
)

type Sweeper struct {
	jobService *service.JobService
	interval   time.Duration
}

func New(jobService *service.JobService, interval time.Duration) *Sweeper {
	return &Sweeper{jobService: jobService, interval: interval}
}

// Run sweeps until the context is canceled. The ticker is jittered so
// several replicas don't hammer the database in lockstep.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := jitterbug.New(s.interval, &jitterbug.Norm{Stdev: 5 * time.Second, Mean: 0})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.S().Named("sweeper").Info("sweeper stopped")
			return
		case <-ticker.C:
		}

		if _, err := s.jobService.ExpireDueJobs(ctx); err != nil {
			zap.S().Named("sweeper").Errorw("failed to expire due jobs", "error", err)
		}
	}
}
