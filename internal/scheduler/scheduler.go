package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler re-runs the analysis on a cron schedule (watch mode). Each tick
// invokes the task once; a failing run is logged and the schedule continues.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		Cron: cron.New(),
		Ctx:  ctx,
	}
}

// Register adds the analysis task under the given cron expression.
func (s *Scheduler) Register(spec string, task func() error) error {
	_, err := s.Cron.AddFunc(spec, func() {
		select {
		case <-s.Ctx.Done():
			return
		default:
		}
		logrus.Info("scheduled analysis run starting")
		if err := task(); err != nil {
			logrus.WithError(err).Error("scheduled analysis run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logrus.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	logrus.Info("scheduler stopped")
}
