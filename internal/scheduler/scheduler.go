package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron tasks.
type Scheduler struct {
	Cron *cron.Cron
}

// NewScheduler creates a new Scheduler with seconds-precision specs.
func NewScheduler() *Scheduler {
	return &Scheduler{Cron: cron.New(cron.WithSeconds())}
}

// AddJob registers a named task under a cron spec.
func (s *Scheduler) AddJob(spec, name string, job func()) error {
	if _, err := s.Cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("register %s task: %w", name, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
