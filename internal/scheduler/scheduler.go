// Package scheduler wires up the cron job that keeps the common job listings
// warm in the cache.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"gigboard/marketplace-service/internal/job"
)

// Scheduler wraps robfig/cron and manages the cache warm loop.
type Scheduler struct {
	cron *cron.Cron
	jobs *job.Service
	spec string // cron spec, e.g. "@every 5m"
}

// New creates a Scheduler that fires every intervalMins minutes.
func New(jobs *job.Service, intervalMins int) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		jobs: jobs,
		spec: fmt.Sprintf("@every %dm", intervalMins),
	}
}

// Start registers the job and starts the scheduler. Also warms once
// immediately so the first listing request is served hot.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.warm(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Warm immediately on startup (non-blocking)
	go s.warm(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// warm primes the cache for the listings browsers hit first: the unfiltered
// feed and the open-jobs feed. List itself writes the cache on a miss.
func (s *Scheduler) warm(ctx context.Context) {
	for _, f := range []job.Filters{
		{},
		{Status: string(job.StatusOpen)},
	} {
		if _, err := s.jobs.List(ctx, f); err != nil {
			log.Printf("[scheduler] warm listing %+v error: %v", f, err)
		}
	}
}
