package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/refurnish/refurnish-backend/internal/maintenance"
)

type Scheduler struct {
	pruner *maintenance.Pruner
	cron   *cron.Cron
}

func NewScheduler(pruner *maintenance.Pruner) *Scheduler {
	return &Scheduler{pruner: pruner}
}

// Start schedules the nightly prune (12:00 AM).
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := s.pruner.Run(ctx); err != nil {
			log.Printf("Nightly prune failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (pruning nightly at 12:00AM)")
	c.Start()
	s.cron = c
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
