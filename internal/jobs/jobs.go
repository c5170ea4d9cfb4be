package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/cache"
)

// Runner owns the background jobs. There is one: sweeping the digest
// cache at midnight so the today/tomorrow digests roll over.
type Runner struct {
	cron *cron.Cron
}

func NewRunner() *Runner {
	return &Runner{cron: cron.New()}
}

// Start registers the jobs and launches the scheduler.
func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc("0 0 * * *", func() {
		log.Info().Msg("sweeping digest cache")
		cache.SweepDigests(context.Background())
	}); err != nil {
		return err
	}
	r.cron.Start()
	log.Info().Msg("background jobs started")
	return nil
}

// Stop shuts the scheduler down and waits for running jobs.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
