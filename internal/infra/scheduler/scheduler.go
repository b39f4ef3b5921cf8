package scheduler

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/app" // For the Poller interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler runs poll cycles on a fixed interval. Cycles never overlap:
// the job is wrapped with SkipIfStillRunning, and each cycle gets a context
// bounded by the interval so a stuck fetch cannot pile up behind the ticker.
type PollScheduler struct {
	cronEngine *cron.Cron
	job        cron.Job
	poller     app.Poller
	logger     *logrus.Entry
	interval   time.Duration
}

func NewPollScheduler(poller app.Poller, logger *logrus.Entry, interval time.Duration) *PollScheduler {
	s := &PollScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		poller:     poller,
		logger:     logger,
		interval:   interval,
	}
	s.job = cron.NewChain(
		cron.SkipIfStillRunning(cron.PrintfLogger(logger)),
	).Then(cron.FuncJob(s.runOnce))
	return s
}

// Start schedules the recurring poll job and fires the first cycle
// immediately, so a fresh process does not wait out a full interval before
// its first fetch.
func (s *PollScheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", s.interval)
	}
	s.logger.Infof("Starting poll scheduler with interval %s", s.interval)

	s.cronEngine.Schedule(cron.Every(s.interval), s.job)
	s.cronEngine.Start()

	// The first poll goes through the same skip-if-running chain as the
	// scheduled ones.
	go s.job.Run()

	return nil
}

func (s *PollScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	s.poller.RunCycle(ctx)
}

// Stop halts scheduling and waits for a running cycle to finish.
func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done() // Wait for graceful shutdown
	s.logger.Info("Poll scheduler gracefully stopped")
}
