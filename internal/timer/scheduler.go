package timer

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Scheduler runs fn every interval until the returned cancel func is called.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// CronScheduler runs periodic callbacks on a shared cron instance.
// Intervals under a second are rounded up to one second.
type CronScheduler struct {
	cron *cron.Cron
}

func NewCronScheduler() *CronScheduler {
	c := cron.New(cron.WithSeconds())
	c.Start()

	return &CronScheduler{cron: c}
}

func (s *CronScheduler) Every(interval time.Duration, fn func()) func() {
	id := s.cron.Schedule(cron.Every(interval), cron.FuncJob(fn))

	return func() {
		s.cron.Remove(id)
	}
}

// Stop halts the scheduler. The returned context is done once running jobs finish.
func (s *CronScheduler) Stop() context.Context {
	return s.cron.Stop()
}
