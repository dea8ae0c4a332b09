// Package scheduler triggers the daily route generation run.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Daily fires a job once per day at a configurable local time.
// Reschedule may be called concurrently with a running loop; the next
// firing moves to the new time. The job itself is expected to guard
// against overlapping runs.
type Daily struct {
	Job func()
	Log zerolog.Logger

	mu     sync.Mutex
	hour   int
	minute int
	reset  chan struct{}
}

func NewDaily(hour, minute int, job func(), log zerolog.Logger) *Daily {
	return &Daily{
		Job:    job,
		Log:    log,
		hour:   hour,
		minute: minute,
		reset:  make(chan struct{}, 1),
	}
}

// At returns the configured trigger time.
func (d *Daily) At() (hour, minute int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hour, d.minute
}

// Reschedule moves the daily trigger to a new time.
func (d *Daily) Reschedule(hour, minute int) {
	d.mu.Lock()
	d.hour = hour
	d.minute = minute
	d.mu.Unlock()

	select {
	case d.reset <- struct{}{}:
	default:
	}
	d.Log.Info().Int("hour", hour).Int("minute", minute).Msg("daily run rescheduled")
}

// next computes the upcoming trigger instant strictly after now.
func (d *Daily) next(now time.Time) time.Time {
	hour, minute := d.At()
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// Run blocks until ctx is cancelled, firing the job at each trigger.
func (d *Daily) Run(ctx context.Context) {
	for {
		wait := time.Until(d.next(time.Now()))
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-d.reset:
			timer.Stop()
			continue
		case <-timer.C:
			d.Log.Info().Msg("scheduled run triggered")
			d.Job()
		}
	}
}
