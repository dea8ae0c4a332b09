package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Zhyangithub/eataway-router/internal/platform/logger"
)

func TestNextLaterToday(t *testing.T) {
	d := NewDaily(7, 0, func() {}, logger.New("test"))

	now := time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC)
	got := d.next(now)
	assert.Equal(t, time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), got)
}

func TestNextRollsToTomorrow(t *testing.T) {
	d := NewDaily(7, 0, func() {}, logger.New("test"))

	now := time.Date(2026, 3, 10, 8, 15, 0, 0, time.UTC)
	got := d.next(now)
	assert.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC), got)
}

func TestNextIsStrictlyAfterNow(t *testing.T) {
	d := NewDaily(7, 0, func() {}, logger.New("test"))

	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	got := d.next(now)
	assert.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC), got)
}

func TestReschedule(t *testing.T) {
	d := NewDaily(7, 0, func() {}, logger.New("test"))

	d.Reschedule(16, 45)

	hour, minute := d.At()
	assert.Equal(t, 16, hour)
	assert.Equal(t, 45, minute)

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 16, 45, 0, 0, time.UTC), d.next(now))
}

func TestRescheduleNeverBlocks(t *testing.T) {
	d := NewDaily(7, 0, func() {}, logger.New("test"))

	// No loop is draining the reset channel; repeated calls must still
	// return immediately.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			d.Reschedule(8, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reschedule blocked without a running loop")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	d := NewDaily(23, 59, func() { t.Error("job fired unexpectedly") }, logger.New("test"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run loop did not stop on cancel")
	}
}
