package services

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/ports"
)

// Notifier delivers finished results to drivers, e.g. by email.
type Notifier interface {
	Notify(ctx context.Context, results domain.RunResults) error
}

// GenerateService wraps the Runner with the run lifecycle the HTTP API
// and scheduler share: at most one run at a time system-wide, results
// persisted after each run, optional notification afterwards.
type GenerateService struct {
	Runner   *Runner
	Roster   []string
	Store    ports.StateStore
	Notifier Notifier
	Log      zerolog.Logger

	running atomic.Bool
}

// Running reports whether a run is currently in progress.
func (s *GenerateService) Running() bool { return s.running.Load() }

// TryStartAsync begins a run in the background. It returns false
// without doing anything when a run is already in progress.
func (s *GenerateService) TryStartAsync(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer s.running.Store(false)
		s.generate(ctx)
	}()
	return true
}

// RunOnce executes a run synchronously. ok is false when another run
// already holds the gate.
func (s *GenerateService) RunOnce(ctx context.Context) (results domain.RunResults, ok bool) {
	if !s.running.CompareAndSwap(false, true) {
		return domain.RunResults{}, false
	}
	defer s.running.Store(false)
	return s.generate(ctx), true
}

func (s *GenerateService) generate(ctx context.Context) domain.RunResults {
	results := s.Runner.RunAll(ctx, s.Roster)

	if s.Store != nil {
		if err := s.Store.SaveResults(ctx, results); err != nil {
			s.Log.Error().Err(err).Msg("persisting run results failed")
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.Notify(ctx, results); err != nil {
			s.Log.Error().Err(err).Msg("sending itineraries failed")
		}
	}
	return results
}
