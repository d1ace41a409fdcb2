package sampler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"watchtrack/internal/logging"
	"watchtrack/internal/progress"
	"watchtrack/internal/titles"
	"watchtrack/internal/tracker"
	"watchtrack/internal/window"
)

// DefaultInterval is the pause between ticks.
const DefaultInterval = 10 * time.Second

// Tracker is the subset of tracker.Service the loop needs.
type Tracker interface {
	Status() tracker.Status
	IsBlacklisted(title string) bool
	RecordProgress(ctx context.Context, p progress.Progress) (progress.WatchRecord, error)
}

// State is the loop's carried state between ticks.
type State struct {
	LastTitle  string    `json:"last_title"`
	LastSample time.Time `json:"last_sample"`
	Cycles     int       `json:"cycles"`
}

// Option customizes a Sampler.
type Option func(*Sampler)

// WithClock sets the clock used for timestamps and the ticker.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Sampler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithInterval sets the tick interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the sampler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) {
		s.logger = logger
	}
}

// Sampler attributes watch time to the foreground title.
type Sampler struct {
	tracker  Tracker
	source   window.Source
	clock    clockwork.Clock
	interval time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// New returns a sampler reading titles from source and recording through t.
func New(t Tracker, source window.Source, opts ...Option) *Sampler {
	s := &Sampler{
		tracker:  t,
		source:   source,
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "sampler")
	return s
}

// Interval returns the tick interval.
func (s *Sampler) Interval() time.Duration { return s.interval }

// State returns a snapshot of the carried state.
func (s *Sampler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Sampler) reset() {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
}

// Tick runs one sampling step. Only storage errors are returned; the carried
// state is left unchanged when recording fails so the next tick can still
// credit the interval.
func (s *Sampler) Tick(ctx context.Context) error {
	status := s.tracker.Status()
	if !status.ProgramActive || !status.AutoTrackingActive {
		s.reset()
		return nil
	}

	raw := s.source.ActiveTitle(ctx)
	if raw == "" || s.tracker.IsBlacklisted(raw) {
		s.reset()
		return nil
	}

	normalized := titles.Normalize(raw)
	if normalized.Title == "" {
		s.reset()
		return nil
	}

	now := s.clock.Now()
	prev := s.State()

	minutes := 0.0
	credited := !prev.LastSample.IsZero() && normalized.Title == prev.LastTitle
	if credited {
		minutes = now.Sub(prev.LastSample).Minutes()
	}

	rec, err := s.tracker.RecordProgress(ctx, progress.Progress{
		Title:   normalized.Title,
		Episode: normalized.Episode,
		Minutes: minutes,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.LastSample = now
	s.state.LastTitle = normalized.Title
	if credited {
		s.state.Cycles++
	}
	s.mu.Unlock()

	if !credited {
		s.logger.Info("tracking title",
			logging.String(logging.FieldTitle, normalized.Title),
			logging.String(logging.FieldEpisode, normalized.Episode),
			logging.String(logging.FieldRawTitle, raw),
			logging.String(logging.FieldEventType, "title_started"),
		)
	} else {
		s.logger.Debug("watch time credited",
			logging.String(logging.FieldTitle, normalized.Title),
			logging.Float64("minutes", minutes),
			logging.Float64("total_minutes", rec.TotalMinutesWatched),
			logging.String(logging.FieldEventType, "time_credited"),
		)
	}
	return nil
}

// Run ticks immediately and then every interval until ctx is cancelled.
// Tick errors are logged and the loop continues.
func (s *Sampler) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sampler started",
		logging.Duration("interval", s.interval),
		logging.String(logging.FieldEventType, "sampler_started"),
	)
	s.tickLogged(ctx)
	for {
		select {
		case <-ctx.Done():
			s.reset()
			s.logger.Info("sampler stopped", logging.String(logging.FieldEventType, "sampler_stopped"))
			return
		case <-ticker.Chan():
			s.tickLogged(ctx)
		}
	}
}

func (s *Sampler) tickLogged(ctx context.Context) {
	if err := s.Tick(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logging.ErrorWithContext(s.logger, "recording watch progress failed", "sample_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the records store is writable"),
			logging.String(logging.FieldImpact, "watch time for this interval is credited on the next successful tick"),
		)
	}
}
