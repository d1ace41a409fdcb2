package sampler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"watchtrack/internal/blacklist"
	"watchtrack/internal/logging"
	"watchtrack/internal/progress"
	"watchtrack/internal/sampler"
	"watchtrack/internal/testsupport"
	"watchtrack/internal/tracker"
	"watchtrack/internal/window"
)

var epoch = time.Date(2026, 6, 1, 21, 0, 0, 0, time.UTC)

type fakeTracker struct {
	mu       sync.Mutex
	status   tracker.Status
	filter   *blacklist.Filter
	calls    []progress.Progress
	err      error
	recorded chan progress.Progress
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		status:   tracker.Status{ProgramActive: true, AutoTrackingActive: true},
		filter:   blacklist.New([]string{"Slack"}),
		recorded: make(chan progress.Progress, 16),
	}
}

func (f *fakeTracker) Status() tracker.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeTracker) IsBlacklisted(title string) bool { return f.filter.IsBlacklisted(title) }

func (f *fakeTracker) RecordProgress(_ context.Context, p progress.Progress) (progress.WatchRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return progress.WatchRecord{}, f.err
	}
	f.calls = append(f.calls, p)
	select {
	case f.recorded <- p:
	default:
	}
	return progress.WatchRecord{Title: p.Title, TotalMinutesWatched: p.Minutes}, nil
}

type scriptedSource struct {
	mu    sync.Mutex
	title string
}

func (s *scriptedSource) set(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
}

func (s *scriptedSource) ActiveTitle(context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

func TestTickScenarioWithService(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	clock := clockwork.NewFakeClockAt(epoch)
	svc := testsupport.MustOpenService(t, cfg, clock)
	ctx := context.Background()
	if _, err := svc.ToggleAutoTracking(ctx); err != nil {
		t.Fatalf("ToggleAutoTracking: %v", err)
	}

	source := &scriptedSource{}
	s := sampler.New(svc, source, sampler.WithClock(clock), sampler.WithLogger(logging.NewNop()))

	// tick1: first sight of A.
	source.set("mpv - A E1")
	if err := s.Tick(ctx); err != nil {
		t.Fatalf("tick1: %v", err)
	}
	a, _ := svc.Record(ctx, "A")
	if a == nil || a.TotalMinutesWatched != 0 || a.Episode != "E1" {
		t.Fatalf("after tick1 expected A with 0 minutes, got %+v", a)
	}

	// tick2: A again, 10s later.
	clock.Advance(10 * time.Second)
	if err := s.Tick(ctx); err != nil {
		t.Fatalf("tick2: %v", err)
	}
	a, _ = svc.Record(ctx, "A")
	want := (10 * time.Second).Minutes()
	if a.TotalMinutesWatched != want {
		t.Fatalf("after tick2 expected %v minutes, got %v", want, a.TotalMinutesWatched)
	}

	// tick3: switch to B; no credit for the gap.
	clock.Advance(10 * time.Second)
	source.set("mpv - B E4")
	if err := s.Tick(ctx); err != nil {
		t.Fatalf("tick3: %v", err)
	}
	a, _ = svc.Record(ctx, "A")
	if a.TotalMinutesWatched != want {
		t.Fatalf("A must not be credited on switch, got %v", a.TotalMinutesWatched)
	}
	b, _ := svc.Record(ctx, "B")
	if b == nil || b.TotalMinutesWatched != 0 {
		t.Fatalf("expected B created with 0 minutes, got %+v", b)
	}

	if st := s.State(); st.LastTitle != "B" || !st.LastSample.Equal(clock.Now()) || st.Cycles != 1 {
		t.Fatalf("unexpected sampler state: %+v", st)
	}
}

func TestTickResetsWhenIdle(t *testing.T) {
	tests := []struct {
		name   string
		status tracker.Status
		title  string
	}{
		{"tracking disabled", tracker.Status{ProgramActive: true}, "Show E1"},
		{"program paused", tracker.Status{AutoTrackingActive: true}, "Show E1"},
		{"empty title", tracker.Status{ProgramActive: true, AutoTrackingActive: true}, ""},
		{"blacklisted title", tracker.Status{ProgramActive: true, AutoTrackingActive: true}, "Slack | general"},
		{"title normalizes to nothing", tracker.Status{ProgramActive: true, AutoTrackingActive: true}, "[1080p] 12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClockAt(epoch)
			fake := newFakeTracker()
			source := &scriptedSource{title: "Show E1"}
			s := sampler.New(fake, source, sampler.WithClock(clock))

			if err := s.Tick(context.Background()); err != nil {
				t.Fatalf("priming tick: %v", err)
			}
			if s.State().LastTitle != "Show" {
				t.Fatalf("expected primed state, got %+v", s.State())
			}

			fake.mu.Lock()
			fake.status = tt.status
			fake.mu.Unlock()
			source.set(tt.title)
			clock.Advance(10 * time.Second)
			if err := s.Tick(context.Background()); err != nil {
				t.Fatalf("tick: %v", err)
			}
			if st := s.State(); st != (sampler.State{}) {
				t.Fatalf("expected reset state, got %+v", st)
			}
			if len(fake.calls) != 1 {
				t.Fatalf("expected no further recording, got %d calls", len(fake.calls))
			}
		})
	}
}

func TestTickAfterResetDoesNotCreditGap(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	fake := newFakeTracker()
	source := &scriptedSource{title: "Show E1"}
	s := sampler.New(fake, source, sampler.WithClock(clock))
	ctx := context.Background()

	_ = s.Tick(ctx)
	source.set("Slack")
	clock.Advance(10 * time.Second)
	_ = s.Tick(ctx)
	source.set("Show E1")
	clock.Advance(10 * time.Second)
	_ = s.Tick(ctx)

	if len(fake.calls) != 2 || fake.calls[1].Minutes != 0 {
		t.Fatalf("expected fresh zero-minute record after reset, got %+v", fake.calls)
	}
}

func TestTickKeepsStateOnRecordError(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	fake := newFakeTracker()
	source := &scriptedSource{title: "Show E1"}
	s := sampler.New(fake, source, sampler.WithClock(clock))
	ctx := context.Background()

	_ = s.Tick(ctx)
	boom := errors.New("disk full")
	fake.mu.Lock()
	fake.err = boom
	fake.mu.Unlock()

	clock.Advance(10 * time.Second)
	if err := s.Tick(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected record error, got %v", err)
	}

	fake.mu.Lock()
	fake.err = nil
	fake.mu.Unlock()
	clock.Advance(10 * time.Second)
	if err := s.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	last := fake.calls[len(fake.calls)-1]
	if want := (20 * time.Second).Minutes(); last.Minutes != want {
		t.Fatalf("expected %v minutes credited after recovery, got %v", want, last.Minutes)
	}
}

func TestRunTicksOnInterval(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	fake := newFakeTracker()
	source := window.SourceFunc(func(context.Context) string { return "Show E2" })
	s := sampler.New(fake, source, sampler.WithClock(clock), sampler.WithInterval(5*time.Second), sampler.WithLogger(logging.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()

	first := receive(t, waitCtx, fake.recorded)
	if first.Minutes != 0 {
		t.Fatalf("expected immediate zero-minute tick, got %+v", first)
	}
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("waiting for ticker: %v", err)
	}
	clock.Advance(5 * time.Second)
	second := receive(t, waitCtx, fake.recorded)
	if want := (5 * time.Second).Minutes(); second.Minutes != want {
		t.Fatalf("expected %v minutes on second tick, got %v", want, second.Minutes)
	}

	cancel()
	select {
	case <-done:
	case <-waitCtx.Done():
		t.Fatal("Run did not return after cancel")
	}
	if st := s.State(); st != (sampler.State{}) {
		t.Fatalf("expected state reset on stop, got %+v", st)
	}
}

func receive(t *testing.T, ctx context.Context, ch <-chan progress.Progress) progress.Progress {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-ctx.Done():
		t.Fatal("timed out waiting for a tick")
		return progress.Progress{}
	}
}
