package testsupport

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"

	"watchtrack/internal/config"
	"watchtrack/internal/logging"
	"watchtrack/internal/progress"
	"watchtrack/internal/store"
	"watchtrack/internal/tracker"
)

// MustOpenRepository opens the configured record repository and registers cleanup.
func MustOpenRepository(t testing.TB, cfg *config.Config) progress.Repository {
	t.Helper()

	repo, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

// MustOpenService opens a tracker service over cfg and registers cleanup.
// A nil clock uses the real clock.
func MustOpenService(t testing.TB, cfg *config.Config, clock clockwork.Clock) *tracker.Service {
	t.Helper()

	opts := []tracker.Option{tracker.WithLogger(logging.NewNop())}
	if clock != nil {
		opts = append(opts, tracker.WithClock(clock))
	}
	svc, err := tracker.Open(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("tracker.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = svc.Close()
	})
	return svc
}
