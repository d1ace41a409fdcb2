package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"watchtrack/internal/blacklist"
	"watchtrack/internal/config"
	"watchtrack/internal/language"
	"watchtrack/internal/logging"
	"watchtrack/internal/progress"
	"watchtrack/internal/settings"
	"watchtrack/internal/store"
)

var (
	// ErrUnsupportedLanguage is returned by SetLanguage for tags outside the
	// supported display languages.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrEmptyTitle is returned by RecordProgress when no title is given.
	ErrEmptyTitle = errors.New("title is required")
)

// Status reports the process switches and display language.
type Status struct {
	ProgramActive      bool   `json:"is_program_active"`
	AutoTrackingActive bool   `json:"is_auto_tracking_active"`
	Language           string `json:"language"`
}

// Listener receives change notifications after they are persisted.
type Listener interface {
	BlacklistChanged(keywords []string)
	ProgramActiveChanged(active bool)
	TrackingChanged(active bool)
}

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock used for record timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithListener registers a change listener.
func WithListener(l Listener) Option {
	return func(s *Service) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// Service exposes record and settings operations.
type Service struct {
	mu        sync.Mutex
	repo      progress.Repository
	settings  *settings.Store
	state     settings.Settings
	filter    *blacklist.Filter
	clock     clockwork.Clock
	logger    *slog.Logger
	listeners []Listener
}

// New builds a service over repo and settingsStore, loading settings once.
func New(ctx context.Context, repo progress.Repository, settingsStore *settings.Store, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("tracker: repository is nil")
	}
	if settingsStore == nil {
		return nil, errors.New("tracker: settings store is nil")
	}
	svc := &Service{
		repo:     repo,
		settings: settingsStore,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.logger = logging.NewComponentLogger(svc.logger, "tracker")

	state, err := settingsStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	svc.state = state
	svc.filter = blacklist.New(state.BlacklistKeywords)
	return svc, nil
}

// Open builds a service from cfg, opening the configured record store and
// the settings file on disk.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("tracker: config is nil")
	}
	probe := &Service{}
	for _, opt := range opts {
		opt(probe)
	}
	repo, err := store.Open(cfg, probe.logger)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	settingsStore := settings.NewStore(afero.NewOsFs(), cfg.Paths.SettingsFile, probe.logger)
	svc, err := New(ctx, repo, settingsStore, opts...)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	return svc, nil
}

// Close releases the record repository.
func (s *Service) Close() error {
	if s == nil || s.repo == nil {
		return nil
	}
	return s.repo.Close()
}

func (s *Service) load(ctx context.Context) (*progress.Ledger, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return progress.NewLedger(records), nil
}

// mutate runs fn over a freshly loaded ledger and saves when fn reports a
// change.
func (s *Service) mutate(ctx context.Context, fn func(*progress.Ledger) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if !fn(ledger) {
		return false, nil
	}
	if err := s.repo.Save(ctx, ledger.Records()); err != nil {
		return false, err
	}
	return true, nil
}

// Records returns every record in insertion order.
func (s *Service) Records(ctx context.Context) ([]progress.WatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Records(), nil
}

// Record returns the record for title, or nil when none exists.
func (s *Service) Record(ctx context.Context, title string) (*progress.WatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := ledger.Get(title)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Summary aggregates the current record list.
func (s *Service) Summary(ctx context.Context) (progress.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.load(ctx)
	if err != nil {
		return progress.Summary{}, err
	}
	return ledger.Summary(), nil
}

// RecordProgress merges one observation into the record list.
func (s *Service) RecordProgress(ctx context.Context, p progress.Progress) (progress.WatchRecord, error) {
	if strings.TrimSpace(p.Title) == "" {
		return progress.WatchRecord{}, ErrEmptyTitle
	}
	var rec progress.WatchRecord
	if _, err := s.mutate(ctx, func(l *progress.Ledger) bool {
		rec = l.Record(p, s.clock.Now())
		return true
	}); err != nil {
		return progress.WatchRecord{}, err
	}
	s.logger.Debug("progress recorded",
		logging.String(logging.FieldTitle, rec.Title),
		logging.String(logging.FieldEpisode, rec.Episode),
		logging.Float64("minutes", p.Minutes),
		logging.Float64("total_minutes", rec.TotalMinutesWatched),
		logging.String(logging.FieldEventType, "progress_recorded"),
	)
	return rec, nil
}

// MarkFinished flags title finished. It reports false for unknown titles.
func (s *Service) MarkFinished(ctx context.Context, title string) (bool, error) {
	ok, err := s.mutate(ctx, func(l *progress.Ledger) bool {
		return l.MarkFinished(title, s.clock.Now())
	})
	if ok {
		s.logger.Info("record marked finished",
			logging.String(logging.FieldTitle, title),
			logging.String(logging.FieldEventType, "record_finished"),
		)
	}
	return ok, err
}

// Delete removes title. It reports false for unknown titles.
func (s *Service) Delete(ctx context.Context, title string) (bool, error) {
	ok, err := s.mutate(ctx, func(l *progress.Ledger) bool {
		return l.Delete(title)
	})
	if ok {
		s.logger.Info("record deleted",
			logging.String(logging.FieldTitle, title),
			logging.String(logging.FieldEventType, "record_deleted"),
		)
	}
	return ok, err
}

// SaveManual applies a user edit of episode and resume position, creating
// the record when needed. It reports false for a blank title.
func (s *Service) SaveManual(ctx context.Context, title, episode, resume string) (bool, error) {
	return s.mutate(ctx, func(l *progress.Ledger) bool {
		return l.SaveManual(title, episode, resume, s.clock.Now())
	})
}

// Blacklist returns the configured keywords.
func (s *Service) Blacklist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.BlacklistKeywords)
}

// IsBlacklisted reports whether title is ignored by the sampler.
func (s *Service) IsBlacklisted(title string) bool {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()
	return filter.IsBlacklisted(title)
}

// AddBlacklistKeyword stores keyword. It reports false when the keyword is
// blank or already present.
func (s *Service) AddBlacklistKeyword(ctx context.Context, keyword string) (bool, error) {
	return s.updateBlacklist(ctx, keyword, blacklist.Add)
}

// RemoveBlacklistKeyword drops keyword. It reports false when absent.
func (s *Service) RemoveBlacklistKeyword(ctx context.Context, keyword string) (bool, error) {
	return s.updateBlacklist(ctx, keyword, blacklist.Remove)
}

func (s *Service) updateBlacklist(ctx context.Context, keyword string, apply func([]string, string) ([]string, bool)) (bool, error) {
	s.mu.Lock()
	updated, changed := apply(s.state.BlacklistKeywords, keyword)
	if !changed {
		s.mu.Unlock()
		return false, nil
	}
	next := s.state.Clone()
	next.BlacklistKeywords = updated
	if err := s.settings.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("save settings: %w", err)
	}
	s.state = next
	s.filter = blacklist.New(updated)
	s.mu.Unlock()

	s.logger.Info("blacklist updated",
		logging.String("keyword", strings.TrimSpace(keyword)),
		logging.Int("keywords", len(updated)),
		logging.String(logging.FieldEventType, "blacklist_updated"),
	)
	for _, l := range s.listeners {
		l.BlacklistChanged(slices.Clone(updated))
	}
	return true, nil
}

// Status returns the current switches.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ProgramActive:      s.state.ProgramActive,
		AutoTrackingActive: s.state.AutoTrackingActive,
		Language:           s.state.Language,
	}
}

// ToggleProgramActive flips the program switch and returns the new value.
func (s *Service) ToggleProgramActive(ctx context.Context) (bool, error) {
	active, err := s.toggle(ctx, func(st *settings.Settings) bool {
		st.ProgramActive = !st.ProgramActive
		return st.ProgramActive
	})
	if err != nil {
		return false, err
	}
	s.logger.Info("program switch toggled",
		logging.Bool("active", active),
		logging.String(logging.FieldEventType, "program_toggled"),
	)
	for _, l := range s.listeners {
		l.ProgramActiveChanged(active)
	}
	return active, nil
}

// ToggleAutoTracking flips the auto-tracking switch and returns the new value.
func (s *Service) ToggleAutoTracking(ctx context.Context) (bool, error) {
	active, err := s.toggle(ctx, func(st *settings.Settings) bool {
		st.AutoTrackingActive = !st.AutoTrackingActive
		return st.AutoTrackingActive
	})
	if err != nil {
		return false, err
	}
	s.logger.Info("auto tracking toggled",
		logging.Bool("active", active),
		logging.String(logging.FieldEventType, "tracking_toggled"),
	)
	for _, l := range s.listeners {
		l.TrackingChanged(active)
	}
	return active, nil
}

// toggle applies flip to a copy of the settings and commits it only after
// the save succeeds.
func (s *Service) toggle(ctx context.Context, flip func(*settings.Settings) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	value := flip(&next)
	if err := s.settings.Save(ctx, next); err != nil {
		return false, fmt.Errorf("save settings: %w", err)
	}
	s.state = next
	return value, nil
}

// Language returns the display language code.
func (s *Service) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Language
}

// SetLanguage validates tag and stores its canonical code.
func (s *Service) SetLanguage(ctx context.Context, tag string) (string, error) {
	code, ok := language.Canonical(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedLanguage, tag, strings.Join(language.Supported(), ", "))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Language == code {
		return code, nil
	}
	next := s.state.Clone()
	next.Language = code
	if err := s.settings.Save(ctx, next); err != nil {
		return "", fmt.Errorf("save settings: %w", err)
	}
	s.state = next
	s.logger.Info("display language changed",
		logging.String("language", code),
		logging.String(logging.FieldEventType, "language_changed"),
	)
	return code, nil
}
