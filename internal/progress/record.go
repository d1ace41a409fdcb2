package progress

import (
	"context"
	"time"
)

// WatchRecord is the cumulative state for one normalized title.
type WatchRecord struct {
	Title               string    `json:"title"`
	Episode             string    `json:"episode"`
	ResumePosition      *string   `json:"stop_time"`
	IsFinished          bool      `json:"is_finished"`
	TotalMinutesWatched float64   `json:"total_minutes_watched"`
	LastUpdated         time.Time `json:"last_updated"`
}

// Clone returns a deep copy so callers cannot alias ledger state.
func (r WatchRecord) Clone() WatchRecord {
	if r.ResumePosition != nil {
		resume := *r.ResumePosition
		r.ResumePosition = &resume
	}
	return r
}

// Progress is one observation or update handed to the recorder.
type Progress struct {
	Title   string
	Episode string
	Minutes float64
	// SetResume distinguishes "leave the resume position alone" from an
	// explicit value. With SetResume true a nil Resume clears it.
	SetResume bool
	Resume    *string
}

// Summary aggregates the record list.
type Summary struct {
	TotalItems       int     `json:"total_items"`
	InProgressItems  int     `json:"in_progress_items"`
	FinishedItems    int     `json:"finished_items"`
	TotalMinutes     float64 `json:"total_minutes"`
	TotalTimeTracked string  `json:"total_time_tracked"`
}

// Repository persists the whole record list as one unit.
type Repository interface {
	Load(ctx context.Context) ([]WatchRecord, error)
	Save(ctx context.Context, records []WatchRecord) error
	Close() error
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
