package progress

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Ledger is an ordered record list keyed by exact title.
type Ledger struct {
	records []WatchRecord
}

// NewLedger wraps records, keeping the first entry for any repeated title.
func NewLedger(records []WatchRecord) *Ledger {
	l := &Ledger{records: make([]WatchRecord, 0, len(records))}
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.Title]; dup {
			continue
		}
		seen[rec.Title] = struct{}{}
		l.records = append(l.records, rec.Clone())
	}
	return l
}

// Records returns a copy of the list in insertion order.
func (l *Ledger) Records() []WatchRecord {
	out := make([]WatchRecord, len(l.records))
	for i, rec := range l.records {
		out[i] = rec.Clone()
	}
	return out
}

// Len reports the number of records.
func (l *Ledger) Len() int { return len(l.records) }

func (l *Ledger) index(title string) int {
	for i := range l.records {
		if l.records[i].Title == title {
			return i
		}
	}
	return -1
}

// Get returns the record for title.
func (l *Ledger) Get(title string) (WatchRecord, bool) {
	idx := l.index(title)
	if idx < 0 {
		return WatchRecord{}, false
	}
	return l.records[idx].Clone(), true
}

// Record merges p into the ledger. Negative minutes are treated as zero so
// the total never decreases.
func (l *Ledger) Record(p Progress, now time.Time) WatchRecord {
	minutes := p.Minutes
	if minutes < 0 || math.IsNaN(minutes) {
		minutes = 0
	}

	if idx := l.index(p.Title); idx >= 0 {
		rec := &l.records[idx]
		rec.TotalMinutesWatched += minutes
		rec.LastUpdated = now
		if p.Episode != "" {
			rec.Episode = p.Episode
		}
		if p.SetResume {
			rec.ResumePosition = cloneString(p.Resume)
		}
		return rec.Clone()
	}

	rec := WatchRecord{
		Title:               p.Title,
		Episode:             p.Episode,
		ResumePosition:      cloneString(p.Resume),
		TotalMinutesWatched: minutes,
		LastUpdated:         now,
	}
	l.records = append(l.records, rec)
	return rec.Clone()
}

// MarkFinished flags title finished and clears its episode and resume
// position.
func (l *Ledger) MarkFinished(title string, now time.Time) bool {
	idx := l.index(title)
	if idx < 0 {
		return false
	}
	rec := &l.records[idx]
	rec.IsFinished = true
	rec.Episode = ""
	rec.ResumePosition = nil
	rec.LastUpdated = now
	return true
}

// Delete removes title, leaving every other record untouched.
func (l *Ledger) Delete(title string) bool {
	idx := l.index(title)
	if idx < 0 {
		return false
	}
	l.records = append(l.records[:idx], l.records[idx+1:]...)
	return true
}

// SaveManual applies a user edit. Existing records get the episode and resume
// position overwritten and lose their finished flag; unknown titles are
// created with zero minutes. A blank title is rejected.
func (l *Ledger) SaveManual(title, episode, resume string, now time.Time) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	episode = strings.TrimSpace(episode)
	resumePos := StringPtr(strings.TrimSpace(resume))

	if idx := l.index(title); idx >= 0 {
		rec := &l.records[idx]
		rec.Episode = episode
		rec.ResumePosition = resumePos
		rec.IsFinished = false
		rec.LastUpdated = now
		return true
	}
	l.Record(Progress{Title: title, Episode: episode, SetResume: true, Resume: resumePos}, now)
	return true
}

// Summary aggregates counts and total watch time.
func (l *Ledger) Summary() Summary {
	var s Summary
	for _, rec := range l.records {
		s.TotalItems++
		if rec.IsFinished {
			s.FinishedItems++
		} else {
			s.InProgressItems++
		}
		s.TotalMinutes += rec.TotalMinutesWatched
	}
	s.TotalTimeTracked = FormatMinutes(s.TotalMinutes)
	return s
}

// FormatMinutes renders minutes as "Xh Ym", truncating partial minutes.
func FormatMinutes(total float64) string {
	if total < 0 {
		total = 0
	}
	hours := int(total / 60)
	minutes := int(math.Mod(total, 60))
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
