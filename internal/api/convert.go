package api

import (
	"time"

	"watchtrack/internal/deps"
	"watchtrack/internal/language"
	"watchtrack/internal/progress"
	"watchtrack/internal/sampler"
	"watchtrack/internal/tracker"
)

// FromWatchRecord converts a record to its API representation.
func FromWatchRecord(rec progress.WatchRecord) WatchRecord {
	dto := WatchRecord{
		Title:               rec.Title,
		Episode:             rec.Episode,
		IsFinished:          rec.IsFinished,
		TotalMinutesWatched: rec.TotalMinutesWatched,
		TotalTimeWatched:    progress.FormatMinutes(rec.TotalMinutesWatched),
		LastUpdated:         formatTime(rec.LastUpdated),
	}
	if rec.ResumePosition != nil {
		resume := *rec.ResumePosition
		dto.ResumePosition = &resume
	}
	return dto
}

// FromWatchRecords converts a record list, keeping order. The result is
// never nil so it encodes as an empty array.
func FromWatchRecords(records []progress.WatchRecord) []WatchRecord {
	out := make([]WatchRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, FromWatchRecord(rec))
	}
	return out
}

// FromSummary converts a ledger summary.
func FromSummary(s progress.Summary) Summary {
	return Summary{
		TotalItems:       s.TotalItems,
		InProgressItems:  s.InProgressItems,
		FinishedItems:    s.FinishedItems,
		TotalMinutes:     s.TotalMinutes,
		TotalTimeTracked: s.TotalTimeTracked,
	}
}

// FromTrackerStatus converts the service switches, resolving the language
// display name.
func FromTrackerStatus(s tracker.Status) TrackerStatus {
	return TrackerStatus{
		ProgramActive:      s.ProgramActive,
		AutoTrackingActive: s.AutoTrackingActive,
		Language:           s.Language,
		LanguageName:       language.DisplayName(s.Language),
		RightToLeft:        language.IsRTL(s.Language),
	}
}

// FromSamplerState converts the sampler snapshot.
func FromSamplerState(st sampler.State, interval time.Duration) SamplerState {
	return SamplerState{
		Interval:   interval.String(),
		LastTitle:  st.LastTitle,
		LastSample: formatTime(st.LastSample),
		Cycles:     st.Cycles,
	}
}

// FromDependencies converts binary checks, keeping order.
func FromDependencies(statuses []deps.Status) []DependencyStatus {
	out := make([]DependencyStatus, 0, len(statuses))
	for _, dep := range statuses {
		out = append(out, DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		})
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
