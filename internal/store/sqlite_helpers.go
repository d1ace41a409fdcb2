package store

import (
	"database/sql"
	"time"

	"watchtrack/internal/progress"
)

const recordColumns = "position, title, episode, resume_position, is_finished, total_minutes_watched, last_updated"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (progress.WatchRecord, error) {
	var (
		position   int64
		title      string
		episode    sql.NullString
		resume     sql.NullString
		finished   sql.NullInt64
		minutes    sql.NullFloat64
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(&position, &title, &episode, &resume, &finished, &minutes, &updatedRaw); err != nil {
		return progress.WatchRecord{}, err
	}

	rec := progress.WatchRecord{
		Title:               title,
		Episode:             episode.String,
		IsFinished:          finished.Valid && finished.Int64 != 0,
		TotalMinutesWatched: minutes.Float64,
		LastUpdated:         parseTime(updatedRaw),
	}
	if resume.Valid {
		value := resume.String
		rec.ResumePosition = &value
	}
	return rec, nil
}

func recordArgs(position int, rec progress.WatchRecord) []any {
	var resume any
	if rec.ResumePosition != nil {
		resume = *rec.ResumePosition
	}
	return []any{
		position,
		rec.Title,
		rec.Episode,
		resume,
		boolToInt(rec.IsFinished),
		rec.TotalMinutesWatched,
		formatTime(rec.LastUpdated),
	}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw sql.NullString) time.Time {
	if !raw.Valid || raw.String == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw.String)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
