package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"watchtrack/internal/fileutil"
	"watchtrack/internal/logging"
	"watchtrack/internal/progress"
)

// legacyTimeLayout is the local-time layout of media_data.json.
const legacyTimeLayout = "2006-01-02 15:04:05"

type jsonRecord struct {
	Title               string  `json:"title"`
	Episode             string  `json:"episode"`
	StopTime            *string `json:"stop_time"`
	IsFinished          bool    `json:"is_finished"`
	TotalMinutesWatched float64 `json:"total_minutes_watched"`
	LastUpdated         string  `json:"last_updated"`
}

// JSONStore persists watch records as a single JSON array.
type JSONStore struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewJSONStore returns a store for path on fsys.
func NewJSONStore(fsys afero.Fs, path string, logger *slog.Logger) *JSONStore {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &JSONStore{
		fs:     fsys,
		path:   path,
		logger: logging.NewComponentLogger(logger, "store"),
	}
}

// Path returns the records file location.
func (s *JSONStore) Path() string { return s.path }

// Load reads the record list. A missing or unparsable file yields an empty
// list; only I/O failures are returned.
func (s *JSONStore) Load(ctx context.Context) ([]progress.WatchRecord, error) {
	if err := ensureContext(ctx).Err(); err != nil {
		return nil, err
	}
	data, ok, err := fileutil.ReadIfExists(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return []progress.WatchRecord{}, nil
	}

	var raw []jsonRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		logging.WarnWithContext(s.logger, "records file unreadable; treating as empty", "records_parse_failed",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "restore the file from backup or delete it"),
			logging.String(logging.FieldImpact, "next save overwrites the unreadable file"),
		)
		return []progress.WatchRecord{}, nil
	}

	records := make([]progress.WatchRecord, 0, len(raw))
	for _, item := range raw {
		records = append(records, progress.WatchRecord{
			Title:               item.Title,
			Episode:             item.Episode,
			ResumePosition:      item.StopTime,
			IsFinished:          item.IsFinished,
			TotalMinutesWatched: item.TotalMinutesWatched,
			LastUpdated:         parseLegacyTime(item.LastUpdated),
		})
	}
	return records, nil
}

// Save writes the whole list, replacing the previous file atomically.
func (s *JSONStore) Save(ctx context.Context, records []progress.WatchRecord) error {
	if err := ensureContext(ctx).Err(); err != nil {
		return err
	}
	out := make([]jsonRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, jsonRecord{
			Title:               rec.Title,
			Episode:             rec.Episode,
			StopTime:            rec.ResumePosition,
			IsFinished:          rec.IsFinished,
			TotalMinutesWatched: rec.TotalMinutesWatched,
			LastUpdated:         formatLegacyTime(rec.LastUpdated),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := fileutil.WriteAtomic(s.fs, s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write records file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *JSONStore) Close() error { return nil }

func formatLegacyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(legacyTimeLayout)
}

func parseLegacyTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if parsed, err := time.ParseInLocation(legacyTimeLayout, raw, time.Local); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed
	}
	return time.Time{}
}
