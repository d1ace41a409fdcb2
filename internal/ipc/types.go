package ipc

import "watchtrack/internal/api"

// StartRequest triggers daemon sampling startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops daemon sampling.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// WatchRecord mirrors the HTTP API record DTO for IPC callers.
type WatchRecord = api.WatchRecord

// Summary mirrors the HTTP API summary DTO.
type Summary = api.Summary

// DependencyStatus describes availability of an external dependency.
type DependencyStatus = api.DependencyStatus

// StatusResponse represents combined daemon and tracker status information.
type StatusResponse struct {
	api.DaemonStatus
}

// LogTailRequest fetches log lines based on offset and follow semantics.
type LogTailRequest struct {
	Offset     int64 `json:"offset"`
	Limit      int   `json:"limit"`
	Follow     bool  `json:"follow"`
	WaitMillis int   `json:"wait_millis"`
}

// LogTailResponse returns log lines and the next offset.
type LogTailResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}

// RecordListRequest lists every record in stored order.
type RecordListRequest struct{}

// RecordListResponse contains records.
type RecordListResponse struct {
	Records []WatchRecord `json:"records"`
}

// RecordGetRequest fetches one record by exact title.
type RecordGetRequest struct {
	Title string `json:"title"`
}

// RecordGetResponse carries the record when found.
type RecordGetResponse struct {
	Found  bool        `json:"found"`
	Record WatchRecord `json:"record"`
}

// SummaryRequest fetches aggregate counts.
type SummaryRequest struct{}

// SummaryResponse carries aggregate counts.
type SummaryResponse struct {
	Summary Summary `json:"summary"`
}

// RecordProgressRequest credits watch time to a title.
type RecordProgressRequest struct {
	Title     string  `json:"title"`
	Episode   string  `json:"episode"`
	Minutes   float64 `json:"minutes"`
	SetResume bool    `json:"set_resume"`
	Resume    *string `json:"resume"`
}

// RecordProgressResponse returns the record after the update.
type RecordProgressResponse struct {
	Record WatchRecord `json:"record"`
}

// FinishRequest marks a record finished.
type FinishRequest struct {
	Title string `json:"title"`
}

// FinishResponse reports whether a record matched.
type FinishResponse struct {
	Updated bool `json:"updated"`
}

// DeleteRequest removes a record.
type DeleteRequest struct {
	Title string `json:"title"`
}

// DeleteResponse reports whether a record was removed.
type DeleteResponse struct {
	Removed bool `json:"removed"`
}

// SaveManualRequest overwrites episode and resume position of a record.
type SaveManualRequest struct {
	Title          string `json:"title"`
	Episode        string `json:"episode"`
	ResumePosition string `json:"resume_position"`
}

// SaveManualResponse reports whether a record matched.
type SaveManualResponse struct {
	Saved bool `json:"saved"`
}

// BlacklistRequest lists blacklist keywords.
type BlacklistRequest struct{}

// BlacklistResponse contains the keyword list.
type BlacklistResponse struct {
	Keywords []string `json:"keywords"`
}

// BlacklistUpdateRequest adds or removes one keyword.
type BlacklistUpdateRequest struct {
	Keyword string `json:"keyword"`
}

// BlacklistUpdateResponse reports whether the list changed.
type BlacklistUpdateResponse struct {
	Changed bool `json:"changed"`
}

// BlacklistCheckRequest tests a raw window title against the blacklist.
type BlacklistCheckRequest struct {
	Title string `json:"title"`
}

// BlacklistCheckResponse reports the verdict.
type BlacklistCheckResponse struct {
	Blacklisted bool `json:"blacklisted"`
}

// ToggleRequest flips a process switch.
type ToggleRequest struct{}

// ToggleResponse returns the switch's new value.
type ToggleResponse struct {
	Active bool `json:"active"`
}

// LanguageRequest reads the display language, or sets it when Tag is non-empty.
type LanguageRequest struct {
	Tag string `json:"tag"`
}

// LanguageResponse describes the active display language.
type LanguageResponse struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	RightToLeft bool   `json:"right_to_left"`
}
