package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// WatchRecord describes a record in a transport-friendly format.
type WatchRecord struct {
	Title               string  `json:"title"`
	Episode             string  `json:"episode"`
	ResumePosition      *string `json:"resumePosition"`
	IsFinished          bool    `json:"isFinished"`
	TotalMinutesWatched float64 `json:"totalMinutesWatched"`
	TotalTimeWatched    string  `json:"totalTimeWatched"`
	LastUpdated         string  `json:"lastUpdated,omitempty"`
}

// Summary aggregates the record list.
type Summary struct {
	TotalItems       int     `json:"totalItems"`
	InProgressItems  int     `json:"inProgressItems"`
	FinishedItems    int     `json:"finishedItems"`
	TotalMinutes     float64 `json:"totalMinutes"`
	TotalTimeTracked string  `json:"totalTimeTracked"`
}

// TrackerStatus mirrors the process switches.
type TrackerStatus struct {
	ProgramActive      bool   `json:"programActive"`
	AutoTrackingActive bool   `json:"autoTrackingActive"`
	Language           string `json:"language"`
	LanguageName       string `json:"languageName"`
	RightToLeft        bool   `json:"rightToLeft"`
}

// SamplerState reports what the sampling loop is currently crediting.
type SamplerState struct {
	Interval   string `json:"interval"`
	LastTitle  string `json:"lastTitle,omitempty"`
	LastSample string `json:"lastSample,omitempty"`
	Cycles     int    `json:"cycles"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	Backend      string             `json:"backend"`
	RecordsPath  string             `json:"recordsPath"`
	SettingsPath string             `json:"settingsPath"`
	LockFilePath string             `json:"lockFilePath"`
	LogPath      string             `json:"logPath,omitempty"`
	Tracker      TrackerStatus      `json:"tracker"`
	Sampler      SamplerState       `json:"sampler"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// RecordListResponse wraps a collection of records.
type RecordListResponse struct {
	Records []WatchRecord `json:"records"`
}

// RecordResponse wraps a single record.
type RecordResponse struct {
	Record WatchRecord `json:"record"`
}

// ManualRecordRequest is the body of a manual record edit.
type ManualRecordRequest struct {
	Episode        string `json:"episode"`
	ResumePosition string `json:"resumePosition"`
}

// KeywordRequest is the body of a blacklist addition.
type KeywordRequest struct {
	Keyword string `json:"keyword"`
}

// BlacklistResponse lists blacklist keywords.
type BlacklistResponse struct {
	Keywords []string `json:"keywords"`
}

// ResultResponse reports whether a mutation changed anything.
type ResultResponse struct {
	OK bool `json:"ok"`
}

// ToggleResponse reports the new value of a switch.
type ToggleResponse struct {
	Active bool `json:"active"`
}

// StatusLine is one labeled row in the status report.
type StatusLine struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
	Detail   string `json:"detail"`
}

// DependencySummary aggregates dependency readiness.
type DependencySummary struct {
	Total           int    `json:"total"`
	Available       int    `json:"available"`
	MissingRequired int    `json:"missingRequired"`
	MissingOptional int    `json:"missingOptional"`
	Severity        string `json:"severity"`
	Detail          string `json:"detail"`
}

// StatusSnapshot is the full status report rendered by the CLI.
type StatusSnapshot struct {
	Daemon            DaemonStatus      `json:"daemon"`
	Summary           *Summary          `json:"summary,omitempty"`
	SystemChecks      []StatusLine      `json:"systemChecks"`
	DependencySummary DependencySummary `json:"dependencySummary"`
}
