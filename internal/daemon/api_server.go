package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"watchtrack/internal/api"
	"watchtrack/internal/config"
	"watchtrack/internal/logging"
	"watchtrack/internal/tracker"
)

type apiServer struct {
	bind    string
	logger  *slog.Logger
	daemon  *Daemon
	handler http.Handler

	listener net.Listener
	server   *http.Server
}

// newAPIServer returns nil when no bind address is configured. All methods
// tolerate a nil receiver.
func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	if cfg == nil || d == nil {
		return nil
	}
	bind := strings.TrimSpace(cfg.API.Bind)
	if bind == "" {
		return nil
	}
	srv := &apiServer{
		bind:   bind,
		logger: logger,
		daemon: d,
	}
	srv.handler = srv.routes(cfg.API.Token)
	return srv
}

func (s *apiServer) routes(token string) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(token))

		r.Get("/api/status", s.handleStatus)
		r.Get("/api/summary", s.handleSummary)

		r.Get("/api/records", s.handleListRecords)
		r.Get("/api/records/{title}", s.handleGetRecord)
		r.Put("/api/records/{title}", s.handleSaveRecord)
		r.Delete("/api/records/{title}", s.handleDeleteRecord)
		r.Post("/api/records/{title}/finish", s.handleFinishRecord)

		r.Get("/api/blacklist", s.handleListBlacklist)
		r.Post("/api/blacklist", s.handleAddKeyword)
		r.Delete("/api/blacklist/{keyword}", s.handleRemoveKeyword)

		r.Post("/api/toggle/program", s.handleToggleProgram)
		r.Post("/api/toggle/tracking", s.handleToggleTracking)
	})
	return r
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	server := s.server

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
		s.server = nil
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.daemon.Status(r.Context())
	s.writeJSON(w, http.StatusOK, status.ToAPI())
}

func (s *apiServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.daemon.service.Summary(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromSummary(summary))
}

func (s *apiServer) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.daemon.service.Records(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.RecordListResponse{Records: api.FromWatchRecords(records)})
}

func (s *apiServer) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	title, ok := s.pathParam(w, r, "title")
	if !ok {
		return
	}
	rec, err := s.daemon.service.Record(r.Context(), title)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if rec == nil {
		s.writeError(w, http.StatusNotFound, "record not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.RecordResponse{Record: api.FromWatchRecord(*rec)})
}

func (s *apiServer) handleSaveRecord(w http.ResponseWriter, r *http.Request) {
	title, ok := s.pathParam(w, r, "title")
	if !ok {
		return
	}
	var req api.ManualRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := s.daemon.service.SaveManual(r.Context(), title, req.Episode, req.ResumePosition)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if !saved {
		s.writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	s.writeJSON(w, http.StatusOK, api.ResultResponse{OK: true})
}

func (s *apiServer) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	title, ok := s.pathParam(w, r, "title")
	if !ok {
		return
	}
	removed, err := s.daemon.service.Delete(r.Context(), title)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if !removed {
		s.writeError(w, http.StatusNotFound, "record not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.ResultResponse{OK: true})
}

func (s *apiServer) handleFinishRecord(w http.ResponseWriter, r *http.Request) {
	title, ok := s.pathParam(w, r, "title")
	if !ok {
		return
	}
	marked, err := s.daemon.service.MarkFinished(r.Context(), title)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if !marked {
		s.writeError(w, http.StatusNotFound, "record not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.ResultResponse{OK: true})
}

func (s *apiServer) handleListBlacklist(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, api.BlacklistResponse{Keywords: s.daemon.service.Blacklist()})
}

func (s *apiServer) handleAddKeyword(w http.ResponseWriter, r *http.Request) {
	var req api.KeywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	added, err := s.daemon.service.AddBlacklistKeyword(r.Context(), req.Keyword)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ResultResponse{OK: added})
}

func (s *apiServer) handleRemoveKeyword(w http.ResponseWriter, r *http.Request) {
	keyword, ok := s.pathParam(w, r, "keyword")
	if !ok {
		return
	}
	removed, err := s.daemon.service.RemoveBlacklistKeyword(r.Context(), keyword)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ResultResponse{OK: removed})
}

func (s *apiServer) handleToggleProgram(w http.ResponseWriter, r *http.Request) {
	active, err := s.daemon.service.ToggleProgramActive(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ToggleResponse{Active: active})
}

func (s *apiServer) handleToggleTracking(w http.ResponseWriter, r *http.Request) {
	active, err := s.daemon.service.ToggleAutoTracking(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ToggleResponse{Active: active})
}

// pathParam returns a decoded route parameter. chi routes on RawPath when the
// request carries escaped slashes, so the value is unescaped only then.
func (s *apiServer) pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid "+name)
			return "", false
		}
		value = unescaped
	}
	if strings.TrimSpace(value) == "" {
		s.writeError(w, http.StatusBadRequest, name+" is required")
		return "", false
	}
	return value, true
}

func (s *apiServer) failure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, tracker.ErrEmptyTitle) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logging.ErrorWithContext(logging.WithContext(r.Context(), s.log()), "api request failed", "api_request_failed",
		logging.String("path", r.URL.Path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check record store permissions"),
	)
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String(logging.FieldComponent, "api-server"))
	}
	return logging.NewNop()
}

// ToAPI converts a daemon status into its transport form.
func (status Status) ToAPI() api.DaemonStatus {
	return api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		Backend:      status.Backend,
		RecordsPath:  status.RecordsPath,
		SettingsPath: status.SettingsPath,
		LockFilePath: status.LockFilePath,
		LogPath:      status.LogPath,
		Tracker:      api.FromTrackerStatus(status.Tracker),
		Sampler:      api.FromSamplerState(status.Sampler, status.Interval),
		Dependencies: api.FromDependencies(status.Dependencies),
	}
}
