package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"watchtrack/internal/api"
	"watchtrack/internal/daemon"
	"watchtrack/internal/language"
	"watchtrack/internal/logging"
	"watchtrack/internal/logs"
	"watchtrack/internal/progress"
	"watchtrack/internal/tracker"
)

// ServiceName is the JSON-RPC receiver name clients address.
const ServiceName = "Watchtrack"

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, tracker: d.Service(), logger: logger, ctx: ctx, tailer: logs.NewTailer(nil, nil)}
	if err := rpcServer.RegisterName(ServiceName, srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					return
				}
				logging.WarnWithContext(s.logger, "accept failed", "ipc_accept_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		logging.WarnWithContext(s.logger, "failed to remove socket", "ipc_socket_cleanup_failed",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "stale IPC socket may block future starts"),
			logging.String(logging.FieldErrorHint, "remove the socket file manually or rerun watchtrack stop"))
	}
}

type service struct {
	daemon  *daemon.Daemon
	tracker *tracker.Service
	tailer  *logs.Tailer
	logger  *slog.Logger
	ctx     context.Context
}

// request derives a per-call context carrying a fresh correlation id and the
// matching logger.
func (s *service) request() (context.Context, *slog.Logger) {
	ctx := logging.WithRequestID(s.ctx, uuid.NewString())
	return ctx, logging.WithContext(ctx, s.log())
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	_, logger := s.request()
	logger.Debug("daemon start requested")
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "daemon started"
	logger.Info("daemon started via IPC", logging.String(logging.FieldEventType, "daemon_start"))
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	_, logger := s.request()
	logger.Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	logger.Info("daemon stopped via IPC", logging.String(logging.FieldEventType, "daemon_stop"))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	ctx, _ := s.request()
	resp.DaemonStatus = s.daemon.Status(ctx).ToAPI()
	return nil
}

func (s *service) LogTail(req LogTailRequest, resp *LogTailResponse) error {
	logPath := s.daemon.LogPath()
	if logPath == "" {
		resp.Offset = 0
		return nil
	}
	wait := time.Duration(req.WaitMillis) * time.Millisecond
	if wait <= 0 && req.Follow {
		wait = time.Second
	}
	ctx := s.ctx
	if req.Follow && wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(s.ctx, wait+500*time.Millisecond)
		defer cancel()
	}
	result, err := s.tailer.Tail(ctx, logPath, logs.TailOptions{
		Offset: req.Offset,
		Limit:  req.Limit,
		Follow: req.Follow,
		Wait:   wait,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			resp.Offset = result.Offset
			return nil
		}
		return err
	}
	resp.Lines = result.Lines
	resp.Offset = result.Offset
	return nil
}

func (s *service) RecordList(_ RecordListRequest, resp *RecordListResponse) error {
	ctx, _ := s.request()
	records, err := s.tracker.Records(ctx)
	if err != nil {
		return err
	}
	resp.Records = api.FromWatchRecords(records)
	return nil
}

func (s *service) RecordGet(req RecordGetRequest, resp *RecordGetResponse) error {
	ctx, _ := s.request()
	rec, err := s.tracker.Record(ctx, req.Title)
	if err != nil {
		return err
	}
	if rec != nil {
		resp.Found = true
		resp.Record = api.FromWatchRecord(*rec)
	}
	return nil
}

func (s *service) Summary(_ SummaryRequest, resp *SummaryResponse) error {
	ctx, _ := s.request()
	summary, err := s.tracker.Summary(ctx)
	if err != nil {
		return err
	}
	resp.Summary = api.FromSummary(summary)
	return nil
}

func (s *service) RecordProgress(req RecordProgressRequest, resp *RecordProgressResponse) error {
	ctx, logger := s.request()
	rec, err := s.tracker.RecordProgress(ctx, progress.Progress{
		Title:     req.Title,
		Episode:   req.Episode,
		Minutes:   req.Minutes,
		SetResume: req.SetResume,
		Resume:    req.Resume,
	})
	if err != nil {
		return err
	}
	resp.Record = api.FromWatchRecord(rec)
	logger.Debug("progress recorded via IPC",
		logging.String(logging.FieldTitle, rec.Title),
		logging.Float64("minutes", req.Minutes))
	return nil
}

func (s *service) Finish(req FinishRequest, resp *FinishResponse) error {
	ctx, logger := s.request()
	updated, err := s.tracker.MarkFinished(ctx, req.Title)
	if err != nil {
		return err
	}
	resp.Updated = updated
	logger.Info("record finish requested",
		logging.String(logging.FieldTitle, req.Title),
		logging.Bool("updated", updated),
		logging.String(logging.FieldEventType, "record_finish"))
	return nil
}

func (s *service) Delete(req DeleteRequest, resp *DeleteResponse) error {
	ctx, logger := s.request()
	removed, err := s.tracker.Delete(ctx, req.Title)
	if err != nil {
		return err
	}
	resp.Removed = removed
	logger.Info("record delete requested",
		logging.String(logging.FieldTitle, req.Title),
		logging.Bool("removed", removed),
		logging.String(logging.FieldEventType, "record_delete"))
	return nil
}

func (s *service) SaveManual(req SaveManualRequest, resp *SaveManualResponse) error {
	ctx, logger := s.request()
	saved, err := s.tracker.SaveManual(ctx, req.Title, req.Episode, req.ResumePosition)
	if err != nil {
		return err
	}
	resp.Saved = saved
	logger.Info("manual record save requested",
		logging.String(logging.FieldTitle, req.Title),
		logging.Bool("saved", saved),
		logging.String(logging.FieldEventType, "record_manual_save"))
	return nil
}

func (s *service) Blacklist(_ BlacklistRequest, resp *BlacklistResponse) error {
	resp.Keywords = s.tracker.Blacklist()
	return nil
}

func (s *service) BlacklistAdd(req BlacklistUpdateRequest, resp *BlacklistUpdateResponse) error {
	ctx, _ := s.request()
	changed, err := s.tracker.AddBlacklistKeyword(ctx, req.Keyword)
	if err != nil {
		return err
	}
	resp.Changed = changed
	return nil
}

func (s *service) BlacklistRemove(req BlacklistUpdateRequest, resp *BlacklistUpdateResponse) error {
	ctx, _ := s.request()
	changed, err := s.tracker.RemoveBlacklistKeyword(ctx, req.Keyword)
	if err != nil {
		return err
	}
	resp.Changed = changed
	return nil
}

func (s *service) BlacklistCheck(req BlacklistCheckRequest, resp *BlacklistCheckResponse) error {
	resp.Blacklisted = s.tracker.IsBlacklisted(req.Title)
	return nil
}

func (s *service) ToggleProgram(_ ToggleRequest, resp *ToggleResponse) error {
	ctx, _ := s.request()
	active, err := s.tracker.ToggleProgramActive(ctx)
	if err != nil {
		return err
	}
	resp.Active = active
	return nil
}

func (s *service) ToggleTracking(_ ToggleRequest, resp *ToggleResponse) error {
	ctx, _ := s.request()
	active, err := s.tracker.ToggleAutoTracking(ctx)
	if err != nil {
		return err
	}
	resp.Active = active
	return nil
}

func (s *service) Language(req LanguageRequest, resp *LanguageResponse) error {
	code := s.tracker.Language()
	if req.Tag != "" {
		ctx, _ := s.request()
		updated, err := s.tracker.SetLanguage(ctx, req.Tag)
		if err != nil {
			return err
		}
		code = updated
	}
	resp.Language = code
	resp.Name = language.DisplayName(code)
	resp.RightToLeft = language.IsRTL(code)
	return nil
}
