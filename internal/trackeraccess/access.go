package trackeraccess

import (
	"context"

	"watchtrack/internal/api"
	"watchtrack/internal/ipc"
	"watchtrack/internal/tracker"
)

// Access provides tracker operations regardless of IPC or direct store backing.
type Access interface {
	Records(ctx context.Context) ([]api.WatchRecord, error)
	Record(ctx context.Context, title string) (*api.WatchRecord, error)
	Summary(ctx context.Context) (api.Summary, error)
	Finish(ctx context.Context, title string) (bool, error)
	Delete(ctx context.Context, title string) (bool, error)
	SaveManual(ctx context.Context, title, episode, resume string) (bool, error)
	Blacklist(ctx context.Context) ([]string, error)
	AddKeyword(ctx context.Context, keyword string) (bool, error)
	RemoveKeyword(ctx context.Context, keyword string) (bool, error)
	IsBlacklisted(ctx context.Context, title string) (bool, error)
	ToggleProgram(ctx context.Context) (bool, error)
	ToggleTracking(ctx context.Context) (bool, error)
	Status(ctx context.Context) (api.TrackerStatus, error)
	SetLanguage(ctx context.Context, tag string) (api.TrackerStatus, error)
}

// NewIPCAccess returns an Access backed by daemon IPC.
func NewIPCAccess(client *ipc.Client) Access {
	return &ipcAccess{client: client}
}

// NewServiceAccess returns an Access backed by a directly opened service.
func NewServiceAccess(svc *tracker.Service) Access {
	return &serviceAccess{svc: svc}
}

type ipcAccess struct {
	client *ipc.Client
}

func (a *ipcAccess) Records(context.Context) ([]api.WatchRecord, error) {
	resp, err := a.client.RecordList()
	if err != nil {
		return nil, err
	}
	if resp.Records == nil {
		return []api.WatchRecord{}, nil
	}
	return resp.Records, nil
}

func (a *ipcAccess) Record(_ context.Context, title string) (*api.WatchRecord, error) {
	resp, err := a.client.RecordGet(title)
	if err != nil {
		return nil, err
	}
	if resp == nil || !resp.Found {
		return nil, nil
	}
	return &resp.Record, nil
}

func (a *ipcAccess) Summary(context.Context) (api.Summary, error) {
	resp, err := a.client.Summary()
	if err != nil {
		return api.Summary{}, err
	}
	return resp.Summary, nil
}

func (a *ipcAccess) Finish(_ context.Context, title string) (bool, error) {
	resp, err := a.client.Finish(title)
	if err != nil {
		return false, err
	}
	return resp.Updated, nil
}

func (a *ipcAccess) Delete(_ context.Context, title string) (bool, error) {
	resp, err := a.client.Delete(title)
	if err != nil {
		return false, err
	}
	return resp.Removed, nil
}

func (a *ipcAccess) SaveManual(_ context.Context, title, episode, resume string) (bool, error) {
	resp, err := a.client.SaveManual(title, episode, resume)
	if err != nil {
		return false, err
	}
	return resp.Saved, nil
}

func (a *ipcAccess) Blacklist(context.Context) ([]string, error) {
	resp, err := a.client.Blacklist()
	if err != nil {
		return nil, err
	}
	return resp.Keywords, nil
}

func (a *ipcAccess) AddKeyword(_ context.Context, keyword string) (bool, error) {
	resp, err := a.client.BlacklistAdd(keyword)
	if err != nil {
		return false, err
	}
	return resp.Changed, nil
}

func (a *ipcAccess) RemoveKeyword(_ context.Context, keyword string) (bool, error) {
	resp, err := a.client.BlacklistRemove(keyword)
	if err != nil {
		return false, err
	}
	return resp.Changed, nil
}

func (a *ipcAccess) IsBlacklisted(_ context.Context, title string) (bool, error) {
	resp, err := a.client.BlacklistCheck(title)
	if err != nil {
		return false, err
	}
	return resp.Blacklisted, nil
}

func (a *ipcAccess) ToggleProgram(context.Context) (bool, error) {
	resp, err := a.client.ToggleProgram()
	if err != nil {
		return false, err
	}
	return resp.Active, nil
}

func (a *ipcAccess) ToggleTracking(context.Context) (bool, error) {
	resp, err := a.client.ToggleTracking()
	if err != nil {
		return false, err
	}
	return resp.Active, nil
}

func (a *ipcAccess) Status(context.Context) (api.TrackerStatus, error) {
	resp, err := a.client.Status()
	if err != nil {
		return api.TrackerStatus{}, err
	}
	return resp.Tracker, nil
}

func (a *ipcAccess) SetLanguage(ctx context.Context, tag string) (api.TrackerStatus, error) {
	if _, err := a.client.Language(tag); err != nil {
		return api.TrackerStatus{}, err
	}
	return a.Status(ctx)
}

type serviceAccess struct {
	svc *tracker.Service
}

func (a *serviceAccess) Records(ctx context.Context) ([]api.WatchRecord, error) {
	records, err := a.svc.Records(ctx)
	if err != nil {
		return nil, err
	}
	return api.FromWatchRecords(records), nil
}

func (a *serviceAccess) Record(ctx context.Context, title string) (*api.WatchRecord, error) {
	rec, err := a.svc.Record(ctx, title)
	if err != nil || rec == nil {
		return nil, err
	}
	dto := api.FromWatchRecord(*rec)
	return &dto, nil
}

func (a *serviceAccess) Summary(ctx context.Context) (api.Summary, error) {
	summary, err := a.svc.Summary(ctx)
	if err != nil {
		return api.Summary{}, err
	}
	return api.FromSummary(summary), nil
}

func (a *serviceAccess) Finish(ctx context.Context, title string) (bool, error) {
	return a.svc.MarkFinished(ctx, title)
}

func (a *serviceAccess) Delete(ctx context.Context, title string) (bool, error) {
	return a.svc.Delete(ctx, title)
}

func (a *serviceAccess) SaveManual(ctx context.Context, title, episode, resume string) (bool, error) {
	return a.svc.SaveManual(ctx, title, episode, resume)
}

func (a *serviceAccess) Blacklist(context.Context) ([]string, error) {
	return a.svc.Blacklist(), nil
}

func (a *serviceAccess) AddKeyword(ctx context.Context, keyword string) (bool, error) {
	return a.svc.AddBlacklistKeyword(ctx, keyword)
}

func (a *serviceAccess) RemoveKeyword(ctx context.Context, keyword string) (bool, error) {
	return a.svc.RemoveBlacklistKeyword(ctx, keyword)
}

func (a *serviceAccess) IsBlacklisted(_ context.Context, title string) (bool, error) {
	return a.svc.IsBlacklisted(title), nil
}

func (a *serviceAccess) ToggleProgram(ctx context.Context) (bool, error) {
	return a.svc.ToggleProgramActive(ctx)
}

func (a *serviceAccess) ToggleTracking(ctx context.Context) (bool, error) {
	return a.svc.ToggleAutoTracking(ctx)
}

func (a *serviceAccess) Status(context.Context) (api.TrackerStatus, error) {
	return api.FromTrackerStatus(a.svc.Status()), nil
}

func (a *serviceAccess) SetLanguage(ctx context.Context, tag string) (api.TrackerStatus, error) {
	if _, err := a.svc.SetLanguage(ctx, tag); err != nil {
		return api.TrackerStatus{}, err
	}
	return a.Status(ctx)
}
