package trackeraccess

import (
	"fmt"

	"watchtrack/internal/ipc"
	"watchtrack/internal/tracker"
)

// Session represents a tracker access handle and its cleanup function.
type Session struct {
	Access Access
	// Direct is true when the daemon was unreachable and the store was
	// opened in-process.
	Direct bool
	close  func() error
}

// Close releases resources associated with the session.
func (s Session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenWithFallback tries IPC-backed access first, then falls back to opening
// the tracker service directly.
func OpenWithFallback(
	dial func() (*ipc.Client, error),
	openService func() (*tracker.Service, error),
) (Session, error) {
	if dial != nil {
		if client, err := dial(); err == nil {
			return Session{
				Access: NewIPCAccess(client),
				close:  client.Close,
			}, nil
		}
	}

	if openService == nil {
		return Session{}, fmt.Errorf("open tracker: no service opener configured")
	}
	svc, err := openService()
	if err != nil {
		return Session{}, fmt.Errorf("open tracker: %w", err)
	}
	return Session{
		Access: NewServiceAccess(svc),
		Direct: true,
		close:  svc.Close,
	}, nil
}
