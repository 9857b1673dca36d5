package events

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"
)

// DaemonErrorCode says why the daemon could not be used
type DaemonErrorCode int

const (
	// DaemonAbsent means nothing exists at the socket path
	DaemonAbsent DaemonErrorCode = iota
	// DaemonStale means the socket file exists but no daemon accepts on it
	DaemonStale
	// DaemonForbidden means the socket or the data directory is not ours
	DaemonForbidden
	// DaemonGone means the client was closed or lost its connection
	DaemonGone
	DaemonUnknown
)

// DaemonError describes a failed daemon connection. Board views keep working
// without it, watching the database file instead.
type DaemonError struct {
	Code   DaemonErrorCode
	Socket string
	Err    error
}

// Error implements the error interface.
func (e *DaemonError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Message(), e.Socket, e.Err)
}

func (e *DaemonError) Unwrap() error {
	return e.Err
}

// Message is a one-line summary for logs
func (e *DaemonError) Message() string {
	switch e.Code {
	case DaemonAbsent:
		return "daemon not running"
	case DaemonStale:
		return "stale daemon socket"
	case DaemonForbidden:
		return "daemon socket not accessible"
	case DaemonGone:
		return "daemon connection closed"
	default:
		return "daemon unreachable"
	}
}

// Hint tells the user what to do about it
func (e *DaemonError) Hint() string {
	dir := filepath.Dir(e.Socket)
	switch e.Code {
	case DaemonAbsent:
		return "start the kanboard daemon, or point socket_path at the one that is running"
	case DaemonStale:
		return fmt.Sprintf("the daemon exited without removing %s; restarting it replaces the socket", filepath.Base(e.Socket))
	case DaemonForbidden:
		return fmt.Sprintf("check the owner and mode of %s; KANBOARD_DATA_DIR selects another data directory", dir)
	case DaemonGone:
		return "reopen the board to reconnect"
	default:
		return fmt.Sprintf("see the daemon log in %s", filepath.Join(dir, "logs"))
	}
}

// ClassifyDaemonError wraps a connect, subscribe or listen failure on
// socketPath. It returns nil for a nil err.
func ClassifyDaemonError(err error, socketPath string) *DaemonError {
	if err == nil {
		return nil
	}

	code := DaemonUnknown
	var errno syscall.Errno
	switch {
	case errors.Is(err, ErrClientClosed), errors.Is(err, ErrNotConnected), errors.Is(err, ErrNilClient):
		code = DaemonGone
	case errors.Is(err, fs.ErrNotExist):
		code = DaemonAbsent
	case errors.Is(err, fs.ErrPermission):
		code = DaemonForbidden
	case errors.As(err, &errno) && errno == syscall.ECONNREFUSED:
		code = DaemonStale
	}
	return &DaemonError{Code: code, Socket: socketPath, Err: err}
}
