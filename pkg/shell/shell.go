// Package shell connects to an optional desktop host that delivers update
// notifications and accepts a restart request.
//
// The host talks through marker files in a control directory: it creates
// "update-available" and "update-downloaded" when those events happen, and
// the program creates "restart-app" to ask for a restart.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	UpdateAvailableFile  = "update-available"
	UpdateDownloadedFile = "update-downloaded"
	RestartFile          = "restart-app"
)

// Signal is a one-way notification from the host.
type Signal int

const (
	SignalUpdateAvailable Signal = iota
	SignalUpdateDownloaded
)

func (s Signal) String() string {
	switch s {
	case SignalUpdateAvailable:
		return "update-available"
	case SignalUpdateDownloaded:
		return "update-downloaded"
	default:
		return "unknown"
	}
}

// Status is what the update UI shows.
type Status struct {
	// UpdateAvailable shows indeterminate download progress.
	UpdateAvailable bool
	// ReadyToInstall shows the restart control.
	ReadyToInstall bool
}

// Apply folds a signal into the status. A finished download replaces the
// progress indicator.
func (s Status) Apply(sig Signal) Status {
	switch sig {
	case SignalUpdateAvailable:
		s.UpdateAvailable = true
	case SignalUpdateDownloaded:
		s.UpdateAvailable = false
		s.ReadyToInstall = true
	}
	return s
}

// Host is a connected desktop shell.
type Host interface {
	// Signals streams host notifications until ctx is done.
	Signals(ctx context.Context) (<-chan Signal, error)
	// Restart asks the host to restart the program.
	Restart() error
}

// ErrNoHost is returned by operations that need a host when none is
// configured.
var ErrNoHost = errors.New("shell: no host")

// Detect returns the host for a control directory, or nil when dir is empty.
// Callers treat a nil Host as "no update UI".
func Detect(dir string, log *slog.Logger) Host {
	if dir == "" {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}
	return &dirHost{dir: dir, log: log.With("component", "shell")}
}

type dirHost struct {
	dir string
	log *slog.Logger
}

func signalFor(name string) (Signal, bool) {
	switch filepath.Base(name) {
	case UpdateAvailableFile:
		return SignalUpdateAvailable, true
	case UpdateDownloadedFile:
		return SignalUpdateDownloaded, true
	default:
		return 0, false
	}
}

func (h *dirHost) Signals(ctx context.Context) (<-chan Signal, error) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return nil, fmt.Errorf("shell: ensure control dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shell: create watcher: %w", err)
	}
	if err := watcher.Add(h.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("shell: watch %s: %w", h.dir, err)
	}

	// Markers left from before startup are replayed first, in order.
	var pending []Signal
	for _, name := range []string{UpdateAvailableFile, UpdateDownloadedFile} {
		if _, err := os.Stat(filepath.Join(h.dir, name)); err == nil {
			sig, _ := signalFor(name)
			pending = append(pending, sig)
		}
	}

	out := make(chan Signal, 4)
	go func() {
		defer close(out)
		defer func() {
			if err := watcher.Close(); err != nil {
				h.log.Warn("watcher close", "err", err)
			}
		}()

		for _, sig := range pending {
			select {
			case out <- sig:
			case <-ctx.Done():
				return
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				h.log.Warn("watcher error", "err", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) {
					continue
				}
				sig, known := signalFor(evt.Name)
				if !known {
					continue
				}
				select {
				case out <- sig:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (h *dirHost) Restart() error {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return fmt.Errorf("shell: ensure control dir: %w", err)
	}
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := os.WriteFile(filepath.Join(h.dir, RestartFile), []byte(stamp), 0o644); err != nil {
		return fmt.Errorf("shell: request restart: %w", err)
	}
	h.log.Info("restart requested")
	return nil
}
