package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventDocumentChanged indicates one document was written or removed
	// by another process.
	EventDocumentChanged EventType = iota

	// EventStoreInvalidated signals that the change could not be
	// classified and callers should reload every document.
	EventStoreInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type     EventType
	Document Document
}

// Watch streams change events until ctx is cancelled. Writes made through
// this Persistence are not reported. Callers should drain the returned
// channel to avoid losing events. The channel is closed once ctx is done or
// the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("watcher close", "err", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		// A throttle flush may race with shutdown; sends after close are
		// dropped.
		var sendMu sync.Mutex
		closed := false
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// The consumer is behind; the next event reloads anyway.
			}
		}

		throttle := newEventThrottle(100*time.Millisecond, p.ownWrite)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Warn("watcher error", "err", err)
				throttle.Enqueue(Event{Type: EventStoreInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}
				doc, known := documentForPath(p.basePath, evt.Name)
				if !known {
					// Temp files and anything else under the base path.
					continue
				}
				throttle.Enqueue(Event{Type: EventDocumentChanged, Document: doc}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so the UI reloads once
// per burst of filesystem activity instead of on every single write. At
// flush time, documents whose content matches this process's own last write
// are dropped.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[Document]struct{}
	delay   time.Duration
	own     func(Document) bool
}

func newEventThrottle(delay time.Duration, own func(Document) bool) *eventThrottle {
	if own == nil {
		own = func(Document) bool { return false }
	}
	return &eventThrottle{
		delay:   delay,
		own:     own,
		pending: make(map[EventType]map[Document]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[Document]struct{})
	}
	t.pending[ev.Type][ev.Document] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[Document]struct{})
	t.timer = nil
	t.mu.Unlock()

	if _, all := pending[EventStoreInvalidated]; all {
		send(Event{Type: EventStoreInvalidated})
		return
	}
	for doc := range pending[EventDocumentChanged] {
		if t.own(doc) {
			continue
		}
		send(Event{Type: EventDocumentChanged, Document: doc})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
