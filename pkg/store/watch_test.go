package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/settings"
)

func TestPersistenceWatchEmitsForeignChanges(t *testing.T) {
	base := t.TempDir()
	mine := mustLoad(t, base)
	other := mustLoad(t, base)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := mine.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	s := settings.Defaults()
	s.UserName = "other"
	if err := other.SaveSettings(s); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventStoreInvalidated {
				return
			}
			if evt.Document != DocSettings {
				t.Fatalf("expected settings change, got %q", evt.Document)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}

func TestPersistenceWatchIgnoresOwnWrites(t *testing.T) {
	base := t.TempDir()
	mine := mustLoad(t, base)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := mine.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := mine.SaveSpaces(dashboard.DefaultSpaces()); err != nil {
		t.Fatalf("save spaces: %v", err)
	}
	if err := mine.SaveDarkMode(true); err != nil {
		t.Fatalf("save dark mode: %v", err)
	}

	select {
	case evt := <-ch:
		t.Fatalf("unexpected event for own write: %+v", evt)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestPersistenceWatchClosesOnCancel(t *testing.T) {
	p := mustLoad(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	got := make(chan Event, 8)
	th := newEventThrottle(20*time.Millisecond, func(d Document) bool { return d == DocDarkMode })
	defer th.Stop()
	send := func(ev Event) { got <- ev }

	th.Enqueue(Event{Type: EventDocumentChanged, Document: DocSpaces}, send)
	th.Enqueue(Event{Type: EventDocumentChanged, Document: DocSpaces}, send)
	th.Enqueue(Event{Type: EventDocumentChanged, Document: DocDarkMode}, send)

	select {
	case ev := <-got:
		if ev.Document != DocSpaces {
			t.Fatalf("got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no flush")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single event, also got %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
