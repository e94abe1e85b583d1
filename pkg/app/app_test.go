package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/settings"
	"tableflip.dev/tiles/pkg/store"
	"tableflip.dev/tiles/pkg/widget"
)

type memoryPersistence struct {
	mu       sync.Mutex
	spaces   []byte
	dark     bool
	settings *settings.Settings
	saves    int
	failSave bool
}

func (m *memoryPersistence) LoadSpaces(_ context.Context) []dashboard.Space {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.spaces == nil {
		return dashboard.DefaultSpaces()
	}
	var out []dashboard.Space
	if err := json.Unmarshal(m.spaces, &out); err != nil {
		return dashboard.DefaultSpaces()
	}
	return out
}

func (m *memoryPersistence) SaveSpaces(spaces []dashboard.Space) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("disk full")
	}
	data, err := json.Marshal(spaces)
	if err != nil {
		return err
	}
	m.spaces = data
	m.saves++
	return nil
}

func (m *memoryPersistence) LoadDarkMode(_ context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark
}

func (m *memoryPersistence) SaveDarkMode(dark bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dark = dark
	return nil
}

func (m *memoryPersistence) LoadSettings(_ context.Context) settings.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return settings.Defaults()
	}
	return *m.settings
}

func (m *memoryPersistence) SaveSettings(s settings.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &s
	return nil
}

func (m *memoryPersistence) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spaces, m.dark, m.settings = nil, false, nil
	return nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (m *memoryPersistence) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func newTestService(t *testing.T, mp *memoryPersistence) *Service {
	t.Helper()
	svc, err := New(context.Background(), mp, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	svc.Now = func() time.Time { return time.Date(2025, time.July, 4, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestAddTileAndAct(t *testing.T) {
	mp := &memoryPersistence{}
	svc := newTestService(t, mp)

	tile, err := svc.AddTile("home", widget.KindCounter, "")
	if err != nil {
		t.Fatalf("add tile: %v", err)
	}
	if tile.ID != "id-1" || tile.Title != "Counter" {
		t.Fatalf("tile = %+v", tile)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Act("home", tile.ID, widget.NewAction("inc")); err != nil {
			t.Fatalf("inc: %v", err)
		}
	}
	got, _ := svc.Tile("home", tile.ID)
	if got.Content.(widget.Counter).Count != 3 {
		t.Fatalf("count = %+v", got.Content)
	}

	// A fresh service over the same persistence sees the saved state.
	again := newTestService(t, mp)
	got, err = again.Tile("home", tile.ID)
	if err != nil || got.Content.(widget.Counter).Count != 3 {
		t.Fatalf("reloaded tile = %+v, %v", got, err)
	}
}

func TestActWithoutPersistSkipsSave(t *testing.T) {
	mp := &memoryPersistence{}
	svc := newTestService(t, mp)
	tile, _ := svc.AddTile("home", widget.KindTimer, "Focus")
	before := mp.saveCount()

	// Ticking a paused timer changes nothing and writes nothing.
	if _, err := svc.Act("home", tile.ID, widget.NewAction("tick")); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if mp.saveCount() != before {
		t.Fatalf("paused tick should not save")
	}

	if _, err := svc.Act("home", tile.ID, widget.NewAction("start")); err != nil {
		t.Fatalf("start: %v", err)
	}
	if mp.saveCount() != before+1 {
		t.Fatalf("start should save")
	}
}

func TestActErrorLeavesContent(t *testing.T) {
	svc := newTestService(t, &memoryPersistence{})
	tile, _ := svc.AddTile("home", widget.KindStopwatch, "")
	if _, err := svc.Act("home", tile.ID, widget.NewAction("lap")); !errors.Is(err, widget.ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
	if _, err := svc.Act("home", "nope", widget.NewAction("lap")); !errors.Is(err, dashboard.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveFailureIsNotSurfaced(t *testing.T) {
	mp := &memoryPersistence{failSave: true}
	svc := newTestService(t, mp)
	if _, err := svc.AddSpace("Work", "", ""); err != nil {
		t.Fatalf("save failures must not surface: %v", err)
	}
	if len(svc.Spaces()) != 2 {
		t.Fatalf("in-memory tree should still change")
	}
}

func TestImportNonArrayLeavesStateUntouched(t *testing.T) {
	mp := &memoryPersistence{}
	svc := newTestService(t, mp)
	_, _ = svc.AddSpace("Work", "", "")
	before := svc.Spaces()
	saves := mp.saveCount()

	payloads := []string{
		`{"id":"home"}`,
		`"spaces"`,
		`[]`,
		`not json`,
		`[{"id":"a","label":"A","theme":"blue","tiles":[{"id":"t","type":"NOPE","title":"x","size":"small","content":{}}]}]`,
	}
	for _, p := range payloads {
		if _, err := svc.Import(strings.NewReader(p)); !errors.Is(err, ErrInvalidImport) {
			t.Fatalf("import %q: expected ErrInvalidImport, got %v", p, err)
		}
	}
	if !reflect.DeepEqual(svc.Spaces(), before) {
		t.Fatalf("failed import changed the tree")
	}
	if mp.saveCount() != saves {
		t.Fatalf("failed import wrote to persistence")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestService(t, &memoryPersistence{})
	work, _ := src.AddSpace("Work", "emerald", "briefcase")
	_, _ = src.AddTile(work.ID, widget.KindNote, "Scratch")

	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestService(t, &memoryPersistence{})
	n, err := dst.Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d spaces", n)
	}
	if !reflect.DeepEqual(dst.Spaces(), src.Spaces()) {
		t.Fatalf("round trip mismatch")
	}
	if dst.Active().ID != "home" {
		t.Fatalf("first imported space should be active, got %q", dst.Active().ID)
	}
}

func TestSettingsAndDarkModePersistIndependently(t *testing.T) {
	mp := &memoryPersistence{}
	svc := newTestService(t, mp)
	if _, err := svc.SetSetting("gridGap", "30"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !svc.ToggleDarkMode() {
		t.Fatalf("toggle should turn dark mode on")
	}
	if mp.saveCount() != 0 {
		t.Fatalf("settings changes must not rewrite spaces")
	}

	again := newTestService(t, mp)
	if again.Settings().GridGap != 30 || !again.DarkMode() {
		t.Fatalf("reload = %+v dark=%v", again.Settings(), again.DarkMode())
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	mp := &memoryPersistence{}
	svc := newTestService(t, mp)
	_, _ = svc.AddSpace("Work", "", "")
	svc.SetDarkMode(true)
	_, _ = svc.SetSetting("userName", "Robin")

	if err := svc.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(svc.Spaces()) != 1 || svc.DarkMode() || svc.Settings() != settings.Defaults() {
		t.Fatalf("reset left state behind")
	}
}

func TestReloadKeepsActiveSpace(t *testing.T) {
	mp := &memoryPersistence{}
	svc := newTestService(t, mp)
	work, _ := svc.AddSpace("Work", "", "")

	// Another writer adds a tile to the saved tree.
	other := newTestService(t, mp)
	if _, err := other.AddTile(work.ID, widget.KindQuote, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Reload(context.Background(), store.Event{Type: store.EventDocumentChanged, Document: store.DocSpaces}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if svc.Active().ID != work.ID || len(svc.Active().Tiles) != 1 {
		t.Fatalf("active after reload = %+v", svc.Active())
	}
}

func TestFindSpaceByIDOrLabel(t *testing.T) {
	svc := newTestService(t, &memoryPersistence{})
	if sp, err := svc.FindSpace("home"); err != nil || sp.Label != "Home" {
		t.Fatalf("by id: %+v %v", sp, err)
	}
	if sp, err := svc.FindSpace("  HOME "); err != nil || sp.ID != "home" {
		t.Fatalf("by label: %+v %v", sp, err)
	}
	if sp, err := svc.FindSpace(""); err != nil || sp.ID != "home" {
		t.Fatalf("empty ref: %+v %v", sp, err)
	}
	if _, err := svc.FindSpace("work"); !errors.Is(err, dashboard.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
