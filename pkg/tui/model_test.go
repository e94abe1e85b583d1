package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/schedule"
	"tableflip.dev/tiles/pkg/settings"
	"tableflip.dev/tiles/pkg/shell"
	"tableflip.dev/tiles/pkg/store"
	"tableflip.dev/tiles/pkg/widget"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T, host shell.Host) (*Model, store.Persistence) {
	t.Helper()
	p, err := store.Load(store.NewConfig(t.TempDir(), ""), quiet())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc, err := app.New(context.Background(), p, quiet())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.Now = func() time.Time { return time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC) }
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	m := New(svc, host, quiet())
	t.Cleanup(m.shutdown)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, p
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"space":     tea.KeySpace,
}

func keyMsg(k string) tea.KeyMsg {
	if kt, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestStartsFocusedOnFirstTile(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if m.focusID != "h1" {
		t.Fatalf("focus = %q, want h1", m.focusID)
	}
	if !m.sched.Running(schedule.Key{Tile: "h4", Purpose: tickPurpose}) {
		t.Fatalf("clock tile should be ticking")
	}
}

func TestAddTileFromMenu(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, "a", "down", "down", "enter")

	if m.mode != modeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	tiles := m.activeSpace().Tiles
	if len(tiles) != 3 {
		t.Fatalf("tiles = %d, want 3", len(tiles))
	}
	added := tiles[2]
	if added.Kind != widget.KindTimer || added.Title != "Timer" {
		t.Fatalf("added %+v", added)
	}
	if m.focusID != added.ID {
		t.Fatalf("new tile should take focus")
	}
}

func TestTimerRunsOnlyWhileStarted(t *testing.T) {
	m, _ := newTestModel(t, nil)
	sp := m.activeSpace()
	tile, err := m.svc.AddTile(sp.ID, widget.KindTimer, "")
	if err != nil {
		t.Fatal(err)
	}
	m.focusID = tile.ID
	key := schedule.Key{Tile: tile.ID, Purpose: tickPurpose}

	press(m, "space")
	if !m.sched.Running(key) {
		t.Fatalf("started timer should tick")
	}
	m.handleTick(key)
	got, _ := m.svc.Tile(sp.ID, tile.ID)
	if left := got.Content.(widget.Timer).TimeLeft; left != 25*60-1 {
		t.Fatalf("time left = %d", left)
	}

	press(m, "space")
	if m.sched.Running(key) {
		t.Fatalf("paused timer should not tick")
	}
}

func TestSwitchingSpaceCancelsTicks(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if _, err := m.svc.AddSpace("Work", "", ""); err != nil {
		t.Fatal(err)
	}
	if err := m.svc.Select("home"); err != nil {
		t.Fatal(err)
	}
	press(m, "esc")
	if m.sched.Len() != 1 {
		t.Fatalf("home should run one task, have %d", m.sched.Len())
	}

	press(m, "tab")
	if got := m.activeSpace().Label; got != "Work" {
		t.Fatalf("active = %q", got)
	}
	if m.sched.Len() != 0 {
		t.Fatalf("empty space should run no tasks, have %d", m.sched.Len())
	}
	if m.focusID != "" {
		t.Fatalf("focus should clear in an empty space")
	}

	press(m, "shift+tab")
	if m.activeSpace().ID != "home" || m.focusID != "h1" {
		t.Fatalf("back home: active %q focus %q", m.activeSpace().ID, m.focusID)
	}
}

func TestCalculatorKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	sp := m.activeSpace()
	tile, err := m.svc.AddTile(sp.ID, widget.KindCalculator, "")
	if err != nil {
		t.Fatal(err)
	}
	m.focusID = tile.ID
	press(m, "1", "2", "+", "3", "enter")

	got, _ := m.svc.Tile(sp.ID, tile.ID)
	if d := got.Content.(widget.Calculator).Display; d != "15" {
		t.Fatalf("display = %q, want 15", d)
	}
}

func TestTodoAddAndToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, "i")
	if m.mode != modeInput {
		t.Fatalf("mode = %v, want input", m.mode)
	}
	typeText(m, "Bread")
	press(m, "enter")

	got, _ := m.svc.Tile("home", "h1")
	todo := got.Content.(widget.Todo)
	if len(todo.Items) != 3 || todo.Items[2].Text != "Bread" {
		t.Fatalf("items = %+v", todo.Items)
	}

	press(m, "space")
	got, _ = m.svc.Tile("home", "h1")
	if !got.Content.(widget.Todo).Items[0].Completed {
		t.Fatalf("first item should be toggled")
	}
}

func TestVerticalFocusFollowsGrid(t *testing.T) {
	m, _ := newTestModel(t, nil)
	tile, err := m.svc.AddTile("home", widget.KindCounter, "")
	if err != nil {
		t.Fatal(err)
	}
	m.focusID = "h4"
	press(m, "down")
	if m.focusID != tile.ID {
		t.Fatalf("down from h4 = %q, want %q", m.focusID, tile.ID)
	}
	press(m, "up")
	if m.focusID != "h1" {
		t.Fatalf("up from counter = %q, want h1", m.focusID)
	}
	press(m, "right", "right")
	if m.focusID != tile.ID {
		t.Fatalf("right should stop at the last tile")
	}
}

func TestRemoveSpaceNeedsYes(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if _, err := m.svc.AddSpace("Work", "", ""); err != nil {
		t.Fatal(err)
	}
	deleteRow := []string{"p", "down", "down", "down", "enter"}

	press(m, deleteRow...)
	if m.mode != modeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	typeText(m, "no")
	press(m, "enter")
	if n := len(m.svc.Spaces()); n != 2 {
		t.Fatalf("spaces = %d after declining", n)
	}

	press(m, deleteRow...)
	typeText(m, "yes")
	press(m, "enter")
	spaces := m.svc.Spaces()
	if len(spaces) != 1 || spaces[0].ID != "home" {
		t.Fatalf("spaces = %+v", spaces)
	}
	if m.activeSpace().ID != "home" {
		t.Fatalf("first remaining space should be active")
	}
}

func TestLastSpaceIsKept(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, "p", "down", "down", "down", "enter")
	typeText(m, "yes")
	press(m, "enter")
	if len(m.svc.Spaces()) != 1 {
		t.Fatalf("last space was removed")
	}
	if !m.statusErr {
		t.Fatalf("expected an error status, got %q", m.status)
	}
}

func TestSettingsPanel(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, ",", "right")
	if got := m.svc.Settings().Background; got != settings.BackgroundAurora {
		t.Fatalf("background = %q", got)
	}
	press(m, "down", "left")
	if got := m.svc.Settings().TileRounding; got != 28 {
		t.Fatalf("rounding = %d, want 28", got)
	}
	press(m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("esc should close settings")
	}
}

func TestCommandPrompt(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, ":")
	typeText(m, "theme violet")
	press(m, "enter")
	if got := m.activeSpace().Theme; got != "violet" {
		t.Fatalf("theme = %q", got)
	}

	press(m, ":")
	typeText(m, "add countdown Launch")
	press(m, "enter")
	tile, ok := m.focusedTile()
	if !ok || tile.Kind != widget.KindCountdown || tile.Title != "Launch" {
		t.Fatalf("focused = %+v", tile)
	}
}

func TestViewShowsActiveSpace(t *testing.T) {
	m, _ := newTestModel(t, nil)
	out := m.View()
	for _, want := range []string{"Home", "Groceries", "Milk", "Time"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestExternalChangeReloads(t *testing.T) {
	m, p := newTestModel(t, nil)
	spaces := dashboard.DefaultSpaces()
	spaces[0].Label = "Elsewhere"
	if err := p.SaveSpaces(spaces); err != nil {
		t.Fatal(err)
	}
	m.Update(watchEventMsg{event: store.Event{Type: store.EventDocumentChanged, Document: store.DocSpaces}})
	if got := m.activeSpace().Label; got != "Elsewhere" {
		t.Fatalf("label = %q after reload", got)
	}
}

type fakeHost struct {
	restarted bool
}

func (h *fakeHost) Signals(ctx context.Context) (<-chan shell.Signal, error) {
	return make(chan shell.Signal), nil
}

func (h *fakeHost) Restart() error {
	h.restarted = true
	return nil
}

func TestUpdateBannerAndRestart(t *testing.T) {
	host := &fakeHost{}
	m, _ := newTestModel(t, host)

	press(m, "R")
	if host.restarted {
		t.Fatalf("restart without a downloaded update")
	}

	m.Update(shellSignalMsg{signal: shell.SignalUpdateAvailable})
	if !strings.Contains(m.View(), "Downloading update") {
		t.Fatalf("missing download banner")
	}
	m.Update(shellSignalMsg{signal: shell.SignalUpdateDownloaded})
	if !strings.Contains(m.View(), "Press R to restart") {
		t.Fatalf("missing restart banner")
	}

	cmd := press(m, "R")
	if !host.restarted {
		t.Fatalf("restart not requested")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("restart should quit")
	}
}

func TestQuitStopsTasks(t *testing.T) {
	m, _ := newTestModel(t, nil)
	cmd := press(m, "q")
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q should quit")
	}
	if m.sched.Len() != 0 {
		t.Fatalf("tasks left after quit: %d", m.sched.Len())
	}
	if m.ctx.Err() == nil {
		t.Fatalf("context should be cancelled")
	}
}
