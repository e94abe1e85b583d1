// Package tui hosts the Bubble Tea program for the tiles dashboard.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/schedule"
	"tableflip.dev/tiles/pkg/shell"
	"tableflip.dev/tiles/pkg/store"
	"tableflip.dev/tiles/pkg/widget"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
	modeNote
	modeConfirm
	modeAddTile
	modeSpace
	modeSettings
	modeHelp
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmRemoveSpace
	confirmReset
)

// tickPurpose keys the per-tile periodic task in the scheduler.
const tickPurpose = "tick"

// Model contains UI state.
type Model struct {
	svc    *app.Service
	host   shell.Host
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int

	mode    mode
	keys    keyMap
	help    help.Model
	input   textinput.Model
	note    textarea.Model
	prompt  promptSpec
	spinner spinner.Model

	// focusID is the focused tile in the active space.
	focusID string
	// cursors holds the item cursor of list widgets by tile id.
	cursors map[string]int
	// menu is the row cursor of the add-tile, space and settings panels.
	menu int

	confirmAction confirmAction
	confirmTarget string

	status    string
	statusErr bool

	sched *schedule.Scheduler

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	shellCh     <-chan shell.Signal
	shellCancel context.CancelFunc
	update      shell.Status
}

// New builds the root model. host may be nil when no desktop shell is
// attached.
func New(svc *app.Service, host shell.Host, log *slog.Logger) *Model {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 512

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Placeholder = "Write something…"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		svc:     svc,
		host:    host,
		log:     log.With("component", "tui"),
		ctx:     ctx,
		cancel:  cancel,
		keys:    defaultKeys(),
		help:    help.New(),
		input:   ti,
		note:    ta,
		spinner: sp,
		cursors: make(map[string]int),
		sched:   schedule.New(),
	}
	m.ensureFocus()
	return m
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, svc *app.Service, host shell.Host, log *slog.Logger) error {
	m := New(svc, host, log)
	defer m.shutdown()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{startWatchCmd(m.ctx, m.svc), m.syncTicks()}
	if m.host != nil {
		cmds = append(cmds, startShellCmd(m.ctx, m.host))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.note.SetWidth(min(max(msg.Width-12, 20), 80))
		m.note.SetHeight(min(max(msg.Height-14, 3), 12))
	case schedule.TickMsg:
		next, ok := m.sched.Accept(msg)
		if !ok {
			break
		}
		cmds = append(cmds, next)
		m.handleTick(msg.Key)
	case watchStartedMsg:
		if msg.err != nil {
			m.setError("watch: " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
		}
	case shellStartedMsg:
		if msg.err != nil {
			m.log.Warn("shell signals unavailable", "err", msg.err)
			break
		}
		m.stopShell()
		m.shellCh = msg.ch
		m.shellCancel = msg.cancel
		if cmd := m.waitForShell(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case shellSignalMsg:
		wasSpinning := m.update.UpdateAvailable
		m.update = m.update.Apply(msg.signal)
		if m.update.UpdateAvailable && !wasSpinning {
			cmds = append(cmds, m.spinner.Tick)
		}
		if cmd := m.waitForShell(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case shellStoppedMsg:
		m.stopShell()
	case spinner.TickMsg:
		if m.update.UpdateAvailable {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if quit := m.handleKeyPress(msg, &cmds); quit {
			return m, m.quit()
		}
	default:
		if m.mode == modeInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		} else if m.mode == modeNote {
			var cmd tea.Cmd
			m.note, cmd = m.note.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.ensureFocus()
	cmds = append(cmds, m.syncTicks())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch m.mode {
	case modeHelp:
		return m.handleHelpKey(msg)
	case modeInput:
		return m.handleInputKey(msg, cmds)
	case modeNote:
		return m.handleNoteKey(msg, cmds)
	case modeConfirm:
		return m.handleConfirmKey(msg, cmds)
	case modeAddTile:
		return m.handleAddTileKey(msg)
	case modeSpace:
		return m.handleSpaceKey(msg, cmds)
	case modeSettings:
		return m.handleSettingsKey(msg, cmds)
	default:
		return m.handleNormalKey(msg, cmds)
	}
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "?", "enter":
		m.mode = modeNormal
	}
	return false
}

func (m *Model) handleNormalKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.NextSpace):
		m.switchSpace(1)
	case key.Matches(msg, m.keys.PrevSpace):
		m.switchSpace(-1)
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Up):
		m.moveFocusVertical(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocusVertical(1)
	case key.Matches(msg, m.keys.AddTile):
		m.menu = 0
		m.mode = modeAddTile
	case key.Matches(msg, m.keys.RemoveTile):
		m.removeFocusedTile()
	case key.Matches(msg, m.keys.Resize):
		m.resizeFocusedTile()
	case key.Matches(msg, m.keys.Title):
		if t, ok := m.focusedTile(); ok {
			m.openPrompt(promptSpec{kind: promptTileTitle, tileID: t.ID, label: "Tile title"}, t.Title, cmds)
		}
	case key.Matches(msg, m.keys.NewSpace):
		m.openPrompt(promptSpec{kind: promptNewSpace, label: "New space name"}, "", cmds)
	case key.Matches(msg, m.keys.EditSpace):
		m.menu = 0
		m.mode = modeSpace
	case key.Matches(msg, m.keys.Dark):
		if m.svc.ToggleDarkMode() {
			m.setStatus("Dark mode on")
		} else {
			m.setStatus("Dark mode off")
		}
	case key.Matches(msg, m.keys.Settings):
		m.menu = 0
		m.mode = modeSettings
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	case key.Matches(msg, m.keys.Command):
		m.openPrompt(promptSpec{kind: promptCommand, label: "Command"}, "", cmds)
	case key.Matches(msg, m.keys.Restart):
		return m.restartForUpdate()
	case msg.String() == "esc":
		m.clearStatus()
	default:
		m.handleWidgetKey(msg, cmds)
	}
	return false
}

func (m *Model) restartForUpdate() bool {
	if !m.update.ReadyToInstall || m.host == nil {
		m.setStatus("No update waiting")
		return false
	}
	if err := m.host.Restart(); err != nil {
		m.setError("restart: " + err.Error())
		return false
	}
	return true
}

func (m *Model) quit() tea.Cmd {
	m.shutdown()
	return tea.Quit
}

// shutdown cancels every periodic task and subscription.
func (m *Model) shutdown() {
	m.sched.CancelAll()
	m.stopWatch()
	m.stopShell()
	m.cancel()
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
	m.log.Warn("ui error", "msg", msg)
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// Focus and selection.

func (m *Model) activeSpace() dashboard.Space {
	return m.svc.Active()
}

func (m *Model) focusedTile() (dashboard.Tile, bool) {
	return m.activeSpace().Tile(m.focusID)
}

// ensureFocus keeps focus on a tile of the active space, falling back to
// the first one.
func (m *Model) ensureFocus() {
	sp := m.activeSpace()
	if _, ok := sp.Tile(m.focusID); ok {
		return
	}
	m.focusID = ""
	if len(sp.Tiles) > 0 {
		m.focusID = sp.Tiles[0].ID
	}
}

func (m *Model) switchSpace(delta int) {
	sp := m.svc.SelectOffset(delta)
	m.focusID = ""
	m.ensureFocus()
	m.setStatus(sp.Label)
}

func (m *Model) moveFocus(delta int) {
	tiles := m.activeSpace().Tiles
	if len(tiles) == 0 {
		return
	}
	idx := 0
	for i, t := range tiles {
		if t.ID == m.focusID {
			idx = i
			break
		}
	}
	idx = min(max(idx+delta, 0), len(tiles)-1)
	m.focusID = tiles[idx].ID
}

// moveFocusVertical moves to the tile above or below on the current grid,
// preferring the one under the same column.
func (m *Model) moveFocusVertical(dir int) {
	placements := dashboard.Layout(m.activeSpace().Tiles, m.columns())
	var cur *dashboard.Placement
	for i := range placements {
		if placements[i].Tile.ID == m.focusID {
			cur = &placements[i]
			break
		}
	}
	if cur == nil {
		return
	}
	row := cur.Row - 1
	if dir > 0 {
		row = cur.Row + cur.Rows
	}
	best, bestDist := "", -1
	for _, p := range placements {
		if row < p.Row || row >= p.Row+p.Rows {
			continue
		}
		dist := 0
		if cur.Col < p.Col {
			dist = p.Col - cur.Col
		} else if cur.Col >= p.Col+p.Cols {
			dist = cur.Col - (p.Col + p.Cols - 1)
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = p.Tile.ID, dist
		}
	}
	if best != "" {
		m.focusID = best
	}
}

func (m *Model) columns() int {
	return dashboard.Columns(m.width)
}

func (m *Model) removeFocusedTile() {
	t, ok := m.focusedTile()
	if !ok {
		return
	}
	sp := m.activeSpace()
	m.moveFocus(1)
	if m.focusID == t.ID {
		m.moveFocus(-1)
	}
	if err := m.svc.RemoveTile(sp.ID, t.ID); err != nil {
		m.setError("remove tile: " + err.Error())
		return
	}
	m.sched.CancelTile(t.ID)
	delete(m.cursors, t.ID)
	m.setStatus("Removed " + t.Title)
}

func (m *Model) resizeFocusedTile() {
	t, ok := m.focusedTile()
	if !ok {
		return
	}
	size, err := m.svc.ResizeTile(m.activeSpace().ID, t.ID)
	if err != nil {
		m.setError("resize: " + err.Error())
		return
	}
	m.setStatus(t.Title + " is now " + string(size))
}

// act runs a widget action on a tile of the active space.
func (m *Model) act(tileID string, a widget.Action) (dashboard.Tile, bool) {
	t, err := m.svc.Act(m.activeSpace().ID, tileID, a)
	if err != nil {
		m.setError(err.Error())
		return t, false
	}
	return t, true
}

// Periodic tasks.

// syncTicks runs a task for every tile of the active space that needs one
// and cancels the rest, including tiles of spaces no longer shown.
func (m *Model) syncTicks() tea.Cmd {
	want := make(map[schedule.Key]time.Duration)
	for _, t := range m.activeSpace().Tiles {
		if d := widget.TickInterval(t.Content); d > 0 {
			want[schedule.Key{Tile: t.ID, Purpose: tickPurpose}] = d
		}
	}
	return m.sched.Sync(want)
}

func (m *Model) handleTick(k schedule.Key) {
	t, ok := m.activeSpace().Tile(k.Tile)
	if !ok {
		m.sched.CancelTile(k.Tile)
		return
	}
	if t.Kind != widget.KindTimer {
		// Clocks, stopwatches and countdowns only need a redraw.
		return
	}
	next, ok := m.act(t.ID, widget.NewAction("tick"))
	if !ok {
		return
	}
	if timer, isTimer := next.Content.(widget.Timer); isTimer && !timer.IsRunning && timer.TimeLeft == 0 {
		m.setStatus(t.Title + " finished")
	}
}

// Store watch.

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) handleWatchEvent(ev store.Event) {
	if err := m.svc.Reload(m.ctx, ev); err != nil {
		m.setError("reload: " + err.Error())
		return
	}
	m.log.Debug("reloaded after external change", "type", ev.Type, "document", ev.Document)
}

// Desktop shell.

type shellStartedMsg struct {
	ch     <-chan shell.Signal
	cancel context.CancelFunc
	err    error
}

type shellSignalMsg struct {
	signal shell.Signal
}

type shellStoppedMsg struct{}

func startShellCmd(parent context.Context, host shell.Host) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := host.Signals(ctx)
		if err != nil {
			cancel()
			return shellStartedMsg{err: err}
		}
		return shellStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForShell() tea.Cmd {
	if m.shellCh == nil {
		return nil
	}
	ch := m.shellCh
	return func() tea.Msg {
		if sig, ok := <-ch; ok {
			return shellSignalMsg{signal: sig}
		}
		return shellStoppedMsg{}
	}
}

func (m *Model) stopShell() {
	if m.shellCancel != nil {
		m.shellCancel()
		m.shellCancel = nil
	}
	m.shellCh = nil
}
