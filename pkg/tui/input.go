package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/settings"
	"tableflip.dev/tiles/pkg/widget"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptNewSpace
	promptRenameSpace
	promptTileTitle
	promptWidget
	promptCommand
	promptUserName
)

// promptSpec says what the single-line input is collecting.
type promptSpec struct {
	kind   promptKind
	label  string
	tileID string
	// action is the widget action the value is fed to.
	action string
	// args splits the value into action arguments; nil passes it whole.
	args func(string) []string
}

// linkArgs reads "label words url": the last field is the URL.
func linkArgs(v string) []string {
	f := strings.Fields(v)
	if len(f) < 2 {
		return f
	}
	return []string{strings.Join(f[:len(f)-1], " "), f[len(f)-1]}
}

func (m *Model) openPrompt(ps promptSpec, value string, cmds *[]tea.Cmd) {
	m.prompt = ps
	m.input.Placeholder = ps.label
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.mode = modeInput
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

func (m *Model) cancelInput() {
	m.prompt = promptSpec{}
	m.input.Reset()
	m.input.Blur()
	m.mode = modeNormal
}

func (m *Model) handleInputKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "esc":
		m.cancelInput()
		return false
	case "enter":
		return m.submitInput(cmds)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	*cmds = append(*cmds, cmd)
	return false
}

func (m *Model) submitInput(cmds *[]tea.Cmd) bool {
	value := strings.TrimSpace(m.input.Value())
	ps := m.prompt
	m.cancelInput()

	sp := m.activeSpace()
	switch ps.kind {
	case promptNewSpace:
		if value == "" {
			return false
		}
		created, err := m.svc.AddSpace(value, "", "")
		if err != nil {
			m.setError(err.Error())
			return false
		}
		m.focusID = ""
		m.setStatus("Created space " + created.Label)
	case promptRenameSpace:
		if _, err := m.svc.UpdateSpace(sp.ID, value, "", ""); err != nil {
			m.setError(err.Error())
		}
	case promptTileTitle:
		if err := m.svc.RenameTile(sp.ID, ps.tileID, value); err != nil {
			m.setError(err.Error())
		}
	case promptUserName:
		if _, err := m.svc.SetSetting("userName", value); err != nil {
			m.setError(err.Error())
		}
	case promptWidget:
		if value == "" && ps.action == "add" {
			return false
		}
		args := []string{value}
		if ps.args != nil {
			args = ps.args(value)
		}
		m.act(ps.tileID, widget.NewAction(ps.action, args...))
	case promptCommand:
		return m.runCommand(value, cmds)
	}
	return false
}

// Note editing uses a multi-line area; ctrl+s saves.

func (m *Model) openNote(t dashboard.Tile, cmds *[]tea.Cmd) {
	text := ""
	if n, ok := t.Content.(widget.Note); ok {
		text = n.Text
	}
	m.prompt = promptSpec{kind: promptWidget, tileID: t.ID, action: "set"}
	m.note.SetValue(text)
	m.mode = modeNote
	if cmd := m.note.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) handleNoteKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "esc":
		m.closeNote()
		return false
	case "ctrl+s":
		tileID := m.prompt.tileID
		text := m.note.Value()
		m.closeNote()
		m.act(tileID, widget.NewAction("set", text))
		return false
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	*cmds = append(*cmds, cmd)
	return false
}

func (m *Model) closeNote() {
	m.prompt = promptSpec{}
	m.note.Reset()
	m.note.Blur()
	m.mode = modeNormal
}

// Confirmation asks the user to type "yes".

func (m *Model) startConfirm(action confirmAction, target, question string, cmds *[]tea.Cmd) {
	m.confirmAction = action
	m.confirmTarget = target
	m.input.Placeholder = "type yes to confirm"
	m.input.SetValue("")
	m.mode = modeConfirm
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
	m.setStatus(question)
}

func (m *Model) cancelConfirm() {
	m.confirmAction = confirmNone
	m.confirmTarget = ""
	m.input.Reset()
	m.input.Blur()
	m.mode = modeNormal
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "esc":
		m.cancelConfirm()
		m.setStatus("Cancelled")
		return false
	case "enter":
		ok := strings.EqualFold(strings.TrimSpace(m.input.Value()), "yes")
		action, target := m.confirmAction, m.confirmTarget
		m.cancelConfirm()
		if !ok {
			m.setStatus("Cancelled")
			return false
		}
		m.applyConfirm(action, target)
		return false
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	*cmds = append(*cmds, cmd)
	return false
}

func (m *Model) applyConfirm(action confirmAction, target string) {
	switch action {
	case confirmRemoveSpace:
		sp, _ := m.svc.Space(target)
		if err := m.svc.RemoveSpace(target); err != nil {
			if errors.Is(err, dashboard.ErrLastSpace) {
				m.setError("The last space cannot be deleted")
				return
			}
			m.setError(err.Error())
			return
		}
		m.focusID = ""
		m.setStatus("Deleted " + sp.Label)
	case confirmReset:
		if err := m.svc.Reset(m.ctx); err != nil {
			m.setError("reset: " + err.Error())
			return
		}
		m.sched.CancelAll()
		m.cursors = make(map[string]int)
		m.focusID = ""
		m.setStatus("All data reset")
	}
}

// Add-tile menu.

func (m *Model) handleAddTileKey(msg tea.KeyMsg) bool {
	kinds := widget.AllKinds()
	switch msg.String() {
	case "esc", "a", "q":
		m.mode = modeNormal
	case "up", "k":
		m.menu = max(m.menu-1, 0)
	case "down", "j":
		m.menu = min(m.menu+1, len(kinds)-1)
	case "enter", " ":
		k := kinds[m.menu]
		m.mode = modeNormal
		t, err := m.svc.AddTile(m.activeSpace().ID, k, "")
		if err != nil {
			m.setError(err.Error())
			return false
		}
		m.focusID = t.ID
		m.setStatus("Added " + t.Title)
	}
	return false
}

// Space panel.

const (
	spaceRowLabel = iota
	spaceRowTheme
	spaceRowIcon
	spaceRowDelete
	spaceRows
)

func (m *Model) handleSpaceKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	sp := m.activeSpace()
	switch msg.String() {
	case "esc", "p", "q":
		m.mode = modeNormal
	case "up", "k":
		m.menu = max(m.menu-1, 0)
	case "down", "j":
		m.menu = min(m.menu+1, spaceRows-1)
	case "left", "right", "h", "l":
		delta := 1
		if s := msg.String(); s == "left" || s == "h" {
			delta = -1
		}
		var err error
		switch m.menu {
		case spaceRowTheme:
			_, err = m.svc.UpdateSpace(sp.ID, "", cycle(dashboard.Themes, sp.Theme, delta), "")
		case spaceRowIcon:
			_, err = m.svc.UpdateSpace(sp.ID, "", "", cycle(dashboard.Icons, sp.IconOrDefault(), delta))
		}
		if err != nil {
			m.setError(err.Error())
		}
	case "enter":
		switch m.menu {
		case spaceRowLabel:
			m.openPrompt(promptSpec{kind: promptRenameSpace, label: "Space name"}, sp.Label, cmds)
		case spaceRowDelete:
			m.startConfirm(confirmRemoveSpace, sp.ID, fmt.Sprintf("Delete space %s and all its tiles?", sp.Label), cmds)
		}
	}
	return false
}

// Settings panel.

// settingsRows are the settings keys plus two extra rows.
func settingsRows() []string {
	rows := make([]string, 0, 10)
	for _, f := range settings.Defaults().Fields() {
		rows = append(rows, f[0])
	}
	return append(rows, "darkMode", "reset")
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	rows := settingsRows()
	row := rows[min(m.menu, len(rows)-1)]
	switch msg.String() {
	case "esc", ",", "q":
		m.mode = modeNormal
	case "up", "k":
		m.menu = max(m.menu-1, 0)
	case "down", "j":
		m.menu = min(m.menu+1, len(rows)-1)
	case "left", "h":
		m.adjustSetting(row, -1)
	case "right", "l", " ":
		m.adjustSetting(row, 1)
	case "enter":
		switch row {
		case "userName":
			m.openPrompt(promptSpec{kind: promptUserName, label: "Your name"}, m.svc.Settings().UserName, cmds)
		case "reset":
			m.startConfirm(confirmReset, "", "Erase every space, tile and setting?", cmds)
		default:
			m.adjustSetting(row, 1)
		}
	}
	return false
}

func (m *Model) adjustSetting(row string, delta int) {
	s := m.svc.Settings()
	var value string
	switch row {
	case "background":
		value = string(cycle(settings.Backgrounds, s.Background, delta))
	case "tileRounding":
		value = strconv.Itoa(s.TileRounding + 4*delta)
	case "gridGap":
		value = strconv.Itoa(s.GridGap + 4*delta)
	case "font":
		value = string(cycle(settings.Fonts, s.Font, delta))
	case "blurStrength":
		value = string(cycle(settings.Blurs, s.BlurStrength, delta))
	case "dockSize":
		value = string(cycle(settings.DockSizes, s.DockSize, delta))
	case "showDate":
		value = strconv.FormatBool(!s.ShowDate)
	case "darkMode":
		m.svc.ToggleDarkMode()
		return
	default:
		return
	}
	if _, err := m.svc.SetSetting(row, value); err != nil {
		m.setError(err.Error())
	}
}

// cycle steps through list from cur, wrapping. An unknown cur starts at the
// first entry.
func cycle[T comparable](list []T, cur T, delta int) T {
	idx := slices.Index(list, cur)
	if idx < 0 {
		return list[0]
	}
	n := len(list)
	return list[((idx+delta)%n+n)%n]
}

// Command prompt.

var commandHelp = "Commands: quit, space <name>, rename <name>, theme <name>, icon <name>, add <kind> [title], size <size>, set <key> <value>, dark"

func (m *Model) runCommand(raw string, cmds *[]tea.Cmd) bool {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		m.setStatus(commandHelp)
		return false
	}
	name := strings.ToLower(parts[0])
	arg := strings.Join(parts[1:], " ")
	sp := m.activeSpace()
	var err error
	switch name {
	case "q", "quit", "exit":
		return true
	case "help":
		m.setStatus(commandHelp)
	case "space", "new-space":
		var created dashboard.Space
		if created, err = m.svc.AddSpace(arg, "", ""); err == nil {
			m.focusID = ""
			m.setStatus("Created space " + created.Label)
		}
	case "rename":
		_, err = m.svc.UpdateSpace(sp.ID, arg, "", "")
	case "theme":
		_, err = m.svc.UpdateSpace(sp.ID, "", strings.ToLower(arg), "")
	case "icon":
		_, err = m.svc.UpdateSpace(sp.ID, "", "", strings.ToLower(arg))
	case "add":
		if len(parts) < 2 {
			m.setStatus("add <kind> [title]")
			return false
		}
		var k widget.Kind
		if k, err = widget.ParseKind(parts[1]); err == nil {
			var t dashboard.Tile
			if t, err = m.svc.AddTile(sp.ID, k, strings.Join(parts[2:], " ")); err == nil {
				m.focusID = t.ID
				m.setStatus("Added " + t.Title)
			}
		}
	case "size":
		t, ok := m.focusedTile()
		if !ok {
			m.setStatus("No tile focused")
			return false
		}
		var size dashboard.Size
		if size, err = dashboard.ParseSize(arg); err == nil {
			err = m.svc.SetTileSize(sp.ID, t.ID, size)
		}
	case "set":
		if len(parts) < 2 {
			m.setStatus("set <key> <value>")
			return false
		}
		_, err = m.svc.SetSetting(parts[1], strings.Join(parts[2:], " "))
	case "dark":
		m.svc.ToggleDarkMode()
	case "delete-space":
		m.startConfirm(confirmRemoveSpace, sp.ID, fmt.Sprintf("Delete space %s and all its tiles?", sp.Label), cmds)
	default:
		m.setStatus("Unknown command: " + name)
	}
	if err != nil {
		m.setError(err.Error())
	}
	return false
}
