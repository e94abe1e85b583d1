package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/widget"
)

// handleWidgetKey feeds a key to the focused tile. Unknown keys are
// ignored.
func (m *Model) handleWidgetKey(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	t, ok := m.focusedTile()
	if !ok {
		return
	}
	k := msg.String()
	switch c := t.Content.(type) {
	case widget.Todo:
		m.todoKey(t, c, k, cmds)
	case widget.Note:
		switch k {
		case "e", "enter":
			m.openNote(t, cmds)
		case "f":
			m.act(t.ID, widget.NewAction("font-size"))
		case "m":
			m.act(t.ID, widget.NewAction("font-family"))
		}
	case widget.Timer:
		switch k {
		case " ", "enter":
			m.act(t.ID, widget.NewAction("toggle"))
		case "r":
			m.act(t.ID, widget.NewAction("reset"))
		case "u":
			m.act(t.ID, widget.NewAction("unit"))
		case "1", "5":
			m.act(t.ID, widget.NewAction("add", k))
		case "0":
			m.act(t.ID, widget.NewAction("add", "10"))
		case "e":
			if c.IsRunning {
				m.setStatus("Pause the timer to change its duration")
				return
			}
			m.openPrompt(promptSpec{
				kind:   promptWidget,
				tileID: t.ID,
				action: "duration",
				label:  "Duration in " + unitName(c.Unit),
			}, strconv.Itoa(c.Duration), cmds)
		}
	case widget.Counter:
		switch k {
		case "+", "=", " ":
			m.act(t.ID, widget.NewAction("inc"))
		case "-", "_":
			m.act(t.ID, widget.NewAction("dec"))
		case "r":
			m.act(t.ID, widget.NewAction("reset"))
		}
	case widget.Image:
		if k == "e" || k == "enter" {
			m.openPrompt(promptSpec{kind: promptWidget, tileID: t.ID, action: "set", label: "Image URL"}, c.URL, cmds)
		}
	case widget.Links:
		m.linksKey(t, c, k, cmds)
	case widget.Habit:
		m.habitKey(t, c, k, cmds)
	case widget.Clock:
		switch k {
		case "z":
			m.act(t.ID, widget.NewAction("zone"))
		case "c":
			m.act(t.ID, widget.NewAction("seconds"))
		case "d":
			m.act(t.ID, widget.NewAction("date"))
		case "f":
			m.act(t.ID, widget.NewAction("24h"))
		}
	case widget.Stopwatch:
		switch k {
		case " ", "enter":
			m.act(t.ID, widget.NewAction("toggle"))
		case "l":
			m.act(t.ID, widget.NewAction("lap"))
		case "r":
			m.act(t.ID, widget.NewAction("reset"))
		}
	case widget.Quote:
		switch k {
		case "e", "enter":
			m.openPrompt(promptSpec{kind: promptWidget, tileID: t.ID, action: "text", label: "Quote"}, c.Text, cmds)
		case "w":
			m.openPrompt(promptSpec{kind: promptWidget, tileID: t.ID, action: "author", label: "Author"}, c.Author, cmds)
		}
	case widget.Calculator:
		m.calculatorKey(t, k)
	case widget.Countdown:
		switch k {
		case "e", "enter":
			m.openPrompt(promptSpec{
				kind:   promptWidget,
				tileID: t.ID,
				action: "set",
				label:  "YYYY-MM-DD [event name]",
				args:   strings.Fields,
			}, strings.TrimSpace(c.TargetDate+" "+c.EventName), cmds)
		case "w":
			m.openPrompt(promptSpec{kind: promptWidget, tileID: t.ID, action: "name", label: "Event name"}, c.EventName, cmds)
		}
	}
}

func unitName(u widget.Unit) string {
	if u == widget.UnitHours {
		return "hours"
	}
	return "minutes"
}

// cursor returns the item cursor of a list tile clamped to n items.
func (m *Model) cursor(tileID string, n int) int {
	c := m.cursors[tileID]
	if c >= n {
		c = n - 1
	}
	return max(c, 0)
}

func (m *Model) moveCursor(tileID string, n, delta int) {
	m.cursors[tileID] = min(max(m.cursor(tileID, n)+delta, 0), max(n-1, 0))
}

func (m *Model) todoKey(t dashboard.Tile, c widget.Todo, k string, cmds *[]tea.Cmd) {
	items := c.Visible()
	switch k {
	case "i":
		m.openPrompt(promptSpec{kind: promptWidget, tileID: t.ID, action: "add", label: "New task"}, "", cmds)
	case "[":
		m.moveCursor(t.ID, len(items), -1)
	case "]":
		m.moveCursor(t.ID, len(items), 1)
	case " ", "enter":
		if len(items) > 0 {
			m.act(t.ID, widget.NewAction("toggle", items[m.cursor(t.ID, len(items))].ID))
		}
	case "d":
		if len(items) > 0 {
			m.act(t.ID, widget.NewAction("remove", items[m.cursor(t.ID, len(items))].ID))
		}
	case "h":
		m.act(t.ID, widget.NewAction("hide-completed"))
	}
}

func (m *Model) linksKey(t dashboard.Tile, c widget.Links, k string, cmds *[]tea.Cmd) {
	switch k {
	case "i":
		m.openPrompt(promptSpec{kind: promptWidget, tileID: t.ID, action: "add", label: "Label URL", args: linkArgs}, "", cmds)
	case "[":
		m.moveCursor(t.ID, len(c.Items), -1)
	case "]":
		m.moveCursor(t.ID, len(c.Items), 1)
	case "d":
		if len(c.Items) > 0 {
			m.act(t.ID, widget.NewAction("remove", c.Items[m.cursor(t.ID, len(c.Items))].ID))
		}
	case "enter":
		if len(c.Items) > 0 {
			item := c.Items[m.cursor(t.ID, len(c.Items))]
			m.setStatus(item.Label + ": " + item.URL)
		}
	}
}

func (m *Model) habitKey(t dashboard.Tile, c widget.Habit, k string, cmds *[]tea.Cmd) {
	switch k {
	case "i":
		m.openPrompt(promptSpec{kind: promptWidget, tileID: t.ID, action: "add", label: "New habit"}, "", cmds)
	case "[":
		m.moveCursor(t.ID, len(c.Habits), -1)
	case "]":
		m.moveCursor(t.ID, len(c.Habits), 1)
	case "d":
		if len(c.Habits) > 0 {
			m.act(t.ID, widget.NewAction("remove", c.Habits[m.cursor(t.ID, len(c.Habits))].ID))
		}
	case "1", "2", "3", "4", "5", "6", "7":
		if len(c.Habits) > 0 {
			day := int(k[0] - '1')
			id := c.Habits[m.cursor(t.ID, len(c.Habits))].ID
			m.act(t.ID, widget.NewAction("toggle", id, strconv.Itoa(day)))
		}
	}
}

// calculatorKeys maps terminal keys onto calculator key presses.
var calculatorKeys = map[string]string{
	"enter": "=",
	"~":     "n",
}

func (m *Model) calculatorKey(t dashboard.Tile, k string) {
	if mapped, ok := calculatorKeys[k]; ok {
		k = mapped
	}
	if len(k) != 1 || !strings.Contains("0123456789.+-*/=cn", k) {
		return
	}
	m.act(t.ID, widget.NewAction("press", k))
}
