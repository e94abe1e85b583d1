package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"tableflip.dev/tiles/pkg/widget"
)

// keyMap holds the bindings that work everywhere in normal mode. They are
// checked before the focused widget sees a key.
type keyMap struct {
	Quit       key.Binding
	NextSpace  key.Binding
	PrevSpace  key.Binding
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	AddTile    key.Binding
	RemoveTile key.Binding
	Resize     key.Binding
	Title      key.Binding
	NewSpace   key.Binding
	EditSpace  key.Binding
	Dark       key.Binding
	Settings   key.Binding
	Help       key.Binding
	Command    key.Binding
	Restart    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextSpace:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next space")),
		PrevSpace:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous space")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous tile")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next tile")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "tile above")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "tile below")),
		AddTile:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add tile")),
		RemoveTile: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove tile")),
		Resize:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "resize tile")),
		Title:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "rename tile")),
		NewSpace:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new space")),
		EditSpace:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "edit space")),
		Dark:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "dark mode")),
		Settings:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Command:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Restart:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "restart to update")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.AddTile, k.NextSpace, k.Settings, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSpace, k.PrevSpace, k.NewSpace, k.EditSpace},
		{k.Left, k.Right, k.Up, k.Down},
		{k.AddTile, k.RemoveTile, k.Resize, k.Title},
		{k.Dark, k.Settings, k.Command, k.Help, k.Quit},
	}
}

func hint(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

// widgetHelp describes the keys a focused tile of each kind understands.
var widgetHelp = map[widget.Kind][]key.Binding{
	widget.KindTodo: {
		hint("i", "add item"), hint("space", "toggle item"), hint("d", "delete item"),
		hint("h", "hide completed"), hint("[ ]", "move cursor"),
	},
	widget.KindNote: {
		hint("e", "edit text"), hint("f", "font size"), hint("m", "font family"),
	},
	widget.KindTimer: {
		hint("space", "start/pause"), hint("r", "reset"), hint("e", "set duration"),
		hint("u", "minutes/hours"), hint("1 5 0", "add 1/5/10 min"),
	},
	widget.KindCounter: {
		hint("+", "increment"), hint("-", "decrement"), hint("r", "reset"),
	},
	widget.KindImage: {
		hint("e", "set image URL"),
	},
	widget.KindLinks: {
		hint("i", "add link"), hint("d", "delete link"), hint("enter", "show URL"), hint("[ ]", "move cursor"),
	},
	widget.KindHabit: {
		hint("i", "add habit"), hint("d", "delete habit"), hint("1-7", "toggle day"), hint("[ ]", "move cursor"),
	},
	widget.KindClock: {
		hint("z", "next timezone"), hint("c", "seconds"), hint("d", "date"), hint("f", "12/24 hour"),
	},
	widget.KindStopwatch: {
		hint("space", "start/stop"), hint("l", "lap"), hint("r", "reset"),
	},
	widget.KindQuote: {
		hint("e", "edit quote"), hint("w", "edit author"),
	},
	widget.KindCalculator: {
		hint("0-9 .", "digits"), hint("+ - * /", "operators"), hint("= enter", "equals"),
		hint("c", "clear"), hint("~", "negate"),
	},
	widget.KindCountdown: {
		hint("e", "set date and name"), hint("w", "rename event"),
	},
}
