package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/widget"
)

// rowHeight is the height of one grid row in lines, borders included.
const rowHeight = 7

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading…"
	}
	sp := m.activeSpace()
	pal := NewPalette(sp.Theme, m.svc.Settings(), m.svc.DarkMode())

	switch m.mode {
	case modeHelp:
		return m.place(pal, m.renderHelp(pal))
	case modeAddTile:
		return m.place(pal, m.renderAddTile(pal))
	case modeSpace:
		return m.place(pal, m.renderSpacePanel(sp, pal))
	case modeSettings:
		return m.place(pal, m.renderSettings(pal))
	case modeNote:
		return m.place(pal, m.renderNoteEditor(pal))
	}

	top := []string{m.renderHeader(sp, pal)}
	if banner := m.renderBanner(pal); banner != "" {
		top = append(top, banner)
	}
	bottom := []string{m.renderDock(pal), m.renderFooter(pal)}
	header := strings.Join(top, "\n")
	footer := strings.Join(bottom, "\n")

	gridHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-2, 1)
	grid := lipgloss.NewStyle().Height(gridHeight).MaxHeight(gridHeight).Render(m.renderGrid(sp, pal, gridHeight))
	return header + "\n\n" + grid + "\n\n" + footer
}

func (m *Model) place(pal Palette, body string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, pal.Overlay.Render(body))
}

func (m *Model) renderHeader(sp dashboard.Space, pal Palette) string {
	s := m.svc.Settings()
	left := pal.Title.Render(iconGlyph(sp.IconOrDefault()) + " " + sp.Label)
	if g := s.Greeting(); g != "" {
		left = pal.Strong.Render(g) + pal.Faint.Render("  ·  ") + left
	}
	if !s.ShowDate {
		return left
	}
	right := pal.Faint.Render(m.svc.Now().Format("Monday, January 2"))
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderBanner(pal Palette) string {
	switch {
	case m.update.ReadyToInstall:
		return pal.Title.Render("Update ready.") + pal.Faint.Render(" Press R to restart and install.")
	case m.update.UpdateAvailable:
		return m.spinner.View() + pal.Faint.Render(" Downloading update…")
	}
	return ""
}

func (m *Model) renderDock(pal Palette) string {
	spaces := m.svc.Spaces()
	active := m.svc.ActiveIndex()
	items := make([]string, 0, len(spaces))
	for i, sp := range spaces {
		label := iconGlyph(sp.IconOrDefault()) + " " + sp.Label
		style := lipgloss.NewStyle().Padding(0, pal.DockPad).Foreground(pal.Text).Background(pal.Surface)
		if i == active {
			itemPal := NewPalette(sp.Theme, m.svc.Settings(), m.svc.DarkMode())
			style = style.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(itemPal.Accent)
		}
		items = append(items, style.Render(label))
	}
	dock := strings.Join(items, " ")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dock)
}

func (m *Model) renderFooter(pal Palette) string {
	switch m.mode {
	case modeInput:
		return pal.Title.Render(m.prompt.label+": ") + m.input.View()
	case modeConfirm:
		return pal.Error.Render(m.status+" ") + m.input.View()
	}
	if m.status != "" {
		if m.statusErr {
			return pal.Error.Render(clip(m.status, m.width))
		}
		return pal.Status.Render(clip(m.status, m.width))
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// segment is a rendered tile line placed at column x.
type segment struct {
	x    int
	text string
}

// renderGrid lays the active space out on the column grid and returns the
// window of lines that keeps the focused tile visible.
func (m *Model) renderGrid(sp dashboard.Space, pal Palette, height int) string {
	if len(sp.Tiles) == 0 {
		msg := pal.Faint.Render("This space is empty. Press a to add a tile.")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}
	cols := m.columns()
	gapX, gapY := pal.GapX, pal.GapY
	cellW := max((m.width-gapX*(cols-1))/cols, 8)
	placements := dashboard.Layout(sp.Tiles, cols)
	total := dashboard.Rows(placements)*(rowHeight+gapY) - gapY

	lines := make([][]segment, total)
	focusTop, focusBottom := 0, 0
	now := m.svc.Now()
	for _, p := range placements {
		w := p.Cols*cellW + (p.Cols-1)*gapX
		h := p.Rows*rowHeight + (p.Rows-1)*gapY
		x := p.Col * (cellW + gapX)
		y := p.Row * (rowHeight + gapY)
		focused := p.Tile.ID == m.focusID
		if focused {
			focusTop, focusBottom = y, y+h
		}
		box := renderTile(p.Tile, tileView{
			width:   w,
			height:  h,
			focused: focused,
			cursor:  m.cursor(p.Tile.ID, listLen(p.Tile.Content)),
			now:     now,
			pal:     pal,
		})
		for i, line := range strings.Split(box, "\n") {
			if y+i < total {
				lines[y+i] = append(lines[y+i], segment{x: x, text: line})
			}
		}
	}

	out := make([]string, total)
	for i, segs := range lines {
		sort.Slice(segs, func(a, b int) bool { return segs[a].x < segs[b].x })
		var b strings.Builder
		col := 0
		for _, s := range segs {
			if s.x > col {
				b.WriteString(strings.Repeat(" ", s.x-col))
				col = s.x
			}
			b.WriteString(s.text)
			col += ansi.PrintableRuneWidth(s.text)
		}
		out[i] = b.String()
	}

	start := 0
	if focusBottom > height {
		start = focusBottom - height
	}
	if focusTop < start {
		start = focusTop
	}
	end := min(start+height, total)
	return strings.Join(out[start:end], "\n")
}

// listLen is the number of cursor positions in a list widget.
func listLen(c widget.Content) int {
	switch v := c.(type) {
	case widget.Todo:
		return len(v.Visible())
	case widget.Links:
		return len(v.Items)
	case widget.Habit:
		return len(v.Habits)
	}
	return 0
}

func (m *Model) renderHelp(pal Palette) string {
	var b strings.Builder
	b.WriteString(pal.Title.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	if t, ok := m.focusedTile(); ok {
		if bindings := widgetHelp[t.Kind]; len(bindings) > 0 {
			b.WriteString("\n\n")
			b.WriteString(pal.Title.Render(t.Kind.Label()))
			b.WriteString("\n\n")
			b.WriteString(m.help.FullHelpView([][]key.Binding{bindings}))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(pal.Faint.Render("esc to close"))
	return b.String()
}

func (m *Model) renderAddTile(pal Palette) string {
	var b strings.Builder
	b.WriteString(pal.Title.Render("Add a tile"))
	b.WriteString("\n\n")
	for i, k := range widget.AllKinds() {
		_, size := dashboard.KindDefaults(k)
		marker := "  "
		label := pal.Body.Render(fmt.Sprintf("%-12s", k.Label()))
		if i == m.menu {
			marker = pal.Title.Render("› ")
			label = pal.Strong.Render(fmt.Sprintf("%-12s", k.Label()))
		}
		b.WriteString(marker + label + pal.Faint.Render(string(size)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(pal.Faint.Render("enter add · esc cancel"))
	return b.String()
}

func (m *Model) renderSpacePanel(sp dashboard.Space, pal Palette) string {
	rows := []string{
		spaceRowLabel:  fmt.Sprintf("%-8s %s", "Name", sp.Label),
		spaceRowTheme:  fmt.Sprintf("%-8s ‹ %s ›", "Theme", sp.Theme),
		spaceRowIcon:   fmt.Sprintf("%-8s ‹ %s %s ›", "Icon", iconGlyph(sp.IconOrDefault()), sp.IconOrDefault()),
		spaceRowDelete: "Delete space",
	}
	var b strings.Builder
	b.WriteString(pal.Title.Render("Space"))
	b.WriteString("\n\n")
	for i, row := range rows {
		b.WriteString(menuRow(pal, row, i == m.menu) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(pal.Faint.Render("←/→ change · enter edit · esc close"))
	return b.String()
}

func (m *Model) renderSettings(pal Palette) string {
	values := map[string]string{}
	for _, f := range m.svc.Settings().Fields() {
		values[f[0]] = f[1]
	}
	values["darkMode"] = fmt.Sprintf("%t", m.svc.DarkMode())

	var b strings.Builder
	b.WriteString(pal.Title.Render("Settings"))
	b.WriteString("\n\n")
	for i, row := range settingsRows() {
		text := fmt.Sprintf("%-14s %s", row, values[row])
		if row == "reset" {
			text = "Reset all data"
		}
		b.WriteString(menuRow(pal, text, i == m.menu) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(pal.Faint.Render("←/→ change · enter edit · esc close"))
	return b.String()
}

func menuRow(pal Palette, text string, selected bool) string {
	if selected {
		return pal.Title.Render("› ") + pal.Strong.Render(text)
	}
	return "  " + pal.Body.Render(text)
}

func (m *Model) renderNoteEditor(pal Palette) string {
	return pal.Title.Render("Edit note") + "\n\n" + m.note.View() + "\n\n" +
		pal.Faint.Render("ctrl+s save · esc cancel")
}
