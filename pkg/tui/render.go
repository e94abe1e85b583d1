package tui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/widget"
)

// tileView is what a tile renderer needs besides the tile itself.
type tileView struct {
	width   int
	height  int
	focused bool
	cursor  int
	now     time.Time
	pal     Palette
}

func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// wrap word-wraps text to width and returns at most height lines.
func wrap(text string, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	lines := strings.Split(wordwrap.String(text, width), "\n")
	if len(lines) > height {
		lines = lines[:height]
		lines[height-1] = clip(lines[height-1]+"…", width)
	}
	return lines
}

// window returns the slice bounds that keep cursor visible in height rows.
func window(n, cursor, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := min(max(cursor-height/2, 0), n-height)
	return start, start + height
}

// renderTile draws one tile at its outer size.
func renderTile(t dashboard.Tile, v tileView) string {
	ghost := t.Kind == widget.KindSpacer
	innerW := max(v.width-4, 1)
	innerH := max(v.height-2, 1)

	var lines []string
	if !ghost {
		title := v.pal.Title.Render(clip(t.Title, innerW))
		lines = append(lines, title)
	}
	body := renderBody(t, v, innerW, innerH-len(lines))
	lines = append(lines, body...)
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for i, line := range lines {
		lines[i] = clip(line, innerW)
	}
	return v.pal.tileFrame(v.width, v.height, v.focused, ghost).Render(strings.Join(lines, "\n"))
}

func renderBody(t dashboard.Tile, v tileView, w, h int) []string {
	if h <= 0 {
		return nil
	}
	p := v.pal
	switch c := t.Content.(type) {
	case widget.Todo:
		return renderTodo(c, v, w, h)
	case widget.Note:
		if strings.TrimSpace(c.Text) == "" {
			return []string{p.Faint.Render("Empty note. Press e to write.")}
		}
		style := p.Body
		if c.FontSize == widget.FontSizeLarge {
			style = p.Strong
		}
		if c.FontFamily == widget.FontFamilyMono {
			style = style.Italic(true)
		}
		var out []string
		for _, line := range wrap(c.Text, w, h) {
			out = append(out, style.Render(line))
		}
		return out
	case widget.Timer:
		return renderTimer(c, v, w, h)
	case widget.Counter:
		return []string{"", p.Strong.Render(fmt.Sprintf("%d", c.Count))}
	case widget.Image:
		if c.NeedsInput() {
			return []string{p.Faint.Render("No image. Press e to set a URL.")}
		}
		label := c.URL
		if u, err := url.Parse(c.URL); err == nil && u.Host != "" {
			label = u.Host + u.Path
		}
		return []string{p.Body.Render("▣ " + label)}
	case widget.Links:
		return renderLinks(c, v, w, h)
	case widget.Habit:
		return renderHabit(c, v, w, h)
	case widget.Clock:
		return renderClock(c, v)
	case widget.Stopwatch:
		return renderStopwatch(c, v, h)
	case widget.Quote:
		text := c.Text
		if strings.TrimSpace(text) == "" {
			return []string{p.Faint.Render("No quote yet. Press e to add one.")}
		}
		lines := wrap("“"+text+"”", w, max(h-1, 1))
		if c.Author != "" && len(lines) < h {
			lines = append(lines, p.Faint.Render("- "+c.Author))
		}
		return lines
	case widget.Calculator:
		return renderCalculator(c, v, w, h)
	case widget.Countdown:
		return renderCountdown(c, v, w)
	case widget.Spacer:
		if v.focused {
			return []string{p.Faint.Render("spacer")}
		}
		return nil
	}
	return []string{p.Error.Render("unsupported widget")}
}

func renderTodo(c widget.Todo, v tileView, w, h int) []string {
	p := v.pal
	items := c.Visible()
	if len(items) == 0 {
		if len(c.Items) > 0 {
			return []string{p.Faint.Render("All done. Press h to show completed.")}
		}
		return []string{p.Faint.Render("No tasks. Press i to add one.")}
	}
	start, end := window(len(items), v.cursor, h)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := items[i]
		box, style := "○ ", p.Body
		if item.Completed {
			box, style = "● ", p.Faint.Strikethrough(true)
		}
		marker := "  "
		if v.focused && i == v.cursor {
			marker = p.Title.Render("› ")
		}
		out = append(out, marker+box+style.Render(clip(item.Text, w-4)))
	}
	return out
}

func renderTimer(c widget.Timer, v tileView, w, h int) []string {
	p := v.pal
	state := "paused"
	if c.IsRunning {
		state = "running"
	} else if c.TimeLeft == 0 {
		state = "done"
	}
	out := []string{
		p.Strong.Render(c.Format()) + "  " + p.Faint.Render(state),
	}
	if h > 2 {
		bar := progress.New(
			progress.WithSolidFill(string(p.Accent)),
			progress.WithoutPercentage(),
			progress.WithWidth(w),
		)
		out = append(out, bar.ViewAs(c.Progress()))
	}
	out = append(out, p.Faint.Render(fmt.Sprintf("%d %s", c.Duration, unitName(c.Unit))))
	return out
}

func renderLinks(c widget.Links, v tileView, w, h int) []string {
	p := v.pal
	if len(c.Items) == 0 {
		return []string{p.Faint.Render("No links. Press i to add one.")}
	}
	start, end := window(len(c.Items), v.cursor, h)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := c.Items[i]
		host := item.URL
		if u, err := url.Parse(item.URL); err == nil && u.Host != "" {
			host = u.Host
		}
		marker := "  "
		if v.focused && i == v.cursor {
			marker = p.Title.Render("› ")
		}
		out = append(out, marker+p.Body.Render(item.Label)+" "+p.Faint.Render(clip(host, w-4-len(item.Label))))
	}
	return out
}

func renderHabit(c widget.Habit, v tileView, w, h int) []string {
	p := v.pal
	if len(c.Habits) == 0 {
		return []string{p.Faint.Render("No habits. Press i to add one.")}
	}
	// Day columns take two cells each.
	nameW := max(w-2-2*widget.DaysPerWeek, 4)
	header := strings.Repeat(" ", nameW+2) + p.Faint.Render(strings.Join(widget.Weekdays[:], " "))
	out := []string{header}
	start, end := window(len(c.Habits), v.cursor, max(h-1, 1))
	for i := start; i < end; i++ {
		item := c.Habits[i]
		marker := "  "
		if v.focused && i == v.cursor {
			marker = p.Title.Render("› ")
		}
		name := clip(item.Text, nameW)
		name += strings.Repeat(" ", max(nameW-len([]rune(name)), 0))
		days := make([]string, len(item.History))
		for d, done := range item.History {
			if done {
				days[d] = p.Title.Render("●")
			} else {
				days[d] = p.Faint.Render("○")
			}
		}
		out = append(out, marker+p.Body.Render(name)+strings.Join(days, " "))
	}
	return out
}

func renderClock(c widget.Clock, v tileView) []string {
	p := v.pal
	face := c.Face(v.now)
	line := p.Strong.Render(face.Time)
	if c.ShowSeconds {
		line += p.Faint.Render(":" + face.Seconds)
	}
	out := []string{"", line}
	var meta []string
	if face.Date != "" {
		meta = append(meta, face.Date)
	}
	if face.Zone != "" {
		meta = append(meta, face.Zone)
	}
	if len(meta) > 0 {
		out = append(out, p.Faint.Render(strings.Join(meta, " · ")))
	}
	return out
}

func renderStopwatch(c widget.Stopwatch, v tileView, h int) []string {
	p := v.pal
	out := []string{p.Strong.Render(widget.FormatMillis(c.Current(v.now)))}
	// Laps are stored newest first.
	for i := 0; i < len(c.Laps) && len(out) < h; i++ {
		out = append(out, p.Faint.Render(fmt.Sprintf("Lap %d  %s", len(c.Laps)-i, widget.FormatMillis(c.Laps[i]))))
	}
	return out
}

var calculatorPad = []string{
	"7 8 9 /",
	"4 5 6 *",
	"1 2 3 -",
	"0 . = +",
}

func renderCalculator(c widget.Calculator, v tileView, w, h int) []string {
	p := v.pal
	display := c.Shown()
	op := string(c.PendingOp)
	pad := max(w-len(display)-2, 0)
	out := []string{
		p.Faint.Render(fmt.Sprintf("%-2s", op)) + strings.Repeat(" ", pad) + p.Strong.Render(display),
	}
	for _, row := range calculatorPad {
		if len(out) >= h {
			break
		}
		out = append(out, p.Faint.Render(row))
	}
	return out
}

func renderCountdown(c widget.Countdown, v tileView, w int) []string {
	p := v.pal
	if !c.Configured() {
		return []string{p.Faint.Render("No date set. Press e to pick one.")}
	}
	rem, err := c.Remaining(v.now)
	if err != nil {
		return []string{p.Error.Render(clip(err.Error(), w))}
	}
	name := c.EventName
	if name == "" {
		name = "Event"
	}
	out := []string{p.Faint.Render(strings.ToUpper(name)), ""}
	if rem.Done {
		return append(out, p.Title.Render("Completed!"))
	}
	return append(out,
		p.Strong.Render(fmt.Sprintf("%d", rem.Days))+p.Faint.Render(" days : ")+
			p.Strong.Render(fmt.Sprintf("%d", rem.Hours))+p.Faint.Render(" hours"),
	)
}
