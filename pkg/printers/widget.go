package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/tiles/pkg/widget"
)

const summaryWidth = 40

// Summary is a one-line description of widget state for tables.
func Summary(c widget.Content, now time.Time) string {
	switch v := c.(type) {
	case widget.Todo:
		done := 0
		for _, item := range v.Items {
			if item.Completed {
				done++
			}
		}
		return fmt.Sprintf("%d/%d done", done, len(v.Items))
	case widget.Note:
		first, _, _ := strings.Cut(strings.TrimSpace(v.Text), "\n")
		return truncate.StringWithTail(first, summaryWidth, "…")
	case widget.Timer:
		state := "paused"
		if v.IsRunning {
			state = "running"
		}
		return v.Format() + " " + state
	case widget.Counter:
		return fmt.Sprintf("%d", v.Count)
	case widget.Image:
		if v.NeedsInput() {
			return "no image"
		}
		return truncate.StringWithTail(v.URL, summaryWidth, "…")
	case widget.Links:
		return plural(len(v.Items), "link")
	case widget.Habit:
		return plural(len(v.Habits), "habit")
	case widget.Clock:
		face := v.Face(now)
		if face.Zone != "" {
			return face.Time + " " + face.Zone
		}
		return face.Time
	case widget.Stopwatch:
		s := widget.FormatMillis(v.Current(now))
		if len(v.Laps) > 0 {
			s += ", " + plural(len(v.Laps), "lap")
		}
		return s
	case widget.Quote:
		return truncate.StringWithTail(v.Text, summaryWidth, "…")
	case widget.Calculator:
		return v.Shown()
	case widget.Countdown:
		return countdownSummary(v, now)
	}
	return ""
}

func plural(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}

func countdownSummary(c widget.Countdown, now time.Time) string {
	rem, err := c.Remaining(now)
	if err != nil {
		return "not set"
	}
	if rem.Done {
		return "Completed!"
	}
	s := fmt.Sprintf("%d days : %d hours", rem.Days, rem.Hours)
	if c.EventName != "" {
		s += " to " + c.EventName
	}
	return s
}

// Detail renders the full content of a widget, one string per line. Item
// ids are included so they can be passed to widget actions.
func (pp *PrettyPrint) Detail(c widget.Content) []string {
	f := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	now := pp.now()

	switch v := c.(type) {
	case widget.Todo:
		lines := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			mark := "○"
			text := item.Text
			if item.Completed {
				mark = "●"
				text = color.New(color.CrossedOut, color.Faint).Sprint(text)
			}
			lines = append(lines, y.Sprint(item.ID)+"  "+mark+" "+text)
		}
		if v.HideCompleted {
			lines = append(lines, f.Sprint("completed tasks are hidden in the dashboard"))
		}
		return orNone(lines)
	case widget.Note:
		if strings.TrimSpace(v.Text) == "" {
			return orNone(nil)
		}
		return strings.Split(v.Text, "\n")
	case widget.Links:
		lines := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			lines = append(lines, y.Sprint(item.ID)+"  "+item.Label+" "+f.Sprint(item.URL))
		}
		return orNone(lines)
	case widget.Habit:
		if len(v.Habits) == 0 {
			return orNone(nil)
		}
		lines := []string{f.Sprint(strings.Join(widget.Weekdays[:], " "))}
		for _, item := range v.Habits {
			days := make([]string, len(item.History))
			for d, done := range item.History {
				days[d] = "○"
				if done {
					days[d] = "●"
				}
			}
			lines = append(lines, strings.Join(days, " ")+"  "+item.Text+" "+y.Sprint(item.ID))
		}
		return lines
	case widget.Stopwatch:
		lines := []string{widget.FormatMillis(v.Current(now))}
		for i, lap := range v.Laps {
			lines = append(lines, f.Sprintf("Lap %d  %s", len(v.Laps)-i, widget.FormatMillis(lap)))
		}
		return lines
	case widget.Quote:
		if v.Author == "" {
			return []string{"“" + v.Text + "”"}
		}
		return []string{"“" + v.Text + "”", f.Sprint("- " + v.Author)}
	case widget.Timer:
		return []string{Summary(v, now), f.Sprintf("duration %d%s", v.Duration, v.Unit)}
	case widget.Calculator:
		line := v.Shown()
		if v.PendingOp != "" {
			line = f.Sprint(string(v.PendingOp)+" ") + line
		}
		return []string{line}
	}
	if s := Summary(c, now); s != "" {
		return []string{s}
	}
	return nil
}

func orNone(lines []string) []string {
	if len(lines) == 0 {
		return []string{color.New(color.Faint, color.Italic).Sprint("none")}
	}
	return lines
}
