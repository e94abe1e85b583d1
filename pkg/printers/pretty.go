package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/settings"
	"tableflip.dev/tiles/pkg/widget"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
	// Now defaults to time.Now and drives clock, stopwatch and countdown
	// summaries.
	Now func() time.Time
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = fmt.Fprintln(pp.out(), t.Sprint(title))
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if count != 1 {
		noun += "s"
	}
	_, _ = fmt.Fprintln(pp.out(), t.Sprint(title)+c.Sprintf(" - %d %s", count, noun))
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = fmt.Fprint(pp.out(), f.Sprint(" none\n\n"))
}

// Spaces prints the space list, marking the active one.
func (pp *PrettyPrint) Spaces(spaces []dashboard.Space, activeID string) {
	pp.TitleWithCount("Spaces", len(spaces), "space")
	if len(spaces) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{"", bold.Sprint("Label"), bold.Sprint("Theme"), bold.Sprint("Icon"), bold.Sprint("Tiles")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, sp := range spaces {
		marker := " "
		if sp.ID == activeID {
			marker = "*"
		}
		row := []interface{}{marker, sp.Label, themeColor(sp.Theme).Sprint(sp.Theme), sp.IconOrDefault(), len(sp.Tiles)}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(sp.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Space prints one space and a row per tile.
func (pp *PrettyPrint) Space(sp dashboard.Space) {
	pp.TitleWithCount(sp.Label, len(sp.Tiles), "tile")
	if len(sp.Tiles) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	now := pp.now()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	header := []interface{}{bold.Sprint("Type"), bold.Sprint("Size"), bold.Sprint("Title"), bold.Sprint("State")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, t := range sp.Tiles {
		row := []interface{}{t.Kind.Label(), string(t.Size), t.Title, Summary(t.Content, now)}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Tile prints a tile header followed by its full content.
func (pp *PrettyPrint) Tile(t dashboard.Tile) {
	f := color.New(color.Faint)
	pp.Title(t.Title)
	_, _ = fmt.Fprintln(pp.out(), f.Sprintf("%s · %s · %s", t.ID, t.Kind.Label(), t.Size))
	for _, line := range pp.Detail(t.Content) {
		_, _ = fmt.Fprintln(pp.out(), line)
	}
	pp.NewLine()
}

// Settings prints the appearance settings.
func (pp *PrettyPrint) Settings(s settings.Settings, dark bool) {
	pp.Title("Settings")
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, f := range s.Fields() {
		tbl.AddRow(f[0], f[1])
	}
	tbl.AddRow("darkMode", fmt.Sprintf("%t", dark))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Actions prints the action names a widget kind accepts.
func (pp *PrettyPrint) Actions(k widget.Kind) {
	f := color.New(color.Faint)
	actions := widget.Actions(k)
	if len(actions) == 0 {
		return
	}
	_, _ = fmt.Fprintln(pp.out(), f.Sprint("actions: "+strings.Join(actions, ", ")))
}

var themeColors = map[string]color.Attribute{
	"blue":    color.FgBlue,
	"orange":  color.FgYellow,
	"emerald": color.FgGreen,
	"rose":    color.FgRed,
	"violet":  color.FgMagenta,
	"amber":   color.FgHiYellow,
	"cyan":    color.FgCyan,
	"pink":    color.FgHiMagenta,
}

func themeColor(theme string) *color.Color {
	if attr, ok := themeColors[theme]; ok {
		return color.New(attr)
	}
	return color.New()
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
