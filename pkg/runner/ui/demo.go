package ui

import (
	"fmt"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/widget"
)

// StaticDemo is a space tree that shows every widget with sample content.
func StaticDemo() []dashboard.Space {
	showcase := dashboard.Space{
		ID:    "showcase",
		Label: "Showcase",
		Theme: "violet",
		Icon:  "zap",
	}

	contents := []widget.Content{
		widget.Todo{Items: []widget.TodoItem{
			{ID: "d1", Text: "Water the plants"},
			{ID: "d2", Text: "Book flights", Completed: true},
			{ID: "d3", Text: "Call the bank"},
		}},
		widget.Note{
			Text:       "Standup at 10.\nBring the release notes.",
			FontSize:   widget.FontSizeNormal,
			FontFamily: widget.FontFamilyMono,
		},
		widget.NewTimer(widget.DefaultTimerDuration, widget.UnitMinutes),
		widget.Counter{Count: 3},
		widget.Clock{Timezone: "Asia/Tokyo", ShowDate: true, Is24Hour: true},
		widget.Stopwatch{Laps: []int64{}},
		widget.NewCalculator(),
		widget.Countdown{TargetDate: "2030-01-01", EventName: "New decade"},
		widget.Habit{Habits: []widget.HabitItem{
			{ID: "hb1", Text: "Run", History: []bool{true, false, true, false, false, true, false}},
			{ID: "hb2", Text: "Read", History: []bool{true, true, true, true, false, false, false}},
		}},
		widget.Links{Items: []widget.LinkItem{
			{ID: "l1", Label: "Go", URL: "https://go.dev"},
			{ID: "l2", Label: "Charm", URL: "https://charm.sh"},
		}},
		widget.Quote{Text: "Simplicity is prerequisite for reliability.", Author: "Edsger W. Dijkstra"},
		widget.Image{URL: "https://go.dev/images/gophers/ladder.svg"},
		widget.Spacer{},
	}

	for i, c := range contents {
		t, err := dashboard.NewTile(fmt.Sprintf("s%d", i+1), c.Kind())
		if err != nil {
			continue
		}
		t.Content = c
		showcase.Tiles = append(showcase.Tiles, t)
	}

	return append(dashboard.DefaultSpaces(), showcase)
}
