package dashboard

import (
	"fmt"
	"strings"

	"tableflip.dev/tiles/pkg/widget"
)

// Themes are the accent colours a space can use.
var Themes = []string{"blue", "orange", "emerald", "rose", "violet", "amber", "cyan", "pink"}

// Icons are the dock icons a space can use.
var Icons = []string{
	"home", "briefcase", "coffee", "folder", "plane", "code", "music",
	"gamepad", "book", "heart", "zap", "globe", "smile", "settings",
}

const (
	DefaultTheme = "blue"
	DefaultIcon  = "folder"
)

// Space is a named, themed collection of tiles.
type Space struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Theme string `json:"theme"`
	Icon  string `json:"icon,omitempty"`
	Tiles []Tile `json:"tiles"`
}

// Validate checks the space id and that tile ids are unique.
func (s Space) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("dashboard: space id required")
	}
	seen := make(map[string]struct{}, len(s.Tiles))
	for _, t := range s.Tiles {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("dashboard: space %q has duplicate tile id %q", s.ID, t.ID)
		}
		seen[t.ID] = struct{}{}
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Tile finds a tile by id.
func (s Space) Tile(id string) (Tile, bool) {
	if i := s.tileIndex(id); i >= 0 {
		return s.Tiles[i], true
	}
	return Tile{}, false
}

func (s Space) tileIndex(id string) int {
	for i, t := range s.Tiles {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// IconOrDefault returns the space icon, or folder when unset.
func (s Space) IconOrDefault() string {
	if s.Icon == "" {
		return DefaultIcon
	}
	return s.Icon
}

// ValidTheme reports whether theme is one of Themes.
func ValidTheme(theme string) bool {
	return contains(Themes, theme)
}

// ValidIcon reports whether icon is one of Icons.
func ValidIcon(icon string) bool {
	return contains(Icons, icon)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// DefaultSpaces is the tree used on first run and whenever the stored tree
// cannot be loaded.
func DefaultSpaces() []Space {
	return []Space{{
		ID:    "home",
		Label: "Home",
		Theme: "orange",
		Icon:  "home",
		Tiles: []Tile{
			{
				ID:    "h1",
				Kind:  widget.KindTodo,
				Title: "Groceries",
				Size:  SizeWide,
				Content: widget.Todo{Items: []widget.TodoItem{
					{ID: "1", Text: "Milk"},
					{ID: "2", Text: "Eggs", Completed: true},
				}},
			},
			{
				ID:      "h4",
				Kind:    widget.KindClock,
				Title:   "Time",
				Size:    SizeWide,
				Content: widget.Clock{ShowSeconds: true, ShowDate: true},
			},
		},
	}}
}
