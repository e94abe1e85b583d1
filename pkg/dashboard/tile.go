package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"

	"tableflip.dev/tiles/pkg/widget"
)

// Tile is a sized container hosting exactly one widget.
type Tile struct {
	ID      string
	Kind    widget.Kind
	Title   string
	Size    Size
	Content widget.Content
}

type tileJSON struct {
	ID      string          `json:"id"`
	Type    widget.Kind     `json:"type"`
	Title   string          `json:"title"`
	Size    Size            `json:"size"`
	Content json.RawMessage `json:"content"`
}

// NewTile builds a tile of kind k with the kind's default title, size and
// content.
func NewTile(id string, k widget.Kind) (Tile, error) {
	content, err := widget.Default(k)
	if err != nil {
		return Tile{}, err
	}
	title, size := KindDefaults(k)
	return Tile{ID: id, Kind: k, Title: title, Size: size, Content: content}, nil
}

// KindDefaults is the title and size a freshly added tile of kind k gets.
func KindDefaults(k widget.Kind) (string, Size) {
	switch k {
	case widget.KindHabit:
		return "Habits", SizeWide
	case widget.KindClock:
		return "Clock", SizeWide
	case widget.KindStopwatch:
		return "Stopwatch", SizeWide
	case widget.KindQuote:
		return "Quote", SizeWide
	case widget.KindCalculator:
		return "Calc", SizeTall
	default:
		return k.Label(), SizeSmall
	}
}

func (t Tile) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("dashboard: tile id required")
	}
	if !t.Size.Valid() {
		return fmt.Errorf("dashboard: tile %q has unknown size %q", t.ID, t.Size)
	}
	if t.Content == nil {
		return fmt.Errorf("dashboard: tile %q has no content", t.ID)
	}
	if t.Content.Kind() != t.Kind {
		return fmt.Errorf("dashboard: tile %q is %s but holds %s content", t.ID, t.Kind, t.Content.Kind())
	}
	return t.Content.Validate()
}

func (t Tile) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(t.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tileJSON{
		ID:      t.ID,
		Type:    t.Kind,
		Title:   t.Title,
		Size:    t.Size,
		Content: content,
	})
}

// UnmarshalJSON decodes content according to the type tag. A missing size
// falls back to the kind's default size.
func (t *Tile) UnmarshalJSON(b []byte) error {
	var raw tileJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	content, err := widget.Decode(raw.Type, raw.Content)
	if err != nil {
		return fmt.Errorf("dashboard: tile %q: %w", raw.ID, err)
	}
	size := raw.Size
	if size == "" {
		_, size = KindDefaults(raw.Type)
	}
	*t = Tile{
		ID:      raw.ID,
		Kind:    raw.Type,
		Title:   raw.Title,
		Size:    size,
		Content: content,
	}
	return t.Validate()
}
