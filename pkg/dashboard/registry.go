package dashboard

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/tiles/pkg/widget"
)

var (
	// ErrNotFound is returned when a space or tile id does not exist.
	ErrNotFound = errors.New("dashboard: not found")
	// ErrLastSpace is returned when removing the only remaining space.
	ErrLastSpace = errors.New("dashboard: cannot remove the last space")
	// ErrNoSpaces is returned when a tree without spaces is offered.
	ErrNoSpaces = errors.New("dashboard: at least one space is required")
	// ErrDuplicateID is returned when an id is already in use.
	ErrDuplicateID = errors.New("dashboard: duplicate id")
)

// Registry is the ordered space tree plus the active space selection. It is
// not safe for concurrent use; callers serialize access.
type Registry struct {
	spaces []Space
	active string
}

// NewRegistry validates spaces and selects the first one.
func NewRegistry(spaces []Space) (*Registry, error) {
	r := &Registry{}
	if err := r.Replace(spaces); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateSpaces checks a whole tree: non-empty, unique space ids, and every
// space valid.
func ValidateSpaces(spaces []Space) error {
	if len(spaces) == 0 {
		return ErrNoSpaces
	}
	seen := make(map[string]struct{}, len(spaces))
	for _, s := range spaces {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: space %q", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Replace swaps in a new tree. The active space is kept when it still
// exists, otherwise the first space becomes active.
func (r *Registry) Replace(spaces []Space) error {
	if err := ValidateSpaces(spaces); err != nil {
		return err
	}
	r.spaces = cloneSpaces(spaces)
	if r.index(r.active) < 0 {
		r.active = r.spaces[0].ID
	}
	return nil
}

// Spaces returns a copy of the tree.
func (r *Registry) Spaces() []Space {
	return cloneSpaces(r.spaces)
}

// Len is the number of spaces.
func (r *Registry) Len() int { return len(r.spaces) }

// Space returns the space with id.
func (r *Registry) Space(id string) (Space, error) {
	i := r.index(id)
	if i < 0 {
		return Space{}, fmt.Errorf("%w: space %q", ErrNotFound, id)
	}
	return cloneSpace(r.spaces[i]), nil
}

// Active returns the selected space.
func (r *Registry) Active() Space {
	i := r.index(r.active)
	if i < 0 {
		i = 0
	}
	return cloneSpace(r.spaces[i])
}

// ActiveIndex is the position of the selected space.
func (r *Registry) ActiveIndex() int {
	if i := r.index(r.active); i >= 0 {
		return i
	}
	return 0
}

// Select makes the space with id active.
func (r *Registry) Select(id string) error {
	if r.index(id) < 0 {
		return fmt.Errorf("%w: space %q", ErrNotFound, id)
	}
	r.active = id
	return nil
}

// SelectFirst makes the first space active and returns it.
func (r *Registry) SelectFirst() Space {
	r.active = r.spaces[0].ID
	return cloneSpace(r.spaces[0])
}

// SelectOffset moves the selection by delta positions, wrapping.
func (r *Registry) SelectOffset(delta int) Space {
	n := len(r.spaces)
	i := ((r.ActiveIndex()+delta)%n + n) % n
	r.active = r.spaces[i].ID
	return cloneSpace(r.spaces[i])
}

var whitespace = regexp.MustCompile(`\s+`)

// SpaceID derives an id from a label: lower-cased, whitespace runs replaced
// by "-", and suffixed with the creation time in milliseconds.
func SpaceID(label string, now time.Time) string {
	slug := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
	return slug + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// AddSpace appends an empty space and selects it. Theme and icon fall back
// to their defaults when empty.
func (r *Registry) AddSpace(label, theme, icon string, now time.Time) (Space, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Space{}, fmt.Errorf("dashboard: space label required")
	}
	if theme == "" {
		theme = DefaultTheme
	}
	if icon == "" {
		icon = DefaultIcon
	}
	if !ValidTheme(theme) {
		return Space{}, fmt.Errorf("dashboard: unknown theme %q", theme)
	}
	if !ValidIcon(icon) {
		return Space{}, fmt.Errorf("dashboard: unknown icon %q", icon)
	}
	id := SpaceID(label, now)
	for n := 2; r.index(id) >= 0; n++ {
		id = SpaceID(label, now) + "-" + strconv.Itoa(n)
	}
	s := Space{ID: id, Label: label, Theme: theme, Icon: icon, Tiles: []Tile{}}
	r.spaces = append(r.spaces, s)
	r.active = id
	return cloneSpace(s), nil
}

// RemoveSpace deletes a space. The last space cannot be removed. When the
// active space goes, the first remaining space becomes active.
func (r *Registry) RemoveSpace(id string) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: space %q", ErrNotFound, id)
	}
	if len(r.spaces) <= 1 {
		return ErrLastSpace
	}
	r.spaces = append(r.spaces[:i:i], r.spaces[i+1:]...)
	if r.active == id {
		r.active = r.spaces[0].ID
	}
	return nil
}

// UpdateSpace changes label, theme or icon. Empty arguments leave the field
// untouched.
func (r *Registry) UpdateSpace(id, label, theme, icon string) (Space, error) {
	i := r.index(id)
	if i < 0 {
		return Space{}, fmt.Errorf("%w: space %q", ErrNotFound, id)
	}
	s := r.spaces[i]
	if label = strings.TrimSpace(label); label != "" {
		s.Label = label
	}
	if theme != "" {
		if !ValidTheme(theme) {
			return Space{}, fmt.Errorf("dashboard: unknown theme %q", theme)
		}
		s.Theme = theme
	}
	if icon != "" {
		if !ValidIcon(icon) {
			return Space{}, fmt.Errorf("dashboard: unknown icon %q", icon)
		}
		s.Icon = icon
	}
	r.spaces[i] = s
	return cloneSpace(s), nil
}

// AddTile appends t to a space.
func (r *Registry) AddTile(spaceID string, t Tile) error {
	i := r.index(spaceID)
	if i < 0 {
		return fmt.Errorf("%w: space %q", ErrNotFound, spaceID)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if r.spaces[i].tileIndex(t.ID) >= 0 {
		return fmt.Errorf("%w: tile %q", ErrDuplicateID, t.ID)
	}
	tiles := make([]Tile, 0, len(r.spaces[i].Tiles)+1)
	tiles = append(tiles, r.spaces[i].Tiles...)
	r.spaces[i].Tiles = append(tiles, t)
	return nil
}

// RemoveTile deletes a tile from a space.
func (r *Registry) RemoveTile(spaceID, tileID string) error {
	i, j, err := r.locate(spaceID, tileID)
	if err != nil {
		return err
	}
	tiles := r.spaces[i].Tiles
	r.spaces[i].Tiles = append(tiles[:j:j], tiles[j+1:]...)
	return nil
}

// ResizeTile advances a tile to the next size in the cycle.
func (r *Registry) ResizeTile(spaceID, tileID string) (Size, error) {
	i, j, err := r.locate(spaceID, tileID)
	if err != nil {
		return "", err
	}
	next := r.spaces[i].Tiles[j].Size.Next()
	r.spaces[i].Tiles[j].Size = next
	return next, nil
}

// SetTileSize sets a tile's size directly.
func (r *Registry) SetTileSize(spaceID, tileID string, size Size) error {
	if !size.Valid() {
		return fmt.Errorf("dashboard: unknown size %q", size)
	}
	i, j, err := r.locate(spaceID, tileID)
	if err != nil {
		return err
	}
	r.spaces[i].Tiles[j].Size = size
	return nil
}

// RenameTile changes a tile title.
func (r *Registry) RenameTile(spaceID, tileID, title string) error {
	i, j, err := r.locate(spaceID, tileID)
	if err != nil {
		return err
	}
	r.spaces[i].Tiles[j].Title = title
	return nil
}

// UpdateContent replaces a tile's content. The content kind must match the
// tile kind.
func (r *Registry) UpdateContent(spaceID, tileID string, c widget.Content) error {
	i, j, err := r.locate(spaceID, tileID)
	if err != nil {
		return err
	}
	t := r.spaces[i].Tiles[j]
	if c == nil || c.Kind() != t.Kind {
		return fmt.Errorf("dashboard: tile %q is %s, refusing other content", tileID, t.Kind)
	}
	r.spaces[i].Tiles[j].Content = c
	return nil
}

// Tile returns a tile by space and tile id.
func (r *Registry) Tile(spaceID, tileID string) (Tile, error) {
	i, j, err := r.locate(spaceID, tileID)
	if err != nil {
		return Tile{}, err
	}
	return r.spaces[i].Tiles[j], nil
}

func (r *Registry) locate(spaceID, tileID string) (int, int, error) {
	i := r.index(spaceID)
	if i < 0 {
		return -1, -1, fmt.Errorf("%w: space %q", ErrNotFound, spaceID)
	}
	j := r.spaces[i].tileIndex(tileID)
	if j < 0 {
		return -1, -1, fmt.Errorf("%w: tile %q in space %q", ErrNotFound, tileID, spaceID)
	}
	return i, j, nil
}

func (r *Registry) index(id string) int {
	for i, s := range r.spaces {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Content values are immutable, so copying the tile slices is enough to keep
// callers from reaching into the registry.
func cloneSpace(s Space) Space {
	tiles := make([]Tile, len(s.Tiles))
	copy(tiles, s.Tiles)
	s.Tiles = tiles
	return s
}

func cloneSpaces(in []Space) []Space {
	out := make([]Space, len(in))
	for i, s := range in {
		out[i] = cloneSpace(s)
	}
	return out
}
