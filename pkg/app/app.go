package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/settings"
	"tableflip.dev/tiles/pkg/store"
	"tableflip.dev/tiles/pkg/widget"
)

var (
	// ErrNoPersistence is returned by New when it is given no store.
	ErrNoPersistence = errors.New("app: no persistence configured")
	// ErrInvalidImport is returned when an import payload is rejected. The
	// current tree is left untouched.
	ErrInvalidImport = errors.New("app: invalid import")
)

// ExportFileName is the default name for exported space trees.
const ExportFileName = "tiles_backup.json"

// Service owns the in-memory space tree, settings and dark-mode flag, and
// writes each document back after every change. Writes are fire-and-forget:
// failures are logged, never returned. It is safe for concurrent use.
type Service struct {
	Persistence store.Persistence
	Log         *slog.Logger
	// Now and NewID are replaceable for tests.
	Now   func() time.Time
	NewID func() string

	mu       sync.Mutex
	reg      *dashboard.Registry
	dark     bool
	settings settings.Settings
}

// New loads every document from p.
func New(ctx context.Context, p store.Persistence, log *slog.Logger) (*Service, error) {
	if p == nil {
		return nil, ErrNoPersistence
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		Persistence: p,
		Log:         log.With("component", "app"),
		Now:         time.Now,
		NewID:       uuid.NewString,
	}
	if err := s.Reload(ctx, store.Event{Type: store.EventStoreInvalidated}); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the documents named by ev from persistence.
func (s *Service) Reload(ctx context.Context, ev store.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := ev.Type == store.EventStoreInvalidated
	if all || ev.Document == store.DocSpaces {
		spaces := s.Persistence.LoadSpaces(ctx)
		if s.reg == nil {
			reg, err := dashboard.NewRegistry(spaces)
			if err != nil {
				return fmt.Errorf("app: load spaces: %w", err)
			}
			s.reg = reg
		} else if err := s.reg.Replace(spaces); err != nil {
			return fmt.Errorf("app: reload spaces: %w", err)
		}
	}
	if all || ev.Document == store.DocDarkMode {
		s.dark = s.Persistence.LoadDarkMode(ctx)
	}
	if all || ev.Document == store.DocSettings {
		s.settings = s.Persistence.LoadSettings(ctx)
	}
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.Persistence.Watch(ctx)
}

func (s *Service) saveSpaces() {
	if err := s.Persistence.SaveSpaces(s.reg.Spaces()); err != nil {
		s.Log.Error("failed to save spaces", "err", err)
	}
}

// Spaces returns a copy of the space tree.
func (s *Service) Spaces() []dashboard.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Spaces()
}

// Space returns one space by id.
func (s *Service) Space(id string) (dashboard.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Space(id)
}

// FindSpace looks a space up by id, then by label ignoring case. An empty
// ref is the active space.
func (s *Service) FindSpace(ref string) (dashboard.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return s.reg.Active(), nil
	}
	if sp, err := s.reg.Space(ref); err == nil {
		return sp, nil
	}
	for _, sp := range s.reg.Spaces() {
		if strings.EqualFold(sp.Label, ref) {
			return sp, nil
		}
	}
	return dashboard.Space{}, fmt.Errorf("%w: space %q", dashboard.ErrNotFound, ref)
}

// Active returns the selected space.
func (s *Service) Active() dashboard.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Active()
}

// ActiveIndex is the position of the selected space in Spaces.
func (s *Service) ActiveIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.ActiveIndex()
}

// Select changes the active space. Selection is not persisted.
func (s *Service) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Select(id)
}

// SelectOffset moves the selection by delta, wrapping.
func (s *Service) SelectOffset(delta int) dashboard.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.SelectOffset(delta)
}

// AddSpace creates and selects an empty space.
func (s *Service) AddSpace(label, theme, icon string) (dashboard.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, err := s.reg.AddSpace(label, theme, icon, s.Now())
	if err != nil {
		return dashboard.Space{}, err
	}
	s.saveSpaces()
	return sp, nil
}

// RemoveSpace deletes a space; the last one cannot be removed.
func (s *Service) RemoveSpace(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reg.RemoveSpace(id); err != nil {
		return err
	}
	s.saveSpaces()
	return nil
}

// UpdateSpace changes a space's label, theme or icon; empty values are
// left alone.
func (s *Service) UpdateSpace(id, label, theme, icon string) (dashboard.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, err := s.reg.UpdateSpace(id, label, theme, icon)
	if err != nil {
		return dashboard.Space{}, err
	}
	s.saveSpaces()
	return sp, nil
}

// AddTile appends a new tile of kind k to a space. An empty title uses the
// kind's default.
func (s *Service) AddTile(spaceID string, k widget.Kind, title string) (dashboard.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := dashboard.NewTile(s.NewID(), k)
	if err != nil {
		return dashboard.Tile{}, err
	}
	if title != "" {
		t.Title = title
	}
	if err := s.reg.AddTile(spaceID, t); err != nil {
		return dashboard.Tile{}, err
	}
	s.saveSpaces()
	return t, nil
}

// RemoveTile deletes a tile.
func (s *Service) RemoveTile(spaceID, tileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reg.RemoveTile(spaceID, tileID); err != nil {
		return err
	}
	s.saveSpaces()
	return nil
}

// ResizeTile advances a tile to the next size.
func (s *Service) ResizeTile(spaceID, tileID string) (dashboard.Size, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	size, err := s.reg.ResizeTile(spaceID, tileID)
	if err != nil {
		return "", err
	}
	s.saveSpaces()
	return size, nil
}

// SetTileSize sets a tile's size directly.
func (s *Service) SetTileSize(spaceID, tileID string, size dashboard.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reg.SetTileSize(spaceID, tileID, size); err != nil {
		return err
	}
	s.saveSpaces()
	return nil
}

// RenameTile changes a tile's title.
func (s *Service) RenameTile(spaceID, tileID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reg.RenameTile(spaceID, tileID, title); err != nil {
		return err
	}
	s.saveSpaces()
	return nil
}

// Tile returns a tile by space and tile id.
func (s *Service) Tile(spaceID, tileID string) (dashboard.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Tile(spaceID, tileID)
}

// Act runs a widget action against a tile. The new content is kept in
// memory and written only when the transition asks for it.
func (s *Service) Act(spaceID, tileID string, a widget.Action) (dashboard.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.reg.Tile(spaceID, tileID)
	if err != nil {
		return dashboard.Tile{}, err
	}
	next, eff, err := widget.Apply(t.Content, a, widget.Env{Now: s.Now(), NewID: s.NewID})
	if err != nil {
		return t, err
	}
	if err := s.reg.UpdateContent(spaceID, tileID, next); err != nil {
		return t, err
	}
	if eff.Persist {
		s.saveSpaces()
	}
	t.Content = next
	return t, nil
}

// DarkMode reports the dark-mode flag.
func (s *Service) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// SetDarkMode stores the dark-mode flag.
func (s *Service) SetDarkMode(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = dark
	if err := s.Persistence.SaveDarkMode(dark); err != nil {
		s.Log.Error("failed to save dark mode", "err", err)
	}
}

// ToggleDarkMode flips the flag and returns the new value.
func (s *Service) ToggleDarkMode() bool {
	s.mu.Lock()
	dark := !s.dark
	s.mu.Unlock()
	s.SetDarkMode(dark)
	return dark
}

// Settings returns the appearance settings.
func (s *Service) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetSetting changes one setting by key.
func (s *Service) SetSetting(key, value string) (settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.settings.Set(key, value)
	if err != nil {
		return s.settings, err
	}
	s.settings = next
	if err := s.Persistence.SaveSettings(next); err != nil {
		s.Log.Error("failed to save settings", "err", err)
	}
	return next, nil
}

// Export writes the space tree as JSON.
func (s *Service) Export(w io.Writer) error {
	s.mu.Lock()
	spaces := s.reg.Spaces()
	s.mu.Unlock()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(spaces); err != nil {
		return fmt.Errorf("app: export: %w", err)
	}
	return nil
}

// Import replaces the space tree with a JSON array of spaces read from r
// and selects the first imported space. Anything else fails with
// ErrInvalidImport and leaves the current tree untouched.
func (s *Service) Import(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("app: import: %w", err)
	}
	var root []json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return 0, fmt.Errorf("%w: root must be a JSON array of spaces", ErrInvalidImport)
	}
	var spaces []dashboard.Space
	if err := json.Unmarshal(data, &spaces); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if err := dashboard.ValidateSpaces(spaces); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reg.Replace(spaces); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	s.reg.SelectFirst()
	s.saveSpaces()
	return len(spaces), nil
}

// Reset erases every stored document and returns to defaults.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Persistence.Reset(); err != nil {
		return err
	}
	if err := s.reg.Replace(dashboard.DefaultSpaces()); err != nil {
		return err
	}
	s.reg.SelectFirst()
	s.dark = false
	s.settings = settings.Defaults()
	return nil
}
