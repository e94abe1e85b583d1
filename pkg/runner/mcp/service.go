// Package mcp provides the Model Context Protocol server integration for tiles.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/settings"
	"tableflip.dev/tiles/pkg/store"
	"tableflip.dev/tiles/pkg/widget"
)

// Service coordinates dashboard operations that are shared by the MCP server.
// Every call first reloads the stored documents so edits made by other
// processes are visible.
type Service struct {
	App *app.Service
}

var errNoService = errors.New("dashboard service is not configured")

// SpaceSummary describes a space without its tiles.
type SpaceSummary struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Theme     string `json:"theme"`
	Icon      string `json:"icon"`
	TileCount int    `json:"tileCount"`
	Active    bool   `json:"active"`
}

// TileDTO is a transport-friendly projection of a tile.
type TileDTO struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Size    string         `json:"size"`
	Cols    int            `json:"cols"`
	Rows    int            `json:"rows"`
	Content widget.Content `json:"content"`
	Actions []string       `json:"actions,omitempty"`
}

// SpaceDTO is a space with its tiles.
type SpaceDTO struct {
	SpaceSummary
	Tiles []TileDTO `json:"tiles"`
}

// NewService builds a service wrapper around the dashboard service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) refresh(ctx context.Context) error {
	if s.App == nil {
		return errNoService
	}
	return s.App.Reload(ctx, store.Event{Type: store.EventStoreInvalidated})
}

func toTileDTO(t dashboard.Tile) TileDTO {
	cols, rows := t.Size.Span()
	return TileDTO{
		ID:      t.ID,
		Type:    string(t.Kind),
		Title:   t.Title,
		Size:    string(t.Size),
		Cols:    cols,
		Rows:    rows,
		Content: t.Content,
		Actions: widget.Actions(t.Kind),
	}
}

func summarize(sp dashboard.Space, activeID string) SpaceSummary {
	return SpaceSummary{
		ID:        sp.ID,
		Label:     sp.Label,
		Theme:     sp.Theme,
		Icon:      sp.IconOrDefault(),
		TileCount: len(sp.Tiles),
		Active:    sp.ID == activeID,
	}
}

func toSpaceDTO(sp dashboard.Space, activeID string) SpaceDTO {
	tiles := make([]TileDTO, 0, len(sp.Tiles))
	for _, t := range sp.Tiles {
		tiles = append(tiles, toTileDTO(t))
	}
	return SpaceDTO{SpaceSummary: summarize(sp, activeID), Tiles: tiles}
}

// ListSpaces returns summaries for every space in order.
func (s *Service) ListSpaces(ctx context.Context) ([]SpaceSummary, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	active := s.App.Active().ID
	spaces := s.App.Spaces()
	out := make([]SpaceSummary, 0, len(spaces))
	for _, sp := range spaces {
		out = append(out, summarize(sp, active))
	}
	return out, nil
}

// Space returns one space with its tiles.
func (s *Service) Space(ctx context.Context, id string) (*SpaceDTO, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("space id is required")
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	sp, err := s.App.Space(id)
	if err != nil {
		return nil, err
	}
	dto := toSpaceDTO(sp, s.App.Active().ID)
	return &dto, nil
}

// AddSpace creates an empty space.
func (s *Service) AddSpace(ctx context.Context, label, theme, icon string) (*SpaceDTO, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	sp, err := s.App.AddSpace(label, strings.ToLower(theme), strings.ToLower(icon))
	if err != nil {
		return nil, err
	}
	dto := toSpaceDTO(sp, sp.ID)
	return &dto, nil
}

// RemoveSpace deletes a space. The last space is kept.
func (s *Service) RemoveSpace(ctx context.Context, id string) error {
	if err := s.refresh(ctx); err != nil {
		return err
	}
	return s.App.RemoveSpace(id)
}

// AddTileOptions captures the parameters used to create a tile.
type AddTileOptions struct {
	Space string
	Kind  string
	Title string
	Size  string
}

// AddTile creates a tile with the kind's default content.
func (s *Service) AddTile(ctx context.Context, opts AddTileOptions) (*TileDTO, error) {
	kind, err := widget.ParseKind(opts.Kind)
	if err != nil {
		return nil, err
	}
	var size dashboard.Size
	if opts.Size != "" {
		if size, err = dashboard.ParseSize(opts.Size); err != nil {
			return nil, err
		}
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	t, err := s.App.AddTile(opts.Space, kind, opts.Title)
	if err != nil {
		return nil, err
	}
	if size != "" && size != t.Size {
		if err := s.App.SetTileSize(opts.Space, t.ID, size); err != nil {
			return nil, err
		}
		t.Size = size
	}
	dto := toTileDTO(t)
	return &dto, nil
}

// RemoveTile deletes a tile.
func (s *Service) RemoveTile(ctx context.Context, spaceID, tileID string) error {
	if err := s.refresh(ctx); err != nil {
		return err
	}
	return s.App.RemoveTile(spaceID, tileID)
}

// ResizeTile sets a tile's size, or advances it to the next size when size
// is empty.
func (s *Service) ResizeTile(ctx context.Context, spaceID, tileID, size string) (*TileDTO, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	if size == "" {
		if _, err := s.App.ResizeTile(spaceID, tileID); err != nil {
			return nil, err
		}
	} else {
		parsed, err := dashboard.ParseSize(size)
		if err != nil {
			return nil, err
		}
		if err := s.App.SetTileSize(spaceID, tileID, parsed); err != nil {
			return nil, err
		}
	}
	t, err := s.App.Tile(spaceID, tileID)
	if err != nil {
		return nil, err
	}
	dto := toTileDTO(t)
	return &dto, nil
}

// WidgetAction runs a named widget action against a tile.
func (s *Service) WidgetAction(ctx context.Context, spaceID, tileID, action string, args []string) (*TileDTO, error) {
	if strings.TrimSpace(action) == "" {
		return nil, errors.New("action is required")
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	t, err := s.App.Act(spaceID, tileID, widget.NewAction(action, args...))
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", action, tileID, err)
	}
	dto := toTileDTO(t)
	return &dto, nil
}

// Settings returns the appearance settings and dark-mode flag.
func (s *Service) Settings(ctx context.Context) (settings.Settings, bool, error) {
	if err := s.refresh(ctx); err != nil {
		return settings.Settings{}, false, err
	}
	return s.App.Settings(), s.App.DarkMode(), nil
}

// SetSetting changes one setting by key.
func (s *Service) SetSetting(ctx context.Context, key, value string) (settings.Settings, error) {
	if err := s.refresh(ctx); err != nil {
		return settings.Settings{}, err
	}
	return s.App.SetSetting(key, value)
}
