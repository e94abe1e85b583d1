// Package tiles implements the CLI runners for tiles and widget actions.
package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/printers"
	"tableflip.dev/tiles/pkg/timeutil"
	"tableflip.dev/tiles/pkg/widget"
)

var errNoService = errors.New("can not manage tiles, no service")

// List prints the tiles of one space, or of the active space when Space is
// empty.
type List struct {
	Service *app.Service
	Space   string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	sp := l.Service.Active()
	if l.Space != "" {
		var err error
		if sp, err = l.Service.FindSpace(l.Space); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out, Now: l.Service.Now}
	if l.JSON {
		return pp.JSON(sp.Tiles)
	}
	pp.NewLine()
	pp.Space(sp)
	return nil
}

// Show prints one tile with its full content.
type Show struct {
	Service *app.Service
	Space   string
	Tile    string
	JSON    bool
	Out     io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	sp, err := s.Service.FindSpace(s.Space)
	if err != nil {
		return err
	}
	t, err := s.Service.Tile(sp.ID, s.Tile)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: s.Out, Now: s.Service.Now}
	if s.JSON {
		return pp.JSON(t)
	}
	pp.NewLine()
	pp.Tile(t)
	pp.Actions(t.Kind)
	return nil
}

// Add creates a tile of Kind in Space.
type Add struct {
	Service *app.Service
	Space   string
	Kind    string
	Title   string
	Size    string
	JSON    bool
	Out     io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	kind, err := widget.ParseKind(a.Kind)
	if err != nil {
		return err
	}
	var size dashboard.Size
	if a.Size != "" {
		if size, err = dashboard.ParseSize(a.Size); err != nil {
			return err
		}
	}
	sp, err := a.Service.FindSpace(a.Space)
	if err != nil {
		return err
	}
	t, err := a.Service.AddTile(sp.ID, kind, a.Title)
	if err != nil {
		return err
	}
	if size != "" && size != t.Size {
		if err := a.Service.SetTileSize(sp.ID, t.ID, size); err != nil {
			return err
		}
		t.Size = size
	}
	pp := printers.PrettyPrint{Out: a.Out, Now: a.Service.Now}
	if a.JSON {
		return pp.JSON(t)
	}
	pp.NewLine()
	pp.Tile(t)
	pp.Actions(t.Kind)
	return nil
}

// Remove deletes a tile.
type Remove struct {
	Service *app.Service
	Space   string
	Tile    string
	Out     io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errNoService
	}
	sp, err := r.Service.FindSpace(r.Space)
	if err != nil {
		return err
	}
	if err := r.Service.RemoveTile(sp.ID, r.Tile); err != nil {
		return err
	}
	sp, err = r.Service.Space(sp.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: r.Out, Now: r.Service.Now}
	pp.NewLine()
	pp.Space(sp)
	return nil
}

// Resize sets a tile's size, or moves it to the next size when Size is
// empty.
type Resize struct {
	Service *app.Service
	Space   string
	Tile    string
	Size    string
	Title   string
	Out     io.Writer
}

func (r *Resize) Do(ctx context.Context) error {
	if r.Service == nil {
		return errNoService
	}
	sp, err := r.Service.FindSpace(r.Space)
	if err != nil {
		return err
	}
	if r.Size == "" {
		if _, err := r.Service.ResizeTile(sp.ID, r.Tile); err != nil {
			return err
		}
	} else {
		size, err := dashboard.ParseSize(r.Size)
		if err != nil {
			return err
		}
		if err := r.Service.SetTileSize(sp.ID, r.Tile, size); err != nil {
			return err
		}
	}
	if r.Title != "" {
		if err := r.Service.RenameTile(sp.ID, r.Tile, r.Title); err != nil {
			return err
		}
	}
	sp, err = r.Service.Space(sp.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: r.Out, Now: r.Service.Now}
	pp.NewLine()
	pp.Space(sp)
	return nil
}

// Act runs a widget action on a tile and prints the result.
type Act struct {
	Service *app.Service
	Space   string
	Tile    string
	Action  string
	Args    []string
	JSON    bool
	Out     io.Writer
}

func (a *Act) Do(ctx context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	sp, err := a.Service.FindSpace(a.Space)
	if err != nil {
		return err
	}
	t, err := a.Service.Tile(sp.ID, a.Tile)
	if err != nil {
		return err
	}

	actions := []widget.Action{widget.NewAction(a.Action, a.Args...)}
	if timer, ok := t.Content.(widget.Timer); ok && strings.EqualFold(strings.TrimSpace(a.Action), "duration") && len(a.Args) == 1 {
		if actions, err = timerDuration(timer, a.Args[0]); err != nil {
			return err
		}
	}
	for _, action := range actions {
		if t, err = a.Service.Act(sp.ID, t.ID, action); err != nil {
			return fmt.Errorf("%s: %w", action.Name, err)
		}
	}

	pp := printers.PrettyPrint{Out: a.Out, Now: a.Service.Now}
	if a.JSON {
		return pp.JSON(t)
	}
	pp.NewLine()
	pp.Tile(t)
	return nil
}

// timerDuration turns a human duration such as "90m" or "2h" into the unit
// switch and duration edit a timer understands. Plain numbers are passed
// through in the timer's current unit.
func timerDuration(t widget.Timer, raw string) ([]widget.Action, error) {
	if _, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return []widget.Action{widget.NewAction("duration", raw)}, nil
	}
	d, _, err := timeutil.Parse(raw)
	if err != nil {
		return nil, err
	}
	value, hours := timeutil.TimerValue(d)
	var out []widget.Action
	if hours != (t.Unit == widget.UnitHours) {
		out = append(out, widget.NewAction("unit"))
	}
	return append(out, widget.NewAction("duration", strconv.Itoa(value))), nil
}
