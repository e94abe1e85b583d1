// Package spaces implements the CLI runners that list and edit spaces.
package spaces

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/printers"
)

var errNoService = errors.New("can not manage spaces, no service")

// List prints every space.
type List struct {
	Service *app.Service
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out, Now: l.Service.Now}
	if l.JSON {
		return pp.JSON(l.Service.Spaces())
	}
	pp.NewLine()
	pp.Spaces(l.Service.Spaces(), l.Service.Active().ID)
	return nil
}

// Add creates an empty space.
type Add struct {
	Service *app.Service
	Label   string
	Theme   string
	Icon    string
	JSON    bool
	Out     io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	sp, err := a.Service.AddSpace(a.Label, strings.ToLower(a.Theme), strings.ToLower(a.Icon))
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: a.Out}
	if a.JSON {
		return pp.JSON(sp)
	}
	pp.NewLine()
	pp.Spaces(a.Service.Spaces(), sp.ID)
	return nil
}

// Remove deletes a space, found by id or label. The last space is kept.
type Remove struct {
	Service *app.Service
	ID      string
	Out     io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errNoService
	}
	sp, err := r.Service.FindSpace(r.ID)
	if err != nil {
		return err
	}
	if err := r.Service.RemoveSpace(sp.ID); err != nil {
		return fmt.Errorf("remove %q: %w", sp.Label, err)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: r.Out}
	pp.NewLine()
	pp.Spaces(r.Service.Spaces(), r.Service.Active().ID)
	return nil
}

// Update changes the label, theme or icon of a space. Empty fields are kept.
type Update struct {
	Service *app.Service
	ID      string
	Label   string
	Theme   string
	Icon    string
	JSON    bool
	Out     io.Writer
}

func (u *Update) Do(ctx context.Context) error {
	if u.Service == nil {
		return errNoService
	}
	found, err := u.Service.FindSpace(u.ID)
	if err != nil {
		return err
	}
	sp, err := u.Service.UpdateSpace(found.ID, u.Label, strings.ToLower(u.Theme), strings.ToLower(u.Icon))
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: u.Out}
	if u.JSON {
		return pp.JSON(sp)
	}
	pp.NewLine()
	pp.Spaces(u.Service.Spaces(), u.Service.Active().ID)
	return nil
}
