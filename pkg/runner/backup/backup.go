// Package backup implements export, import and reset of the stored
// dashboard.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/printers"
)

var errNoService = errors.New("can not back up, no service")

// Export writes the space tree to File, or to Out when File is "-".
type Export struct {
	Service *app.Service
	File    string
	Out     io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Service == nil {
		return errNoService
	}
	out := e.Out
	if out == nil {
		out = color.Output
	}
	if e.File == "-" {
		return e.Service.Export(out)
	}
	name := e.File
	if name == "" {
		name = app.ExportFileName
	}
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := e.Service.Export(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Title(fmt.Sprintf("Exported %d spaces to %s", len(e.Service.Spaces()), name))
	return nil
}

// Import replaces the space tree with the contents of File, or of In when
// File is "-". An invalid file leaves the stored tree untouched.
type Import struct {
	Service *app.Service
	File    string
	In      io.Reader
	Out     io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.Service == nil {
		return errNoService
	}
	in := i.In
	if i.File != "-" {
		f, err := os.Open(i.File)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer f.Close()
		in = f
	}
	if in == nil {
		return errors.New("import: no input")
	}
	n, err := i.Service.Import(in)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: i.Out}
	pp.NewLine()
	pp.Title(fmt.Sprintf("Imported %d spaces", n))
	pp.Spaces(i.Service.Spaces(), i.Service.Active().ID)
	return nil
}

// Reset erases every stored document after Confirm agrees. A nil Confirm
// resets without asking.
type Reset struct {
	Service *app.Service
	Confirm func() (bool, error)
	Out     io.Writer
}

func (r *Reset) Do(ctx context.Context) error {
	if r.Service == nil {
		return errNoService
	}
	if r.Confirm != nil {
		ok, err := r.Confirm()
		if err != nil {
			return err
		}
		if !ok {
			pp := printers.PrettyPrint{Out: r.Out}
			pp.Title("Reset cancelled")
			return nil
		}
	}
	if err := r.Service.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.Title("All data cleared")
	return nil
}
