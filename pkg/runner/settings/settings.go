// Package settings implements the CLI runners for appearance settings and
// dark mode.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/printers"
	"tableflip.dev/tiles/pkg/prompt"
)

var errNoService = errors.New("can not change settings, no service")

// Show prints the settings.
type Show struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	return show(s.Service, s.JSON, s.Out)
}

func show(svc *app.Service, asJSON bool, out io.Writer) error {
	pp := printers.PrettyPrint{Out: out}
	if asJSON {
		return pp.JSON(map[string]any{
			"settings": svc.Settings(),
			"darkMode": svc.DarkMode(),
		})
	}
	pp.NewLine()
	pp.Settings(svc.Settings(), svc.DarkMode())
	return nil
}

// Set changes one setting.
type Set struct {
	Service *app.Service
	Key     string
	Value   string
	JSON    bool
	Out     io.Writer
}

func (s *Set) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	if strings.EqualFold(s.Key, "darkMode") {
		dark, err := prompt.ParseBool(strings.TrimSpace(s.Value))
		if err != nil {
			return fmt.Errorf("darkMode: %w", err)
		}
		s.Service.SetDarkMode(dark)
	} else if _, err := s.Service.SetSetting(s.Key, s.Value); err != nil {
		return err
	}
	return show(s.Service, s.JSON, s.Out)
}

// DarkMode toggles dark mode, or sets it when Value is "on" or "off".
type DarkMode struct {
	Service *app.Service
	Value   string
	Out     io.Writer
}

func (d *DarkMode) Do(ctx context.Context) error {
	if d.Service == nil {
		return errNoService
	}
	var dark bool
	if strings.TrimSpace(d.Value) == "" {
		dark = d.Service.ToggleDarkMode()
	} else {
		v, err := prompt.ParseBool(strings.TrimSpace(d.Value))
		if err != nil {
			return fmt.Errorf("dark mode must be on or off, got %q", d.Value)
		}
		dark = v
		d.Service.SetDarkMode(dark)
	}
	state := "off"
	if dark {
		state = "on"
	}
	pp := printers.PrettyPrint{Out: d.Out}
	pp.Title("Dark mode " + state)
	return nil
}
