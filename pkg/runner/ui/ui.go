// Package ui launches the terminal dashboard.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/shell"
	"tableflip.dev/tiles/pkg/store"
	"tableflip.dev/tiles/pkg/tui"
)

type UI struct {
	Service *app.Service
	// Host is the desktop shell, nil when not running under one.
	Host shell.Host
	Log  *slog.Logger
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("can not open the dashboard, no service")
	}
	log := u.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("starting dashboard", "spaces", len(u.Service.Spaces()), "shell", u.Host != nil)
	return tui.Run(ctx, u.Service, u.Host, log)
}

// Demo opens the dashboard on a throwaway store seeded with StaticDemo, so
// the real documents are never touched.
type Demo struct {
	Dir string
	Log *slog.Logger
}

// Service builds the demo service in Dir.
func (d *Demo) Service(ctx context.Context) (*app.Service, error) {
	p, err := store.Load(store.NewConfig(d.Dir, ""), d.Log)
	if err != nil {
		return nil, err
	}
	spaces := StaticDemo()
	if err := dashboard.ValidateSpaces(spaces); err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	if err := p.SaveSpaces(spaces); err != nil {
		return nil, err
	}
	return app.New(ctx, p, d.Log)
}

func (d *Demo) Do(ctx context.Context) error {
	svc, err := d.Service(ctx)
	if err != nil {
		return err
	}
	u := UI{Service: svc, Log: d.Log}
	return u.Do(ctx)
}
