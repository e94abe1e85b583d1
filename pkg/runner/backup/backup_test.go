package backup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/store"
	"tableflip.dev/tiles/pkg/widget"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := store.Load(store.NewConfig(t.TempDir(), ""), log)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc, err := app.New(context.Background(), p, log)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newService(t)
	if _, err := src.AddSpace("Work", "violet", "code"); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(t.TempDir(), "backup.json")
	if err := (&Export{Service: src, File: file, Out: io.Discard}).Do(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newService(t)
	if err := (&Import{Service: dst, File: file, Out: io.Discard}).Do(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}
	spaces := dst.Spaces()
	if len(spaces) != 2 || spaces[1].Label != "Work" {
		t.Fatalf("imported %+v", spaces)
	}
	if dst.Active().ID != "home" {
		t.Fatalf("first imported space should be active")
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	svc := newService(t)
	before := svc.Spaces()
	in := strings.NewReader(`{"spaces": []}`)
	err := (&Import{Service: svc, File: "-", In: in, Out: io.Discard}).Do(context.Background())
	if !errors.Is(err, app.ErrInvalidImport) {
		t.Fatalf("expected ErrInvalidImport, got %v", err)
	}
	if got := svc.Spaces(); len(got) != len(before) || got[0].ID != before[0].ID {
		t.Fatalf("state changed: %+v", got)
	}
}

func TestExportDefaultsFileName(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := (&Export{Service: newService(t), Out: io.Discard}).Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, app.ExportFileName)); err != nil {
		t.Fatalf("expected %s: %v", app.ExportFileName, err)
	}
}

func TestResetHonoursConfirm(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	if _, err := svc.AddTile("home", widget.KindCounter, ""); err != nil {
		t.Fatal(err)
	}

	no := func() (bool, error) { return false, nil }
	if err := (&Reset{Service: svc, Confirm: no, Out: io.Discard}).Do(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n := len(svc.Active().Tiles); n != 3 {
		t.Fatalf("declined reset changed tiles: %d", n)
	}

	if err := (&Reset{Service: svc, Out: io.Discard}).Do(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n := len(svc.Active().Tiles); n != 2 {
		t.Fatalf("reset should restore the default tree, have %d tiles", n)
	}
}
