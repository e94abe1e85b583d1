package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	color.NoColor = true
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

func TestSetAndShowJSON(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	if err := (&Set{Service: svc, Key: "gridGap", Value: "16", Out: io.Discard}).Do(ctx); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out bytes.Buffer
	if err := (&Show{Service: svc, JSON: true, Out: &out}).Do(ctx); err != nil {
		t.Fatalf("show: %v", err)
	}
	var got struct {
		Settings struct {
			GridGap int `json:"gridGap"`
		} `json:"settings"`
		DarkMode bool `json:"darkMode"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if got.Settings.GridGap != 16 {
		t.Fatalf("gridGap = %d", got.Settings.GridGap)
	}
}

func TestSetDarkModeKey(t *testing.T) {
	svc := newService(t)
	if err := (&Set{Service: svc, Key: "darkmode", Value: "on", Out: io.Discard}).Do(context.Background()); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !svc.DarkMode() {
		t.Fatalf("dark mode should be on")
	}
}

func TestSetUnknownKey(t *testing.T) {
	svc := newService(t)
	if err := (&Set{Service: svc, Key: "wallpaper", Value: "x", Out: io.Discard}).Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDarkModeToggleAndExplicit(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	before := svc.DarkMode()
	if err := (&DarkMode{Service: svc, Out: io.Discard}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if svc.DarkMode() == before {
		t.Fatalf("toggle did not flip dark mode")
	}
	if err := (&DarkMode{Service: svc, Value: "off", Out: io.Discard}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if svc.DarkMode() {
		t.Fatalf("dark mode should be off")
	}
	if err := (&DarkMode{Service: svc, Value: "sometimes", Out: io.Discard}).Do(ctx); err == nil {
		t.Fatalf("expected error for bad value")
	}
}
