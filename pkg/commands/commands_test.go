package commands

import (
	"bytes"
	"encoding/json"
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/tiles/pkg/commands/options"
)

// run executes the root command against a store in a temp dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("TILES_PATH", filepath.Join(dir, "db"))
	t.Setenv("TILES_CONFIG_PATH", dir)
	*oo = options.OutputOptions{}
	*lo = options.LogOptions{}
	var out bytes.Buffer
	saved := color.Output
	color.Output = &out
	t.Cleanup(func() { color.Output = saved })
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	want := []string{"ui", "spaces", "tiles", "widget", "settings", "dark-mode",
		"export", "import", "reset", "mcp", "version", "completion", "upgrade"}
	root := New()
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestSpacesAddThenListJSON(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "spaces", "add", "Work", "--theme", "violet"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := run(t, dir, "spaces", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var spaces []struct {
		Label string `json:"label"`
		Theme string `json:"theme"`
	}
	if err := json.Unmarshal([]byte(out), &spaces); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(spaces) != 2 || spaces[1].Label != "Work" || spaces[1].Theme != "violet" {
		t.Fatalf("spaces = %+v", spaces)
	}
}

func TestWidgetActionPersists(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "widget", "home", "h1", "add", "Bread"); err != nil {
		t.Fatalf("widget: %v", err)
	}
	out, err := run(t, dir, "tiles", "show", "h1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Bread") {
		t.Fatalf("expected Bread in %q", out)
	}
}

func TestJSONErrorsAreReported(t *testing.T) {
	out, err := run(t, t.TempDir(), "--json", "tiles", "show", "nope")
	if err != nil {
		t.Fatalf("json errors should be swallowed, got %v", err)
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("expected an error object, got %q", out)
	}
}

func TestListenURL(t *testing.T) {
	a := &net.TCPAddr{IP: net.IPv4zero, Port: 4321}
	if got := listenURL(a, "0.0.0.0", "0.0.0.0:0", "/mcp", false); got != "http://127.0.0.1:4321/mcp" {
		t.Fatalf("got %q", got)
	}
	a = &net.TCPAddr{IP: net.ParseIP("::1"), Port: 443}
	if got := listenURL(a, "::1", "[::1]:443", "/mcp", true); got != "https://[::1]:443/mcp" {
		t.Fatalf("got %q", got)
	}
}
