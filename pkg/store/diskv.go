package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/settings"
)

// Document names one of the independently stored records.
type Document string

const (
	DocSpaces   Document = "spaces"
	DocDarkMode Document = "dark_mode"
	DocSettings Document = "settings"
)

// Documents lists every stored record.
var Documents = []Document{DocSpaces, DocDarkMode, DocSettings}

const tempDir = ".tmp"

// Persistence stores the space tree, the dark-mode flag and the settings
// record. Loaders never fail: absent or corrupt data is logged and replaced
// by defaults.
type Persistence interface {
	LoadSpaces(ctx context.Context) []dashboard.Space
	SaveSpaces(spaces []dashboard.Space) error
	LoadDarkMode(ctx context.Context) bool
	SaveDarkMode(dark bool) error
	LoadSettings(ctx context.Context) settings.Settings
	SaveSettings(s settings.Settings) error
	// Reset erases all three documents.
	Reset() error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config. A
// nil config is read with LoadConfig; a nil logger uses slog.Default.
func Load(cfg Config, log *slog.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = slog.Default()
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			TempDir:           filepath.Join(basePath, tempDir),
			// No cache: other processes write the same documents.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		log:      log.With("component", "store"),
		written:  make(map[Document]digest),
	}, nil
}

type digest [md5.Size]byte

// erased marks a document this process removed.
var erased = digest{}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger

	mu      sync.Mutex
	written map[Document]digest
}

func (p *persistence) read(doc Document) ([]byte, bool) {
	val, err := p.d.Read(string(doc))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.log.Warn("read failed, using defaults", "document", doc, "err", err)
		}
		return nil, false
	}
	return val, true
}

func (p *persistence) write(doc Document, data []byte) error {
	if err := p.d.Write(string(doc), data); err != nil {
		return fmt.Errorf("store: write %s: %w", doc, err)
	}
	p.mu.Lock()
	p.written[doc] = md5.Sum(data)
	p.mu.Unlock()
	return nil
}

func (p *persistence) LoadSpaces(ctx context.Context) []dashboard.Space {
	data, ok := p.read(DocSpaces)
	if !ok {
		return dashboard.DefaultSpaces()
	}
	var spaces []dashboard.Space
	if err := json.Unmarshal(data, &spaces); err != nil {
		p.log.Error("failed to load spaces, using defaults", "err", err)
		return dashboard.DefaultSpaces()
	}
	if err := dashboard.ValidateSpaces(spaces); err != nil {
		p.log.Error("stored spaces are invalid, using defaults", "err", err)
		return dashboard.DefaultSpaces()
	}
	return spaces
}

func (p *persistence) SaveSpaces(spaces []dashboard.Space) error {
	data, err := json.Marshal(spaces)
	if err != nil {
		return fmt.Errorf("store: encode spaces: %w", err)
	}
	return p.write(DocSpaces, data)
}

// LoadDarkMode is true only when the stored flag is exactly "true".
func (p *persistence) LoadDarkMode(ctx context.Context) bool {
	data, ok := p.read(DocDarkMode)
	return ok && string(data) == "true"
}

func (p *persistence) SaveDarkMode(dark bool) error {
	val := "false"
	if dark {
		val = "true"
	}
	return p.write(DocDarkMode, []byte(val))
}

func (p *persistence) LoadSettings(ctx context.Context) settings.Settings {
	data, ok := p.read(DocSettings)
	if !ok {
		return settings.Defaults()
	}
	s, err := settings.Decode(data)
	if err != nil {
		p.log.Error("failed to load settings, using defaults", "err", err)
	}
	return s
}

func (p *persistence) SaveSettings(s settings.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode settings: %w", err)
	}
	return p.write(DocSettings, data)
}

func (p *persistence) Reset() error {
	var errs []error
	for _, doc := range Documents {
		if err := p.d.Erase(string(doc)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("store: erase %s: %w", doc, err))
			continue
		}
		p.mu.Lock()
		p.written[doc] = erased
		p.mu.Unlock()
	}
	return errors.Join(errs...)
}

// ownWrite reports whether the document on disk is exactly what this
// process last wrote, so the change needs no reload.
func (p *persistence) ownWrite(doc Document) bool {
	p.mu.Lock()
	last, ok := p.written[doc]
	p.mu.Unlock()
	if !ok {
		return false
	}
	data, err := os.ReadFile(filepath.Join(p.basePath, string(doc)))
	if err != nil {
		return errors.Is(err, fs.ErrNotExist) && last == erased
	}
	return last != erased && md5.Sum(data) == last
}

// Documents live directly under the base path, one file per key.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

func documentForPath(base, path string) (Document, bool) {
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(base) {
		return "", false
	}
	name := Document(filepath.Base(path))
	for _, doc := range Documents {
		if doc == name {
			return doc, true
		}
	}
	return "", false
}
