// Package settings holds the process-wide appearance preferences.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type Background string

const (
	BackgroundMinimal  Background = "minimal"
	BackgroundAurora   Background = "aurora"
	BackgroundMidnight Background = "midnight"
	BackgroundSunset   Background = "sunset"
)

type Font string

const (
	FontSans  Font = "sans"
	FontSerif Font = "serif"
	FontMono  Font = "mono"
)

type Blur string

const (
	BlurLow    Blur = "low"
	BlurMedium Blur = "medium"
	BlurHigh   Blur = "high"
)

type DockSize string

const (
	DockSmall  DockSize = "small"
	DockMedium DockSize = "medium"
	DockLarge  DockSize = "large"
)

// Bounds for the numeric settings, in pixels.
const (
	MinRounding = 0
	MaxRounding = 40
	MinGap      = 12
	MaxGap      = 48
)

var (
	Backgrounds = []Background{BackgroundMinimal, BackgroundAurora, BackgroundMidnight, BackgroundSunset}
	Fonts       = []Font{FontSans, FontSerif, FontMono}
	Blurs       = []Blur{BlurLow, BlurMedium, BlurHigh}
	DockSizes   = []DockSize{DockSmall, DockMedium, DockLarge}
)

// Settings is the appearance record. It is independent of spaces.
type Settings struct {
	Background   Background `json:"background"`
	TileRounding int        `json:"tileRounding"`
	GridGap      int        `json:"gridGap"`
	Font         Font       `json:"font"`
	BlurStrength Blur       `json:"blurStrength"`
	DockSize     DockSize   `json:"dockSize"`
	ShowDate     bool       `json:"showDate"`
	UserName     string     `json:"userName"`
}

// Defaults is the record used when nothing is stored.
func Defaults() Settings {
	return Settings{
		Background:   BackgroundMinimal,
		TileRounding: 32,
		GridGap:      24,
		Font:         FontSans,
		BlurStrength: BlurMedium,
		DockSize:     DockMedium,
		ShowDate:     true,
		UserName:     "",
	}
}

// Decode merges stored JSON over Defaults, so fields missing from older
// records keep their default. Enum values outside their set are reset to the
// default and numbers are clamped into range.
func Decode(data []byte) (Settings, error) {
	s := Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("settings: decode: %w", err)
	}
	return s.normalize(), nil
}

func (s Settings) normalize() Settings {
	d := Defaults()
	if !oneOf(Backgrounds, s.Background) {
		s.Background = d.Background
	}
	if !oneOf(Fonts, s.Font) {
		s.Font = d.Font
	}
	if !oneOf(Blurs, s.BlurStrength) {
		s.BlurStrength = d.BlurStrength
	}
	if !oneOf(DockSizes, s.DockSize) {
		s.DockSize = d.DockSize
	}
	s.TileRounding = clamp(s.TileRounding, MinRounding, MaxRounding)
	s.GridGap = clamp(s.GridGap, MinGap, MaxGap)
	return s
}

// Keys lists the names Set accepts, sorted.
func Keys() []string {
	keys := []string{"background", "tileRounding", "gridGap", "font", "blurStrength", "dockSize", "showDate", "userName"}
	sort.Strings(keys)
	return keys
}

// Set returns a copy with one field changed. Keys match the JSON names and
// are case-insensitive.
func (s Settings) Set(key, value string) (Settings, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "background":
		v := Background(strings.ToLower(value))
		if !oneOf(Backgrounds, v) {
			return s, fmt.Errorf("settings: background must be one of %v", Backgrounds)
		}
		s.Background = v
	case "tilerounding", "rounding":
		n, err := parseNumber(value, MinRounding, MaxRounding)
		if err != nil {
			return s, err
		}
		s.TileRounding = n
	case "gridgap", "gap":
		n, err := parseNumber(value, MinGap, MaxGap)
		if err != nil {
			return s, err
		}
		s.GridGap = n
	case "font":
		v := Font(strings.ToLower(value))
		if !oneOf(Fonts, v) {
			return s, fmt.Errorf("settings: font must be one of %v", Fonts)
		}
		s.Font = v
	case "blurstrength", "blur":
		v := Blur(strings.ToLower(value))
		if !oneOf(Blurs, v) {
			return s, fmt.Errorf("settings: blurStrength must be one of %v", Blurs)
		}
		s.BlurStrength = v
	case "docksize", "dock":
		v := DockSize(strings.ToLower(value))
		if !oneOf(DockSizes, v) {
			return s, fmt.Errorf("settings: dockSize must be one of %v", DockSizes)
		}
		s.DockSize = v
	case "showdate":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("settings: showDate: %w", err)
		}
		s.ShowDate = b
	case "username", "name":
		s.UserName = value
	default:
		return s, fmt.Errorf("settings: unknown key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return s, nil
}

// Fields returns the settings as ordered key/value strings for display.
func (s Settings) Fields() [][2]string {
	return [][2]string{
		{"background", string(s.Background)},
		{"tileRounding", strconv.Itoa(s.TileRounding)},
		{"gridGap", strconv.Itoa(s.GridGap)},
		{"font", string(s.Font)},
		{"blurStrength", string(s.BlurStrength)},
		{"dockSize", string(s.DockSize)},
		{"showDate", strconv.FormatBool(s.ShowDate)},
		{"userName", s.UserName},
	}
}

// Greeting is the header line shown when a user name is set.
func (s Settings) Greeting() string {
	if s.UserName == "" {
		return ""
	}
	return "Good Day, " + s.UserName
}

// Slider values may be fractional; they are clamped to [lo, hi] and then
// rounded to whole pixels. The clamp happens before the int conversion,
// which is undefined for floats outside the int range.
func parseNumber(raw string, lo, hi int) (int, error) {
	f, err := strconv.ParseFloat(raw, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		// Overflow comes back as ±Inf and clamps like any large value.
	case err != nil, math.IsNaN(f), math.IsInf(f, 0):
		return 0, fmt.Errorf("settings: %q is not a number", raw)
	}
	f = math.Max(float64(lo), math.Min(float64(hi), f))
	return int(math.Round(f)), nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func oneOf[T comparable](set []T, v T) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}
