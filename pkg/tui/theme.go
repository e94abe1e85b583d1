package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/tiles/pkg/settings"
)

var accents = map[string]string{
	"blue":    "#3B82F6",
	"orange":  "#F97316",
	"emerald": "#10B981",
	"rose":    "#F43F5E",
	"violet":  "#8B5CF6",
	"amber":   "#F59E0B",
	"cyan":    "#06B6D4",
	"pink":    "#EC4899",
}

// backdrop colours per background setting, light then dark.
var backdrops = map[settings.Background][2]string{
	settings.BackgroundMinimal:  {"#F2F2F7", "#000000"},
	settings.BackgroundAurora:   {"#E0E7FF", "#1E1B4B"},
	settings.BackgroundMidnight: {"#E2E8F0", "#020617"},
	settings.BackgroundSunset:   {"#FFEDD5", "#431407"},
}

var blurAlpha = map[settings.Blur]float64{
	settings.BlurLow:    0.5,
	settings.BlurMedium: 0.7,
	settings.BlurHigh:   0.8,
}

var iconGlyphs = map[string]string{
	"home":      "⌂",
	"briefcase": "◧",
	"coffee":    "♨",
	"folder":    "▤",
	"plane":     "✈",
	"code":      "‹›",
	"music":     "♪",
	"gamepad":   "◎",
	"book":      "▥",
	"heart":     "♥",
	"zap":       "ϟ",
	"globe":     "◍",
	"smile":     "☺",
	"settings":  "⚙",
}

func iconGlyph(name string) string {
	if g, ok := iconGlyphs[name]; ok {
		return g
	}
	return iconGlyphs["folder"]
}

// Palette is the resolved set of colours and styles for one frame.
type Palette struct {
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Border

	// GapX and GapY are the grid gutters in cells.
	GapX int
	GapY int
	// DockPad is horizontal padding around dock items.
	DockPad int

	Title   lipgloss.Style
	Body    lipgloss.Style
	Faint   lipgloss.Style
	Strong  lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Overlay lipgloss.Style
}

func hexOr(hex, fallback string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(fallback)
	}
	return c
}

// NewPalette resolves the palette for a space theme under the current
// settings and dark-mode flag. Blur strength sets how far tile chrome is
// blended from the backdrop toward the surface colour.
func NewPalette(theme string, s settings.Settings, dark bool) Palette {
	accentHex, ok := accents[theme]
	if !ok {
		accentHex = accents["blue"]
	}
	accent := hexOr(accentHex, accents["blue"])

	pair, ok := backdrops[s.Background]
	if !ok {
		pair = backdrops[settings.BackgroundMinimal]
	}
	mode := 0
	text, muted, surface := "#111827", "#6B7280", "#FFFFFF"
	if dark {
		mode = 1
		text, muted, surface = "#F9FAFB", "#9CA3AF", "#1C1C1E"
	}
	backdrop := hexOr(pair[mode], "#000000")
	alpha, ok := blurAlpha[s.BlurStrength]
	if !ok {
		alpha = blurAlpha[settings.BlurMedium]
	}
	chrome := backdrop.BlendLab(hexOr(muted, "#6B7280"), alpha)
	surfaceColor := backdrop.BlendLab(hexOr(surface, "#FFFFFF"), alpha)

	border := lipgloss.RoundedBorder()
	if s.TileRounding == 0 {
		border = lipgloss.NormalBorder()
	} else if s.TileRounding >= 36 {
		border = lipgloss.ThickBorder()
	}

	gapX := s.GridGap / 12
	if gapX < 1 {
		gapX = 1
	}
	gapY := gapX / 2

	dockPad := 1
	switch s.DockSize {
	case settings.DockSmall:
		dockPad = 0
	case settings.DockLarge:
		dockPad = 2
	}

	p := Palette{
		Accent:  lipgloss.Color(accent.Hex()),
		Text:    lipgloss.Color(text),
		Muted:   lipgloss.Color(chrome.Hex()),
		Surface: lipgloss.Color(surfaceColor.Hex()),
		Border:  border,
		GapX:    gapX,
		GapY:    gapY,
		DockPad: dockPad,
	}
	p.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	p.Body = lipgloss.NewStyle().Foreground(p.Text)
	p.Faint = lipgloss.NewStyle().Foreground(lipgloss.Color(muted))
	p.Strong = lipgloss.NewStyle().Bold(true).Foreground(p.Text)
	p.Status = lipgloss.NewStyle().Foreground(lipgloss.Color(muted))
	p.Error = lipgloss.NewStyle().Foreground(lipgloss.Color(accents["rose"]))
	p.Overlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)
	return p
}

// tileFrame is the box style for a tile of the given outer size.
func (p Palette) tileFrame(width, height int, focused, ghost bool) lipgloss.Style {
	border := p.Border
	color := p.Muted
	if ghost {
		border = lipgloss.HiddenBorder()
		if focused {
			border = lipgloss.NormalBorder()
		}
	}
	if focused {
		color = p.Accent
	}
	// lipgloss sizes exclude the border.
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Padding(0, 1).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		MaxHeight(height)
}
