package renderer

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// fallbackColor is used for hex strings that fail to parse.
var fallbackColor = colorful.Color{R: 0.8, G: 0.8, B: 0.8}

// Palette converts configured hex colours to raylib colours, caching the
// parsed result per string.
type Palette struct {
	parsed map[string]colorful.Color
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{parsed: make(map[string]colorful.Color)}
}

func (p *Palette) lookup(hex string) colorful.Color {
	if c, ok := p.parsed[hex]; ok {
		return c
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		slog.Warn("invalid_color", "hex", hex, "error", err)
		c = fallbackColor
	}
	p.parsed[hex] = c
	return c
}

// Color returns the opaque raylib colour for hex.
func (p *Palette) Color(hex string) rl.Color {
	return toRL(p.lookup(hex), 255)
}

// Guide returns a darkened, translucent version of hex for orbit guides.
func (p *Palette) Guide(hex string) rl.Color {
	c := p.lookup(hex).BlendLab(colorful.Color{}, 0.45)
	return toRL(c.Clamped(), 140)
}

// Highlight returns a brightened version of hex for selection outlines.
func (p *Palette) Highlight(hex string) rl.Color {
	c := p.lookup(hex).BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.6)
	return toRL(c.Clamped(), 220)
}

// CometColor shades a comet from icy blue to pale gold as it ages.
// t is the fraction of the comet's lifetime already spent.
func CometColor(t float64, alpha uint8) rl.Color {
	t = math.Max(0, math.Min(1, t))
	c := colorful.Hcl(210-150*t, 0.35, 0.92).Clamped()
	return toRL(c, alpha)
}

func toRL(c colorful.Color, alpha uint8) rl.Color {
	r, g, b := c.RGB255()
	return rl.Color{R: r, G: g, B: b, A: alpha}
}
