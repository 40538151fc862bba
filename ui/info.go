package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/game"
)

// InfoData is what the info panel displays.
type InfoData struct {
	Info     game.Info
	Color    rl.Color
	Selected bool
}

func infoText(get func(game.Info) string) func(any) string {
	return func(d any) string { return get(d.(InfoData).Info) }
}

func hasSelection(d any) bool { return d.(InfoData).Selected }

// InfoPanelDescriptor lays out the selected entity's reference and
// simulation figures.
func InfoPanelDescriptor(width int32) PanelDescriptor {
	return PanelDescriptor{
		ID:    "info",
		Title: "Selection",
		Width: width,
		Sections: []SectionDescriptor{
			{
				ID: "empty",
				Fields: []FieldDescriptor{{
					ID: "hint", Label: "Status", Widget: WidgetText,
					TextGetter: func(any) string { return "click a body or ring" },
				}},
				Visible: func(d any) bool { return !hasSelection(d) },
			},
			{
				ID: "identity",
				Fields: []FieldDescriptor{
					{ID: "name", Label: "Name", Widget: WidgetText, TextGetter: infoText(func(i game.Info) string { return i.Name })},
					{ID: "color", Label: "Color", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return d.(InfoData).Color }},
				},
				Visible: hasSelection,
			},
			{
				ID:    "reference",
				Title: "Reference",
				Fields: []FieldDescriptor{
					{ID: "real_distance", Label: "Distance", Widget: WidgetText, TextGetter: infoText(func(i game.Info) string { return i.RealDistance })},
					{ID: "real_radius", Label: "Radius", Widget: WidgetText, TextGetter: infoText(func(i game.Info) string { return i.RealRadius })},
					{ID: "period", Label: "Orbital period", Widget: WidgetText, TextGetter: infoText(func(i game.Info) string { return i.OrbitalPeriod })},
				},
				Visible: hasSelection,
			},
			{
				ID:    "simulation",
				Title: "Simulation",
				Fields: []FieldDescriptor{
					{ID: "sim_radius", Label: "Radius", Widget: WidgetText, TextGetter: infoText(func(i game.Info) string { return i.SimRadius })},
					{ID: "sim_distance", Label: "Distance", Widget: WidgetText, TextGetter: infoText(func(i game.Info) string { return i.SimDistance })},
					{ID: "sim_speed", Label: "Speed", Widget: WidgetText, TextGetter: infoText(func(i game.Info) string { return i.SimSpeed })},
				},
				Visible: hasSelection,
			},
		},
	}
}

// InfoPanel renders the selection info in the top-right corner.
type InfoPanel struct {
	renderer *Renderer
	desc     PanelDescriptor
	margin   int32
}

// NewInfoPanel creates an info panel of the given width.
func NewInfoPanel(width int32) *InfoPanel {
	return &InfoPanel{
		renderer: NewRenderer(),
		desc:     InfoPanelDescriptor(width),
		margin:   10,
	}
}

// Bounds returns the panel rectangle for the given data and screen width.
func (p *InfoPanel) Bounds(screenWidth int32, data InfoData) rl.Rectangle {
	h := p.renderer.MeasurePanel(p.desc, data)
	return rl.Rectangle{
		X:      float32(screenWidth - p.desc.Width - p.margin),
		Y:      float32(p.margin),
		Width:  float32(p.desc.Width),
		Height: float32(h),
	}
}

// Draw renders the panel.
func (p *InfoPanel) Draw(screenWidth int32, data InfoData) {
	b := p.Bounds(screenWidth, data)
	p.renderer.DrawPanelDescriptor(int32(b.X), int32(b.Y), p.desc, data)
}
