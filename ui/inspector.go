package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ParticleData is the readout for one selected particle.
type ParticleData struct {
	Index    int
	X, Y     float32
	VX, VY   float32
	Alpha    float32
	TargetX  float32
	TargetY  float32
	Distance float32
}

func particle(d any) *ParticleData { return d.(*ParticleData) }

// particleSections lays out the inspector panel.
var particleSections = []SectionDescriptor{
	{
		Title: "Position",
		Fields: []FieldDescriptor{
			{Label: "x", Widget: WidgetText, Format: "%+.4f", Getter: func(d any) float32 { return particle(d).X }},
			{Label: "y", Widget: WidgetText, Format: "%+.4f", Getter: func(d any) float32 { return particle(d).Y }},
		},
	},
	{
		Title: "Velocity",
		Fields: []FieldDescriptor{
			{Label: "vx", Widget: WidgetCenteredBar, Range: FieldRange{Min: -0.5, Max: 0.5}, Getter: func(d any) float32 { return particle(d).VX }},
			{Label: "vy", Widget: WidgetCenteredBar, Range: FieldRange{Min: -0.5, Max: 0.5}, Getter: func(d any) float32 { return particle(d).VY }},
		},
	},
	{
		Title: "Target",
		Fields: []FieldDescriptor{
			{Label: "at", Widget: WidgetText, TextGetter: func(d any) string {
				p := particle(d)
				return fmt.Sprintf("(%+.3f, %+.3f)", p.TargetX, p.TargetY)
			}},
			{Label: "distance", Widget: WidgetText, Format: "%.4f", Getter: func(d any) float32 { return particle(d).Distance }},
			{Label: "alpha", Widget: WidgetBar, Getter: func(d any) float32 { return particle(d).Alpha }},
		},
	},
}

// Inspector renders the selected particle panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel for the given particle.
func (ins *Inspector) Draw(data *ParticleData) {
	r := ins.renderer
	padding := r.Theme.Padding
	height := int32(13)*r.Theme.LineHeight + padding*2

	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x, y := ins.x+padding, ins.y+padding
	rl.DrawText(fmt.Sprintf("Particle #%d", data.Index), x, y, 16, rl.White)
	y += r.Theme.LineHeight + 6

	for _, sd := range particleSections {
		y = r.DrawSection(x, y, sd, data, ins.width-padding*2)
	}
}
