// Package ui provides a descriptor-driven UI for the morph viewer.
// Panels are described by field metadata so that new readouts can be added
// next to the data they display instead of in the drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetCenteredBar                   // Bar centered on zero over Range
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	Label      string
	Widget     WidgetType
	Format     string            // Printf format for numeric text
	Range      FieldRange        // Value range for centered bars
	Visible    func(any) bool    // nil = always visible
	Getter     func(any) float32 // Numeric value extractor
	TextGetter func(any) string  // Text value extractor, wins over Getter
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns a dark panel theme that reads on the light canvas.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 24, G: 24, B: 28, A: 225},
		PanelBorder:     rl.Color{R: 70, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Color{R: 240, G: 200, B: 90, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 45, G: 45, B: 50, A: 255},
		BarFill:         rl.Color{R: 110, G: 160, B: 210, A: 255},
		BarFillNegative: rl.Color{R: 210, G: 110, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 110, G: 200, B: 120, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      70,
		BarHeight:       10,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
