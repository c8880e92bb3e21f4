package layout

import "fmt"

// Color is an RGB text color
type Color struct {
	R, G, B uint8
}

// Common colors
var (
	Black  = Color{0, 0, 0}
	Grey   = Color{128, 128, 128}
	Accent = Color{0x7A, 0x74, 0x23}
)

// Geometry describes the page and base typography for one document.
// All lengths are in PDF points.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64

	FontFamily string
	FontSize   float64

	// LineHeight and HeadingLineHeight are multipliers of the font size
	LineHeight        float64
	HeadingLineHeight float64

	TitleFontSize  float64
	MinHeadingSize float64
}

// A4 returns an A4 portrait geometry with 50pt margins and 12pt Helvetica
func A4() Geometry {
	return Geometry{
		Width:             595.28,
		Height:            841.89,
		Margin:            50,
		FontFamily:        "Helvetica",
		FontSize:          12,
		LineHeight:        1.5,
		HeadingLineHeight: 1.3,
		TitleFontSize:     18,
		MinHeadingSize:    12,
	}
}

// Letter returns a US Letter portrait geometry with the A4 typography
func Letter() Geometry {
	g := A4()
	g.Width = 612
	g.Height = 792
	return g
}

// ContentWidth is the usable line width between the margins
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// Top is the Y position of the first line on a page
func (g Geometry) Top() float64 {
	return g.Height - g.Margin
}

// Validate checks that the geometry leaves room for at least one line
func (g Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("page size must be positive, got %.2fx%.2f", g.Width, g.Height)
	case g.Margin < 0:
		return fmt.Errorf("margin must not be negative, got %.2f", g.Margin)
	case g.ContentWidth() <= 0 || g.Top() < g.Margin:
		return fmt.Errorf("margin %.2f leaves no room on a %.2fx%.2f page", g.Margin, g.Width, g.Height)
	case g.FontSize <= 0:
		return fmt.Errorf("font size must be positive, got %.2f", g.FontSize)
	case g.LineHeight <= 0 || g.HeadingLineHeight <= 0:
		return fmt.Errorf("line height multipliers must be positive")
	case g.FontFamily == "":
		return fmt.Errorf("font family is required")
	}
	return nil
}

// HeadingSize returns the font size for a heading level. Level 1 is 24pt and
// each level below it is 3pt smaller, never going under MinHeadingSize.
func (g Geometry) HeadingSize(level int) float64 {
	if level < 1 {
		level = 1
	}
	size := 24 - 3*float64(level-1)
	if size < g.MinHeadingSize {
		size = g.MinHeadingSize
	}
	return size
}
