package layout

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Measurer reports the rendered width of text in points
type Measurer interface {
	TextWidth(text string, size float64, bold bool) (float64, error)
}

// FontMeasurer measures text with the core font metrics bundled in gofpdf.
// It is not safe for concurrent use; create one per document.
type FontMeasurer struct {
	pdf       *gofpdf.Fpdf
	family    string
	translate func(string) string
}

// NewFontMeasurer creates a measurer for a core font family such as
// Helvetica, Times or Courier
func NewFontMeasurer(family string) (*FontMeasurer, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont(family, "", 12)
	pdf.SetFont(family, "B", 12)
	if pdf.Err() {
		return nil, fmt.Errorf("failed to load font %q: %w", family, pdf.Error())
	}

	return &FontMeasurer{
		pdf:       pdf,
		family:    family,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}, nil
}

// TextWidth returns the width of text at the given size
func (m *FontMeasurer) TextWidth(text string, size float64, bold bool) (float64, error) {
	m.pdf.SetFont(m.family, fontStyle(bold), size)
	if m.pdf.Err() {
		return 0, fmt.Errorf("failed to set font %q at %.1fpt: %w", m.family, size, m.pdf.Error())
	}
	return m.pdf.GetStringWidth(m.translate(text)), nil
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}
