package layout

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Render writes the layout as a PDF. Each page of the layout becomes one page
// of the given geometry.
func Render(l *Layout, g Geometry, w io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("document-converter", true)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range l.Pages {
		pdf.AddPage()
		for _, in := range page.Instructions {
			pdf.SetFont(g.FontFamily, fontStyle(in.Bold), in.FontSize)
			pdf.SetTextColor(int(in.Color.R), int(in.Color.G), int(in.Color.B))
			// gofpdf measures Y from the top edge
			pdf.Text(in.X, g.Height-in.Y, translate(in.Text))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// ComposeAndRender composes blocks with a fresh font measurer and renders the
// result
func ComposeAndRender(blocks []Block, g Geometry, w io.Writer) (*Layout, error) {
	m, err := NewFontMeasurer(g.FontFamily)
	if err != nil {
		return nil, err
	}
	l, err := Compose(blocks, g, m)
	if err != nil {
		return nil, err
	}
	if err := Render(l, g, w); err != nil {
		return nil, err
	}
	return l, nil
}
