package util

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"document-converter/internal/model"
)

// CreateTestDocument creates a test document with the given name and content
func CreateTestDocument(name string, content string) *model.Document {
	doc := model.NewDocument(name, []byte(content))
	doc.ID = "test-doc"
	return doc
}

// CreateTestPDF builds an A4 PDF with one page per text. Each text is written
// line by line in 12pt Helvetica.
func CreateTestPDF(pageTexts ...string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for _, text := range pageTexts {
		pdf.AddPage()
		pdf.MultiCell(0, 16, text, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build test PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateTestPNG encodes a w x h image filled with c
func CreateTestPNG(w, h int, c color.Color) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, filledImage(w, h, c)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CreateTestJPEG encodes a w x h image filled with c
func CreateTestJPEG(w, h int, c color.Color) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, filledImage(w, h, c), &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func filledImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
