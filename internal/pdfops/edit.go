package pdfops

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"document-converter/internal/util"
)

// EditKind selects the annotation drawn by Edit
type EditKind string

// Supported edits
const (
	EditText      EditKind = "text"
	EditRectangle EditKind = "rectangle"
	EditCircle    EditKind = "circle"
)

const (
	rectWidth     = 100
	rectHeight    = 50
	circleRadius  = 25
	strokeWidth   = 2
	overlayDesc   = "scalefactor:1 abs, rotation:0"
	defaultColour = "#000000"
)

// EditOptions describes one annotation on the first page. X and Y are
// measured in points from the top-left corner of the page.
type EditOptions struct {
	Kind     EditKind
	Text     string
	X        float64
	Y        float64
	FontSize float64
	Color    string
}

// RGB is a parsed colour
type RGB struct {
	R, G, B int
}

// ParseHexColor parses "#rrggbb" or "rrggbb"
func ParseHexColor(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("colour %q must have the form #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("colour %q is not hexadecimal", s)
	}
	return RGB{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}, nil
}

// Validate checks the options before any PDF work is done
func (o EditOptions) Validate() error {
	switch o.Kind {
	case EditText:
		if strings.TrimSpace(o.Text) == "" {
			return fmt.Errorf("text is required for text edits")
		}
		if o.FontSize <= 0 {
			return fmt.Errorf("font size must be positive")
		}
	case EditRectangle, EditCircle:
	default:
		return fmt.Errorf("unsupported edit type %q", o.Kind)
	}
	if o.X < 0 || o.Y < 0 {
		return fmt.Errorf("coordinates must not be negative")
	}
	if _, err := ParseHexColor(o.colour()); err != nil {
		return err
	}
	return nil
}

func (o EditOptions) colour() string {
	if o.Color == "" {
		return defaultColour
	}
	return o.Color
}

// Edit draws the annotation on the first page of data. The annotation is
// rendered into a one-page overlay of the same size and stamped on top.
func Edit(data []byte, opts EditOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sizes, err := PageSizes(data)
	if err != nil {
		return nil, err
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	overlay, err := buildOverlay(sizes[0], opts)
	if err != nil {
		return nil, err
	}
	return Stamp(data, overlay, 1)
}

// Stamp places the first page of overlay on top of the given page of data
func Stamp(data, overlay []byte, page int) ([]byte, error) {
	var out bytes.Buffer

	// pdf watermarks are loaded by file name
	err := util.WithTempFile(overlay, "overlay-*.pdf", func(path string) error {
		wm, err := pdfcpu.ParsePDFWatermarkDetails(path, overlayDesc, true, types.POINTS)
		if err != nil {
			return fmt.Errorf("failed to load overlay: %w", err)
		}
		pages := []string{strconv.Itoa(page)}
		if err := api.AddWatermarks(bytes.NewReader(data), &out, pages, wm, newConfig()); err != nil {
			return fmt.Errorf("failed to stamp overlay: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func buildOverlay(size PageSize, opts EditOptions) ([]byte, error) {
	colour, err := ParseHexColor(opts.colour())
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	switch opts.Kind {
	case EditText:
		translate := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.SetFont("Helvetica", "", opts.FontSize)
		pdf.SetTextColor(colour.R, colour.G, colour.B)
		pdf.Text(opts.X, opts.Y, translate(opts.Text))
	case EditRectangle:
		pdf.SetDrawColor(colour.R, colour.G, colour.B)
		pdf.SetLineWidth(strokeWidth)
		pdf.Rect(opts.X, opts.Y, rectWidth, rectHeight, "D")
	case EditCircle:
		pdf.SetDrawColor(colour.R, colour.G, colour.B)
		pdf.SetLineWidth(strokeWidth)
		pdf.Circle(opts.X+circleRadius, opts.Y+circleRadius, circleRadius, "D")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build overlay: %w", err)
	}
	return buf.Bytes(), nil
}
