// Package imaging resizes uploaded images and draws placeholder page images.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// MaxPixels bounds the decoded size of an uploaded image
	MaxPixels = 40_000_000
	// MaxPlaceholderSide bounds the longer side of a placeholder image
	MaxPlaceholderSide = 2400
)

// ErrTooLarge is returned for images above MaxPixels
var ErrTooLarge = errors.New("image is too large")

// Image is an encoded JPEG and its pixel size
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Optimize decodes a JPEG or PNG, shrinks it to maxWidth if it is wider and
// re-encodes it as JPEG. Images are never enlarged. Transparent areas are
// flattened onto white. Images above MaxPixels are rejected before decoding.
func Optimize(data []byte, maxWidth, quality int) (*Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	if maxWidth > 0 && w > maxWidth {
		h = h * maxWidth / w
		if h < 1 {
			h = 1
		}
		w = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w == b.Dx() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return &Image{Data: buf.Bytes(), Width: w, Height: h}, nil
}

// Placeholder draws a white page image of w x h pixels that names the page.
// Sizes whose longer side exceeds MaxPlaceholderSide are scaled down to it,
// keeping the aspect ratio.
func Placeholder(page, total, w, h int) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid placeholder size %dx%d", w, h)
	}
	w, h = clampSize(w, h, MaxPlaceholderSide)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawText(img, fmt.Sprintf("Page %d of %d", page, total), 50, 50, 2)
	drawText(img, "PDF converted to image", 50, 90, 1)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

func clampSize(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, int(int64(h)*int64(limit)/int64(w)))
	}
	return max(1, int(int64(w)*int64(limit)/int64(h))), limit
}

// drawText writes text in black with its baseline at (x, y). The bitmap face
// is enlarged by an integer scale for bigger text.
func drawText(dst draw.Image, text string, x, y, scale int) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face, Src: image.NewUniform(color.Black)}
	width := d.MeasureString(text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	height := face.Metrics().Height.Ceil()

	glyphs := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(glyphs, glyphs.Bounds(), image.White, image.Point{}, draw.Src)
	d.Dst = glyphs
	d.Dot = fixed.P(0, ascent)
	d.DrawString(text)

	target := image.Rect(x, y-ascent*scale, x+width*scale, y+(height-ascent)*scale)
	draw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Src, nil)
}
