package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"document-converter/internal/apperr"
	"document-converter/internal/config"
	"document-converter/internal/imaging"
	"document-converter/internal/util"
)

const (
	imagePageWidth  = 612
	imagePageHeight = 792
	imagePageMargin = 20
	combinedPDFName = "images_combined.pdf"
)

// JPEGConverter implements jpg-to-pdf. Every image is optimised and placed
// centred on its own Letter page.
type JPEGConverter struct {
	base
	images config.ImagesConfig
}

// NewJPEGConverter creates a new image converter
func NewJPEGConverter(images config.ImagesConfig, logger logrus.FieldLogger) *JPEGConverter {
	return &JPEGConverter{
		base: newBase(Info{
			Kind:        KindJPGToPDF,
			Description: "Combine JPEG or PNG images into a PDF",
			Extensions:  []string{".jpg", ".jpeg", ".png"},
			MinFiles:    1,
			ToPDF:       true,
		}, logger),
		images: images,
	}
}

// Convert implements Converter
func (c *JPEGConverter) Convert(ctx context.Context, req *Request) (*Result, error) {
	optimized, err := c.optimizeAll(ctx, req)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: imagePageWidth, Ht: imagePageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("document-converter", true)

	maxW := float64(imagePageWidth - 2*imagePageMargin)
	maxH := float64(imagePageHeight - 2*imagePageMargin)
	opts := gofpdf.ImageOptions{ImageType: "JPG"}

	for i, img := range optimized {
		name := fmt.Sprintf("image-%d", i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))

		w, h := util.FitWithin(float64(img.Width), float64(img.Height), maxW, maxH)
		x := (imagePageWidth - w) / 2
		y := (imagePageHeight - h) / 2

		pdf.AddPage()
		pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, c.failed(err)
	}

	name := combinedPDFName
	if len(req.Files) == 1 {
		name = util.OutputName(req.First().Name, "", ".pdf")
	}
	c.logger.WithFields(logrus.Fields{"images": len(optimized), "size": buf.Len()}).Info("Combined images into PDF")
	return newResult(name, buf.Bytes()), nil
}

// optimizeAll resizes the uploads in parallel. Results keep upload order and
// the first failure cancels the remaining work.
func (c *JPEGConverter) optimizeAll(ctx context.Context, req *Request) ([]*imaging.Image, error) {
	out := make([]*imaging.Image, len(req.Files))
	g, ctx := errgroup.WithContext(ctx)

	for i, doc := range req.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := imaging.Optimize(doc.Data, c.images.MaxWidth, c.images.JPEGQuality)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.Name, err)
			}
			out[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, imaging.ErrTooLarge) {
			return nil, apperr.Wrap(err, apperr.CodeFileTooLarge, "image dimensions exceed the supported size")
		}
		return nil, c.failed(err)
	}
	return out, nil
}
