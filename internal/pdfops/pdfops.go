// Package pdfops manipulates existing PDF documents with pdfcpu.
package pdfops

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// newConfig returns a relaxed configuration. pdfcpu would otherwise create a
// config directory under the user's home on first use.
func newConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageSize is a page's media box size in points
type PageSize struct {
	Width  float64
	Height float64
}

func readContext(data []byte) (*model.Context, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}
	return ctx, nil
}

// PageCount returns the number of pages in a PDF
func PageCount(data []byte) (int, error) {
	ctx, err := readContext(data)
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// PageSizes returns the size of every page, in page order
func PageSizes(data []byte) ([]PageSize, error) {
	ctx, err := readContext(data)
	if err != nil {
		return nil, err
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page sizes: %w", err)
	}

	sizes := make([]PageSize, len(dims))
	for i, d := range dims {
		sizes[i] = PageSize{Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}

// Merge concatenates the documents in order
func Merge(docs [][]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("nothing to merge")
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfig()); err != nil {
		return nil, fmt.Errorf("failed to merge PDFs: %w", err)
	}
	return out.Bytes(), nil
}

// Split returns one single-page document per page of data
func Split(data []byte) ([][]byte, error) {
	ctx, err := readContext(data)
	if err != nil {
		return nil, err
	}

	pages := make([][]byte, 0, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		pageCtx, err := pdfcpu.ExtractPages(ctx, []int{i}, false)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d: %w", i, err)
		}

		var out bytes.Buffer
		if err := api.WriteContext(pageCtx, &out); err != nil {
			return nil, fmt.Errorf("failed to write page %d: %w", i, err)
		}
		pages = append(pages, out.Bytes())
	}
	return pages, nil
}

// Optimize rewrites a PDF with duplicate objects removed and streams
// compressed
func Optimize(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &out, newConfig()); err != nil {
		return nil, fmt.Errorf("failed to optimize PDF: %w", err)
	}
	return out.Bytes(), nil
}
