// Package extract turns uploaded documents into layout blocks.
//
// Each extractor reads one format with the matching library and describes the
// content as an ordered list of layout.Block values. Extractors never lay text
// out themselves; that is left to layout.Compose.
package extract

import (
	"errors"

	"document-converter/internal/layout"
)

// ErrNoContent is returned when a document parses but yields nothing to draw
var ErrNoContent = errors.New("could not extract content")

// Extractor produces blocks from a document's bytes
type Extractor interface {
	Extract(data []byte) ([]layout.Block, error)
}

// Func adapts a plain function to the Extractor interface
type Func func(data []byte) ([]layout.Block, error)

// Extract calls f
func (f Func) Extract(data []byte) ([]layout.Block, error) {
	return f(data)
}

// HasContent reports whether any block has something to draw
func HasContent(blocks []layout.Block) bool {
	for _, b := range blocks {
		if !b.IsBlank() {
			return true
		}
	}
	return false
}

func requireContent(blocks []layout.Block) ([]layout.Block, error) {
	if !HasContent(blocks) {
		return nil, ErrNoContent
	}
	return blocks, nil
}
