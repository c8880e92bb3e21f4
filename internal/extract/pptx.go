package extract

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabula/pptx"

	"document-converter/internal/layout"
	"document-converter/internal/util"
)

// EmptySlideNote is drawn on slides that carry no text
const EmptySlideNote = "(Slide has no text content)"

// Presentation extracts a PPTX deck. Every slide starts a new page titled
// "Slide N", followed by the slide title, its text paragraphs and table rows.
func Presentation(data []byte) ([]layout.Block, error) {
	var blocks []layout.Block

	err := util.WithTempFile(data, "upload-*.pptx", func(path string) error {
		r, err := pptx.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open PPTX: %w", err)
		}
		defer r.Close()

		for i := 0; i < r.SlideCount(); i++ {
			slide, err := r.Slide(i)
			if err != nil {
				return fmt.Errorf("failed to read slide %d: %w", i+1, err)
			}
			blocks = append(blocks, slideBlocks(slide, i+1)...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(blocks) == 0 {
		return nil, ErrNoContent
	}
	return blocks, nil
}

func slideBlocks(slide *pptx.Slide, number int) []layout.Block {
	blocks := []layout.Block{
		layout.PageBreak(),
		layout.Title(fmt.Sprintf("Slide %d", number)),
	}

	hasText := false
	if title := strings.TrimSpace(slide.Title); title != "" {
		blocks = append(blocks, layout.Heading(title, 2))
		hasText = true
	}

	for _, tb := range slide.Content {
		if tb.IsTitle {
			continue
		}
		for _, p := range tb.Paragraphs {
			text := strings.TrimSpace(p.Text)
			if text == "" {
				continue
			}
			if p.IsBullet || p.IsNumbered {
				text = "• " + text
			}
			blocks = append(blocks, layout.Paragraph(text))
			hasText = true
		}
	}

	for _, table := range slide.Tables {
		for _, row := range table.Rows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				if cell.IsMerged {
					continue
				}
				cells = append(cells, cell.Text)
			}
			b := layout.Row(cells...)
			if !b.IsBlank() {
				hasText = true
			}
			blocks = append(blocks, b)
		}
	}

	if !hasText {
		blocks = append(blocks, layout.Note(EmptySlideNote))
	}
	return blocks
}
