// Package layout lays extracted document content out onto fixed-size pages.
//
// Extractors describe a document as an ordered list of Blocks. Compose turns
// those blocks into positioned, styled lines of text grouped by page, and
// Render hands the result to the PDF writer.
package layout

import "strings"

// Kind identifies the variant of a Block
type Kind int

// Block kinds
const (
	KindTitle Kind = iota
	KindHeading
	KindParagraph
	KindRow
	KindNote
	KindPageBreak
)

// RowSeparator is placed between the cells of a Row block
const RowSeparator = "  |  "

// Block is one unit of extracted content. Blocks are produced by extractors
// and never modified afterwards.
type Block struct {
	Kind  Kind
	Text  string
	Level int
	Cells []string
}

// Title creates a document or section title block
func Title(text string) Block {
	return Block{Kind: KindTitle, Text: text}
}

// Heading creates a heading block; level 1 is the most prominent
func Heading(text string, level int) Block {
	return Block{Kind: KindHeading, Text: text, Level: level}
}

// Paragraph creates a body text block
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// Row creates a tabular row block
func Row(cells ...string) Block {
	copied := make([]string, len(cells))
	copy(copied, cells)
	return Block{Kind: KindRow, Cells: copied}
}

// Note creates a muted body text block
func Note(text string) Block {
	return Block{Kind: KindNote, Text: text}
}

// PageBreak starts a new page unless the current page is still empty
func PageBreak() Block {
	return Block{Kind: KindPageBreak}
}

// Content returns the text the block renders. Row cells are joined with
// RowSeparator.
func (b Block) Content() string {
	if b.Kind == KindRow {
		return strings.Join(b.Cells, RowSeparator)
	}
	return b.Text
}

// IsBlank reports whether the block has nothing to draw. A row is blank when
// every cell is blank.
func (b Block) IsBlank() bool {
	switch b.Kind {
	case KindPageBreak:
		return true
	case KindRow:
		for _, cell := range b.Cells {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
		return true
	default:
		return strings.TrimSpace(b.Text) == ""
	}
}
