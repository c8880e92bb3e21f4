package layout

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	headingGapBefore = 0.5
	headingGapAfter  = 0.3
)

// Instruction is one positioned, styled line of text. Coordinates use the PDF
// convention: origin at the bottom-left corner, Y increasing upward.
type Instruction struct {
	Text     string
	X        float64
	Y        float64
	FontSize float64
	Bold     bool
	Color    Color
}

// Page is the ordered list of lines drawn on one page
type Page struct {
	Index        int
	Instructions []Instruction
}

// Layout is the composed document
type Layout struct {
	Pages []Page
}

// InstructionCount returns the number of lines across all pages
func (l *Layout) InstructionCount() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p.Instructions)
	}
	return n
}

type style struct {
	size       float64
	bold       bool
	color      Color
	lineHeight float64
	heading    bool
}

// cursor is the mutable position state for one Compose call
type cursor struct {
	geometry Geometry
	pages    []Page
	y        float64
}

func (c *cursor) current() *Page {
	return &c.pages[len(c.pages)-1]
}

func (c *cursor) newPage() {
	c.pages = append(c.pages, Page{Index: len(c.pages)})
	c.y = c.geometry.Top()
}

func (c *cursor) emit(text string, s style) {
	if c.y < c.geometry.Margin {
		c.newPage()
	}
	page := c.current()
	page.Instructions = append(page.Instructions, Instruction{
		Text:     text,
		X:        c.geometry.Margin,
		Y:        c.y,
		FontSize: s.size,
		Bold:     s.bold,
		Color:    s.color,
	})
	c.y -= s.lineHeight
}

// Compose lays blocks out onto pages of the given geometry. Text is wrapped at
// word boundaries to fit between the margins and a new page is started
// whenever the next line would fall below the bottom margin. A word wider
// than the line is placed on its own line without being split.
//
// Compose keeps no state between calls. The only error it returns comes from
// the measurer or an unusable geometry.
func Compose(blocks []Block, g Geometry, m Measurer) (*Layout, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid page geometry: %w", err)
	}

	c := &cursor{geometry: g}
	c.newPage()

	for _, block := range blocks {
		if block.Kind == KindPageBreak {
			if len(c.current().Instructions) > 0 {
				c.newPage()
			}
			continue
		}
		if block.IsBlank() {
			continue
		}

		s := styleFor(block, g)
		lines, err := wrap(tokenize(block.Content()), s, g.ContentWidth(), m)
		if err != nil {
			return nil, err
		}

		if s.heading && len(c.current().Instructions) > 0 {
			c.y -= s.lineHeight * headingGapBefore
		}
		for _, line := range lines {
			c.emit(line, s)
		}
		if s.heading {
			c.y -= s.lineHeight * headingGapAfter
		}
	}

	return &Layout{Pages: c.pages}, nil
}

func styleFor(b Block, g Geometry) style {
	switch b.Kind {
	case KindTitle:
		return style{
			size:       g.TitleFontSize,
			bold:       true,
			color:      Accent,
			lineHeight: g.TitleFontSize * g.HeadingLineHeight,
			heading:    true,
		}
	case KindHeading:
		size := g.HeadingSize(b.Level)
		return style{
			size:       size,
			bold:       true,
			color:      Black,
			lineHeight: size * g.HeadingLineHeight,
			heading:    true,
		}
	case KindNote:
		return style{size: g.FontSize, color: Grey, lineHeight: g.FontSize * g.LineHeight}
	default:
		return style{size: g.FontSize, color: Black, lineHeight: g.FontSize * g.LineHeight}
	}
}

// token is a word and the run of spaces that preceded it
type token struct {
	gap  string
	word string
}

// tokenize splits text into words, keeping each inner whitespace run as that
// many spaces. Leading and trailing whitespace is dropped.
func tokenize(text string) []token {
	var (
		tokens []token
		gap    int
		word   strings.Builder
	)
	flush := func() {
		if word.Len() == 0 {
			return
		}
		if len(tokens) == 0 {
			gap = 0
		}
		tokens = append(tokens, token{gap: strings.Repeat(" ", gap), word: word.String()})
		word.Reset()
		gap = 0
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			flush()
			gap++
			continue
		}
		word.WriteRune(r)
	}
	flush()
	return tokens
}

// wrap greedily packs words into lines no wider than maxWidth. The spacing
// between words on a line is kept; a break drops the spaces at the break.
func wrap(tokens []token, s style, maxWidth float64, m Measurer) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var lines []string
	line := tokens[0].word
	for _, tok := range tokens[1:] {
		candidate := line + tok.gap + tok.word
		width, err := m.TextWidth(candidate, s.size, s.bold)
		if err != nil {
			return nil, fmt.Errorf("failed to measure text: %w", err)
		}
		if width > maxWidth {
			lines = append(lines, line)
			line = tok.word
			continue
		}
		line = candidate
	}
	return append(lines, line), nil
}
