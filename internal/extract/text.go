package extract

import (
	"strings"

	"document-converter/internal/layout"
	"document-converter/internal/textconv"
)

const maxMarkdownLevel = 6

// PlainText turns every non-blank line into a paragraph
func PlainText(data []byte) ([]layout.Block, error) {
	var blocks []layout.Block
	for _, line := range textconv.Lines(textconv.DecodeText(data)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, layout.Paragraph(line))
	}
	return requireContent(blocks)
}

// Markdown maps "#" headings to heading blocks and list items to bulleted
// paragraphs. Other lines become paragraphs; inline markup is kept as is.
func Markdown(data []byte) ([]layout.Block, error) {
	var blocks []layout.Block
	inFence := false

	for _, line := range textconv.Lines(textconv.DecodeText(data)) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if trimmed == "" {
			continue
		}
		if inFence {
			blocks = append(blocks, layout.Paragraph(line))
			continue
		}

		if level, text, ok := markdownHeading(trimmed); ok {
			blocks = append(blocks, layout.Heading(text, level))
			continue
		}
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			blocks = append(blocks, layout.Paragraph("• "+strings.TrimSpace(trimmed[2:])))
			continue
		}
		blocks = append(blocks, layout.Paragraph(trimmed))
	}
	return requireContent(blocks)
}

func markdownHeading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxMarkdownLevel {
		return 0, "", false
	}
	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimSpace(rest), true
}
