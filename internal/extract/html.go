package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"document-converter/internal/layout"
)

const (
	htmlContentSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, tr, div"
	htmlNestedSelector  = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, tr, div, table"
)

// HTML extracts the title, headings, text blocks and table rows of an HTML
// page in document order. Scripts, styles and navigation chrome are ignored.
// Pages without any structured markup fall back to their whole body text.
func HTML(data []byte) ([]layout.Block, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript, nav").Remove()

	var blocks []layout.Block
	if title := collapseSpace(doc.Find("title").First().Text()); title != "" {
		blocks = append(blocks, layout.Title(title))
	}

	var body []layout.Block
	doc.Find(htmlContentSelector).Each(func(_ int, sel *goquery.Selection) {
		// text of nested matches is already part of the enclosing block
		if sel.ParentsFiltered(htmlContentSelector).Not("div").Length() > 0 {
			return
		}

		name := goquery.NodeName(sel)
		switch {
		case name == "div":
			// only innermost divs carry loose text
			if sel.Find(htmlNestedSelector).Length() > 0 {
				return
			}
			body = append(body, layout.Paragraph(collapseSpace(sel.Text())))
		case name == "tr":
			var cells []string
			sel.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, collapseSpace(cell.Text()))
			})
			body = append(body, layout.Row(cells...))
		case len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6':
			body = append(body, layout.Heading(collapseSpace(sel.Text()), int(name[1]-'0')))
		default:
			text := collapseSpace(sel.Text())
			if name == "li" && text != "" {
				text = "• " + text
			}
			body = append(body, layout.Paragraph(text))
		}
	})

	if !HasContent(body) {
		body = nil
		if text := collapseSpace(doc.Find("body").Text()); text != "" {
			body = append(body, layout.Paragraph(text))
		}
	}
	return requireContent(append(blocks, body...))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
