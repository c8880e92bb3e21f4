// Package officegen writes Office Open XML documents.
package officegen

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"document-converter/internal/archive"
)

// DocxParagraph is one paragraph of a generated Word document
type DocxParagraph struct {
	Text string
	// HeadingLevel is 1-9 for headings, 0 for body text
	HeadingLevel int
	// SizePt is the body font size; 0 keeps the style default
	SizePt float64
}

// DocxWriter builds a simple DOCX document in memory
type DocxWriter struct {
	paragraphs []DocxParagraph
}

// NewDocxWriter creates an empty document
func NewDocxWriter() *DocxWriter {
	return &DocxWriter{}
}

// AddHeading appends a heading paragraph
func (w *DocxWriter) AddHeading(text string, level int) {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	w.paragraphs = append(w.paragraphs, DocxParagraph{Text: text, HeadingLevel: level})
}

// AddParagraph appends a body paragraph
func (w *DocxWriter) AddParagraph(text string, sizePt float64) {
	w.paragraphs = append(w.paragraphs, DocxParagraph{Text: text, SizePt: sizePt})
}

// Len returns the number of paragraphs
func (w *DocxWriter) Len() int {
	return len(w.paragraphs)
}

// Bytes returns the packaged document
func (w *DocxWriter) Bytes() ([]byte, error) {
	var body bytes.Buffer
	body.WriteString(xml.Header)
	body.WriteString(`<w:document xmlns:w="` + nsWordML + `"><w:body>`)
	for _, p := range w.paragraphs {
		writeParagraph(&body, p)
	}
	body.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>`)
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := archive.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(docxContentTypes)},
		{"_rels/.rels", []byte(docxRootRels)},
		{"word/_rels/document.xml.rels", []byte(docxDocumentRels)},
		{"word/document.xml", body.Bytes()},
		{"word/styles.xml", []byte(docxStyles())},
	}
	for _, part := range parts {
		if err := writePart(zw, part.name, part.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish DOCX: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func writeParagraph(w io.Writer, p DocxParagraph) {
	io.WriteString(w, "<w:p>")
	if p.HeadingLevel > 0 {
		fmt.Fprintf(w, `<w:pPr><w:pStyle w:val="Heading%d"/><w:spacing w:before="240" w:after="120"/></w:pPr>`, p.HeadingLevel)
	} else {
		io.WriteString(w, `<w:pPr><w:spacing w:after="120"/></w:pPr>`)
	}

	io.WriteString(w, "<w:r>")
	if p.HeadingLevel == 0 && p.SizePt > 0 {
		// sizes are in half-points
		fmt.Fprintf(w, `<w:rPr><w:sz w:val="%d"/></w:rPr>`, int(p.SizePt*2))
	}
	io.WriteString(w, `<w:t xml:space="preserve">`)
	xml.EscapeText(w, []byte(p.Text))
	io.WriteString(w, "</w:t></w:r></w:p>")
}

const nsWordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const docxRootRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const docxDocumentRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

func docxStyles() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:styles xmlns:w="` + nsWordML + `">`)
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/>` +
		`<w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>`)
	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`)
	for level := 1; level <= 9; level++ {
		size := 32 - 4*(level-1)
		if size < 22 {
			size = 22
		}
		fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="Heading%d"><w:name w:val="heading %d"/>`+
			`<w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:outlineLvl w:val="%d"/></w:pPr>`+
			`<w:rPr><w:b/><w:sz w:val="%d"/></w:rPr></w:style>`, level, level, level-1, size)
	}
	b.WriteString(`</w:styles>`)
	return b.String()
}
