package layout

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer treats every character as half the font size wide
type fixedMeasurer struct{}

func (fixedMeasurer) TextWidth(text string, size float64, bold bool) (float64, error) {
	return float64(len(text)) * size * 0.5, nil
}

type failingMeasurer struct{}

func (failingMeasurer) TextWidth(string, float64, bool) (float64, error) {
	return 0, errors.New("no metrics")
}

func narrowGeometry() Geometry {
	g := A4()
	g.Width = 200
	g.Height = 300
	g.Margin = 20
	return g
}

func allInstructions(l *Layout) []Instruction {
	var out []Instruction
	for _, p := range l.Pages {
		out = append(out, p.Instructions...)
	}
	return out
}

func TestCompose_EmptyInputHasOnePage(t *testing.T) {
	l, err := Compose(nil, A4(), fixedMeasurer{})
	require.NoError(t, err)
	require.Len(t, l.Pages, 1)
	assert.Empty(t, l.Pages[0].Instructions)
}

func TestCompose_SheetScenario(t *testing.T) {
	m, err := NewFontMeasurer("Helvetica")
	require.NoError(t, err)

	g := A4()
	blocks := []Block{Title("Sheet1"), Row("a", "b"), Row("c", "d")}
	l, err := Compose(blocks, g, m)
	require.NoError(t, err)

	require.Len(t, l.Pages, 1)
	ins := l.Pages[0].Instructions
	require.Len(t, ins, 3)

	assert.Equal(t, "Sheet1", ins[0].Text)
	assert.True(t, ins[0].Bold)
	assert.Equal(t, g.TitleFontSize, ins[0].FontSize)
	assert.Greater(t, ins[0].FontSize, g.FontSize)
	assert.Equal(t, g.Top(), ins[0].Y)

	assert.Equal(t, "a  |  b", ins[1].Text)
	assert.Equal(t, "c  |  d", ins[2].Text)
	for _, in := range ins[1:] {
		assert.False(t, in.Bold)
		assert.Equal(t, g.FontSize, in.FontSize)
		assert.Equal(t, Black, in.Color)
	}
	assert.Greater(t, ins[0].Y, ins[1].Y)
	assert.Greater(t, ins[1].Y, ins[2].Y)
}

func TestCompose_ShortParagraphIsOneLine(t *testing.T) {
	l, err := Compose([]Block{Paragraph("a short line of text")}, A4(), fixedMeasurer{})
	require.NoError(t, err)
	ins := allInstructions(l)
	require.Len(t, ins, 1)
	assert.Equal(t, "a short line of text", ins[0].Text)
	assert.Equal(t, A4().Margin, ins[0].X)
}

func TestCompose_LongParagraphWrapsAcrossPages(t *testing.T) {
	g := narrowGeometry()
	words := make([]string, 500)
	for i := range words {
		words[i] = []string{"alpha", "be", "gam", "delta", "e"}[i%5]
	}

	l, err := Compose([]Block{Paragraph(strings.Join(words, " "))}, g, fixedMeasurer{})
	require.NoError(t, err)
	assert.Greater(t, len(l.Pages), 1)

	var texts []string
	for _, in := range allInstructions(l) {
		width, _ := fixedMeasurer{}.TextWidth(in.Text, in.FontSize, in.Bold)
		assert.LessOrEqual(t, width, g.ContentWidth(), "line %q too wide", in.Text)
		texts = append(texts, in.Text)
	}
	assert.Equal(t, strings.Join(words, " "), strings.Join(texts, " "))
}

func TestCompose_KeepsInnerSpacing(t *testing.T) {
	l, err := Compose([]Block{
		Row("x  y", "", "z"),
		Paragraph("  indented\tand   spaced  "),
	}, A4(), fixedMeasurer{})
	require.NoError(t, err)

	ins := allInstructions(l)
	require.Len(t, ins, 2)
	assert.Equal(t, 2, l.InstructionCount())
	assert.Equal(t, "x  y  |    |  z", ins[0].Text)
	assert.Equal(t, "indented and   spaced", ins[1].Text)
}

func TestCompose_WrapDropsSpacesAtBreak(t *testing.T) {
	g := narrowGeometry()
	// 16 characters fit on a 160pt line at font size 20
	g.FontSize = 20

	l, err := Compose([]Block{Row("aaaaaaaa", "bbbbbbbb")}, g, fixedMeasurer{})
	require.NoError(t, err)

	var texts []string
	for _, in := range allInstructions(l) {
		texts = append(texts, in.Text)
	}
	assert.Equal(t, []string{"aaaaaaaa  |", "bbbbbbbb"}, texts)
}

func TestCompose_PageBreakInvariant(t *testing.T) {
	g := narrowGeometry()
	var blocks []Block
	for i := 0; i < 40; i++ {
		blocks = append(blocks, Heading("Section heading", 1+i%4), Paragraph("some words that will need wrapping on a narrow page"))
	}

	l, err := Compose(blocks, g, fixedMeasurer{})
	require.NoError(t, err)
	require.Greater(t, len(l.Pages), 1)

	for i, page := range l.Pages {
		assert.Equal(t, i, page.Index)
		require.NotEmpty(t, page.Instructions)
		for _, in := range page.Instructions {
			assert.GreaterOrEqual(t, in.Y, g.Margin)
			assert.LessOrEqual(t, in.Y, g.Top())
		}
		if i > 0 {
			assert.Equal(t, g.Top(), page.Instructions[0].Y)
		}
		for j := 1; j < len(page.Instructions); j++ {
			assert.Less(t, page.Instructions[j].Y, page.Instructions[j-1].Y)
		}
	}
}

func TestCompose_IsIdempotent(t *testing.T) {
	blocks := []Block{
		Title("Report"),
		Heading("Intro", 2),
		Paragraph(strings.Repeat("lorem ipsum dolor ", 80)),
		Row("x", "y", "z"),
		Note("done"),
	}
	first, err := Compose(blocks, narrowGeometry(), fixedMeasurer{})
	require.NoError(t, err)
	second, err := Compose(blocks, narrowGeometry(), fixedMeasurer{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGeometry_HeadingSizeOrdering(t *testing.T) {
	g := A4()
	for level := 1; level < 10; level++ {
		assert.GreaterOrEqual(t, g.HeadingSize(level), g.HeadingSize(level+1))
	}
	assert.Equal(t, 24.0, g.HeadingSize(1))
	assert.Equal(t, 21.0, g.HeadingSize(2))
	assert.Equal(t, g.MinHeadingSize, g.HeadingSize(9))
	assert.Equal(t, g.HeadingSize(1), g.HeadingSize(0))
}

func TestCompose_OverlongWordKeepsOwnLine(t *testing.T) {
	g := narrowGeometry()
	long := strings.Repeat("x", 80)
	l, err := Compose([]Block{Paragraph("a " + long + " b")}, g, fixedMeasurer{})
	require.NoError(t, err)

	var texts []string
	for _, in := range allInstructions(l) {
		texts = append(texts, in.Text)
	}
	assert.Equal(t, []string{"a", long, "b"}, texts)
}

func TestCompose_SkipsBlankBlocks(t *testing.T) {
	withBlanks, err := Compose([]Block{
		Paragraph("   "),
		Row("", " "),
		Heading("\t", 1),
		Paragraph("text"),
	}, A4(), fixedMeasurer{})
	require.NoError(t, err)

	plain, err := Compose([]Block{Paragraph("text")}, A4(), fixedMeasurer{})
	require.NoError(t, err)
	assert.Equal(t, plain, withBlanks)
}

func TestCompose_PageBreaks(t *testing.T) {
	l, err := Compose([]Block{
		PageBreak(),
		Paragraph("first"),
		PageBreak(),
		PageBreak(),
		Paragraph("second"),
	}, A4(), fixedMeasurer{})
	require.NoError(t, err)
	require.Len(t, l.Pages, 2)
	assert.Equal(t, "first", l.Pages[0].Instructions[0].Text)
	assert.Equal(t, "second", l.Pages[1].Instructions[0].Text)
	assert.Equal(t, A4().Top(), l.Pages[1].Instructions[0].Y)
}

func TestCompose_HeadingSpacing(t *testing.T) {
	g := A4()
	l, err := Compose([]Block{Paragraph("intro"), Heading("Title", 1), Paragraph("body")}, g, fixedMeasurer{})
	require.NoError(t, err)
	ins := allInstructions(l)
	require.Len(t, ins, 3)

	body := g.FontSize * g.LineHeight
	heading := g.HeadingSize(1) * g.HeadingLineHeight
	assert.InDelta(t, g.Top()-body-heading*headingGapBefore, ins[1].Y, 1e-9)
	assert.InDelta(t, ins[1].Y-heading-heading*headingGapAfter, ins[2].Y, 1e-9)
}

func TestCompose_MeasurerErrorIsReturned(t *testing.T) {
	_, err := Compose([]Block{Paragraph("two words")}, A4(), failingMeasurer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no metrics")
}

func TestCompose_InvalidGeometry(t *testing.T) {
	g := A4()
	g.Margin = 400
	_, err := Compose([]Block{Paragraph("x")}, g, fixedMeasurer{})
	require.Error(t, err)
}

func TestNewFontMeasurer_UnknownFont(t *testing.T) {
	_, err := NewFontMeasurer("NoSuchFont")
	require.Error(t, err)
}

func TestFontMeasurer_BoldIsWider(t *testing.T) {
	m, err := NewFontMeasurer("Helvetica")
	require.NoError(t, err)

	regular, err := m.TextWidth("Quarterly report", 12, false)
	require.NoError(t, err)
	bold, err := m.TextWidth("Quarterly report", 12, true)
	require.NoError(t, err)
	larger, err := m.TextWidth("Quarterly report", 24, false)
	require.NoError(t, err)

	assert.Greater(t, regular, 0.0)
	assert.Greater(t, bold, regular)
	assert.InDelta(t, regular*2, larger, 1e-6)
}

func TestComposeAndRender_WritesPDF(t *testing.T) {
	var buf bytes.Buffer
	l, err := ComposeAndRender([]Block{
		Title("Relatório"),
		Paragraph(strings.Repeat("conteúdo ", 400)),
	}, A4(), &buf)
	require.NoError(t, err)
	assert.Greater(t, len(l.Pages), 1)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
