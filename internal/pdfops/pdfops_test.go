package pdfops

import (
	"bytes"
	"io"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-converter/internal/util"
)

func testPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	data, err := util.CreateTestPDF(pages...)
	require.NoError(t, err)
	return data
}

func pageContent(t *testing.T, data []byte, page int) string {
	t.Helper()
	ctx, err := readContext(data)
	require.NoError(t, err)
	r, err := pdfcpu.ExtractPageContent(ctx, page)
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(content)
}

func TestPageCountAndSizes(t *testing.T) {
	data := testPDF(t, "one", "two", "three")

	n, err := PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	sizes, err := PageSizes(data)
	require.NoError(t, err)
	require.Len(t, sizes, 3)
	assert.InDelta(t, 595.28, sizes[0].Width, 0.5)
	assert.InDelta(t, 841.89, sizes[0].Height, 0.5)
}

func TestPageCount_Invalid(t *testing.T) {
	_, err := PageCount([]byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	merged, err := Merge([][]byte{testPDF(t, "a", "b"), testPDF(t, "c")})
	require.NoError(t, err)

	n, err := PageCount(merged)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = Merge(nil)
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	pages, err := Split(testPDF(t, "a", "b", "c"))
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for _, page := range pages {
		assert.True(t, bytes.HasPrefix(page, []byte("%PDF")))
		n, err := PageCount(page)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
}

func TestOptimize(t *testing.T) {
	data := testPDF(t, "some text", "more text")
	out, err := Optimize(data)
	require.NoError(t, err)

	n, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEdit(t *testing.T) {
	data := testPDF(t, "page one", "page two")

	for _, opts := range []EditOptions{
		{Kind: EditText, Text: "Approved ✓ olá", X: 50, Y: 50, FontSize: 14, Color: "#ff0000"},
		{Kind: EditRectangle, X: 100, Y: 200, Color: "00ff00"},
		{Kind: EditCircle, X: 10, Y: 10},
	} {
		t.Run(string(opts.Kind), func(t *testing.T) {
			out, err := Edit(data, opts)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

			n, err := PageCount(out)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			assert.NotContains(t, pageContent(t, data, 1), "/Watermark")
			first := pageContent(t, out, 1)
			assert.Contains(t, first, "/Watermark")
			assert.Contains(t, first, "Do Q")
			assert.NotContains(t, pageContent(t, out, 2), "/Watermark")
		})
	}
}

func TestEditOptions_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts EditOptions
	}{
		{"unknown kind", EditOptions{Kind: "arrow"}},
		{"text without text", EditOptions{Kind: EditText, FontSize: 12}},
		{"text without size", EditOptions{Kind: EditText, Text: "x"}},
		{"negative x", EditOptions{Kind: EditCircle, X: -1}},
		{"bad colour", EditOptions{Kind: EditRectangle, Color: "#12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.opts.Validate())
		})
	}

	_, err := Edit(testPDF(t, "x"), EditOptions{Kind: "arrow"})
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#7A7423")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 0x7A, G: 0x74, B: 0x23}, c)

	c, err = ParseHexColor("ffffff")
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 255, 255}, c)

	_, err = ParseHexColor("#zzzzzz")
	assert.Error(t, err)
}
