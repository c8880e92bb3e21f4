package archive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "report_page_001.pdf", Data: []byte("%PDF-1.4 first")},
		{Name: "report_page_002.pdf", Data: bytes.Repeat([]byte("compressible "), 500)},
		{Name: "empty.txt", Data: nil},
	}

	data, err := Zip(entries)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))

	got, err := Unzip(data)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, e := range entries {
		assert.Equal(t, e.Name, got[i].Name)
		assert.Equal(t, len(e.Data), len(got[i].Data))
	}
	assert.Equal(t, entries[1].Data, got[1].Data)
}

func TestUnzip_Invalid(t *testing.T) {
	_, err := Unzip([]byte("not a zip"))
	assert.Error(t, err)
}
