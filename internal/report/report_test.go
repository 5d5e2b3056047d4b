package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"preset-localizer/internal/crossmap"
	"preset-localizer/internal/merge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var failures = []merge.Failure{
	{Header: "Farms", Identifier: "Potato_Farm", GUID: "1010262", English: "potato farm"},
	{Header: "Misc", Identifier: "Odd\tOne", GUID: "", English: "odd <one>"},
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, failures))

	want := `[
  {
    "Guid": 1010262,
    "Header": "Farms",
    "Identifier": "Potato_Farm",
    "eng": "potato farm"
  },
  {
    "Guid": null,
    "Header": "Misc",
    "Identifier": "Odd\tOne",
    "eng": "odd <one>"
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestEncodeJSONKeepsTextualGUID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, []merge.Failure{{GUID: "abc", English: "x"}}))
	assert.Contains(t, buf.String(), `"Guid": "abc"`)
}

func TestEncodeTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTSV(&buf, failures))

	want := "guid\theader\tidentifier\teng\n" +
		"1010262\tFarms\tPotato_Farm\tpotato farm\n" +
		"\tMisc\tOdd\\tOne\todd <one>\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSkipsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.json")

	wrote, err := WriteJSON(path, nil)
	require.NoError(t, err)
	assert.False(t, wrote)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFormats(t *testing.T) {
	dir := t.TempDir()

	wrote, err := WriteJSON(filepath.Join(dir, "f.json"), failures)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = WriteTSV(filepath.Join(dir, "f.tsv"), failures)
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(filepath.Join(dir, "f.tsv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Potato_Farm")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" TSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatTSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteCollisions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collisions.json")

	wrote, err := WriteCollisions(path, nil)
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = WriteCollisions(path, []crossmap.Collision{{Key: "market", Kept: "Halle", Dropped: "Marché", ID: "g2"}})
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "key": "market",
    "kept": "Halle",
    "dropped": "Marché",
    "id": "g2"
  }
]
`, string(data))
}
