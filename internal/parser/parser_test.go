package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFilePlainText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "invoice.txt", "Invoice number 42, amount due $10.00")

	p := New(nil)
	doc, err := p.ParseFile(path)
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "invoice.txt", doc.Filename)
	assert.Equal(t, path, doc.Source)
	assert.Contains(t, doc.RawText, "Invoice number 42")
	assert.Greater(t, doc.WordCount, 0)
}

func TestParseFileCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "name,amount\nwidget,100\ngadget,200\n")

	doc, err := New(nil).ParseFile(path)
	require.NoError(t, err)
	assert.Contains(t, doc.RawText, "name amount")
	assert.Contains(t, doc.RawText, "widget 100")
}

func TestParseFileHTML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "memo.html",
		`<html><head><style>body{color:red}</style><script>alert(1)</script></head>`+
			`<body><h1>Memorandum</h1><p>To: all staff &amp; managers</p></body></html>`)

	doc, err := New(nil).ParseFile(path)
	require.NoError(t, err)
	assert.Contains(t, doc.RawText, "Memorandum")
	assert.Contains(t, doc.RawText, "all staff & managers")
	assert.NotContains(t, doc.RawText, "alert")
	assert.NotContains(t, doc.RawText, "color:red")
	assert.NotContains(t, doc.RawText, "<p>")
}

func TestParseFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.pdf", "%PDF-1.4")

	_, err := New(nil).ParseFile(path)
	assert.Error(t, err)
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.md", "# bravo")
	writeFile(t, dir, "c.bin", "\x00\x01")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o750))

	docs, err := New(nil).ParseDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	names := []string{docs[0].Filename, docs[1].Filename}
	assert.ElementsMatch(t, []string{"a.txt", "b.md"}, names)
}

func TestParseDirMissing(t *testing.T) {
	_, err := New(nil).ParseDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("x.TXT"))
	assert.True(t, Supported("x.csv"))
	assert.False(t, Supported("x.docx"))
	assert.False(t, Supported("x"))
}
