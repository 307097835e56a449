package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/processor"
)

func sampleResult(filename string, cat domain.Category, confidence float64) *domain.ClassificationResult {
	breakdown := make(map[domain.Category]domain.CategoryBreakdown, domain.NumCategories)
	for _, c := range domain.Categories() {
		breakdown[c] = domain.CategoryBreakdown{Probability: 0.1}
	}
	breakdown[cat] = domain.CategoryBreakdown{Probability: 0.5, PatternScore: 0.7}

	return &domain.ClassificationResult{
		DocumentID: "id-" + filename,
		Filename:   filename,
		Category:   cat,
		Confidence: confidence,
		Breakdown:  breakdown,
		TextLength: 120,
		WordCount:  20,
	}
}

func TestCSVWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	results := []*domain.ClassificationResult{
		sampleResult("a.txt", domain.CategoryInvoice, 0.95),
		sampleResult("b.txt", domain.CategoryMemo, 0.42),
	}

	require.NoError(t, NewCSVExporter(nil, nil).Write(path, results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header(), rows[0])
	assert.Equal(t, "a.txt", rows[1][0])
	assert.Equal(t, "invoice", rows[1][1])
	assert.Equal(t, "0.9500", rows[1][2])
	assert.Equal(t, "120", rows[1][3])
	assert.Equal(t, "20", rows[1][4])
	// prob_invoice is the first probability column.
	assert.Equal(t, "0.5000", rows[1][5])
	assert.Equal(t, "memo", rows[2][1])
}

func TestCSVHeaderShape(t *testing.T) {
	header := Header()
	require.Len(t, header, 5+domain.NumCategories)
	assert.Equal(t, "prob_invoice", header[5])
	assert.Equal(t, "prob_other", header[len(header)-1])
}

func TestOrganize(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "sorted")

	makeItem := func(name string, cat domain.Category, conf float64) processor.Item {
		path := filepath.Join(srcDir, name)
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
		doc := domain.NewDocument("id-"+name, name, "content")
		doc.Source = path
		return processor.Item{Doc: doc, Result: sampleResult(name, cat, conf)}
	}

	items := []processor.Item{
		makeItem("inv.txt", domain.CategoryInvoice, 0.9),
		makeItem("low.txt", domain.CategoryReport, 0.3),
		{Doc: domain.NewDocument("no-source", "ghost.txt", "x"), Result: sampleResult("ghost.txt", domain.CategoryOther, 0.9)},
	}

	moved, err := NewOrganizer(0.5, nil, nil).Organize(destDir, items)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	assert.FileExists(t, filepath.Join(destDir, "invoice", "inv.txt"))
	assert.FileExists(t, filepath.Join(destDir, "unsorted", "low.txt"))
	assert.NoFileExists(t, filepath.Join(srcDir, "inv.txt"))
}
