// Package export serializes classification results: a CSV summary of every
// run, and optional organization of source files into category folders.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/logger"
	"github.com/papertrail/classifier/internal/telemetry"
)

// CSVExporter writes one row per classified document, with a probability
// column per category.
type CSVExporter struct {
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewCSVExporter creates a CSVExporter.
func NewCSVExporter(log logger.Logger, tp *telemetry.Provider) *CSVExporter {
	return &CSVExporter{logger: log, telemetry: tp}
}

// Header returns the column layout: fixed document columns followed by
// prob_<category> in canonical category order.
func Header() []string {
	header := []string{"filename", "predicted_category", "confidence", "text_length", "word_count"}
	for _, cat := range domain.Categories() {
		header = append(header, "prob_"+string(cat))
	}
	return header
}

// Write serializes results to path, overwriting any previous file.
func (e *CSVExporter) Write(path string, results []*domain.ClassificationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, result := range results {
		if err := w.Write(row(result)); err != nil {
			return fmt.Errorf("write csv row for %s: %w", result.Filename, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	if e.telemetry != nil {
		e.telemetry.RecordExportedRows(len(results))
	}
	if e.logger != nil {
		e.logger.Info("results exported",
			logger.String("path", path),
			logger.Int("rows", len(results)))
	}
	return nil
}

func row(result *domain.ClassificationResult) []string {
	cols := []string{
		result.Filename,
		string(result.Category),
		formatFloat(result.Confidence),
		strconv.Itoa(result.TextLength),
		strconv.Itoa(result.WordCount),
	}
	probs := result.Probabilities()
	for _, cat := range domain.Categories() {
		cols = append(cols, formatFloat(probs[cat]))
	}
	return cols
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
