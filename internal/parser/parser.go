// Package parser turns files on disk into Documents. It handles the plain
// text family directly; binary formats are out of scope and skipped.
package parser

import (
	"encoding/csv"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/logger"
)

// supportedExtensions maps an extension to its extraction strategy.
var supportedExtensions = map[string]func([]byte) (string, error){
	".txt":      extractPlain,
	".text":     extractPlain,
	".md":       extractPlain,
	".markdown": extractPlain,
	".log":      extractPlain,
	".csv":      extractCSV,
	".html":     extractHTML,
	".htm":      extractHTML,
}

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe         = regexp.MustCompile(`(?s)<[^>]*>`)
)

// Parser reads files into documents.
type Parser struct {
	logger logger.Logger
}

// New creates a Parser.
func New(log logger.Logger) *Parser {
	return &Parser{logger: log}
}

// Supported reports whether the file extension has an extraction strategy.
func Supported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ParseFile reads one file and wraps it as a Document with a fresh ID.
func (p *Parser) ParseFile(path string) (*domain.Document, error) {
	extract, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text, err := extract(data)
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", path, err)
	}

	doc := domain.NewDocument(uuid.NewString(), filepath.Base(path), text)
	doc.Source = path
	return doc, nil
}

// ParseDir reads every supported file directly under dir. Unsupported and
// unreadable files are logged and skipped; the rest of the batch proceeds.
func (p *Parser) ParseDir(dir string) ([]*domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	docs := make([]*domain.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !Supported(path) {
			if p.logger != nil {
				p.logger.Debug("skipping unsupported file",
					logger.String("file", entry.Name()))
			}
			continue
		}

		doc, err := p.ParseFile(path)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("failed to parse file",
					logger.String("file", entry.Name()),
					logger.Error(err))
			}
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func extractPlain(data []byte) (string, error) {
	return string(data), nil
}

// extractCSV flattens rows into space-joined lines so header and cell terms
// stay available to the classifier.
func extractCSV(data []byte) (string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, record := range records {
		sb.WriteString(strings.Join(record, " "))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// extractHTML strips markup naively: script and style blocks first, then
// all tags, then entity unescaping.
func extractHTML(data []byte) (string, error) {
	text := scriptBlockRe.ReplaceAllString(string(data), " ")
	text = tagRe.ReplaceAllString(text, " ")
	return html.UnescapeString(text), nil
}
