package domain

import (
	"strings"
	"time"
)

// Document is the input unit of classification: raw extracted text plus
// basic metadata. It is read-only once built; the engine never mutates it.
type Document struct {
	// Core identifiers
	ID       string `json:"id"`
	Filename string `json:"filename,omitempty"`
	Source   string `json:"source,omitempty"`

	// Raw extracted text
	RawText string `json:"raw_text"`

	// Quick metrics, derived at parse time
	TextLength int `json:"text_length"`
	WordCount  int `json:"word_count"`

	ParsedAt time.Time `json:"parsed_at,omitempty"`
}

// NewDocument builds a Document from raw text, deriving length metrics.
func NewDocument(id, filename, rawText string) *Document {
	return &Document{
		ID:         id,
		Filename:   filename,
		RawText:    rawText,
		TextLength: len(rawText),
		WordCount:  len(strings.Fields(rawText)),
		ParsedAt:   time.Now(),
	}
}

// Empty reports whether the document has no classifiable text.
func (d *Document) Empty() bool {
	return strings.TrimSpace(d.RawText) == ""
}
