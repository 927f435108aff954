// Package docs defines the contracts for the external document collaborators
// (object store, content extractor, search index, answer-extraction oracle)
// and the batch analyzer that drives answer extraction across the question
// catalog. The collaborators do the I/O; everything here treats them as
// fallible and recovers per unit of work.
package docs

import (
	"context"
	"time"

	"github.com/lzkit/lzkit/internal/catalog"
)

// Artifact identifies one uploaded customer document.
type Artifact struct {
	Name         string
	ContentType  string
	SizeBytes    int64
	LastModified time.Time
}

// Store lists and fetches uploaded documents.
type Store interface {
	List(ctx context.Context) ([]Artifact, error)
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// ProcessedContent is the normalized output of content extraction.
type ProcessedContent struct {
	Name           string
	Text           string
	Keywords       []string
	StructuredData map[string]any
	Confidence     float64
}

// Extractor turns raw document bytes into normalized text. It may fail per
// document; the analyzer logs and continues with the next one.
type Extractor interface {
	Extract(ctx context.Context, raw []byte, contentType string) (*ProcessedContent, error)
}

// Snippet is one ranked search result.
type Snippet struct {
	Document string
	Content  string
	Score    float64
}

// Searcher narrows extraction scope per question. It is optional: when
// unavailable the analyzer falls back to scanning extracted document text
// directly.
type Searcher interface {
	Query(ctx context.Context, text string, topN int) ([]Snippet, error)
}

// Extraction is the oracle's answer to one question.
type Extraction struct {
	Text       string
	Confidence float64
	SourceRef  string
}

// Oracle extracts an answer to a question from the provided context, or
// reports that none was found. Implementations wrap an LLM and are treated
// as untrusted: malformed output must surface as found=false, never as a
// crash.
type Oracle interface {
	ExtractAnswer(ctx context.Context, q catalog.Question, docContext string) (ext *Extraction, found bool, err error)
}
