package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DirStore serves documents from a local directory. It stands in for the
// cloud object store in local runs and tests; only regular files at the top
// level are listed.
type DirStore struct {
	Dir string
}

// List implements Store.
func (d DirStore) List(ctx context.Context) ([]Artifact, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing documents in %s: %w", d.Dir, err)
	}
	var out []Artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Artifact{
			Name:         e.Name(),
			ContentType:  contentTypeFor(e.Name()),
			SizeBytes:    info.Size(),
			LastModified: info.ModTime(),
		})
	}
	return out, nil
}

// Fetch implements Store.
func (d DirStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	// Names come from List, but never follow a path outside the directory.
	if strings.Contains(name, "..") || strings.ContainsRune(name, os.PathSeparator) {
		return nil, fmt.Errorf("invalid document name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(d.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("fetching document %s: %w", name, err)
	}
	return data, nil
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md":
		return "markdown"
	case ".txt", ".text":
		return "text"
	case ".json":
		return "json"
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	default:
		return "unknown"
	}
}

// TextExtractor handles plain-text formats directly. Binary formats need a
// real extraction service and are rejected per document, which the analyzer
// logs and skips.
type TextExtractor struct{}

// Extract implements Extractor.
func (TextExtractor) Extract(ctx context.Context, raw []byte, contentType string) (*ProcessedContent, error) {
	switch contentType {
	case "text", "markdown", "json", "unknown":
	default:
		return nil, fmt.Errorf("unsupported document type %q (extraction service required)", contentType)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("document is not valid UTF-8 text")
	}
	return &ProcessedContent{
		Text:       string(raw),
		Confidence: 1.0,
	}, nil
}
