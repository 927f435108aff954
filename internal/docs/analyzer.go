package docs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/session"
)

const (
	// defaultTopN is how many ranked snippets scope one question.
	defaultTopN = 3
	// defaultConcurrency caps parallel per-question extractions.
	defaultConcurrency = 4
	// snippetLimit truncates each snippet fed to the oracle.
	snippetLimit = 2000
	// corpusDocLimit truncates each document's text in fallback mode.
	corpusDocLimit = 8000
)

// AnalyzerConfig wires an Analyzer. Store, Extractor, Oracle, Sessions and
// Catalog are required; Searcher is optional.
type AnalyzerConfig struct {
	Store       Store
	Extractor   Extractor
	Searcher    Searcher
	Oracle      Oracle
	Sessions    *session.Manager
	Catalog     *catalog.Registry
	Logger      *slog.Logger
	TopN        int
	Concurrency int
}

// Analyzer runs one extraction pass over the catalog: for every unanswered
// question it gathers relevant document context and asks the oracle for an
// answer, feeding candidates through the session's resolver. Reading the
// catalog is embarrassingly parallel; all session writes are serialized
// inside the manager.
type Analyzer struct {
	store       Store
	extractor   Extractor
	searcher    Searcher
	oracle      Oracle
	sessions    *session.Manager
	catalog     *catalog.Registry
	logger      *slog.Logger
	topN        int
	concurrency int

	corpusOnce sync.Once
	corpusText string
	corpusDocs []string
	corpusErr  error
}

// NewAnalyzer validates the wiring and returns an analyzer.
func NewAnalyzer(cfg AnalyzerConfig) (*Analyzer, error) {
	if cfg.Store == nil || cfg.Extractor == nil || cfg.Oracle == nil {
		return nil, fmt.Errorf("store, extractor, and oracle are required")
	}
	if cfg.Sessions == nil || cfg.Catalog == nil {
		return nil, fmt.Errorf("session manager and catalog are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	topN := cfg.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Analyzer{
		store:       cfg.Store,
		extractor:   cfg.Extractor,
		searcher:    cfg.Searcher,
		oracle:      cfg.Oracle,
		sessions:    cfg.Sessions,
		catalog:     cfg.Catalog,
		logger:      logger,
		topN:        topN,
		concurrency: concurrency,
	}, nil
}

// RunResult tallies one extraction pass.
type RunResult struct {
	Questions int // unanswered questions attempted
	Accepted  int
	Deferred  int
	Discarded int
	NoAnswer  int // oracle found nothing relevant
	Failed    int // collaborator errors, logged and skipped
}

// Run performs one extraction pass over all currently-unanswered questions.
// A failing search query, document, or oracle call costs only that one
// question; the rest of the batch proceeds. On cancellation, answers already
// accepted remain committed and the partial result is returned with ctx's
// error.
func (a *Analyzer) Run(ctx context.Context) (*RunResult, error) {
	missing := a.sessions.Missing()
	result := &RunResult{Questions: len(missing)}
	if len(missing) == 0 {
		return result, nil
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = semaphore.NewWeighted(int64(a.concurrency))
	)

	for _, q := range missing {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled; everything accepted so far stays.
			break
		}
		wg.Add(1)
		go func(q catalog.Question) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := a.resolveQuestion(ctx, q)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed++
				a.logger.Error("extraction failed for question", "question", q.ID, "error", err)
			case res == "":
				result.NoAnswer++
			case res == session.ResolutionAccepted:
				result.Accepted++
			case res == session.ResolutionDeferred:
				result.Deferred++
			case res == session.ResolutionDiscarded:
				result.Discarded++
			}
		}(q)
	}
	wg.Wait()

	a.logger.Info("extraction pass complete",
		"questions", result.Questions,
		"accepted", result.Accepted,
		"deferred", result.Deferred,
		"no_answer", result.NoAnswer,
		"failed", result.Failed)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// resolveQuestion gathers context for one question and resolves the oracle's
// candidate through the session. An empty Resolution with nil error means no
// relevant content or no answer was found.
func (a *Analyzer) resolveQuestion(ctx context.Context, q catalog.Question) (session.Resolution, error) {
	docContext, source, sourceRef := a.contextFor(ctx, q)
	if docContext == "" {
		return "", nil
	}

	ext, found, err := a.oracle.ExtractAnswer(ctx, q, docContext)
	if err != nil {
		return "", fmt.Errorf("oracle: %w", err)
	}
	if !found {
		return "", nil
	}

	ref := ext.SourceRef
	if ref == "" {
		ref = sourceRef
	}
	cand := session.Answer{
		Text:              ext.Text,
		Source:            source,
		Confidence:        ext.Confidence,
		DocumentReference: ref,
	}
	res, err := a.sessions.RecordCandidate(ctx, q, cand)
	if err != nil {
		return "", err
	}
	if res == session.ResolutionAccepted && ref != "" {
		a.sessions.AddDocument(ref)
	}
	return res, nil
}

// contextFor builds the document context for a question: ranked snippets
// when the search index is available, otherwise the extracted document
// corpus. A failing search degrades to the corpus for that question.
func (a *Analyzer) contextFor(ctx context.Context, q catalog.Question) (docContext string, source session.Source, sourceRef string) {
	if a.searcher != nil {
		query := strings.TrimSpace(q.Text + " " + q.HelpText)
		snippets, err := a.searcher.Query(ctx, query, a.topN)
		if err != nil {
			a.logger.Warn("search unavailable for question, scanning documents directly",
				"question", q.ID, "error", err)
		} else if len(snippets) > 0 {
			var b strings.Builder
			for _, sn := range snippets {
				content := sn.Content
				if len(content) > snippetLimit {
					content = content[:snippetLimit]
				}
				fmt.Fprintf(&b, "Document: %s\n%s\n\n", sn.Document, content)
			}
			return b.String(), session.SourceSearchIndex, snippets[0].Document
		} else {
			return "", session.SourceSearchIndex, ""
		}
	}

	corpus, docs := a.corpus(ctx)
	if corpus == "" {
		return "", session.SourceDocument, ""
	}
	ref := ""
	if len(docs) == 1 {
		ref = docs[0]
	}
	return corpus, session.SourceDocument, ref
}

// corpus lazily builds the concatenated extracted text of all documents.
// Built at most once per pass; individual document failures are logged and
// skipped.
func (a *Analyzer) corpus(ctx context.Context) (string, []string) {
	a.corpusOnce.Do(func() {
		artifacts, err := a.store.List(ctx)
		if err != nil {
			a.corpusErr = err
			a.logger.Error("listing documents failed", "error", err)
			return
		}
		var b strings.Builder
		for _, art := range artifacts {
			raw, err := a.store.Fetch(ctx, art.Name)
			if err != nil {
				a.logger.Error("fetching document failed", "document", art.Name, "error", err)
				continue
			}
			processed, err := a.extractor.Extract(ctx, raw, art.ContentType)
			if err != nil {
				a.logger.Error("extracting document failed", "document", art.Name, "error", err)
				continue
			}
			text := processed.Text
			if len(text) > corpusDocLimit {
				text = text[:corpusDocLimit]
			}
			fmt.Fprintf(&b, "Document: %s\n%s\n\n", art.Name, text)
			a.corpusDocs = append(a.corpusDocs, art.Name)
			a.sessions.AddDocument(art.Name)
		}
		a.corpusText = b.String()
	})
	return a.corpusText, a.corpusDocs
}
