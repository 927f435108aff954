package docs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/session"
)

// fakeOracle answers from a fixed table keyed by question id.
type fakeOracle struct {
	mu      sync.Mutex
	answers map[string]Extraction // questions absent here get found=false
	fail    map[string]error
	calls   int
}

func (o *fakeOracle) ExtractAnswer(ctx context.Context, q catalog.Question, docContext string) (*Extraction, bool, error) {
	o.mu.Lock()
	o.calls++
	o.mu.Unlock()
	if err, ok := o.fail[q.ID]; ok {
		return nil, false, err
	}
	ext, ok := o.answers[q.ID]
	if !ok {
		return nil, false, nil
	}
	return &ext, true, nil
}

// memStore serves documents from a map.
type memStore struct {
	docs map[string]string
}

func (m memStore) List(context.Context) ([]Artifact, error) {
	var out []Artifact
	for name := range m.docs {
		out = append(out, Artifact{Name: name, ContentType: "markdown"})
	}
	return out, nil
}

func (m memStore) Fetch(_ context.Context, name string) ([]byte, error) {
	content, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("no such document %s", name)
	}
	return []byte(content), nil
}

// fakeSearcher returns canned snippets or an error.
type fakeSearcher struct {
	snippets []Snippet
	err      error
}

func (f fakeSearcher) Query(context.Context, string, int) ([]Snippet, error) {
	return f.snippets, f.err
}

func testCatalog(t *testing.T, n int) *catalog.Registry {
	t.Helper()
	questions := make([]catalog.Question, n)
	for i := range questions {
		questions[i] = catalog.Question{
			ID:       fmt.Sprintf("q%02d", i+1),
			Category: catalog.CategoryNetworkDesign,
			Priority: catalog.PriorityHigh,
			Text:     fmt.Sprintf("question %d", i+1),
		}
	}
	reg, err := catalog.New(questions)
	require.NoError(t, err)
	return reg
}

func testSessions(t *testing.T, reg *catalog.Registry) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(session.Config{Catalog: reg})
	require.NoError(t, err)
	mgr.Start("")
	return mgr
}

// TestNewAnalyzerValidation tests required-collaborator checking.
func TestNewAnalyzerValidation(t *testing.T) {
	reg := testCatalog(t, 1)
	mgr := testSessions(t, reg)
	oracle := &fakeOracle{}

	_, err := NewAnalyzer(AnalyzerConfig{Extractor: TextExtractor{}, Oracle: oracle, Sessions: mgr, Catalog: reg})
	assert.Error(t, err, "store is required")

	_, err = NewAnalyzer(AnalyzerConfig{Store: memStore{}, Extractor: TextExtractor{}, Oracle: oracle})
	assert.Error(t, err, "session manager is required")
}

// TestRunResolvesBatch tests a full pass with mixed oracle outcomes: a
// failing extraction costs only its own question.
func TestRunResolvesBatch(t *testing.T) {
	reg := testCatalog(t, 10)
	mgr := testSessions(t, reg)

	answers := map[string]Extraction{}
	// q01..q06 answered confidently, q07 below threshold, q08 fails,
	// q09 and q10 find nothing.
	for i := 1; i <= 6; i++ {
		answers[fmt.Sprintf("q%02d", i)] = Extraction{Text: fmt.Sprintf("value %d", i), Confidence: 0.95}
	}
	answers["q07"] = Extraction{Text: "maybe this", Confidence: 0.4}
	oracle := &fakeOracle{
		answers: answers,
		fail:    map[string]error{"q08": errors.New("model overloaded")},
	}

	a, err := NewAnalyzer(AnalyzerConfig{
		Store:       memStore{docs: map[string]string{"reqs.md": "customer requirements text"}},
		Extractor:   TextExtractor{},
		Oracle:      oracle,
		Sessions:    mgr,
		Catalog:     reg,
		Concurrency: 3,
	})
	require.NoError(t, err)

	result, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, result.Questions)
	assert.Equal(t, 6, result.Accepted)
	assert.Equal(t, 1, result.Deferred)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.NoAnswer)
	assert.Equal(t, 10, oracle.calls)

	state := mgr.State()
	assert.Len(t, state.Answers, 6)
	assert.Len(t, mgr.Pending(), 1)
	// Every accepted answer carries the document source in corpus mode.
	for _, ans := range state.Answers {
		assert.Equal(t, session.SourceDocument, ans.Source)
	}
}

// TestRunSkipsAnsweredQuestions tests that a second pass only attempts the
// remaining gaps.
func TestRunSkipsAnsweredQuestions(t *testing.T) {
	reg := testCatalog(t, 3)
	mgr := testSessions(t, reg)
	ctx := context.Background()

	q1, _ := reg.Get("q01")
	_, _, err := mgr.RecordUserAnswer(ctx, q1, "already settled")
	require.NoError(t, err)

	oracle := &fakeOracle{answers: map[string]Extraction{
		"q01": {Text: "should never be asked", Confidence: 0.99},
		"q02": {Text: "value", Confidence: 0.9},
	}}
	a, err := NewAnalyzer(AnalyzerConfig{
		Store:     memStore{docs: map[string]string{"reqs.md": "text"}},
		Extractor: TextExtractor{},
		Oracle:    oracle,
		Sessions:  mgr,
		Catalog:   reg,
	})
	require.NoError(t, err)

	result, err := a.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Questions)
	assert.Equal(t, 2, oracle.calls)

	got, _ := mgr.Answer("q01")
	assert.Equal(t, "already settled", got.Text)
}

// TestRunWithSearcher tests that ranked snippets scope the context and the
// answers carry the search source.
func TestRunWithSearcher(t *testing.T) {
	reg := testCatalog(t, 1)
	mgr := testSessions(t, reg)

	oracle := &fakeOracle{answers: map[string]Extraction{
		"q01": {Text: "10.0.0.0/16", Confidence: 0.93},
	}}
	a, err := NewAnalyzer(AnalyzerConfig{
		Store:     memStore{docs: map[string]string{}},
		Extractor: TextExtractor{},
		Searcher:  fakeSearcher{snippets: []Snippet{{Document: "network.md", Content: "the hub uses 10.0.0.0/16", Score: 0.9}}},
		Oracle:    oracle,
		Sessions:  mgr,
		Catalog:   reg,
	})
	require.NoError(t, err)

	result, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)

	ans, ok := mgr.Answer("q01")
	require.True(t, ok)
	assert.Equal(t, session.SourceSearchIndex, ans.Source)
	assert.Equal(t, "network.md", ans.DocumentReference)
	assert.Equal(t, []string{"network.md"}, mgr.State().DocumentsAnalyzed)
}

// TestRunSearchFailureDegradesToCorpus tests per-question degradation when
// the search index is down.
func TestRunSearchFailureDegradesToCorpus(t *testing.T) {
	reg := testCatalog(t, 1)
	mgr := testSessions(t, reg)

	oracle := &fakeOracle{answers: map[string]Extraction{
		"q01": {Text: "value", Confidence: 0.9},
	}}
	a, err := NewAnalyzer(AnalyzerConfig{
		Store:     memStore{docs: map[string]string{"reqs.md": "requirements"}},
		Extractor: TextExtractor{},
		Searcher:  fakeSearcher{err: errors.New("index unavailable")},
		Oracle:    oracle,
		Sessions:  mgr,
		Catalog:   reg,
	})
	require.NoError(t, err)

	result, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)

	ans, _ := mgr.Answer("q01")
	assert.Equal(t, session.SourceDocument, ans.Source)
}

// TestRunNoDocuments tests that an empty corpus yields no-answer outcomes,
// not errors.
func TestRunNoDocuments(t *testing.T) {
	reg := testCatalog(t, 2)
	mgr := testSessions(t, reg)

	oracle := &fakeOracle{}
	a, err := NewAnalyzer(AnalyzerConfig{
		Store:     memStore{docs: map[string]string{}},
		Extractor: TextExtractor{},
		Oracle:    oracle,
		Sessions:  mgr,
		Catalog:   reg,
	})
	require.NoError(t, err)

	result, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.NoAnswer)
	assert.Equal(t, 0, oracle.calls, "oracle is never consulted without context")
}

// TestRunCancelledContext tests that cancellation returns the context error
// with whatever was already committed.
func TestRunCancelledContext(t *testing.T) {
	reg := testCatalog(t, 5)
	mgr := testSessions(t, reg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := NewAnalyzer(AnalyzerConfig{
		Store:     memStore{docs: map[string]string{"reqs.md": "text"}},
		Extractor: TextExtractor{},
		Oracle:    &fakeOracle{},
		Sessions:  mgr,
		Catalog:   reg,
	})
	require.NoError(t, err)

	_, err = a.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestCorpusSkipsFailingDocuments tests that one bad document does not sink
// the corpus.
func TestCorpusSkipsFailingDocuments(t *testing.T) {
	reg := testCatalog(t, 1)
	mgr := testSessions(t, reg)

	oracle := &fakeOracle{answers: map[string]Extraction{
		"q01": {Text: "value", Confidence: 0.9},
	}}
	a, err := NewAnalyzer(AnalyzerConfig{
		Store: memStore{docs: map[string]string{
			"good.md": "useful requirements",
			"bad.bin": string([]byte{0xff, 0xfe, 0x00, 0x01}),
		}},
		Extractor: TextExtractor{},
		Oracle:    oracle,
		Sessions:  mgr,
		Catalog:   reg,
	})
	require.NoError(t, err)

	result, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, []string{"good.md"}, mgr.State().DocumentsAnalyzed)
}

// TestDirStore tests the local filesystem document store.
func TestDirStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeDoc := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	writeDoc("requirements.md", "# Requirements")
	writeDoc("budget.txt", "about 50k")

	store := DirStore{Dir: dir}
	artifacts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	types := map[string]string{}
	for _, a := range artifacts {
		types[a.Name] = a.ContentType
		assert.Greater(t, a.SizeBytes, int64(0))
	}
	assert.Equal(t, "markdown", types["requirements.md"])
	assert.Equal(t, "text", types["budget.txt"])

	data, err := store.Fetch(ctx, "requirements.md")
	require.NoError(t, err)
	assert.Equal(t, "# Requirements", string(data))

	_, err = store.Fetch(ctx, "../outside.md")
	assert.Error(t, err, "path traversal must be rejected")
	_, err = store.Fetch(ctx, "missing.md")
	assert.Error(t, err)
}

// TestTextExtractor tests content-type gating and UTF-8 validation.
func TestTextExtractor(t *testing.T) {
	ctx := context.Background()
	ex := TextExtractor{}

	content, err := ex.Extract(ctx, []byte("plain text"), "text")
	require.NoError(t, err)
	assert.Equal(t, "plain text", content.Text)
	assert.InDelta(t, 1.0, content.Confidence, 1e-9)

	_, err = ex.Extract(ctx, []byte("%PDF-1.7"), "pdf")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "pdf"))

	_, err = ex.Extract(ctx, []byte{0xff, 0xfe}, "text")
	assert.Error(t, err)
}
