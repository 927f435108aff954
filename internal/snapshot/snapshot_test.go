package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/session"
)

func testCatalog(t *testing.T) *catalog.Registry {
	t.Helper()
	reg, err := catalog.New([]catalog.Question{
		{ID: "q1", Category: catalog.CategoryNetworkDesign, Priority: catalog.PriorityCritical, Text: "What IP range?", HelpText: "CIDR for the hub network", Examples: []string{"10.0.0.0/16"}},
		{ID: "q2", Category: catalog.CategoryNetworkDesign, Priority: catalog.PriorityHigh, Text: "What connectivity?"},
		{ID: "q3", Category: catalog.CategoryGovernance, Priority: catalog.PriorityMedium, Text: "What naming convention?"},
	})
	require.NoError(t, err)
	return reg
}

func testState() session.State {
	return session.State{
		SessionID: "discovery-test0001",
		CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Answers: map[string]session.Answer{
			"q2": {QuestionID: "q2", Text: "ExpressRoute", Source: session.SourceUserInput, Confidence: 1.0},
			"q1": {QuestionID: "q1", Text: "10.0.0.0/16", Source: session.SourceDocument, Confidence: 0.92, DocumentReference: "network.md"},
		},
		DocumentsAnalyzed: []string{"network.md"},
		Completion:        200.0 / 3,
	}
}

// TestBuild tests the export document's shape.
func TestBuild(t *testing.T) {
	reg := testCatalog(t)
	doc := Build(testState(), reg)

	assert.Equal(t, FormatVersion, doc.Version)
	assert.Equal(t, "discovery-test0001", doc.Session.ID)
	assert.InDelta(t, 200.0/3, doc.Session.Completion, 1e-9)

	// Answers come out in catalog order, not map order.
	require.Len(t, doc.Answers, 2)
	assert.Equal(t, "q1", doc.Answers[0].QuestionID)
	assert.Equal(t, "q2", doc.Answers[1].QuestionID)

	// Answer records join the catalog's static metadata.
	assert.Equal(t, "What IP range?", doc.Answers[0].Question)
	assert.Equal(t, string(catalog.CategoryNetworkDesign), doc.Answers[0].Category)
	assert.Equal(t, "critical", doc.Answers[0].Priority)
	assert.Equal(t, "network.md", doc.Answers[0].DocumentReference)

	// The one unanswered question lands in missing information with its
	// help text and examples.
	require.Len(t, doc.MissingInformation, 1)
	assert.Equal(t, "q3", doc.MissingInformation[0].QuestionID)

	// Summary is embedded.
	assert.Equal(t, 3, doc.Summary.TotalQuestions)
	assert.Equal(t, 2, doc.Summary.Answered)
	assert.Equal(t, 1, doc.Summary.FromDocuments)
	assert.Equal(t, 1, doc.Summary.FromUser)
	assert.Equal(t, 1, doc.Summary.Critical.Answered)
	assert.Contains(t, doc.Summary.ByCategory, string(catalog.CategoryGovernance))
}

// TestRoundTrip tests that export followed by restore preserves the answer
// core exactly.
func TestRoundTrip(t *testing.T) {
	reg := testCatalog(t)
	state := testState()

	restored := Build(state, reg).Restore()

	assert.Equal(t, state.SessionID, restored.SessionID)
	assert.True(t, state.CreatedAt.Equal(restored.CreatedAt))
	assert.Equal(t, state.DocumentsAnalyzed, restored.DocumentsAnalyzed)

	require.Len(t, restored.Answers, 2)
	byID := map[string]session.Answer{}
	for _, a := range restored.Answers {
		byID[a.QuestionID] = a
	}
	assert.Equal(t, state.Answers["q1"], byID["q1"])
	assert.Equal(t, state.Answers["q2"], byID["q2"])
}

// TestRestoreSkipsBlankRecords tests that hand-edited snapshots with empty
// rows do not produce phantom answers.
func TestRestoreSkipsBlankRecords(t *testing.T) {
	doc := &Document{
		Version: FormatVersion,
		Session: SessionInfo{ID: "s1"},
		Answers: []AnswerRecord{
			{QuestionID: "q1", Answer: "10.0.0.0/16", Source: "document", Confidence: 0.9},
			{QuestionID: "", Answer: "orphan"},
			{QuestionID: "q2", Answer: ""},
		},
	}
	restored := doc.Restore()
	require.Len(t, restored.Answers, 1)
	assert.Equal(t, "q1", restored.Answers[0].QuestionID)
}

// TestRestoreIgnoresStaleDerivedSections tests that the summary and
// missing-information blocks have no effect on restore.
func TestRestoreIgnoresStaleDerivedSections(t *testing.T) {
	doc := &Document{
		Version: FormatVersion,
		Session: SessionInfo{ID: "s1", Completion: 99},
		Summary: SummaryInfo{Answered: 42, TotalQuestions: 42},
		MissingInformation: []MissingRecord{
			{QuestionID: "q1", Question: "stale: actually answered below"},
		},
		Answers: []AnswerRecord{
			{QuestionID: "q1", Answer: "10.0.0.0/16", Source: "document", Confidence: 0.9},
		},
	}
	restored := doc.Restore()
	require.Len(t, restored.Answers, 1)
	assert.Equal(t, "q1", restored.Answers[0].QuestionID)
}

// TestFileRoundTrip tests writing and reading a snapshot file.
func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	reg := testCatalog(t)
	doc := Build(testState(), reg)

	path := DefaultPath(dir, "discovery-test0001")
	require.NoError(t, WriteFile(path, doc))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Session.ID, loaded.Session.ID)
	assert.Equal(t, len(doc.Answers), len(loaded.Answers))
	assert.Equal(t, doc.Answers[0], loaded.Answers[0])
}

// TestWriteFileCreatesDirectory tests that nested snapshot directories are
// created on demand.
func TestWriteFileCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "nested")
	path := DefaultPath(dir, "s1")
	require.NoError(t, WriteFile(path, &Document{Version: FormatVersion, Session: SessionInfo{ID: "s1"}}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

// TestLatest tests newest-snapshot selection by modification time.
func TestLatest(t *testing.T) {
	dir := t.TempDir()

	_, found, err := Latest(dir)
	require.NoError(t, err)
	assert.False(t, found)

	older := DefaultPath(dir, "older")
	newer := DefaultPath(dir, "newer")
	require.NoError(t, WriteFile(older, &Document{Session: SessionInfo{ID: "older"}}))
	require.NoError(t, WriteFile(newer, &Document{Session: SessionInfo{ID: "newer"}}))

	// Make the ordering unambiguous regardless of filesystem timestamp
	// granularity.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	path, found, err := Latest(dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, newer, path)

	// Non-snapshot files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644))
	path, _, err = Latest(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, path)
}

// TestFileSource tests the SnapshotSource implementation over files.
func TestFileSource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	reg := testCatalog(t)
	require.NoError(t, WriteFile(DefaultPath(dir, "discovery-test0001"), Build(testState(), reg)))

	t.Run("by directory", func(t *testing.T) {
		restored, found, err := FileSource{Dir: dir}.LoadLatest(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "discovery-test0001", restored.SessionID)
		assert.Len(t, restored.Answers, 2)
	})

	t.Run("by explicit path", func(t *testing.T) {
		restored, found, err := FileSource{Path: DefaultPath(dir, "discovery-test0001")}.LoadLatest(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "discovery-test0001", restored.SessionID)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, found, err := FileSource{Dir: t.TempDir()}.LoadLatest(ctx)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("corrupt file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "discovery_bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
		_, _, err := FileSource{Path: bad}.LoadLatest(ctx)
		assert.Error(t, err)
	})
}

// TestCatalogEvolution tests the export/import path across a catalog change:
// answers to questions that were since removed are dropped by the session
// manager, and new questions appear as gaps.
func TestCatalogEvolution(t *testing.T) {
	ctx := context.Background()
	oldReg := testCatalog(t)
	doc := Build(session.State{
		SessionID: "s1",
		Answers: map[string]session.Answer{
			"q1": {QuestionID: "q1", Text: "10.0.0.0/16", Source: session.SourceDocument, Confidence: 0.9},
			"q3": {QuestionID: "q3", Text: "<type>-<env>", Source: session.SourceUserInput, Confidence: 1.0},
		},
	}, oldReg)

	// The next release drops q3 and adds q4.
	newReg, err := catalog.New([]catalog.Question{
		{ID: "q1", Category: catalog.CategoryNetworkDesign, Priority: catalog.PriorityCritical, Text: "What IP range?"},
		{ID: "q2", Category: catalog.CategoryNetworkDesign, Priority: catalog.PriorityHigh, Text: "What connectivity?"},
		{ID: "q4", Category: catalog.CategoryOperations, Priority: catalog.PriorityHigh, Text: "What monitoring stack?"},
	})
	require.NoError(t, err)

	mgr, err := session.NewManager(session.Config{Catalog: newReg})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteFile(DefaultPath(dir, "s1"), doc))
	state := mgr.Resume(ctx, FileSource{Dir: dir})

	assert.Len(t, state.Answers, 1, "the q3 answer is gone with its question")
	_, hasQ1 := state.Answers["q1"]
	assert.True(t, hasQ1)
	assert.InDelta(t, 100.0/3, state.Completion, 1e-9)

	missingIDs := []string{}
	for _, q := range mgr.Missing() {
		missingIDs = append(missingIDs, q.ID)
	}
	assert.Equal(t, []string{"q2", "q4"}, missingIDs)
}
