package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzkit/lzkit/internal/catalog"
)

// TestMissing tests gap listing with and without priority filters.
func TestMissing(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")

	// Everything is missing at the start, in catalog order.
	missing := m.Missing()
	require.Len(t, missing, 3)
	assert.Equal(t, "q1", missing[0].ID)
	assert.Equal(t, "q3", missing[2].ID)

	q2, _ := m.catalog.Get("q2")
	_, _, err := m.RecordUserAnswer(ctx, q2, "ExpressRoute")
	require.NoError(t, err)

	missing = m.Missing()
	require.Len(t, missing, 2)
	assert.Equal(t, "q1", missing[0].ID)
	assert.Equal(t, "q3", missing[1].ID)

	assert.Len(t, m.Missing(catalog.PriorityCritical), 1)
	assert.Empty(t, m.Missing(catalog.PriorityHigh))
}

// TestMissingIgnoresPending tests that a pending-review candidate does not
// close a gap.
func TestMissingIgnoresPending(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")

	q1, _ := m.catalog.Get("q1")
	_, err := m.RecordCandidate(ctx, q1, Answer{Text: "guess", Source: SourceDocument, Confidence: 0.3})
	require.NoError(t, err)

	critical := m.MissingCritical()
	require.Len(t, critical, 1)
	assert.Equal(t, "q1", critical[0].ID)
}

// TestCompletionByCategory tests per-category gap accounting.
func TestCompletionByCategory(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")

	q1, _ := m.catalog.Get("q1")
	_, _, err := m.RecordUserAnswer(ctx, q1, "10.0.0.0/16")
	require.NoError(t, err)

	byCat := m.CompletionByCategory()
	require.Len(t, byCat, 2, "only categories with questions appear")

	assert.Equal(t, catalog.CategoryNetworkDesign, byCat[0].Category)
	assert.Equal(t, 1, byCat[0].Answered)
	assert.Equal(t, 2, byCat[0].Total)
	assert.InDelta(t, 50.0, byCat[0].Percentage, 1e-9)

	assert.Equal(t, catalog.CategoryGovernance, byCat[1].Category)
	assert.Equal(t, 0, byCat[1].Answered)
}

// TestSummarize tests the derived projection against a known state.
func TestSummarize(t *testing.T) {
	reg := testCatalog(t)
	state := State{
		SessionID: "s1",
		Answers: map[string]Answer{
			"q1": {QuestionID: "q1", Text: "10.0.0.0/16", Source: SourceDocument, Confidence: 0.9},
			"q2": {QuestionID: "q2", Text: "VPN", Source: SourceUserInput, Confidence: 1.0},
		},
		DocumentsAnalyzed: []string{"a.md", "b.md"},
		Completion:        200.0 / 3,
	}

	s := Summarize(state, reg)
	assert.Equal(t, 3, s.TotalQuestions)
	assert.Equal(t, 2, s.Answered)
	assert.Equal(t, 2, s.DocumentsAnalyzed)
	assert.Equal(t, 1, s.FromDocuments)
	assert.Equal(t, 1, s.FromUser)
	assert.Equal(t, 0, s.FromSearch)
	assert.Equal(t, 1, s.Critical.Answered)
	assert.Equal(t, 1, s.Critical.Total)
	assert.InDelta(t, 100.0, s.Critical.Percentage, 1e-9)
	assert.Empty(t, s.MissingCritical)
	require.Len(t, s.ByCategory, 2)
}

// TestSummarizeMissingCritical tests that unanswered critical questions are
// listed by text.
func TestSummarizeMissingCritical(t *testing.T) {
	reg := testCatalog(t)
	s := Summarize(State{SessionID: "s1", Answers: map[string]Answer{}}, reg)
	assert.Equal(t, 0, s.Critical.Answered)
	require.Len(t, s.MissingCritical, 1)
	assert.Equal(t, "What IP range?", s.MissingCritical[0])
}
