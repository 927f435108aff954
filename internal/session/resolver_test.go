package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzkit/lzkit/internal/validate"
)

// TestRecordCandidateValidation tests candidate argument checking.
func TestRecordCandidateValidation(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")
	q1, _ := m.catalog.Get("q1")

	tests := []struct {
		name string
		cand Answer
	}{
		{"user source not allowed", Answer{Text: "x", Source: SourceUserInput, Confidence: 0.9}},
		{"assumption source not allowed", Answer{Text: "x", Source: SourceAssumption, Confidence: 0.9}},
		{"empty source", Answer{Text: "x", Confidence: 0.9}},
		{"confidence above one", Answer{Text: "x", Source: SourceDocument, Confidence: 1.2}},
		{"negative confidence", Answer{Text: "x", Source: SourceDocument, Confidence: -0.1}},
		{"blank text", Answer{Text: "   ", Source: SourceDocument, Confidence: 0.9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.RecordCandidate(ctx, q1, tt.cand)
			assert.Error(t, err)
		})
	}

	// Unknown question id.
	unknown := q1
	unknown.ID = "nope"
	_, err := m.RecordCandidate(ctx, unknown, Answer{Text: "x", Source: SourceDocument, Confidence: 0.9})
	assert.Error(t, err)
}

// TestThresholdResolution tests accept-vs-defer around the confidence
// threshold, including the exact boundary.
func TestThresholdResolution(t *testing.T) {
	m := testManager(t, Config{ConfidenceThreshold: 0.85})
	ctx := context.Background()
	m.Start("")

	q1, _ := m.catalog.Get("q1")
	q2, _ := m.catalog.Get("q2")
	q3, _ := m.catalog.Get("q3")

	// Above threshold: accepted.
	res, err := m.RecordCandidate(ctx, q1, Answer{Text: "10.0.0.0/16", Source: SourceDocument, Confidence: 0.92})
	require.NoError(t, err)
	assert.Equal(t, ResolutionAccepted, res)
	_, answered := m.Answer("q1")
	assert.True(t, answered)

	// Exactly at threshold: accepted.
	res, err = m.RecordCandidate(ctx, q2, Answer{Text: "VPN", Source: SourceSearchIndex, Confidence: 0.85})
	require.NoError(t, err)
	assert.Equal(t, ResolutionAccepted, res)

	// Below threshold: deferred to the pending cache, not answered.
	res, err = m.RecordCandidate(ctx, q3, Answer{Text: "<type>-<env>", Source: SourceDocument, Confidence: 0.6})
	require.NoError(t, err)
	assert.Equal(t, ResolutionDeferred, res)
	_, answered = m.Answer("q3")
	assert.False(t, answered)
	pend, ok := m.PendingFor("q3")
	require.True(t, ok)
	assert.Equal(t, "<type>-<env>", pend.Text)

	// Deferred answers do not count toward completion.
	assert.InDelta(t, 200.0/3, m.State().Completion, 1e-9)
}

// TestFirstAcceptedWins tests that a recorded answer is never overwritten by
// a later automated candidate, regardless of confidence.
func TestFirstAcceptedWins(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")
	q1, _ := m.catalog.Get("q1")

	_, err := m.RecordCandidate(ctx, q1, Answer{Text: "10.0.0.0/16", Source: SourceDocument, Confidence: 0.90})
	require.NoError(t, err)

	res, err := m.RecordCandidate(ctx, q1, Answer{Text: "192.168.0.0/24", Source: SourceSearchIndex, Confidence: 0.99})
	require.NoError(t, err)
	assert.Equal(t, ResolutionDiscarded, res)

	a, _ := m.Answer("q1")
	assert.Equal(t, "10.0.0.0/16", a.Text)
	assert.Equal(t, SourceDocument, a.Source)
}

// TestLastPendingWins tests that the pending cache holds at most one
// candidate per question, the most recent one.
func TestLastPendingWins(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")
	q1, _ := m.catalog.Get("q1")

	_, err := m.RecordCandidate(ctx, q1, Answer{Text: "first guess", Source: SourceDocument, Confidence: 0.5})
	require.NoError(t, err)
	_, err = m.RecordCandidate(ctx, q1, Answer{Text: "second guess", Source: SourceSearchIndex, Confidence: 0.7})
	require.NoError(t, err)

	pending := m.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "second guess", pending[0].Text)
	assert.InDelta(t, 0.7, pending[0].Confidence, 1e-9)
}

// TestUserAnswerOverwritesEverything tests the operator's unconditional
// write path.
func TestUserAnswerOverwritesEverything(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")
	q1, _ := m.catalog.Get("q1")

	// Automated answer first.
	_, err := m.RecordCandidate(ctx, q1, Answer{Text: "10.0.0.0/16", Source: SourceDocument, Confidence: 0.95})
	require.NoError(t, err)

	// User overwrites it.
	a, _, err := m.RecordUserAnswer(ctx, q1, "172.16.0.0/16")
	require.NoError(t, err)
	assert.Equal(t, SourceUserInput, a.Source)
	assert.InDelta(t, 1.0, a.Confidence, 1e-9)

	got, _ := m.Answer("q1")
	assert.Equal(t, "172.16.0.0/16", got.Text)

	// And a second user answer overwrites the first.
	_, _, err = m.RecordUserAnswer(ctx, q1, "192.168.0.0/16")
	require.NoError(t, err)
	got, _ = m.Answer("q1")
	assert.Equal(t, "192.168.0.0/16", got.Text)

	// Still one answer's worth of completion.
	assert.InDelta(t, 100.0/3, m.State().Completion, 1e-9)
}

// TestUserAnswerClearsPending tests that answering a question removes its
// cached low-confidence candidate.
func TestUserAnswerClearsPending(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")
	q1, _ := m.catalog.Get("q1")

	_, err := m.RecordCandidate(ctx, q1, Answer{Text: "guess", Source: SourceDocument, Confidence: 0.4})
	require.NoError(t, err)
	_, ok := m.PendingFor("q1")
	require.True(t, ok)

	_, _, err = m.RecordUserAnswer(ctx, q1, "10.0.0.0/16")
	require.NoError(t, err)

	_, ok = m.PendingFor("q1")
	assert.False(t, ok, "pending candidate must be superseded by the user answer")
	assert.Empty(t, m.Pending())
}

// TestUserAnswerFindings tests that advisory validation runs on user answers
// and never blocks the write.
func TestUserAnswerFindings(t *testing.T) {
	rules := validate.NewRegistry()
	reg := testCatalog(t)
	m := testManager(t, Config{Catalog: reg, Rules: rules})
	ctx := context.Background()
	m.Start("")

	// q1 has no registered rule in the default set (ids differ from the
	// built-in catalog), so findings are nil but the answer lands.
	q1, _ := reg.Get("q1")
	a, findings, err := m.RecordUserAnswer(ctx, q1, "complete nonsense")
	require.NoError(t, err)
	assert.Nil(t, findings)
	assert.Equal(t, "complete nonsense", a.Text)
	_, ok := m.Answer("q1")
	assert.True(t, ok)
}

// TestAcceptPending tests promoting a cached candidate.
func TestAcceptPending(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")
	q1, _ := m.catalog.Get("q1")

	_, err := m.RecordCandidate(ctx, q1, Answer{Text: "10.8.0.0/16", Source: SourceDocument, Confidence: 0.7})
	require.NoError(t, err)

	accepted, err := m.AcceptPending(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "10.8.0.0/16", accepted.Text)
	// The stored confidence is the extraction's own, not inflated to 1.0.
	assert.InDelta(t, 0.7, accepted.Confidence, 1e-9)

	_, ok := m.PendingFor("q1")
	assert.False(t, ok)
	got, ok := m.Answer("q1")
	require.True(t, ok)
	assert.Equal(t, "10.8.0.0/16", got.Text)

	// Accepting twice fails: the cache entry is gone.
	_, err = m.AcceptPending(ctx, "q1")
	assert.Error(t, err)
}

// TestRejectPending tests discarding a cached candidate.
func TestRejectPending(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")
	q1, _ := m.catalog.Get("q1")

	_, err := m.RecordCandidate(ctx, q1, Answer{Text: "guess", Source: SourceDocument, Confidence: 0.5})
	require.NoError(t, err)

	require.NoError(t, m.RejectPending("q1"))
	_, ok := m.PendingFor("q1")
	assert.False(t, ok)
	_, answered := m.Answer("q1")
	assert.False(t, answered, "rejecting must not create an answer")

	assert.Error(t, m.RejectPending("q1"))
	assert.Error(t, m.RejectPending("never-pended"))
}

// TestMixedSourceScenario walks a session through the full resolution
// lifecycle: document extraction, search extraction, review, and operator
// input.
func TestMixedSourceScenario(t *testing.T) {
	m := testManager(t, Config{})
	ctx := context.Background()
	m.Start("")

	q1, _ := m.catalog.Get("q1")
	q2, _ := m.catalog.Get("q2")
	q3, _ := m.catalog.Get("q3")

	// Document analysis answers q1 confidently and takes a weak guess at q2.
	res, err := m.RecordCandidate(ctx, q1, Answer{
		Text: "10.0.0.0/16", Source: SourceDocument, Confidence: 0.92,
		DocumentReference: "network-design.md",
	})
	require.NoError(t, err)
	require.Equal(t, ResolutionAccepted, res)

	res, err = m.RecordCandidate(ctx, q2, Answer{Text: "probably VPN", Source: SourceSearchIndex, Confidence: 0.55})
	require.NoError(t, err)
	require.Equal(t, ResolutionDeferred, res)

	// Workshop: operator reviews the weak guess and types the real answer.
	_, _, err = m.RecordUserAnswer(ctx, q2, "ExpressRoute with VPN failover")
	require.NoError(t, err)

	// Operator answers the remaining question.
	_, _, err = m.RecordUserAnswer(ctx, q3, "<type>-<workload>-<env>")
	require.NoError(t, err)

	state := m.State()
	assert.InDelta(t, 100.0, state.Completion, 1e-9)
	assert.Empty(t, m.Pending())

	s := m.Summary()
	assert.Equal(t, 1, s.FromDocuments)
	assert.Equal(t, 0, s.FromSearch)
	assert.Equal(t, 2, s.FromUser)
	assert.Equal(t, 1, s.Critical.Answered)
	assert.Equal(t, 1, s.Critical.Total)
}
