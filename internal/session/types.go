// Package session implements the discovery session state machine: the answer
// store, the resolver that reconciles multi-source candidate answers, the
// pending-review cache for low-confidence extractions, and the gap analysis
// over the question catalog.
package session

import (
	"time"
)

// Source identifies where an answer came from.
type Source string

const (
	// SourceDocument marks answers extracted from an uploaded document.
	SourceDocument Source = "document"
	// SourceSearchIndex marks answers extracted via the search index.
	SourceSearchIndex Source = "search_index"
	// SourceUserInput marks answers typed by the operator.
	SourceUserInput Source = "user_input"
	// SourceAssumption marks answers recorded as working assumptions.
	SourceAssumption Source = "assumption"
)

// Answer is one recorded answer to a catalog question. Answers are immutable
// once created; a correction is a replacement Answer for the same question id
// (last write wins, no history kept).
type Answer struct {
	QuestionID        string
	Text              string
	Source            Source
	Confidence        float64
	DocumentReference string
	Notes             string
}

// Resolution is the outcome of resolving one extraction candidate.
type Resolution string

const (
	// ResolutionAccepted means the candidate met the confidence threshold
	// and was written into the session.
	ResolutionAccepted Resolution = "accepted"
	// ResolutionDeferred means the candidate fell below the threshold and
	// was parked in the pending-review cache.
	ResolutionDeferred Resolution = "deferred"
	// ResolutionDiscarded means the question already had an answer, so the
	// candidate was dropped. An automated guess never overwrites a
	// recorded answer.
	ResolutionDiscarded Resolution = "discarded"
)

// State is a point-in-time copy of a session, safe to read without holding
// the manager's lock. Checkpoint hooks and the snapshot codec consume it.
type State struct {
	SessionID         string
	CreatedAt         time.Time
	Answers           map[string]Answer
	DocumentsAnalyzed []string // sorted
	Completion        float64  // percentage, always consistent with len(Answers)
}

// Restored is session state recovered from a prior snapshot. Only the answer
// core is authoritative; denormalized catalog metadata in the snapshot is
// ignored on import.
type Restored struct {
	SessionID         string
	CreatedAt         time.Time
	Answers           []Answer
	DocumentsAnalyzed []string
}
