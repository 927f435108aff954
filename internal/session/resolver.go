package session

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/validate"
)

// RecordCandidate resolves one automated extraction candidate against the
// session:
//
//   - a question that already has an answer discards the candidate
//     (the first accepted answer wins over later automated guesses)
//   - at or above the confidence threshold the candidate is accepted
//   - below the threshold it is parked in the pending-review cache,
//     replacing any earlier pending candidate for the same question
//
// Each call is atomic and independent; a cancelled batch leaves every
// already-accepted answer committed.
func (m *Manager) RecordCandidate(ctx context.Context, q catalog.Question, cand Answer) (Resolution, error) {
	if cand.Source != SourceDocument && cand.Source != SourceSearchIndex {
		return "", fmt.Errorf("candidate source must be document or search_index, got %q", cand.Source)
	}
	if cand.Confidence < 0 || cand.Confidence > 1 {
		return "", fmt.Errorf("candidate confidence %v out of range [0,1]", cand.Confidence)
	}
	if strings.TrimSpace(cand.Text) == "" {
		return "", fmt.Errorf("candidate answer text is empty")
	}
	if !m.catalog.Contains(q.ID) {
		return "", fmt.Errorf("%w: %s", catalog.ErrNotFound, q.ID)
	}
	cand.QuestionID = q.ID

	m.mu.Lock()
	if m.answers == nil {
		m.mu.Unlock()
		return "", ErrNoSession
	}

	if _, answered := m.answers[q.ID]; answered {
		m.mu.Unlock()
		m.logger.Debug("discarding candidate for already-answered question",
			"question", q.ID, "confidence", cand.Confidence)
		return ResolutionDiscarded, nil
	}

	if cand.Confidence < m.threshold {
		// Last pending candidate wins; there is no accumulation.
		m.pending[q.ID] = cand
		m.mu.Unlock()
		m.logger.Debug("cached low-confidence answer for review",
			"question", q.ID, "confidence", cand.Confidence)
		return ResolutionDeferred, nil
	}

	m.answers[q.ID] = cand
	delete(m.pending, q.ID)
	m.recorded++
	due := m.recorded%m.interval == 0
	state := m.stateLocked()
	m.mu.Unlock()

	m.logger.Info("auto-accepted answer",
		"question", q.ID, "source", cand.Source, "confidence", cand.Confidence)
	m.maybeCheckpoint(ctx, state, due)
	return ResolutionAccepted, nil
}

// RecordUserAnswer records an operator-supplied answer. User answers bypass
// the confidence threshold entirely: they are written at confidence 1.0 and
// unconditionally overwrite whatever is recorded for the question, including
// a prior user answer. Any pending automated guess for the question is
// superseded and removed.
//
// The returned findings are advisory; they never prevent the write.
func (m *Manager) RecordUserAnswer(ctx context.Context, q catalog.Question, text string) (Answer, []validate.Finding, error) {
	if strings.TrimSpace(text) == "" {
		return Answer{}, nil, fmt.Errorf("answer text is empty")
	}
	if !m.catalog.Contains(q.ID) {
		return Answer{}, nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, q.ID)
	}

	answer := Answer{
		QuestionID: q.ID,
		Text:       text,
		Source:     SourceUserInput,
		Confidence: 1.0,
		Notes:      "Provided during interactive discovery session",
	}

	m.mu.Lock()
	if m.answers == nil {
		m.mu.Unlock()
		return Answer{}, nil, ErrNoSession
	}
	m.answers[q.ID] = answer
	delete(m.pending, q.ID)
	m.recorded++
	due := m.recorded%m.interval == 0
	state := m.stateLocked()
	m.mu.Unlock()

	findings := m.rules.Check(q.ID, text)
	m.maybeCheckpoint(ctx, state, due)
	return answer, findings, nil
}

// Pending returns the cached low-confidence answers awaiting review, sorted
// by question id.
func (m *Manager) Pending() []Answer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Answer, 0, len(m.pending))
	for _, a := range m.pending {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// PendingFor returns the cached candidate for a question, if any.
func (m *Manager) PendingFor(questionID string) (Answer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.pending[questionID]
	return a, ok
}

// AcceptPending promotes a cached candidate into the session's answers and
// removes it from the cache. A question id is never in both at once.
func (m *Manager) AcceptPending(ctx context.Context, questionID string) (Answer, error) {
	m.mu.Lock()
	if m.answers == nil {
		m.mu.Unlock()
		return Answer{}, ErrNoSession
	}
	cand, ok := m.pending[questionID]
	if !ok {
		m.mu.Unlock()
		return Answer{}, fmt.Errorf("no pending answer for question %s", questionID)
	}
	delete(m.pending, questionID)
	m.answers[questionID] = cand
	m.recorded++
	due := m.recorded%m.interval == 0
	state := m.stateLocked()
	m.mu.Unlock()

	m.logger.Info("accepted pending answer", "question", questionID, "confidence", cand.Confidence)
	m.maybeCheckpoint(ctx, state, due)
	return cand, nil
}

// RejectPending discards a cached candidate without touching the session's
// answers. The discard is logged so an operator-visible trace exists.
func (m *Manager) RejectPending(questionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.answers == nil {
		return ErrNoSession
	}
	cand, ok := m.pending[questionID]
	if !ok {
		return fmt.Errorf("no pending answer for question %s", questionID)
	}
	delete(m.pending, questionID)
	m.logger.Info("rejected pending answer",
		"question", questionID, "confidence", cand.Confidence)
	return nil
}
