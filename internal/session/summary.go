package session

import (
	"time"

	"github.com/lzkit/lzkit/internal/catalog"
)

// CriticalSummary reports progress on must-answer questions.
type CriticalSummary struct {
	Answered   int
	Total      int
	Percentage float64
}

// Summary is a derived, read-only projection of a session. It is recomputed
// on demand and never cached, so it is always consistent with the latest
// mutation.
type Summary struct {
	SessionID         string
	CreatedAt         time.Time
	TotalQuestions    int
	Answered          int
	Completion        float64
	DocumentsAnalyzed int
	FromDocuments     int
	FromSearch        int
	FromUser          int
	FromAssumptions   int
	Critical          CriticalSummary
	ByCategory        []CategoryCompletion
	MissingCritical   []string // question texts, catalog order
}

// Summarize projects a state copy against the catalog. The snapshot codec
// uses this to embed a summary at export time.
func Summarize(state State, reg *catalog.Registry) Summary {
	s := Summary{
		SessionID:         state.SessionID,
		CreatedAt:         state.CreatedAt,
		TotalQuestions:    reg.Len(),
		Answered:          len(state.Answers),
		Completion:        state.Completion,
		DocumentsAnalyzed: len(state.DocumentsAnalyzed),
	}

	for _, a := range state.Answers {
		switch a.Source {
		case SourceDocument:
			s.FromDocuments++
		case SourceSearchIndex:
			s.FromSearch++
		case SourceUserInput:
			s.FromUser++
		case SourceAssumption:
			s.FromAssumptions++
		}
	}

	critical := reg.Critical()
	s.Critical.Total = len(critical)
	for _, q := range critical {
		if _, ok := state.Answers[q.ID]; ok {
			s.Critical.Answered++
		} else {
			s.MissingCritical = append(s.MissingCritical, q.Text)
		}
	}
	if s.Critical.Total > 0 {
		s.Critical.Percentage = 100 * float64(s.Critical.Answered) / float64(s.Critical.Total)
	}

	for _, c := range catalog.Categories() {
		questions := reg.ByCategory(c)
		if len(questions) == 0 {
			continue
		}
		answered := 0
		for _, q := range questions {
			if _, ok := state.Answers[q.ID]; ok {
				answered++
			}
		}
		s.ByCategory = append(s.ByCategory, CategoryCompletion{
			Category:   c,
			Answered:   answered,
			Total:      len(questions),
			Percentage: 100 * float64(answered) / float64(len(questions)),
		})
	}

	return s
}

// Summary returns the projection for the current session state.
func (m *Manager) Summary() Summary {
	return Summarize(m.State(), m.catalog)
}
