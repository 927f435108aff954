package session

import (
	"github.com/lzkit/lzkit/internal/catalog"
)

// Missing returns the catalog questions that have no recorded answer, in
// catalog definition order, optionally filtered by priority. Pending-review
// candidates do not count as answers.
func (m *Manager) Missing(filter ...catalog.Priority) []catalog.Question {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []catalog.Question
	for _, q := range m.catalog.All() {
		if len(filter) > 0 && q.Priority != filter[0] {
			continue
		}
		if _, answered := m.answers[q.ID]; answered {
			continue
		}
		out = append(out, q)
	}
	return out
}

// MissingCritical returns the unanswered questions that must be resolved
// before deployment, in catalog order.
func (m *Manager) MissingCritical() []catalog.Question {
	return m.Missing(catalog.PriorityCritical)
}

// CategoryCompletion reports answered/total counts for one category.
type CategoryCompletion struct {
	Category   catalog.Category
	Answered   int
	Total      int
	Percentage float64
}

// CompletionByCategory computes per-category completion freshly on each
// call, so it reflects every answer recorded so far, including those applied
// by background extraction.
func (m *Manager) CompletionByCategory() []CategoryCompletion {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]CategoryCompletion, 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		questions := m.catalog.ByCategory(c)
		if len(questions) == 0 {
			continue
		}
		answered := 0
		for _, q := range questions {
			if _, ok := m.answers[q.ID]; ok {
				answered++
			}
		}
		out = append(out, CategoryCompletion{
			Category:   c,
			Answered:   answered,
			Total:      len(questions),
			Percentage: 100 * float64(answered) / float64(len(questions)),
		})
	}
	return out
}
