// Package snapshot serializes discovery sessions to a self-describing JSON
// document and restores them. The document is the durable interface boundary
// consumed by downstream reporting and IaC tooling: answers are joined with
// the question's catalog metadata at export time so the snapshot is readable
// without the catalog present.
package snapshot

import (
	"time"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/session"
)

// FormatVersion identifies the snapshot document layout.
const FormatVersion = 1

// Document is a full session snapshot. Only Session and Answers are
// authoritative on reimport; Summary and MissingInformation are denormalized
// copies for human readers and downstream tools, and may be stale.
type Document struct {
	Version           int            `json:"version"`
	Session           SessionInfo    `json:"session"`
	Summary           SummaryInfo    `json:"summary"`
	Answers           []AnswerRecord `json:"answers"`
	MissingInformation []MissingRecord `json:"missing_information,omitempty"`
	DocumentsAnalyzed []string       `json:"documents_analyzed,omitempty"`
}

// SessionInfo identifies the exported session.
type SessionInfo struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Completion float64   `json:"completion"`
}

// AnswerRecord is one answer joined with its question's static metadata.
type AnswerRecord struct {
	QuestionID        string  `json:"question_id"`
	Question          string  `json:"question"`
	Category          string  `json:"category"`
	Priority          string  `json:"priority"`
	Answer            string  `json:"answer"`
	Source            string  `json:"source"`
	Confidence        float64 `json:"confidence"`
	DocumentReference string  `json:"document_reference,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// MissingRecord describes a still-unanswered question. Informational only;
// import ignores it.
type MissingRecord struct {
	QuestionID string   `json:"question_id"`
	Question   string   `json:"question"`
	Category   string   `json:"category"`
	Priority   string   `json:"priority"`
	HelpText   string   `json:"help_text,omitempty"`
	Examples   []string `json:"examples,omitempty"`
}

// SummaryInfo mirrors the session summary projection.
type SummaryInfo struct {
	TotalQuestions    int                `json:"total_questions"`
	Answered          int                `json:"answered"`
	Completion        float64            `json:"completion_percentage"`
	DocumentsAnalyzed int                `json:"documents_analyzed"`
	FromDocuments     int                `json:"answers_from_documents"`
	FromSearch        int                `json:"answers_from_search"`
	FromUser          int                `json:"answers_from_user"`
	Critical          CriticalInfo       `json:"critical_questions"`
	ByCategory        map[string]CategoryInfo `json:"by_category"`
	MissingCritical   []string           `json:"missing_critical,omitempty"`
}

// CriticalInfo reports critical-question progress.
type CriticalInfo struct {
	Answered   int     `json:"answered"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// CategoryInfo reports per-category progress.
type CategoryInfo struct {
	Answered   int     `json:"answered"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Build exports a session state to a snapshot document. Answers appear in
// catalog definition order; missing questions likewise.
func Build(state session.State, reg *catalog.Registry) *Document {
	doc := &Document{
		Version: FormatVersion,
		Session: SessionInfo{
			ID:         state.SessionID,
			Timestamp:  state.CreatedAt,
			Completion: state.Completion,
		},
		DocumentsAnalyzed: state.DocumentsAnalyzed,
	}

	for _, q := range reg.All() {
		if a, ok := state.Answers[q.ID]; ok {
			doc.Answers = append(doc.Answers, AnswerRecord{
				QuestionID:        q.ID,
				Question:          q.Text,
				Category:          string(q.Category),
				Priority:          string(q.Priority),
				Answer:            a.Text,
				Source:            string(a.Source),
				Confidence:        a.Confidence,
				DocumentReference: a.DocumentReference,
				Notes:             a.Notes,
			})
			continue
		}
		doc.MissingInformation = append(doc.MissingInformation, MissingRecord{
			QuestionID: q.ID,
			Question:   q.Text,
			Category:   string(q.Category),
			Priority:   string(q.Priority),
			HelpText:   q.HelpText,
			Examples:   q.Examples,
		})
	}

	sum := session.Summarize(state, reg)
	doc.Summary = SummaryInfo{
		TotalQuestions:    sum.TotalQuestions,
		Answered:          sum.Answered,
		Completion:        sum.Completion,
		DocumentsAnalyzed: sum.DocumentsAnalyzed,
		FromDocuments:     sum.FromDocuments,
		FromSearch:        sum.FromSearch,
		FromUser:          sum.FromUser,
		Critical: CriticalInfo{
			Answered:   sum.Critical.Answered,
			Total:      sum.Critical.Total,
			Percentage: sum.Critical.Percentage,
		},
		ByCategory:      make(map[string]CategoryInfo, len(sum.ByCategory)),
		MissingCritical: sum.MissingCritical,
	}
	for _, cc := range sum.ByCategory {
		doc.Summary.ByCategory[string(cc.Category)] = CategoryInfo{
			Answered:   cc.Answered,
			Total:      cc.Total,
			Percentage: cc.Percentage,
		}
	}

	return doc
}

// Restore converts a snapshot document back to session state. Only the
// answers list is read; the embedded missing-information and summary blocks
// may be stale or absent and are ignored. Catalog mismatches are left to the
// session manager, which drops unknown question ids on resume.
func (d *Document) Restore() *session.Restored {
	r := &session.Restored{
		SessionID:         d.Session.ID,
		CreatedAt:         d.Session.Timestamp,
		DocumentsAnalyzed: d.DocumentsAnalyzed,
	}
	for _, rec := range d.Answers {
		if rec.QuestionID == "" || rec.Answer == "" {
			continue
		}
		r.Answers = append(r.Answers, session.Answer{
			QuestionID:        rec.QuestionID,
			Text:              rec.Answer,
			Source:            session.Source(rec.Source),
			Confidence:        rec.Confidence,
			DocumentReference: rec.DocumentReference,
			Notes:             rec.Notes,
		})
	}
	return r
}
