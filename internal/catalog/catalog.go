// Package catalog defines the static registry of discovery questions asked
// during a landing-zone workshop. The registry is immutable once built and is
// passed by reference to every component that needs it, so tests can inject a
// reduced synthetic catalog without touching package state.
package catalog

import (
	"errors"
	"fmt"
	"sync"
)

// Category classifies a discovery question by the area of the deployment it
// covers. The set is closed; answers are grouped and reported per category.
type Category string

const (
	CategoryBusinessContext  Category = "Business Context"
	CategoryNetworkDesign    Category = "Network Design"
	CategorySecurityIdentity Category = "Security & Identity"
	CategoryGovernance       Category = "Governance"
	CategoryCompliance       Category = "Compliance & Regulatory"
	CategoryOperations       Category = "Operations & Management"
	CategoryWorkloadPlanning Category = "Workload Planning"
	CategoryCostBudgeting    Category = "Cost & Budgeting"
	CategoryIntegration      Category = "Integration & Connectivity"
	CategoryDisasterRecovery Category = "Disaster Recovery & Backup"
)

// Categories returns all categories in reporting order.
func Categories() []Category {
	return []Category{
		CategoryBusinessContext,
		CategoryNetworkDesign,
		CategorySecurityIdentity,
		CategoryGovernance,
		CategoryCompliance,
		CategoryOperations,
		CategoryWorkloadPlanning,
		CategoryCostBudgeting,
		CategoryIntegration,
		CategoryDisasterRecovery,
	}
}

// Priority ranks how badly an answer is needed before deployment can proceed.
type Priority string

const (
	// PriorityCritical questions must be answered before deployment.
	PriorityCritical Priority = "critical"
	// PriorityHigh questions should be answered; deployment can proceed
	// with documented assumptions.
	PriorityHigh Priority = "high"
	// PriorityMedium questions can be settled later in the engagement.
	PriorityMedium Priority = "medium"
	// PriorityLow questions are optional and may evolve over time.
	PriorityLow Priority = "low"
)

// Priorities returns all priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

// Question is a single discovery question. Questions are catalog-defined and
// immutable; components receive copies by value.
type Question struct {
	ID                string
	Category          Category
	Priority          Priority
	Text              string
	HelpText          string
	Examples          []string
	ValidationPattern string
	RelatedQuestions  []string
}

// ErrNotFound is returned when a question id is not in the registry.
var ErrNotFound = errors.New("question not found")

// Registry is an immutable set of questions with stable definition order.
type Registry struct {
	byID  map[string]Question
	order []string
}

// New builds a registry from a question list. Duplicate ids are rejected;
// every id in a catalog is globally unique.
func New(questions []Question) (*Registry, error) {
	r := &Registry{
		byID:  make(map[string]Question, len(questions)),
		order: make([]string, 0, len(questions)),
	}
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question with empty id (text: %q)", q.Text)
		}
		if _, dup := r.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		r.byID[q.ID] = q
		r.order = append(r.order, q.ID)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in landing-zone catalog. The registry is built
// once and shared; it is safe for concurrent use because it is never mutated.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New(landingZoneQuestions)
		if err != nil {
			// The built-in catalog is compiled in; a duplicate id here
			// is a programming error, not a runtime condition.
			panic(fmt.Sprintf("invalid built-in catalog: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Get returns the question with the given id, or ErrNotFound.
func (r *Registry) Get(id string) (Question, error) {
	q, ok := r.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return q, nil
}

// Contains reports whether the registry has a question with the given id.
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of questions in the catalog.
func (r *Registry) Len() int {
	return len(r.order)
}

// All returns every question in catalog definition order.
func (r *Registry) All() []Question {
	out := make([]Question, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// ByCategory returns the questions in a category, in definition order.
func (r *Registry) ByCategory(c Category) []Question {
	var out []Question
	for _, id := range r.order {
		if q := r.byID[id]; q.Category == c {
			out = append(out, q)
		}
	}
	return out
}

// ByPriority returns the questions with a priority, in definition order.
func (r *Registry) ByPriority(p Priority) []Question {
	var out []Question
	for _, id := range r.order {
		if q := r.byID[id]; q.Priority == p {
			out = append(out, q)
		}
	}
	return out
}

// Critical returns the questions that must be answered before deployment.
func (r *Registry) Critical() []Question {
	return r.ByPriority(PriorityCritical)
}
