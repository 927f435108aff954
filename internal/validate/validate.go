// Package validate checks discovery answers against landing-zone best
// practices. Findings are advisory only: they are shown to the operator but
// never block recording an answer.
package validate

// Severity grades a validation finding.
type Severity string

const (
	// SeverityError marks a value that fails a structural check.
	SeverityError Severity = "error"
	// SeverityWarning marks a structurally valid but risky choice.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks a non-blocking recommendation.
	SeverityInfo Severity = "info"
	// SeveritySuccess marks an answer that meets best practices.
	SeveritySuccess Severity = "success"
)

// Finding is a single validation result.
type Finding struct {
	Severity       Severity
	Message        string
	Recommendation string
}

// Rule validates one answer and returns zero or more findings.
type Rule func(answer string) []Finding

// Registry maps question ids to their validation rules. Rules are targeted
// at individually known high-stakes questions; most questions have none.
// The mapping is resolved once at construction, so "no rule registered" is
// an explicit state rather than a scattered string lookup.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry returns the default rule set for the landing-zone catalog.
func NewRegistry() *Registry {
	return &Registry{
		rules: map[string]Rule{
			"net_001":  IPRange,
			"net_003":  ConnectivityMethod,
			"gov_003":  EnvironmentSeparation,
			"gov_004":  NamingConventionPattern,
			"dr_001":   BackupStrategy,
			"cost_001": Budget,
			"sec_001":  SecurityRequirements,
		},
	}
}

// Has reports whether a rule is registered for the question id.
func (r *Registry) Has(questionID string) bool {
	_, ok := r.rules[questionID]
	return ok
}

// Check runs the rule for a question id against an answer. Questions with no
// registered rule produce no findings; that is not an error.
func (r *Registry) Check(questionID, answer string) []Finding {
	rule, ok := r.rules[questionID]
	if !ok {
		return nil
	}
	return rule(answer)
}
