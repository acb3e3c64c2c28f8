package model

// Internal error codes used for synthetic violations. They flow through the
// normal report path so one broken module never aborts the run.
const (
	// CodeLoadFailure marks a module that could not be read or parsed.
	CodeLoadFailure = "I001"
	// CodeOracleFailure marks an object the oracle failed to validate.
	CodeOracleFailure = "I002"
)

// Violation is a single rule violation reported by the docstring oracle.
type Violation struct {
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
}

// DefinitionResult pairs a checked definition with its surviving violations.
type DefinitionResult struct {
	Definition *Definition
	Violations []Violation
}

// RunResult accumulates across the whole run and is consumed exactly once by
// the reporter. Checked excludes fully suppressed definitions; Flagged counts
// definitions with at least one surviving violation, not violations.
type RunResult struct {
	Checked int
	Flagged int
	Results []DefinitionResult
}

// Record appends one checked definition and updates the counters.
func (r *RunResult) Record(def *Definition, violations []Violation) {
	r.Checked++
	if len(violations) > 0 {
		r.Flagged++
	}

	r.Results = append(r.Results, DefinitionResult{Definition: def, Violations: violations})
}
