package domain

import (
	"fmt"
	"log/slog"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
	"docsleuth.dev/pkg/docsleuth/internal/oracle"
)

// Driver runs the docstring oracle over a definition tree, honoring the
// resolved suppressions. A fully suppressed definition is never checked and
// never counted; an oracle failure becomes a synthetic violation so one bad
// object cannot stop the rest of the run.
type Driver struct {
	oracle oracle.Oracle
}

// NewDriver constructs a Driver over the given oracle.
func NewDriver(o oracle.Oracle) *Driver {
	return &Driver{oracle: o}
}

// Run validates every non-suppressed definition in the tree depth-first in
// declaration order, accumulating into result.
func (d *Driver) Run(tree *m.Definition, suppressions map[*m.Definition]m.Suppression, result *m.RunResult) {
	tree.Walk(func(def *m.Definition) {
		sup := suppressions[def]
		if sup.All {
			slog.Debug("definition fully suppressed", "name", def.Name)
			return
		}

		violations, err := d.oracle.Validate(def)
		if err != nil {
			slog.Warn("oracle failed", "name", def.Name, "error", err)

			violations = []m.Violation{{
				Code:    m.CodeOracleFailure,
				Message: fmt.Sprintf("Validation failed: %v", err),
			}}
		}

		var surviving []m.Violation

		for _, violation := range violations {
			if !sup.Suppressed(violation.Code) {
				surviving = append(surviving, violation)
			}
		}

		result.Record(def, surviving)
	})
}
