// Package oracle defines the docstring-quality oracle interface and the
// bundled rule set. The validation driver treats the oracle as opaque: it
// only filters the returned violations against the resolved suppressions.
package oracle

import m "docsleuth.dev/pkg/docsleuth/internal/model"

// Oracle validates one definition and returns its rule violations in a
// stable order. Implementations must be side-effect free.
type Oracle interface {
	Validate(def *m.Definition) ([]m.Violation, error)
}
