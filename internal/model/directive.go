package model

// DirectiveScope defines which definitions an ignore directive covers.
type DirectiveScope int

const (
	// ScopeSelf covers only the definition the directive is attached to.
	ScopeSelf DirectiveScope = iota
	// ScopeSelfAndDescendants covers the definition and everything below it.
	ScopeSelfAndDescendants
)

// Directive is a parsed in-source ignore directive. A directive with no code
// list suppresses everything (All), otherwise only the listed codes.
type Directive struct {
	Scope DirectiveScope
	All   bool
	Codes map[string]struct{}
}

// Suppression is the per-definition resolved suppression after combining the
// definition's own directive, inherited directives, and global config. When
// All is set the definition is fully skipped and the oracle never runs.
type Suppression struct {
	All   bool
	Codes map[string]struct{}
}

// Suppressed reports whether a violation code is filtered out.
func (s Suppression) Suppressed(code string) bool {
	if s.All {
		return true
	}

	_, ok := s.Codes[code]
	return ok
}
