package model

import "github.com/dlclark/regexp2"

// DefaultFilenamePattern selects regular Python modules. The pattern is
// applied to the file name only with full-match semantics, so `.pyi` stubs
// do not match.
const DefaultFilenamePattern = `.+\.py$`

// EffectiveConfig is the fully resolved configuration for one run. It is
// built once at startup and never mutated afterward.
type EffectiveConfig struct {
	IgnoreErrors    map[string]struct{}
	IgnorePaths     []string
	IgnoreHidden    bool
	FilenamePattern *regexp2.Regexp
	Verbose         int
}

// MatchFilename reports whether the file name is entirely matched by the
// configured pattern.
func (c *EffectiveConfig) MatchFilename(name string) bool {
	if c.FilenamePattern == nil {
		return true
	}

	ok, err := c.FilenamePattern.MatchString(name)
	return err == nil && ok
}

// CompileFilenamePattern wraps the pattern so a match must consume the whole
// file name, mirroring how patterns with inline anchors still behave.
func CompileFilenamePattern(pattern string) (*regexp2.Regexp, error) {
	return regexp2.Compile(`\A(?:`+pattern+`)\z`, regexp2.None)
}
