package domain

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

// DirectiveMarker is the in-source comment marker that introduces an ignore
// directive.
const DirectiveMarker = "docsleuth"

var markerRe = regexp.MustCompile(`#\s*` + DirectiveMarker + `:\s*(.*)$`)

// ScanDirectives extracts ignore directives from source lines, keyed by
// 1-based line number. A malformed directive is treated as absent, never an
// error: this is a linter, not a compiler.
func ScanDirectives(content []byte) map[int]m.Directive {
	directives := make(map[int]m.Directive)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++

		match := markerRe.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}

		if directive, ok := parseDirective(match[1]); ok {
			directives[lineno] = directive
		}
	}

	return directives
}

// parseDirective parses the text after the marker: `ignore` or `ignore-all`,
// optionally followed by `=` or whitespace and a comma-separated code list.
// Trailing comments are tolerated.
func parseDirective(rest string) (m.Directive, bool) {
	rest = strings.TrimSpace(rest)

	scope := m.ScopeSelf
	tail, ok := strings.CutPrefix(rest, "ignore")

	if !ok {
		return m.Directive{}, false
	}

	if allTail, isAll := strings.CutPrefix(tail, "-all"); isAll {
		scope = m.ScopeSelfAndDescendants
		tail = allTail
	}

	// Anything glued to the keyword (e.g. "ignored") is not a directive.
	if tail != "" && tail[0] != ' ' && tail[0] != '\t' && tail[0] != '=' && tail[0] != '#' {
		return m.Directive{}, false
	}

	tail = strings.TrimLeft(tail, " \t")
	if after, hasEq := strings.CutPrefix(tail, "="); hasEq {
		tail = strings.TrimLeft(after, " \t")
	}

	if i := strings.IndexByte(tail, '#'); i >= 0 {
		tail = tail[:i]
	}

	codes := make(map[string]struct{})

	for _, item := range strings.Split(tail, ",") {
		if code := strings.TrimSpace(item); code != "" {
			codes[code] = struct{}{}
		}
	}

	if len(codes) == 0 {
		return m.Directive{Scope: scope, All: true}, true
	}

	return m.Directive{Scope: scope, Codes: codes}, true
}

// ResolveDirectives computes the effective suppression for every definition
// in the tree. A single depth-first pass accumulates the codes inherited
// from self-and-descendants directives; constructor and hidden filtering are
// independent suppression sources unioned in and never inherited.
func ResolveDirectives(tree *m.Definition, directives map[int]m.Directive, cfg *m.EffectiveConfig) map[*m.Definition]m.Suppression {
	defLines := make(map[int]struct{})

	tree.Walk(func(def *m.Definition) {
		if def.Kind != m.KindModule {
			defLines[def.Line] = struct{}{}
		}
	})

	suppressions := make(map[*m.Definition]m.Suppression)
	resolve(tree, directives, defLines, cfg, m.Suppression{}, suppressions)

	return suppressions
}

func resolve(def *m.Definition, directives map[int]m.Directive, defLines map[int]struct{}, cfg *m.EffectiveConfig, inherited m.Suppression, out map[*m.Definition]m.Suppression) {
	own := attachedDirectives(def, directives, defLines)

	sup := m.Suppression{Codes: make(map[string]struct{})}

	for code := range cfg.IgnoreErrors {
		sup.Codes[code] = struct{}{}
	}

	for code := range inherited.Codes {
		sup.Codes[code] = struct{}{}
	}

	for _, directive := range own {
		sup.All = sup.All || directive.All

		for code := range directive.Codes {
			sup.Codes[code] = struct{}{}
		}
	}

	sup.All = sup.All || inherited.All || def.Constructor || (def.Hidden && cfg.IgnoreHidden)
	out[def] = sup

	// Only directive-borne suppression descends; hidden and constructor
	// filtering stop at the definition itself.
	next := m.Suppression{All: inherited.All, Codes: make(map[string]struct{})}

	for code := range inherited.Codes {
		next.Codes[code] = struct{}{}
	}

	for _, directive := range own {
		if directive.Scope != m.ScopeSelfAndDescendants {
			continue
		}

		next.All = next.All || directive.All

		for code := range directive.Codes {
			next.Codes[code] = struct{}{}
		}
	}

	for _, child := range def.Children {
		resolve(child, directives, defLines, cfg, next, out)
	}
}

// attachedDirectives returns the directives that apply to a definition.
// Module directives must appear before the first statement; object
// directives sit on the definition line or the line immediately above,
// unless that line opens another definition and the directive is that
// definition's own.
func attachedDirectives(def *m.Definition, directives map[int]m.Directive, defLines map[int]struct{}) []m.Directive {
	if def.Kind == m.KindModule {
		var attached []m.Directive

		for line, directive := range directives {
			if line < def.FirstStmtLine {
				attached = append(attached, directive)
			}
		}

		return attached
	}

	if directive, ok := directives[def.Line]; ok {
		return []m.Directive{directive}
	}

	if _, taken := defLines[def.Line-1]; taken {
		return nil
	}

	if directive, ok := directives[def.Line-1]; ok {
		return []m.Directive{directive}
	}

	return nil
}
