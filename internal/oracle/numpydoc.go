package oracle

import (
	"fmt"
	"strings"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

// sectionTitles are the numpydoc section headers the rule set recognizes.
// A header is a line holding only the title, underlined with dashes.
var sectionTitles = []string{
	"Parameters", "Returns", "Yields", "Raises", "Warns",
	"See Also", "Notes", "References", "Examples", "Attributes", "Methods",
}

// NumpydocOracle checks numpydoc-style docstring conventions. The rule set
// is deliberately small: structural checks only, no prose analysis.
type NumpydocOracle struct{}

// NewNumpydocOracle constructs a NumpydocOracle.
func NewNumpydocOracle() *NumpydocOracle {
	return &NumpydocOracle{}
}

// Validate returns the violations for one definition. An object without a
// docstring reports GL08 only; the remaining rules presume a docstring.
func (o *NumpydocOracle) Validate(def *m.Definition) ([]m.Violation, error) {
	doc := strings.TrimSpace(def.Doc)
	if doc == "" {
		return []m.Violation{{
			Code:    "GL08",
			Message: "The object does not have a docstring",
		}}, nil
	}

	var violations []m.Violation

	lines := strings.Split(doc, "\n")
	sections := findSections(lines)

	if isSectionHeader(lines, 0) {
		violations = append(violations, m.Violation{
			Code:    "SS01",
			Message: "No summary found (a short summary in a single line should be present at the beginning of the docstring)",
		})
	}

	if !hasExtendedSummary(lines) {
		violations = append(violations, m.Violation{
			Code:    "ES01",
			Message: "No extended summary found",
		})
	}

	if missing := undocumentedParams(def.Params, lines, sections); len(missing) > 0 {
		violations = append(violations, m.Violation{
			Code:    "PR01",
			Message: fmt.Sprintf("Parameters {%s} not documented", strings.Join(missing, ", ")),
		})
	}

	if def.HasReturn {
		if _, ok := sections["Returns"]; !ok {
			violations = append(violations, m.Violation{
				Code:    "RT01",
				Message: "No Returns section found",
			})
		}
	}

	return violations, nil
}

// findSections maps each recognized section title to the index of its header
// line.
func findSections(lines []string) map[string]int {
	sections := make(map[string]int)

	for i := range lines {
		if title := headerTitle(lines, i); title != "" {
			sections[title] = i
		}
	}

	return sections
}

func isSectionHeader(lines []string, i int) bool {
	return headerTitle(lines, i) != ""
}

func headerTitle(lines []string, i int) string {
	if i+1 >= len(lines) {
		return ""
	}

	underline := strings.TrimSpace(lines[i+1])
	if underline == "" || strings.Trim(underline, "-") != "" {
		return ""
	}

	title := strings.TrimSpace(lines[i])
	for _, known := range sectionTitles {
		if title == known {
			return known
		}
	}

	return ""
}

// hasExtendedSummary reports whether any prose follows the summary line
// before the first section header.
func hasExtendedSummary(lines []string) bool {
	sawSummary := false

	for i, line := range lines {
		if isSectionHeader(lines, i) {
			return false
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		if sawSummary {
			return true
		}

		sawSummary = true
	}

	return false
}

// undocumentedParams returns declared parameters that never open a line of
// the Parameters section.
func undocumentedParams(params []string, lines []string, sections map[string]int) []string {
	if len(params) == 0 {
		return nil
	}

	start, ok := sections["Parameters"]
	if !ok {
		return params
	}

	end := len(lines)

	for title, i := range sections {
		if title != "Parameters" && i > start && i < end {
			end = i
		}
	}

	documented := make(map[string]struct{})

	for _, line := range lines[start:end] {
		name, _, _ := strings.Cut(strings.TrimSpace(line), ":")
		name = strings.TrimSpace(strings.TrimLeft(name, "*"))

		if name != "" {
			documented[name] = struct{}{}
		}
	}

	var missing []string

	for _, param := range params {
		if _, ok := documented[param]; !ok {
			missing = append(missing, param)
		}
	}

	return missing
}
