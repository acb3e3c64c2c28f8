package controller

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// SimpleUI renders plain line-oriented output through the cobra command's
// writers: report lines go to stderr, success to stdout.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a SimpleUI. Styling is applied only when color is set.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// DisplayResult renders the run result at the requested verbosity level.
func (s *SimpleUI) DisplayResult(result *m.RunResult, verbose int) {
	if result.Flagged == 0 {
		message := fmt.Sprintf("Success: No errors found in %d objects checked.", result.Checked)
		s.outf("%s\n", s.style(successStyle, message))

		return
	}

	header := fmt.Sprintf("Errors found in %d out of %d objects checked.", result.Flagged, result.Checked)
	s.errf("%s\n", s.style(failureStyle, header))

	if verbose < 1 {
		return
	}

	for _, entry := range result.Results {
		if len(entry.Violations) == 0 {
			continue
		}

		s.errf("%s %s: %s\n", entry.Definition.Link(), entry.Definition.Name, codeList(entry.Violations))

		if verbose < 2 {
			continue
		}

		for _, violation := range entry.Violations {
			s.errf("    %s: %s\n", violation.Code, violation.Message)
		}
	}
}

// DisplayFileList renders a table of discovered files with definition counts.
func (s *SimpleUI) DisplayFileList(files []FileSummary) {
	sorted := make([]FileSummary, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Definitions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, file := range sorted {
		count := fmt.Sprintf("%d", file.Definitions)
		if file.Broken {
			count = "error"
		}

		table.Append([]string{string(file.Path), count})
		total += file.Definitions
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		fmt.Sprintf("%d", total),
	})

	table.Render()

	s.outf("\n%s", tableBuffer.String())
}

func codeList(violations []m.Violation) string {
	codes := make([]string, 0, len(violations))
	for _, violation := range violations {
		codes = append(codes, violation.Code)
	}

	return strings.Join(codes, ", ")
}

func (s *SimpleUI) style(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) outf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
