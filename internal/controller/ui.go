// Package controller provides output adapters for displaying validation
// results.
package controller

import (
	"os"

	"github.com/mattn/go-isatty"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

// FileSummary holds the per-file counts shown by the list command.
type FileSummary struct {
	Path        m.Path
	Definitions int
	Broken      bool
}

// UI defines the interface for rendering run output. Implementations decide
// formatting; the workflow decides content.
type UI interface {
	// DisplayResult renders the run result at the requested verbosity:
	// 0 totals only, 1 one line per flagged definition with codes,
	// 2 additionally one line per violation with its message.
	DisplayResult(result *m.RunResult, verbose int)

	// DisplayFileList renders the discovered files and their definition
	// counts.
	DisplayFileList(files []FileSummary)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
