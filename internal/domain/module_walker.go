package domain

import (
	"context"
	"fmt"

	"docsleuth.dev/pkg/docsleuth/internal/adapter"
	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

// ModuleWalker turns one source file into its definition tree. It returns
// the raw file contents too, which the directive resolver scans for ignore
// comments.
type ModuleWalker struct {
	fs     adapter.SourceFSAdapter
	parser adapter.PythonFileAdapter
}

// NewModuleWalker constructs a ModuleWalker.
func NewModuleWalker(fsAdapter adapter.SourceFSAdapter, parser adapter.PythonFileAdapter) *ModuleWalker {
	return &ModuleWalker{fs: fsAdapter, parser: parser}
}

// Walk parses the source file into a definition tree rooted at the module.
// An unreadable or unparseable file returns an error; the caller folds it
// into the run as a synthetic violation instead of aborting.
func (w *ModuleWalker) Walk(ctx context.Context, src m.SourcePath) (*m.Definition, []byte, error) {
	content, err := w.fs.ReadFile(src.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("load module %s: %w", src.Path, err)
	}

	tree, err := w.parser.Parse(ctx, content, src)
	if err != nil {
		return nil, nil, err
	}

	return tree, content, nil
}
