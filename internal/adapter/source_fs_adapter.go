// Package adapter contains infrastructure adapters for the Docsleuth CLI.
package adapter

import (
	"io/fs"
	"os"
	"path/filepath"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

// SourceFSAdapter abstracts filesystem operations the domain layer relies on
// when scanning user projects, so the path filter and walker can be tested
// without touching the disk layout directly.
type SourceFSAdapter interface {
	// WalkDir traverses root depth-first with entries in lexical order,
	// the ordering guarantee the deterministic file list depends on.
	WalkDir(root m.Path, fn fs.WalkDirFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check
	// existence or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// WalkDir walks the file tree rooted at root in lexical order.
func (a *LocalSourceFSAdapter) WalkDir(root m.Path, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(string(root), fn)
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}
