package domain

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"docsleuth.dev/pkg/docsleuth/internal/adapter"
	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

// PathFilter produces the ordered list of source files to inspect. The order
// is deterministic: roots in argument order, directory entries depth-first in
// lexical order. Ignored paths prune traversal rather than post-filter it.
type PathFilter struct {
	fs adapter.SourceFSAdapter
}

// NewPathFilter constructs a PathFilter over the given filesystem adapter.
func NewPathFilter(fsAdapter adapter.SourceFSAdapter) *PathFilter {
	return &PathFilter{fs: fsAdapter}
}

// Filter resolves roots into source paths. File roots are included directly,
// subject only to ignore-paths; directory roots are walked recursively with
// the filename pattern applied to file names.
func (f *PathFilter) Filter(roots []m.Path, cfg *m.EffectiveConfig) ([]m.SourcePath, error) {
	var sources []m.SourcePath

	for _, root := range roots {
		cleaned := filepath.Clean(string(root))

		info, err := f.fs.FileInfo(m.Path(cleaned))
		if err != nil {
			return nil, &PathError{Path: string(root)}
		}

		if !info.IsDir() {
			if !ignoredPath(cleaned, cfg.IgnorePaths) {
				sources = append(sources, sourcePath(cleaned, cleaned))
			}

			continue
		}

		err = f.fs.WalkDir(m.Path(cleaned), func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if ignoredPath(path, cfg.IgnorePaths) {
				if entry.IsDir() {
					return fs.SkipDir
				}

				return nil
			}

			if entry.IsDir() {
				return nil
			}

			if !cfg.MatchFilename(entry.Name()) {
				return nil
			}

			sources = append(sources, sourcePath(cleaned, path))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return sources, nil
}

// ignoredPath reports whether any ignored entry equals the path or is a
// component-boundary prefix of it.
func ignoredPath(path string, ignored []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))

	for _, entry := range ignored {
		e := filepath.ToSlash(entry)
		if slashed == e || strings.HasPrefix(slashed, e+"/") {
			return true
		}
	}

	return false
}

// sourcePath derives the dotted module name from the path relative to the
// root's parent. A trailing __init__ component is dropped so packages are
// validated under their package name.
func sourcePath(root, path string) m.SourcePath {
	rel, err := filepath.Rel(filepath.Dir(root), path)
	if err != nil {
		rel = filepath.Base(path)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(filepath.ToSlash(rel), "/")

	if len(parts) > 1 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}

	return m.SourcePath{Path: m.Path(path), Module: strings.Join(parts, ".")}
}
