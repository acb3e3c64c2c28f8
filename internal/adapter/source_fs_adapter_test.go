package adapter

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

func TestLocalSourceFSAdapter(t *testing.T) {
	root := t.TempDir()

	content := []byte("x = 1\n")
	if err := os.WriteFile(filepath.Join(root, "mod.py"), content, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	adapter := NewLocalSourceFSAdapter()

	info, err := adapter.FileInfo(m.Path(root))
	if err != nil || !info.IsDir() {
		t.Fatalf("FileInfo(%s) = %v, %v, want directory", root, info, err)
	}

	read, err := adapter.ReadFile(m.Path(filepath.Join(root, "mod.py")))
	if err != nil || !reflect.DeepEqual(read, content) {
		t.Fatalf("ReadFile = %q, %v, want %q", read, err, content)
	}

	var visited []string

	err = adapter.WalkDir(m.Path(root), func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			visited = append(visited, entry.Name())
		}

		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir error: %v", err)
	}

	if !reflect.DeepEqual(visited, []string{"mod.py"}) {
		t.Errorf("visited = %v, want [mod.py]", visited)
	}
}

func TestLocalSourceFSAdapter_MissingPath(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	if _, err := adapter.FileInfo(m.Path(filepath.Join(t.TempDir(), "absent"))); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
