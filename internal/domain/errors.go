// Package domain implements object discovery and directive resolution: path
// filtering, module walking, suppression resolution, and the validation
// driver that feeds the docstring oracle.
package domain

import "fmt"

// PathError reports a root path that does not exist. It is fatal for the
// invocation.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("not found files or directories: %s", e.Path)
}
