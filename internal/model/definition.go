// Package model defines the data structures for docstring validation.
package model

import "fmt"

// Path represents a file system path.
type Path string

// SourcePath is a file selected for validation together with the dotted
// module name derived from the root it was discovered under.
type SourcePath struct {
	Path   Path
	Module string
}

// DefinitionKind represents the category of a checkable object.
type DefinitionKind string

const (
	// KindModule represents a source file.
	KindModule DefinitionKind = "module"
	// KindClass represents a top-level class.
	KindClass DefinitionKind = "class"
	// KindFunction represents a top-level function.
	KindFunction DefinitionKind = "function"
	// KindMethod represents a method defined directly in a class body.
	KindMethod DefinitionKind = "method"
)

// Definition is one checkable object. Definitions form a forest rooted at
// modules: classes hold methods, modules hold classes and functions, one
// nesting level only. The Parent back-reference is non-owning.
type Definition struct {
	Name        string // dotted qualified name, unique within a run
	Kind        DefinitionKind
	Path        Path
	Line        int
	Hidden      bool
	Constructor bool

	// Doc and Params feed the docstring oracle.
	Doc       string
	Params    []string
	HasReturn bool

	// FirstStmtLine is set on modules only and bounds module-level
	// ignore directives.
	FirstStmtLine int

	Parent   *Definition
	Children []*Definition
}

// AddChild appends a child and sets its parent back-reference.
func (d *Definition) AddChild(child *Definition) {
	child.Parent = d
	d.Children = append(d.Children, child)
}

// Link returns the file:line location of the definition.
func (d *Definition) Link() string {
	return fmt.Sprintf("%s:%d", d.Path, d.Line)
}

// Walk visits the definition and its descendants depth-first in
// declaration order.
func (d *Definition) Walk(visit func(*Definition)) {
	visit(d)
	for _, child := range d.Children {
		child.Walk(visit)
	}
}
