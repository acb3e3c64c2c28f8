package adapter

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

// ParseError reports a file that tree-sitter could not parse cleanly.
type ParseError struct {
	Path m.Path
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error in %s", e.Path)
}

// PythonFileAdapter encapsulates Python-specific parsing so the domain layer
// can focus on suppression rules while delegating grammar details to an
// infrastructure component.
type PythonFileAdapter interface {
	// Parse builds the definition tree for one source file: the module,
	// its top-level classes and functions, and each class's direct
	// methods. Nested definitions are never visited.
	Parse(ctx context.Context, content []byte, src m.SourcePath) (*m.Definition, error)
}

// LocalPythonFileAdapter is a concrete PythonFileAdapter backed by
// tree-sitter's Python grammar.
type LocalPythonFileAdapter struct{}

// NewLocalPythonFileAdapter constructs a LocalPythonFileAdapter.
func NewLocalPythonFileAdapter() *LocalPythonFileAdapter {
	return &LocalPythonFileAdapter{}
}

// Parse extracts the definition tree from Python source. A tree containing
// syntax errors yields a ParseError.
func (a *LocalPythonFileAdapter) Parse(ctx context.Context, content []byte, src m.SourcePath) (*m.Definition, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, &ParseError{Path: src.Path}
	}

	module := &m.Definition{
		Name:          src.Module,
		Kind:          m.KindModule,
		Path:          src.Path,
		Line:          1,
		Doc:           docstring(root, content),
		FirstStmtLine: firstStatementLine(root),
	}

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)

		switch child.Type() {
		case "class_definition":
			a.addClass(module, child, content)
		case "function_definition":
			a.addFunction(module, child, content)
		case "decorated_definition":
			if def := definitionOf(child); def != nil {
				if def.Type() == "class_definition" {
					a.addClass(module, def, content)
				} else {
					a.addFunction(module, def, content)
				}
			}
		}
	}

	return module, nil
}

func (a *LocalPythonFileAdapter) addClass(module *m.Definition, node *sitter.Node, content []byte) {
	name := identifierOf(node, content)
	if name == "" {
		return
	}

	body := node.ChildByFieldName("body")

	class := &m.Definition{
		Name:   module.Name + "." + name,
		Kind:   m.KindClass,
		Path:   module.Path,
		Line:   int(node.StartPoint().Row + 1),
		Hidden: hiddenName(name),
		Doc:    docstring(body, content),
	}
	module.AddChild(class)

	if body == nil {
		return
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)

		switch child.Type() {
		case "function_definition":
			a.addMethod(class, child, content)
		case "decorated_definition":
			if def := definitionOf(child); def != nil && def.Type() == "function_definition" {
				a.addMethod(class, def, content)
			}
		}
	}
}

func (a *LocalPythonFileAdapter) addFunction(module *m.Definition, node *sitter.Node, content []byte) {
	name := identifierOf(node, content)
	if name == "" {
		return
	}

	module.AddChild(&m.Definition{
		Name:      module.Name + "." + name,
		Kind:      m.KindFunction,
		Path:      module.Path,
		Line:      int(node.StartPoint().Row + 1),
		Hidden:    hiddenName(name),
		Doc:       docstring(node.ChildByFieldName("body"), content),
		Params:    parameters(node, content, false),
		HasReturn: returnsValue(node.ChildByFieldName("body")),
	})
}

func (a *LocalPythonFileAdapter) addMethod(class *m.Definition, node *sitter.Node, content []byte) {
	name := identifierOf(node, content)
	if name == "" {
		return
	}

	class.AddChild(&m.Definition{
		Name:        class.Name + "." + name,
		Kind:        m.KindMethod,
		Path:        class.Path,
		Line:        int(node.StartPoint().Row + 1),
		Hidden:      hiddenName(name) || dunderName(name),
		Constructor: name == "__init__",
		Doc:         docstring(node.ChildByFieldName("body"), content),
		Params:      parameters(node, content, true),
		HasReturn:   returnsValue(node.ChildByFieldName("body")),
	})
}

// hiddenName reports a name carrying the leading-underscore hidden marker.
func hiddenName(name string) bool {
	return strings.HasPrefix(name, "_")
}

// dunderName reports a __name__ style identifier.
func dunderName(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// firstStatementLine returns the line of the first non-comment top-level
// statement. Module-level ignore directives must appear before it.
func firstStatementLine(root *sitter.Node) int {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() == "comment" {
			continue
		}

		return int(child.StartPoint().Row + 1)
	}

	return 1
}

// definitionOf returns the wrapped definition of a decorated_definition node.
func definitionOf(node *sitter.Node) *sitter.Node {
	if def := node.ChildByFieldName("definition"); def != nil {
		return def
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if t := child.Type(); t == "class_definition" || t == "function_definition" {
			return child
		}
	}

	return nil
}

func identifierOf(node *sitter.Node, content []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return name.Content(content)
	}

	return ""
}

// docstring returns the unquoted string literal opening a module or block.
func docstring(block *sitter.Node, content []byte) string {
	if block == nil || block.ChildCount() == 0 {
		return ""
	}

	first := block.Child(0)
	for first != nil && first.Type() == "comment" {
		first = first.NextSibling()
	}

	if first == nil || first.Type() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}

	strNode := first.Child(0)
	if strNode.Type() != "string" {
		return ""
	}

	raw := strNode.Content(content)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "r"), "b")

	return strings.TrimSpace(strings.Trim(raw, `"'`))
}

// parameters collects declared parameter names, dropping the receiver for
// methods and unwrapping type annotations, defaults, and splats.
func parameters(node *sitter.Node, content []byte, method bool) []string {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var names []string

	for i := 0; i < int(params.ChildCount()); i++ {
		child := params.Child(i)

		var name string

		switch child.Type() {
		case "identifier":
			name = child.Content(content)
		case "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern":
			if id := firstIdentifier(child, content); id != "" {
				name = id
			}
		case "default_parameter", "typed_default_parameter":
			if id := child.ChildByFieldName("name"); id != nil {
				name = id.Content(content)
			}
		default:
			continue
		}

		if name == "" {
			continue
		}

		if method && len(names) == 0 && (name == "self" || name == "cls") {
			method = false
			continue
		}

		names = append(names, name)
	}

	return names
}

func firstIdentifier(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == "identifier" {
			return child.Content(content)
		}
	}

	return ""
}

// returnsValue reports whether the body contains a return statement with a
// value, without descending into nested definitions.
func returnsValue(body *sitter.Node) bool {
	if body == nil {
		return false
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)

		switch child.Type() {
		case "function_definition", "class_definition", "decorated_definition":
			continue
		case "return_statement":
			if child.ChildCount() > 1 {
				return true
			}
		default:
			if returnsValue(child) {
				return true
			}
		}
	}

	return false
}
