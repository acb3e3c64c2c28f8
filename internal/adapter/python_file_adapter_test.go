package adapter

import (
	"context"
	"errors"
	"reflect"
	"testing"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

const sampleSource = `# a leading comment
"""Module summary.

Extended prose about the module.
"""

import os


def top(alpha, beta=1, *args, **kwargs):
    """Top-level function."""
    return alpha


def _hidden():
    pass


@decorator
def decorated():
    pass


class Widget:
    """A widget."""

    def __init__(self, size):
        self.size = size

    def resize(self, size: int, factor=2):
        """Resize the widget."""
        return size * factor

    def _peek(self):
        pass

    def __repr__(self):
        return "Widget"

    @property
    def area(self):
        return self.size * self.size


def outer():
    def inner():
        pass
    return inner
`

func parseSample(t *testing.T, source string) *m.Definition {
	t.Helper()

	adapter := NewLocalPythonFileAdapter()

	module, err := adapter.Parse(context.Background(), []byte(source), m.SourcePath{
		Path:   "pkg/sample.py",
		Module: "pkg.sample",
	})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	return module
}

func childNamed(t *testing.T, parent *m.Definition, name string) *m.Definition {
	t.Helper()

	for _, child := range parent.Children {
		if child.Name == name {
			return child
		}
	}

	t.Fatalf("no child %q under %s, have %v", name, parent.Name, childNames(parent))

	return nil
}

func childNames(parent *m.Definition) []string {
	names := make([]string, 0, len(parent.Children))
	for _, child := range parent.Children {
		names = append(names, child.Name)
	}

	return names
}

func TestLocalPythonFileAdapter_Module(t *testing.T) {
	module := parseSample(t, sampleSource)

	if module.Kind != m.KindModule || module.Name != "pkg.sample" {
		t.Fatalf("module = %s (%s), want pkg.sample (module)", module.Name, module.Kind)
	}

	if module.Doc == "" || module.Doc[:len("Module summary.")] != "Module summary." {
		t.Errorf("module doc = %q, want the module docstring", module.Doc)
	}

	// The docstring, not the leading comment, is the first statement.
	if module.FirstStmtLine != 2 {
		t.Errorf("FirstStmtLine = %d, want 2", module.FirstStmtLine)
	}
}

func TestLocalPythonFileAdapter_TopLevelDefinitions(t *testing.T) {
	module := parseSample(t, sampleSource)

	want := []string{
		"pkg.sample.top",
		"pkg.sample._hidden",
		"pkg.sample.decorated",
		"pkg.sample.Widget",
		"pkg.sample.outer",
	}
	if !reflect.DeepEqual(childNames(module), want) {
		t.Fatalf("children = %v, want %v", childNames(module), want)
	}

	top := childNamed(t, module, "pkg.sample.top")
	if top.Kind != m.KindFunction || top.Hidden {
		t.Errorf("top = %+v, want visible function", top)
	}

	if !reflect.DeepEqual(top.Params, []string{"alpha", "beta", "args", "kwargs"}) {
		t.Errorf("top params = %v, want [alpha beta args kwargs]", top.Params)
	}

	if !top.HasReturn {
		t.Errorf("expected top to return a value")
	}

	if hidden := childNamed(t, module, "pkg.sample._hidden"); !hidden.Hidden {
		t.Errorf("expected _hidden marked hidden")
	}

	// Nested functions are never definitions of their own.
	outer := childNamed(t, module, "pkg.sample.outer")
	if len(outer.Children) != 0 {
		t.Errorf("outer children = %v, want none", childNames(outer))
	}
}

func TestLocalPythonFileAdapter_ClassAndMethods(t *testing.T) {
	module := parseSample(t, sampleSource)
	widget := childNamed(t, module, "pkg.sample.Widget")

	if widget.Kind != m.KindClass || widget.Doc != "A widget." {
		t.Fatalf("widget = %+v, want documented class", widget)
	}

	ctor := childNamed(t, widget, "pkg.sample.Widget.__init__")
	if !ctor.Constructor || !ctor.Hidden {
		t.Errorf("__init__ = %+v, want hidden constructor", ctor)
	}

	if !reflect.DeepEqual(ctor.Params, []string{"size"}) {
		t.Errorf("__init__ params = %v, want [size] without the receiver", ctor.Params)
	}

	resize := childNamed(t, widget, "pkg.sample.Widget.resize")
	if resize.Kind != m.KindMethod || resize.Hidden || resize.Constructor {
		t.Errorf("resize = %+v, want plain method", resize)
	}

	if !reflect.DeepEqual(resize.Params, []string{"size", "factor"}) {
		t.Errorf("resize params = %v, want [size factor]", resize.Params)
	}

	if !resize.HasReturn {
		t.Errorf("expected resize to return a value")
	}

	if peek := childNamed(t, widget, "pkg.sample.Widget._peek"); !peek.Hidden {
		t.Errorf("expected _peek hidden")
	}

	repr := childNamed(t, widget, "pkg.sample.Widget.__repr__")
	if !repr.Hidden || repr.Constructor {
		t.Errorf("__repr__ = %+v, want hidden non-constructor", repr)
	}

	// Decorated methods are still methods of the class.
	childNamed(t, widget, "pkg.sample.Widget.area")
}

func TestLocalPythonFileAdapter_SyntaxError(t *testing.T) {
	adapter := NewLocalPythonFileAdapter()

	_, err := adapter.Parse(context.Background(), []byte("def broken(:\n"), m.SourcePath{
		Path:   "broken.py",
		Module: "broken",
	})

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLocalPythonFileAdapter_EmptyModule(t *testing.T) {
	module := parseSample(t, "")

	if module.Doc != "" || len(module.Children) != 0 {
		t.Errorf("empty module = %+v, want no doc and no children", module)
	}
}

func TestLocalPythonFileAdapter_RawDocstring(t *testing.T) {
	module := parseSample(t, `r"""Raw docstring."""
`)

	if module.Doc != "Raw docstring." {
		t.Errorf("doc = %q, want the unquoted raw docstring", module.Doc)
	}
}
