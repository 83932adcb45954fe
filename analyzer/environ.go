package analyzer

import (
	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/source"
	"github.com/contour-lang/contour/value"
)

// Frame holds the running slot counters of a lexical scope. NSlots is
// the current live slot count, MaxSlots the high-water mark; MaxSlots
// becomes the activation frame size once the scope's analysis ends.
type Frame struct {
	NSlots   int
	MaxSlots int
}

// Environ is one node of the lexical scope chain during analysis.
// SingleLookup resolves a name in this scope only; (nil, nil) means
// "ask the parent".
type Environ interface {
	Parent() Environ
	Frame() *Frame
	SingleLookup(id *ast.Identifier) (Meaning, error)
}

// scope carries the parent pointer and slot counters shared by all
// Environ implementations.
type scope struct {
	parent Environ
	frame  Frame
}

func (s *scope) Parent() Environ { return s.parent }
func (s *scope) Frame() *Frame   { return &s.frame }

// nestedScope initializes a child scope from its parent's counters.
func nestedScope(parent Environ) scope {
	s := scope{parent: parent}
	if parent != nil {
		s.frame = *parent.Frame()
	}
	return s
}

// Lookup resolves a name by walking the scope chain outward.
func Lookup(env Environ, id *ast.Identifier) (Meaning, error) {
	for e := env; e != nil; e = e.Parent() {
		m, err := e.SingleLookup(id)
		if err != nil {
			return nil, err
		}
		if m != nil {
			return m, nil
		}
	}
	return nil, source.Errorf(id.Location(), "%s: not defined", id.Name)
}

// Builtin contributes a Meaning for a builtin name: a Constant for
// value builtins, a Metafunction instance for compile-time callables.
type Builtin interface {
	ToMeaning(id *ast.Identifier) Meaning
}

// Namespace is the read-only builtin name table the analyzer consumes.
type Namespace map[value.Atom]Builtin

// BuiltinValue is a Builtin that resolves to a constant value.
type BuiltinValue struct {
	V value.Value
}

func (b BuiltinValue) ToMeaning(id *ast.Identifier) Meaning {
	return &Constant{OpBase: OpBase{Src: id}, Value: b.V}
}

// BuiltinEnviron is the root scope, resolving names from a Namespace.
type BuiltinEnviron struct {
	scope
	Names Namespace
}

// NewBuiltinEnviron creates the root scope over a builtin namespace.
func NewBuiltinEnviron(ns Namespace) *BuiltinEnviron {
	return &BuiltinEnviron{Names: ns}
}

func (e *BuiltinEnviron) SingleLookup(id *ast.Identifier) (Meaning, error) {
	if b, ok := e.Names[value.Atom(id.Name)]; ok {
		return b.ToMeaning(id), nil
	}
	return nil, nil
}
