// Package analyzer turns Phrase trees into evaluable IR: Meaning nodes
// with resolved variable references, activation-frame slot layouts, and
// closure capture lists. It is the second half of the front-end
// pipeline, after the parser.
package analyzer

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/tracing"

	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/source"
	"github.com/contour-lang/contour/value"
)

func tracer() tracing.Trace {
	return tracing.Select("contour.analyzer")
}

// Meaning is the result of analyzing a Phrase: either an Operation
// (evaluable at runtime) or a Metafunction (callable at compile time).
// Every Meaning keeps a back-pointer to its source Phrase for
// diagnostics; the phrase is shared and never mutated.
type Meaning interface {
	Source() ast.Phrase
}

// Operation is an evaluable Meaning.
type Operation interface {
	Meaning
	operation()
}

// Metafunction is a compile-time-only callable: its Call hook runs
// during analysis and yields the Meaning of the call phrase.
type Metafunction interface {
	Meaning
	Call(call *ast.CallPhrase, env Environ) (Meaning, error)
}

// OpBase carries the source back-pointer common to all Operations.
// Embed it to define an Operation, inside or outside this package.
type OpBase struct {
	Src ast.Phrase
}

func (b OpBase) Source() ast.Phrase { return b.Src }
func (OpBase) operation()           {}

// toOperation narrows a Meaning to an Operation; a Metafunction used
// where a value is required is a semantic error.
func toOperation(m Meaning) (Operation, error) {
	if op, ok := m.(Operation); ok {
		return op, nil
	}
	return nil, source.Errorf(m.Source().Location(), "not an operation")
}

// Constant is a pre-boxed value known at analysis time.
type Constant struct {
	OpBase
	Value value.Value
}

// NotExpr is logical negation.
type NotExpr struct {
	OpBase
	Arg Operation
}

// PrefixExpr is any other prefix operator application.
type PrefixExpr struct {
	OpBase
	Op  source.Kind
	Arg Operation
}

// InfixExpr is an uninterpreted infix operator application (arithmetic,
// `:` pairs); the evaluator dispatches on Op.
type InfixExpr struct {
	OpBase
	Op    source.Kind
	Left  Operation
	Right Operation
}

// AndExpr is short-circuiting conjunction.
type AndExpr struct {
	OpBase
	Left  Operation
	Right Operation
}

// OrExpr is short-circuiting disjunction.
type OrExpr struct {
	OpBase
	Left  Operation
	Right Operation
}

// The six comparison expressions.
type (
	EqualExpr          struct{ CompareBase }
	NotEqualExpr       struct{ CompareBase }
	LessExpr           struct{ CompareBase }
	GreaterExpr        struct{ CompareBase }
	LessOrEqualExpr    struct{ CompareBase }
	GreaterOrEqualExpr struct{ CompareBase }
)

// CompareBase is the shared shape of the comparison expressions.
type CompareBase struct {
	OpBase
	Left  Operation
	Right Operation
}

// PowerExpr is right-associative exponentiation.
type PowerExpr struct {
	OpBase
	Left  Operation
	Right Operation
}

// DotExpr selects a named field: record.name.
type DotExpr struct {
	OpBase
	Left Operation
	Name value.Atom
}

// AtExpr indexes a list: list.[i].
type AtExpr struct {
	OpBase
	Left  Operation
	Index Operation
}

// IfExpr is `if cond then` without an else branch.
type IfExpr struct {
	OpBase
	Cond Operation
	Then Operation
}

// IfElseExpr is `if cond then else alt`.
type IfElseExpr struct {
	OpBase
	Cond Operation
	Then Operation
	Else Operation
}

// LetExpr binds lazily evaluated values to frame slots
// [FirstSlot, FirstSlot+len(Values)) around Body.
type LetExpr struct {
	OpBase
	FirstSlot int
	Values    []value.Value
	Body      Operation
}

// ForExpr iterates List, binding each element to Slot for Body.
type ForExpr struct {
	OpBase
	Slot int
	List Operation
	Body Operation
}

// RangeGen generates an arithmetic sequence. Step is nil when no `by`
// clause was given; HalfOpen marks the `..<` form.
type RangeGen struct {
	OpBase
	First    Operation
	Last     Operation
	Step     Operation
	HalfOpen bool
}

// ListExpr constructs a list.
type ListExpr struct {
	OpBase
	Items []Operation
}

// SequenceExpr evaluates items in order, yielding a sequence.
type SequenceExpr struct {
	OpBase
	Items []Operation
}

// RecordExpr constructs a record from named fields, in source order.
type RecordExpr struct {
	OpBase
	Fields *linkedhashmap.Map // value.Atom -> Operation
}

// Field returns the operation bound to a field name.
func (r *RecordExpr) Field(name value.Atom) (Operation, bool) {
	v, ok := r.Fields.Get(name)
	if !ok {
		return nil, false
	}
	return v.(Operation), true
}

// LambdaExpr is an analyzed function literal. Nonlocals lists the
// captured outer operations in capture-slot order; the body addresses
// them through NonlocalRef. NSlots is the function's frame size.
type LambdaExpr struct {
	OpBase
	Body      Operation
	Nonlocals *ListExpr
	NArgs     int
	NSlots    int
}

// CallExpr is a function call with analyzed arguments. ArgsPhrase is
// the unanalyzed argument phrase, kept for diagnostics.
type CallExpr struct {
	OpBase
	Fn         Operation
	ArgsPhrase ast.Phrase
	Args       []Operation
}

// ModuleExpr is an analyzed module: the shared name-to-slot dictionary,
// the slot values (thunks and raw lambdas), the ordered side-effecting
// elements, and the module's frame size.
type ModuleExpr struct {
	OpBase
	Dictionary  *value.Dictionary
	Slots       []value.Value
	Elements    *ListExpr
	FrameNSlots int
}

// ArgRef reads a parameter slot of the current frame.
type ArgRef struct {
	OpBase
	Slot int
}

// LetRef reads a local slot bound by `let` or `for`.
type LetRef struct {
	OpBase
	Slot int
}

// ModuleRef reads a module field slot, forcing its thunk.
type ModuleRef struct {
	OpBase
	Slot int
}

// NonlocalRef reads a captured value from the closure's nonlocal list.
type NonlocalRef struct {
	OpBase
	Slot int
}

// NonlocalFunctionRef reads a recursive function binding from the
// enclosing module's slot list.
type NonlocalFunctionRef struct {
	OpBase
	Slot int
}

// Definition is a name bound to a definiens phrase, produced by
// AnalyzeDef for `name = expr` and `f(x) = expr` phrases.
type Definition struct {
	Name      *ast.Identifier
	Definiens ast.Phrase
}
