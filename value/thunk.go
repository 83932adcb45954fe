package value

import "github.com/contour-lang/contour/ast"

// Expr is an analyzed operation as seen from the value layer. It is
// declared minimally so value does not depend on the analyzer.
type Expr interface {
	Source() ast.Phrase
}

// Thunk is a delayed computation stored in a frame slot. The evaluator
// forces it at most once, on first read; cycle detection during
// forcing is the evaluator's responsibility.
type Thunk struct {
	Expr Expr
}

func (t *Thunk) String() string { return "<thunk>" }
func (*Thunk) value()           {}

// Lambda is a raw function value: a body plus frame layout, closed
// over its module's slots when read out of a Module. Argument slots
// are 0..NArgs-1; NSlots is the full frame size.
type Lambda struct {
	Body   Expr
	NArgs  int
	NSlots int
}

func (l *Lambda) String() string { return "<function>" }
func (*Lambda) value()           {}
