package analyzer

import (
	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/source"
	"github.com/contour-lang/contour/value"
)

// argEnviron is the scope of a lambda body: parameters occupy slots
// 0..nargs-1 of a fresh activation frame, and references to the outer
// world are resolved through the capture policy in SingleLookup.
type argEnviron struct {
	scope
	params        map[value.Atom]int
	nonlocalDict  map[value.Atom]int
	nonlocalExprs []Operation
	recursive     bool
}

func newArgEnviron(parent Environ, params map[value.Atom]int, recursive bool) *argEnviron {
	e := &argEnviron{
		scope:        scope{parent: parent},
		params:       params,
		nonlocalDict: make(map[value.Atom]int),
		recursive:    recursive,
	}
	e.frame.NSlots = len(params)
	e.frame.MaxSlots = len(params)
	return e
}

func (e *argEnviron) SingleLookup(id *ast.Identifier) (Meaning, error) {
	name := value.Atom(id.Name)
	if slot, ok := e.params[name]; ok {
		return &ArgRef{OpBase: OpBase{Src: id}, Slot: slot}, nil
	}
	if e.recursive {
		// Recursive mode: let the enclosing scope resolve the name,
		// so module function bindings can reach themselves and
		// their siblings without capture.
		return nil, nil
	}
	// Non-recursive mode returns a definitive result rather than
	// deferring to the parent: outer operations are captured into the
	// closure's nonlocal list, constants are inlined.
	if slot, ok := e.nonlocalDict[name]; ok {
		return &NonlocalRef{OpBase: OpBase{Src: id}, Slot: slot}, nil
	}
	m, err := Lookup(e.parent, id)
	if err != nil {
		return nil, err
	}
	if _, ok := m.(*Constant); ok {
		return m, nil
	}
	if expr, ok := m.(Operation); ok {
		slot := len(e.nonlocalExprs)
		e.nonlocalDict[name] = slot
		e.nonlocalExprs = append(e.nonlocalExprs, expr)
		tracer().Debugf("lambda captures %s as nonlocal %d", name, slot)
		return &NonlocalRef{OpBase: OpBase{Src: id}, Slot: slot}, nil
	}
	return m, nil
}

// analyzeLambda analyzes `params -> body`.
func analyzeLambda(p *ast.LambdaPhrase, env Environ) (Meaning, error) {
	// Phase 1: build the parameter dictionary.
	params := make(map[value.Atom]int)
	switch left := p.Left.(type) {
	case *ast.Identifier:
		params[value.Atom(left.Name)] = 0
	case *ast.ParenPhrase:
		for i, item := range left.Items {
			id, ok := item.Expr.(*ast.Identifier)
			if !ok {
				return nil, source.Errorf(item.Expr.Location(), "not a parameter")
			}
			params[value.Atom(id.Name)] = i
		}
	default:
		return nil, source.Errorf(p.Left.Location(), "not a parameter")
	}

	// Phase 2: analyze the body in a fresh frame over the parameters.
	env2 := newArgEnviron(env, params, p.Recursive)
	body, err := AnalyzeOp(p.Body, env2)
	if err != nil {
		return nil, err
	}
	nonlocals := &ListExpr{OpBase: OpBase{Src: p}, Items: env2.nonlocalExprs}
	return &LambdaExpr{
		OpBase:    OpBase{Src: p},
		Body:      body,
		Nonlocals: nonlocals,
		NArgs:     len(params),
		NSlots:    env2.frame.MaxSlots,
	}, nil
}
