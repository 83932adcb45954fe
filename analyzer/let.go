package analyzer

import (
	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/source"
	"github.com/contour-lang/contour/value"
)

// letEnviron resolves let-bound names to their frame slots.
type letEnviron struct {
	scope
	names map[value.Atom]int
}

func (e *letEnviron) SingleLookup(id *ast.Identifier) (Meaning, error) {
	if slot, ok := e.names[value.Atom(id.Name)]; ok {
		return &LetRef{OpBase: OpBase{Src: id}, Slot: slot}, nil
	}
	return nil, nil
}

// analyzeLet analyzes `let (a=..., b=...) body`.
//
// Slot numbers are assigned to all bindings first, then every definiens
// and the body are analyzed in the child scope, so bindings may refer
// to each other in any order. Each binding becomes a Thunk evaluated
// lazily within the let expression's own frame; constant folding and
// register allocation are left to later passes.
func analyzeLet(p *ast.LetPhrase, env Environ) (Meaning, error) {
	// Phase 1: assign a fresh slot per binding.
	firstSlot := env.Frame().NSlots
	names := make(map[value.Atom]int)
	var phrases []ast.Phrase
	slot := firstSlot
	for _, item := range p.Args.Items {
		def, err := AnalyzeDef(item.Expr)
		if err != nil {
			return nil, err
		}
		if def == nil {
			return nil, source.Errorf(item.Expr.Location(), "not a definition")
		}
		name := value.Atom(def.Name.Name)
		if _, ok := names[name]; ok {
			return nil, source.Errorf(def.Name.Location(), "%s: multiply defined", name)
		}
		names[name] = slot
		phrases = append(phrases, def.Definiens)
		slot++
	}

	// Phase 2: analyze bindings and body in the child scope.
	env2 := &letEnviron{scope: nestedScope(env), names: names}
	env2.frame.NSlots += len(names)
	if env2.frame.NSlots > env2.frame.MaxSlots {
		env2.frame.MaxSlots = env2.frame.NSlots
	}

	values := make([]value.Value, len(phrases))
	for i, ph := range phrases {
		expr, err := AnalyzeOp(ph, env2)
		if err != nil {
			return nil, err
		}
		values[i] = &value.Thunk{Expr: expr}
	}
	body, err := AnalyzeOp(p.Body, env2)
	if err != nil {
		return nil, err
	}
	env.Frame().MaxSlots = env2.frame.MaxSlots

	return &LetExpr{
		OpBase:    OpBase{Src: p},
		FirstSlot: firstSlot,
		Values:    values,
		Body:      body,
	}, nil
}

// forEnviron resolves exactly the iteration variable, as a local slot.
type forEnviron struct {
	scope
	name value.Atom
	slot int
}

func (e *forEnviron) SingleLookup(id *ast.Identifier) (Meaning, error) {
	if value.Atom(id.Name) == e.name {
		return &LetRef{OpBase: OpBase{Src: id}, Slot: e.slot}, nil
	}
	return nil, nil
}

// analyzeFor analyzes `for (name = list) body`. The list expression is
// analyzed in the outer scope; only the body sees the iteration
// variable.
func analyzeFor(p *ast.ForPhrase, env Environ) (Meaning, error) {
	if len(p.Args.Items) != 1 {
		return nil, source.Errorf(p.Args.Location(), "for: malformed argument")
	}
	defExpr := p.Args.Items[0].Expr
	def, ok := defExpr.(*ast.DefinitionPhrase)
	if !ok {
		return nil, source.Errorf(defExpr.Location(), "for: not a definition")
	}
	id, ok := def.Left.(*ast.Identifier)
	if !ok {
		return nil, source.Errorf(def.Left.Location(), "for: not an identifier")
	}

	list, err := AnalyzeOp(def.Right, env)
	if err != nil {
		return nil, err
	}

	slot := env.Frame().NSlots
	env2 := &forEnviron{scope: nestedScope(env), name: value.Atom(id.Name), slot: slot}
	env2.frame.NSlots++
	if env2.frame.NSlots > env2.frame.MaxSlots {
		env2.frame.MaxSlots = env2.frame.NSlots
	}
	body, err := AnalyzeOp(p.Body, env2)
	if err != nil {
		return nil, err
	}
	env.Frame().MaxSlots = env2.frame.MaxSlots

	return &ForExpr{OpBase: OpBase{Src: p}, Slot: slot, List: list, Body: body}, nil
}
