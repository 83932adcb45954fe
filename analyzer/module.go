package analyzer

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/source"
	"github.com/contour-lang/contour/value"
)

// Bindings collects a module's field definitions during phase one of
// module analysis: a dense name-to-slot dictionary plus the definiens
// phrase for each slot, in textual order.
type Bindings struct {
	Dictionary  *value.Dictionary
	slotPhrases []ast.Phrase
}

// NewBindings creates an empty binding set.
func NewBindings() *Bindings {
	return &Bindings{Dictionary: value.NewDictionary()}
}

// AddDefinition appends a definition, assigning it the next slot.
// A lambda definiens is marked recursive so the lambda analyzer lets
// the module scope resolve self and sibling references.
func (b *Bindings) AddDefinition(def *Definition) error {
	name := value.Atom(def.Name.Name)
	if _, ok := b.Dictionary.Get(name); ok {
		return source.Errorf(def.Name.Location(), "%s: multiply defined", name)
	}
	b.Dictionary.Put(name, len(b.slotPhrases))
	b.slotPhrases = append(b.slotPhrases, def.Definiens)

	if lambda, ok := def.Definiens.(*ast.LambdaPhrase); ok {
		lambda.Recursive = true
	}
	return nil
}

// IsRecursiveFunction reports whether a slot is bound to a function
// definition (a lambda definiens).
func (b *Bindings) IsRecursiveFunction(slot int) bool {
	_, ok := b.slotPhrases[slot].(*ast.LambdaPhrase)
	return ok
}

// analyzeValues analyzes each slot's definiens. Function bindings
// become raw Lambda values (closed over the module's slots at run
// time); everything else becomes a lazily evaluated Thunk.
func (b *Bindings) analyzeValues(env Environ) ([]value.Value, error) {
	slots := make([]value.Value, len(b.slotPhrases))
	for i, ph := range b.slotPhrases {
		expr, err := AnalyzeOp(ph, env)
		if err != nil {
			return nil, err
		}
		if b.IsRecursiveFunction(i) {
			l := expr.(*LambdaExpr)
			slots[i] = &value.Lambda{Body: l.Body, NArgs: l.NArgs, NSlots: l.NSlots}
		} else {
			slots[i] = &value.Thunk{Expr: expr}
		}
	}
	return slots, nil
}

// bindingsEnviron resolves module field names: function bindings as
// NonlocalFunctionRef, everything else as a lazily forced ModuleRef.
type bindingsEnviron struct {
	scope
	bindings *Bindings
}

func (e *bindingsEnviron) SingleLookup(id *ast.Identifier) (Meaning, error) {
	slot, ok := e.bindings.Dictionary.Get(value.Atom(id.Name))
	if !ok {
		return nil, nil
	}
	if e.bindings.IsRecursiveFunction(slot) {
		return &NonlocalFunctionRef{OpBase: OpBase{Src: id}, Slot: slot}, nil
	}
	return &ModuleRef{OpBase: OpBase{Src: id}, Slot: slot}, nil
}

// statements flattens a module body into its statement phrases: the
// items of a semicolon sequence, or the body itself.
func statements(body ast.Phrase) []ast.Phrase {
	if semis, ok := body.(*ast.SemicolonPhrase); ok {
		stmts := make([]ast.Phrase, len(semis.Items))
		for i, item := range semis.Items {
			stmts[i] = item.Expr
		}
		return stmts
	}
	return []ast.Phrase{body}
}

// analyzeModule analyzes a module body in two phases: collect the
// field dictionary and element list, then analyze every slot and
// element inside the module's own scope.
func analyzeModule(p *ast.ModulePhrase, env Environ) (*ModuleExpr, error) {
	fields := NewBindings()
	var elements []ast.Phrase
	for _, st := range statements(p.Body) {
		def, err := AnalyzeDef(st)
		if err != nil {
			return nil, err
		}
		if def != nil {
			if err := fields.AddDefinition(def); err != nil {
				return nil, err
			}
		} else {
			elements = append(elements, st)
		}
	}
	tracer().Debugf("module: %d fields, %d elements", fields.Dictionary.Size(), len(elements))

	env2 := &bindingsEnviron{scope: nestedScope(env), bindings: fields}
	slots, err := fields.analyzeValues(env2)
	if err != nil {
		return nil, err
	}
	xelements := &ListExpr{OpBase: OpBase{Src: p}}
	for _, el := range elements {
		op, err := AnalyzeOp(el, env2)
		if err != nil {
			return nil, err
		}
		xelements.Items = append(xelements.Items, op)
	}
	return &ModuleExpr{
		OpBase:      OpBase{Src: p},
		Dictionary:  fields.Dictionary,
		Slots:       slots,
		Elements:    xelements,
		FrameNSlots: env2.frame.MaxSlots,
	}, nil
}

// analyzeRecord analyzes a brace phrase. Record fields are not a
// recursive scope: each initializer sees only the outer environment.
func analyzeRecord(p *ast.RecordPhrase, env Environ) (Meaning, error) {
	record := &RecordExpr{OpBase: OpBase{Src: p}, Fields: linkedhashmap.New()}
	for _, item := range p.Items {
		def, err := AnalyzeDef(item.Expr)
		if err != nil {
			return nil, err
		}
		if def == nil {
			return nil, source.Errorf(item.Expr.Location(), "not a definition")
		}
		name := value.Atom(def.Name.Name)
		if _, ok := record.Fields.Get(name); ok {
			return nil, source.Errorf(def.Name.Location(), "%s: multiply defined", name)
		}
		op, err := AnalyzeOp(def.Definiens, env)
		if err != nil {
			return nil, err
		}
		record.Fields.Put(name, op)
	}
	return record, nil
}
