package analyzer

import (
	"strconv"

	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/source"
	"github.com/contour-lang/contour/value"
)

// AnalyzeProgram analyzes a parsed script as a module against a builtin
// namespace. This is the front end's top-level entry point.
func AnalyzeProgram(prog *ast.ProgramPhrase, ns Namespace) (*ModuleExpr, error) {
	env := NewBuiltinEnviron(ns)
	return analyzeModule(&ast.ModulePhrase{Body: prog.Body}, env)
}

// AnalyzeOp analyzes a phrase and requires the result to be evaluable.
func AnalyzeOp(ph ast.Phrase, env Environ) (Operation, error) {
	m, err := Analyze(ph, env)
	if err != nil {
		return nil, err
	}
	return toOperation(m)
}

// Analyze computes the Meaning of a phrase in a scope.
func Analyze(ph ast.Phrase, env Environ) (Meaning, error) {
	switch p := ph.(type) {
	case *ast.Identifier:
		return Lookup(env, p)

	case *ast.Numeral:
		lexeme := p.Loc.Range()
		n, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, source.Errorf(p.Loc, "%q is not a numeral", lexeme)
		}
		return &Constant{OpBase: OpBase{Src: p}, Value: value.Number(n)}, nil

	case *ast.StringPhrase:
		lexeme := p.Loc.Range() // includes the surrounding quotes
		return &Constant{
			OpBase: OpBase{Src: p},
			Value:  value.Str(lexeme[1 : len(lexeme)-1]),
		}, nil

	case *ast.EmptyPhrase:
		return &SequenceExpr{OpBase: OpBase{Src: p}}, nil

	case *ast.UnaryPhrase:
		arg, err := AnalyzeOp(p.Arg, env)
		if err != nil {
			return nil, err
		}
		if p.Op.Kind == source.KNot {
			return &NotExpr{OpBase: OpBase{Src: p}, Arg: arg}, nil
		}
		return &PrefixExpr{OpBase: OpBase{Src: p}, Op: p.Op.Kind, Arg: arg}, nil

	case *ast.BinaryPhrase:
		return analyzeBinary(p, env)

	case *ast.ParenPhrase:
		return analyzeSequence(p, p.Items, env)

	case *ast.CommaPhrase:
		return analyzeSequence(p, p.Items, env)

	case *ast.SemicolonPhrase:
		// A single statement is its own meaning; longer statement
		// sequences have no meaning-level implementation yet.
		if len(p.Items) == 1 {
			return AnalyzeOp(p.Items[0].Expr, env)
		}
		return nil, source.Errorf(p.Location(), "; phrase not implemented")

	case *ast.ListPhrase:
		items, err := analyzeItems(p.Items, env)
		if err != nil {
			return nil, err
		}
		return &ListExpr{OpBase: OpBase{Src: p}, Items: items}, nil

	case *ast.RecordPhrase:
		return analyzeRecord(p, env)

	case *ast.IfPhrase:
		cond, err := AnalyzeOp(p.Cond, env)
		if err != nil {
			return nil, err
		}
		then, err := AnalyzeOp(p.Then, env)
		if err != nil {
			return nil, err
		}
		if p.Else == nil {
			return &IfExpr{OpBase: OpBase{Src: p}, Cond: cond, Then: then}, nil
		}
		alt, err := AnalyzeOp(p.Else, env)
		if err != nil {
			return nil, err
		}
		return &IfElseExpr{OpBase: OpBase{Src: p}, Cond: cond, Then: then, Else: alt}, nil

	case *ast.RangePhrase:
		first, err := AnalyzeOp(p.First, env)
		if err != nil {
			return nil, err
		}
		last, err := AnalyzeOp(p.Last, env)
		if err != nil {
			return nil, err
		}
		gen := &RangeGen{
			OpBase:   OpBase{Src: p},
			First:    first,
			Last:     last,
			HalfOpen: p.Op.Kind == source.KOpenRange,
		}
		if p.Step != nil {
			gen.Step, err = AnalyzeOp(p.Step, env)
			if err != nil {
				return nil, err
			}
		}
		return gen, nil

	case *ast.LambdaPhrase:
		return analyzeLambda(p, env)

	case *ast.LetPhrase:
		return analyzeLet(p, env)

	case *ast.ForPhrase:
		return analyzeFor(p, env)

	case *ast.CallPhrase:
		return analyzeCall(p, env)

	case *ast.DefinitionPhrase:
		return nil, source.Errorf(p.Location(), "not an operation")

	case *ast.ModulePhrase:
		return analyzeModule(p, env)

	case *ast.ProgramPhrase:
		return Analyze(p.Body, env)

	default:
		return nil, source.Errorf(ph.Location(), "cannot analyze phrase")
	}
}

// analyzeSequence applies the singleton-collapse rule: a single item
// with no trailing separator means the item itself; anything else is a
// sequence expression.
func analyzeSequence(src ast.Phrase, items []ast.Item, env Environ) (Meaning, error) {
	if len(items) == 1 && items[0].Sep.Kind == source.KMissing {
		return AnalyzeOp(items[0].Expr, env)
	}
	ops, err := analyzeItems(items, env)
	if err != nil {
		return nil, err
	}
	return &SequenceExpr{OpBase: OpBase{Src: src}, Items: ops}, nil
}

func analyzeItems(items []ast.Item, env Environ) ([]Operation, error) {
	ops := make([]Operation, len(items))
	for i, it := range items {
		op, err := AnalyzeOp(it.Expr, env)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

func analyzeBinary(p *ast.BinaryPhrase, env Environ) (Meaning, error) {
	if p.Op.Kind == source.KDot {
		return analyzeDot(p, env)
	}
	left, err := AnalyzeOp(p.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := AnalyzeOp(p.Right, env)
	if err != nil {
		return nil, err
	}
	base := OpBase{Src: p}
	cmp := CompareBase{OpBase: base, Left: left, Right: right}
	switch p.Op.Kind {
	case source.KOr:
		return &OrExpr{OpBase: base, Left: left, Right: right}, nil
	case source.KAnd:
		return &AndExpr{OpBase: base, Left: left, Right: right}, nil
	case source.KEqual:
		return &EqualExpr{cmp}, nil
	case source.KNotEqual:
		return &NotEqualExpr{cmp}, nil
	case source.KLess:
		return &LessExpr{cmp}, nil
	case source.KGreater:
		return &GreaterExpr{cmp}, nil
	case source.KLessOrEqual:
		return &LessOrEqualExpr{cmp}, nil
	case source.KGreaterOrEqual:
		return &GreaterOrEqualExpr{cmp}, nil
	case source.KPower:
		return &PowerExpr{OpBase: base, Left: left, Right: right}, nil
	default:
		return &InfixExpr{OpBase: base, Op: p.Op.Kind, Left: left, Right: right}, nil
	}
}

// analyzeDot handles field selection (`r.name`) and list indexing
// (`l.[i]`), which share the `.` operator.
func analyzeDot(p *ast.BinaryPhrase, env Environ) (Meaning, error) {
	switch right := p.Right.(type) {
	case *ast.Identifier:
		left, err := AnalyzeOp(p.Left, env)
		if err != nil {
			return nil, err
		}
		return &DotExpr{OpBase: OpBase{Src: p}, Left: left, Name: value.Atom(right.Name)}, nil
	case *ast.ListPhrase:
		if len(right.Items) != 1 || right.Items[0].Sep.Kind != source.KMissing {
			return nil, source.Errorf(p.Location(), "not an expression")
		}
		index, err := AnalyzeOp(right.Items[0].Expr, env)
		if err != nil {
			return nil, err
		}
		left, err := AnalyzeOp(p.Left, env)
		if err != nil {
			return nil, err
		}
		return &AtExpr{OpBase: OpBase{Src: p}, Left: left, Index: index}, nil
	default:
		return nil, source.Errorf(p.Right.Location(), "invalid expression after '.'")
	}
}

// analyzeCall delegates to the called meaning: a Metafunction runs its
// compile-time hook, an Operation becomes a CallExpr.
func analyzeCall(p *ast.CallPhrase, env Environ) (Meaning, error) {
	fn, err := Analyze(p.Fn, env)
	if err != nil {
		return nil, err
	}
	if mf, ok := fn.(Metafunction); ok {
		return mf.Call(p, env)
	}
	op, err := toOperation(fn)
	if err != nil {
		return nil, err
	}
	argv, err := AnalyzeArgs(p, env)
	if err != nil {
		return nil, err
	}
	return &CallExpr{OpBase: OpBase{Src: p}, Fn: op, ArgsPhrase: p.Args, Args: argv}, nil
}

// AnalyzeArgs analyzes a call's argument phrase: a parenthesized list
// expands to one argument per element, anything else is a unitary
// argument.
func AnalyzeArgs(p *ast.CallPhrase, env Environ) ([]Operation, error) {
	if parens, ok := p.Args.(*ast.ParenPhrase); ok {
		return analyzeItems(parens.Items, env)
	}
	arg, err := AnalyzeOp(p.Args, env)
	if err != nil {
		return nil, err
	}
	return []Operation{arg}, nil
}

// AnalyzeDef interprets a phrase as a definition. Non-definitional
// phrases yield (nil, nil); a malformed definiendum is an error.
func AnalyzeDef(ph ast.Phrase) (*Definition, error) {
	def, ok := ph.(*ast.DefinitionPhrase)
	if !ok {
		return nil, nil
	}
	switch left := def.Left.(type) {
	case *ast.Identifier:
		return &Definition{Name: left, Definiens: def.Right}, nil
	case *ast.CallPhrase:
		// f(x) = body is sugar for f = x -> body.
		id, ok := left.Fn.(*ast.Identifier)
		if !ok {
			return nil, source.Errorf(left.Fn.Location(), "not an identifier")
		}
		return &Definition{
			Name: id,
			Definiens: &ast.LambdaPhrase{
				Left:  left.Args,
				Arrow: def.Equate,
				Body:  def.Right,
			},
		}, nil
	default:
		return nil, source.Errorf(def.Left.Location(), "invalid definiendum")
	}
}
