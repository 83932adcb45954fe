// Package ast defines the Phrase tree: the concrete syntax produced by
// the parser. Phrases are immutable once published (the single exception
// is the Recursive flag on LambdaPhrase, set during definition collection
// before the lambda body is analyzed) and may be shared by multiple IR
// nodes as source back-pointers for diagnostics.
package ast

import "github.com/contour-lang/contour/source"

// Phrase is a concrete syntax node. Every Phrase answers its exact
// source Location, spanning its first to last consumed token.
type Phrase interface {
	Location() source.Location
	phrase()
}

// Item is one element of a separated sequence: the expression plus the
// separator that followed it. A separator of kind KMissing marks
// "no separator after the last item".
type Item struct {
	Expr Phrase
	Sep  source.Token
}

// Identifier is a name reference.
type Identifier struct {
	Loc  source.Location
	Name string
}

func (p *Identifier) Location() source.Location { return p.Loc }
func (p *Identifier) phrase()                   {}

// Numeral is a numeric literal; its lexeme is recovered from Loc.
type Numeral struct {
	Loc source.Location
}

func (p *Numeral) Location() source.Location { return p.Loc }
func (p *Numeral) phrase()                   {}

// StringPhrase is a quoted string literal, quotes included in the span.
type StringPhrase struct {
	Loc source.Location
}

func (p *StringPhrase) Location() source.Location { return p.Loc }
func (p *StringPhrase) phrase()                   {}

// EmptyPhrase is a zero-width phrase, e.g. the body of "()".
type EmptyPhrase struct {
	Loc source.Location
}

func (p *EmptyPhrase) Location() source.Location { return p.Loc }
func (p *EmptyPhrase) phrase()                   {}

// UnaryPhrase is a prefix operator application: -x, +x, !x, ...x.
type UnaryPhrase struct {
	Op  source.Token
	Arg Phrase
}

func (p *UnaryPhrase) Location() source.Location { return p.Arg.Location().StartingAt(p.Op) }
func (p *UnaryPhrase) phrase()                   {}

// BinaryPhrase is an infix operator application. It covers arithmetic,
// comparison, logic, `^`, `.`, `'` and `:`.
type BinaryPhrase struct {
	Left  Phrase
	Op    source.Token
	Right Phrase
}

func (p *BinaryPhrase) Location() source.Location { return p.Left.Location().To(p.Right.Location()) }
func (p *BinaryPhrase) phrase()                   {}

// ParenPhrase is a parenthesized item list.
type ParenPhrase struct {
	Loc   source.Location
	Items []Item
}

func (p *ParenPhrase) Location() source.Location { return p.Loc }
func (p *ParenPhrase) phrase()                   {}

// ListPhrase is a bracketed item list: [a, b, c].
type ListPhrase struct {
	Loc   source.Location
	Items []Item
}

func (p *ListPhrase) Location() source.Location { return p.Loc }
func (p *ListPhrase) phrase()                   {}

// RecordPhrase is a braced item list: {a=1, b=2}.
type RecordPhrase struct {
	Loc   source.Location
	Items []Item
}

func (p *RecordPhrase) Location() source.Location { return p.Loc }
func (p *RecordPhrase) phrase()                   {}

// CommaPhrase is a comma-separated sequence outside any delimiter.
type CommaPhrase struct {
	Items []Item
}

func (p *CommaPhrase) Location() source.Location { return itemsLocation(p.Items) }
func (p *CommaPhrase) phrase()                   {}

// SemicolonPhrase is a semicolon-separated statement sequence.
type SemicolonPhrase struct {
	Items []Item
}

func (p *SemicolonPhrase) Location() source.Location { return itemsLocation(p.Items) }
func (p *SemicolonPhrase) phrase()                   {}

func itemsLocation(items []Item) source.Location {
	first := items[0].Expr.Location()
	last := items[len(items)-1]
	loc := first.To(last.Expr.Location())
	if last.Sep.Kind != source.KMissing {
		loc = loc.EndingAt(last.Sep)
	}
	return loc
}

// IfPhrase is `if cond then` or `if cond then else alt`; Else is nil
// when no else clause is present.
type IfPhrase struct {
	IfTok   source.Token
	Cond    Phrase
	Then    Phrase
	ElseTok source.Token
	Else    Phrase
}

func (p *IfPhrase) Location() source.Location {
	end := p.Then
	if p.Else != nil {
		end = p.Else
	}
	return end.Location().StartingAt(p.IfTok)
}
func (p *IfPhrase) phrase() {}

// ForPhrase is `for (name = list) body`.
type ForPhrase struct {
	ForTok source.Token
	Args   *ParenPhrase
	Body   Phrase
}

func (p *ForPhrase) Location() source.Location { return p.Body.Location().StartingAt(p.ForTok) }
func (p *ForPhrase) phrase()                   {}

// LetPhrase is `let (bindings) body`.
type LetPhrase struct {
	LetTok source.Token
	Args   *ParenPhrase
	Body   Phrase
}

func (p *LetPhrase) Location() source.Location { return p.Body.Location().StartingAt(p.LetTok) }
func (p *LetPhrase) phrase()                   {}

// LambdaPhrase is `params -> body`. Recursive is set during definition
// collection when the lambda is the definiens of a module binding
// (let bindings do not set it), and read once when the lambda body is
// analyzed.
type LambdaPhrase struct {
	Left      Phrase
	Arrow     source.Token
	Body      Phrase
	Recursive bool
}

func (p *LambdaPhrase) Location() source.Location { return p.Left.Location().To(p.Body.Location()) }
func (p *LambdaPhrase) phrase()                   {}

// RangePhrase is `first .. last`, `first ..< last`, optionally `by step`.
type RangePhrase struct {
	First Phrase
	Op    source.Token
	Last  Phrase
	ByTok source.Token
	Step  Phrase
}

func (p *RangePhrase) Location() source.Location {
	end := p.Last
	if p.Step != nil {
		end = p.Step
	}
	return p.First.Location().To(end.Location())
}
func (p *RangePhrase) phrase() {}

// DefinitionPhrase is `left = right`. Whether it is a definition or a
// misplaced expression is decided by the analyzer.
type DefinitionPhrase struct {
	Left   Phrase
	Equate source.Token
	Right  Phrase
}

func (p *DefinitionPhrase) Location() source.Location {
	return p.Left.Location().To(p.Right.Location())
}
func (p *DefinitionPhrase) phrase() {}

// CallPhrase is a function call: juxtaposition `f x`, or the call
// operators `f << x` and `x >> f`. LeftCall is KMissing for
// juxtaposition.
type CallPhrase struct {
	Fn       Phrase
	Args     Phrase
	LeftCall source.Token
}

func (p *CallPhrase) Location() source.Location {
	fn, args := p.Fn.Location(), p.Args.Location()
	if args.Token.First < fn.Token.First {
		return args.To(fn) // x >> f spans from the argument
	}
	return fn.To(args)
}
func (p *CallPhrase) phrase() {}

// ProgramPhrase is the root of a parsed script.
type ProgramPhrase struct {
	Body Phrase
	End  source.Token
}

func (p *ProgramPhrase) Location() source.Location {
	return p.Body.Location().EndingAt(p.End)
}
func (p *ProgramPhrase) phrase() {}

// ModulePhrase interprets a program body as a module: a semicolon
// sequence of definitions and elements.
type ModulePhrase struct {
	Body Phrase
}

func (p *ModulePhrase) Location() source.Location { return p.Body.Location() }
func (p *ModulePhrase) phrase()                   {}
