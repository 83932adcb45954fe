// Package parser implements the Contour grammar as a hand-written
// recursive-descent parser with precedence climbing. It consumes a
// scanner token stream (one token of push-back) and produces a Phrase
// tree whose nodes span their exact source bytes.
//
// Grammar, lowest precedence first:
//
//	program      : commas END
//	commas       : empty | list | list ","
//	list         : semicolons | list "," semicolons
//	semicolons   : item | semicolons ";" item | semicolons ";"
//	item         : disjunction | "..." item
//	             | disjunction "=" item | disjunction ":" item
//	             | disjunction "->" item | disjunction "<<" item
//	             | "if" primary item | "if" primary item "else" item
//	             | "for" parens item
//	disjunction  : conjunction | disjunction "||" conjunction
//	             | disjunction ">>" conjunction
//	conjunction  : relation | conjunction "&&" relation
//	relation     : range | range RELOP range
//	range        : sum | sum ".." sum [ "by" sum ] | sum "..<" sum [ "by" sum ]
//	sum          : product | sum "+" product | sum "-" product
//	product      : unary | product "*" unary | product "/" unary
//	unary        : postfix | "-" unary | "+" unary | "!" unary
//	postfix      : primary | postfix primary | postfix "." primary
//	             | postfix "'" primary | postfix "^" unary
//	primary      : numeral | identifier | string
//	             | parens | list | braces | "let" parens item
//
// A dangling "else" associates with the nearest unmatched "if".
package parser

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/scanner"
	"github.com/contour-lang/contour/source"
)

func tracer() tracing.Trace {
	return tracing.Select("contour.parser")
}

type parser struct {
	sc *scanner.Scanner
}

// ParseProgram parses a whole script: a comma phrase followed by the
// end of the script.
func ParseProgram(sc *scanner.Scanner) (*ast.ProgramPhrase, error) {
	p := &parser{sc: sc}
	tracer().Debugf("parsing %s", sc.Script().Name)
	commas, err := p.parseCommas()
	if err != nil {
		return nil, err
	}
	tok, err := p.get()
	if err != nil {
		return nil, err
	}
	if tok.Kind != source.KEnd {
		return nil, p.errorAt(tok, "syntax error in program")
	}
	return &ast.ProgramPhrase{Body: commas, End: tok}, nil
}

// Parse is a convenience wrapper: scan and parse source text.
func Parse(name, text string) (*ast.ProgramPhrase, error) {
	return ParseProgram(scanner.New(source.NewScript(name, text)))
}

func (p *parser) get() (source.Token, error) {
	return p.sc.GetToken()
}

func (p *parser) push(tok source.Token) {
	p.sc.PushToken(tok)
}

func (p *parser) peek() (source.Token, error) {
	tok, err := p.sc.GetToken()
	if err != nil {
		return tok, err
	}
	p.sc.PushToken(tok)
	return tok, nil
}

func (p *parser) errorAt(tok source.Token, msg string) error {
	return source.At(p.sc.Script(), tok, msg)
}

func (p *parser) loc(tok source.Token) source.Location {
	return source.Location{Script: p.sc.Script(), Token: tok}
}

func isListEndToken(k source.Kind) bool {
	switch k {
	case source.KEnd, source.KRParen, source.KRBracket, source.KRBrace:
		return true
	}
	return false
}

func isSemicolonEndToken(k source.Kind) bool {
	return k == source.KComma || isListEndToken(k)
}

// commas : empty | list | list ","
// list : semicolons | list "," semicolons
//
// An empty commas phrase is detected by peeking for an end token of one
// of the contexts where parseCommas is called.
func (p *parser) parseCommas() (ast.Phrase, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if isListEndToken(tok.Kind) {
		begin := tok
		begin.Last = begin.First
		begin.Kind = source.KPhrase
		return &ast.EmptyPhrase{Loc: p.loc(begin)}, nil
	}
	commas := &ast.CommaPhrase{}
	for {
		semis, err := p.parseSemicolons()
		if err != nil {
			return nil, err
		}
		tok, err = p.get()
		if err != nil {
			return nil, err
		}
		if tok.Kind == source.KComma {
			commas.Items = append(commas.Items, ast.Item{Expr: semis, Sep: tok})
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
			if isListEndToken(tok.Kind) {
				return commas, nil
			}
		} else if isListEndToken(tok.Kind) {
			p.push(tok)
			if len(commas.Items) == 0 {
				return semis, nil
			}
			commas.Items = append(commas.Items, ast.Item{Expr: semis})
			return commas, nil
		} else {
			return nil, p.errorAt(tok, "syntax error in comma phrase")
		}
	}
}

// semicolons : semis | semis ";"
// semis : item | semis ";" item
//
// A trailing ";" is accepted and discarded.
func (p *parser) parseSemicolons() (ast.Phrase, error) {
	semis := &ast.SemicolonPhrase{}
	for {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		tok, err := p.get()
		if err != nil {
			return nil, err
		}
		if tok.Kind == source.KSemicolon {
			semis.Items = append(semis.Items, ast.Item{Expr: item, Sep: tok})
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
			if isSemicolonEndToken(tok.Kind) {
				return semis, nil
			}
		} else if isSemicolonEndToken(tok.Kind) {
			p.push(tok)
			if len(semis.Items) == 0 {
				return item, nil
			}
			semis.Items = append(semis.Items, ast.Item{Expr: item})
			return semis, nil
		} else {
			return nil, p.errorAt(tok, "syntax error in semicolon phrase")
		}
	}
}

// item parses the low precedence right associative operators.
func (p *parser) parseItem() (ast.Phrase, error) {
	tok, err := p.get()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case source.KEllipsis:
		arg, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryPhrase{Op: tok, Arg: arg}, nil
	case source.KIf:
		cond, err := p.parsePrimary("condition following 'if'")
		if err != nil {
			return nil, err
		}
		then, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		tok2, err := p.get()
		if err != nil {
			return nil, err
		}
		if tok2.Kind != source.KElse {
			p.push(tok2)
			return &ast.IfPhrase{IfTok: tok, Cond: cond, Then: then}, nil
		}
		alt, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		return &ast.IfPhrase{IfTok: tok, Cond: cond, Then: then, ElseTok: tok2, Else: alt}, nil
	case source.KFor:
		arg, err := p.parsePrimary("argument following 'for'")
		if err != nil {
			return nil, err
		}
		args, ok := arg.(*ast.ParenPhrase)
		if !ok {
			return nil, source.Errorf(arg.Location(), "for: malformed argument")
		}
		body, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		return &ast.ForPhrase{ForTok: tok, Args: args, Body: body}, nil
	}

	p.push(tok)
	left, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	tok, err = p.get()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case source.KEquate:
		right, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		return &ast.DefinitionPhrase{Left: left, Equate: tok, Right: right}, nil
	case source.KColon:
		right, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryPhrase{Left: left, Op: tok, Right: right}, nil
	case source.KRightArrow:
		right, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		return &ast.LambdaPhrase{Left: left, Arrow: tok, Body: right}, nil
	case source.KLeftCall:
		right, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		return &ast.CallPhrase{Fn: left, Args: right, LeftCall: tok}, nil
	default:
		p.push(tok)
		return left, nil
	}
}

// disjunction : conjunction
//
//	| disjunction "||" conjunction
//	| disjunction ">>" conjunction
func (p *parser) parseDisjunction() (ast.Phrase, error) {
	left, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.get()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case source.KOr:
			right, err := p.parseConjunction()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryPhrase{Left: left, Op: tok, Right: right}
		case source.KRightCall:
			fn, err := p.parseConjunction()
			if err != nil {
				return nil, err
			}
			left = &ast.CallPhrase{Fn: fn, Args: left, LeftCall: tok}
		default:
			p.push(tok)
			return left, nil
		}
	}
}

// conjunction : relation | conjunction "&&" relation
func (p *parser) parseConjunction() (ast.Phrase, error) {
	left, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.get()
		if err != nil {
			return nil, err
		}
		if tok.Kind != source.KAnd {
			p.push(tok)
			return left, nil
		}
		right, err := p.parseRelation()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryPhrase{Left: left, Op: tok, Right: right}
	}
}

// relation : range | range RELOP range  (comparisons do not chain)
func (p *parser) parseRelation() (ast.Phrase, error) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	tok, err := p.get()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case source.KEqual, source.KNotEqual,
		source.KLess, source.KLessOrEqual,
		source.KGreater, source.KGreaterOrEqual:
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryPhrase{Left: left, Op: tok, Right: right}, nil
	default:
		p.push(tok)
		return left, nil
	}
}

// range : sum | sum ".." sum | sum "..<" sum, optionally "by" sum
func (p *parser) parseRange() (ast.Phrase, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	tok, err := p.get()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case source.KRange, source.KOpenRange:
		last, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		tok2, err := p.get()
		if err != nil {
			return nil, err
		}
		rp := &ast.RangePhrase{First: left, Op: tok, Last: last}
		if tok2.Kind == source.KBy {
			rp.ByTok = tok2
			rp.Step, err = p.parseSum()
			if err != nil {
				return nil, err
			}
		} else {
			p.push(tok2)
		}
		return rp, nil
	default:
		p.push(tok)
		return left, nil
	}
}

// sum : product | sum "+" product | sum "-" product
func (p *parser) parseSum() (ast.Phrase, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.get()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case source.KPlus, source.KMinus:
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryPhrase{Left: left, Op: tok, Right: right}
		default:
			p.push(tok)
			return left, nil
		}
	}
}

// product : unary | product "*" unary | product "/" unary
func (p *parser) parseProduct() (ast.Phrase, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.get()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case source.KTimes, source.KOver:
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryPhrase{Left: left, Op: tok, Right: right}
		default:
			p.push(tok)
			return left, nil
		}
	}
}

// unary : postfix | "-" unary | "+" unary | "!" unary
func (p *parser) parseUnary() (ast.Phrase, error) {
	tok, err := p.get()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case source.KPlus, source.KMinus, source.KNot:
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryPhrase{Op: tok, Arg: arg}, nil
	default:
		p.push(tok)
		return p.parsePostfix()
	}
}

// postfix : primary | postfix primary | postfix "." primary
//
//	| postfix "'" primary | postfix "^" unary
//
// Juxtaposition of a postfix and a primary is a left-associative
// function call.
func (p *parser) parsePostfix() (ast.Phrase, error) {
	postfix, err := p.parsePrimary("expression")
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.get()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case source.KPower:
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.BinaryPhrase{Left: postfix, Op: tok, Right: right}, nil
		case source.KDot:
			right, err := p.parsePrimary("expression following .")
			if err != nil {
				return nil, err
			}
			postfix = &ast.BinaryPhrase{Left: postfix, Op: tok, Right: right}
		case source.KApostrophe:
			right, err := p.parsePrimary("expression following '")
			if err != nil {
				return nil, err
			}
			postfix = &ast.BinaryPhrase{Left: postfix, Op: tok, Right: right}
		default:
			p.push(tok)
			primary, err := p.parseOptionalPrimary()
			if err != nil {
				return nil, err
			}
			if primary == nil {
				return postfix, nil
			}
			postfix = &ast.CallPhrase{Fn: postfix, Args: primary}
		}
	}
}

// parseDelimited parses the remainder of a delimited phrase after its
// opening token. An unclosed delimiter is attributed to the opener.
func (p *parser) parseDelimited(open source.Token, closing source.Kind) (source.Location, []ast.Item, error) {
	body, err := p.parseCommas()
	if err != nil {
		return source.Location{}, nil, err
	}
	tok, err := p.get()
	if err != nil {
		return source.Location{}, nil, err
	}
	if tok.Kind == source.KEnd {
		return source.Location{}, nil, p.errorAt(open, "unmatched delimiter")
	}
	if tok.Kind != closing {
		return source.Location{}, nil, p.errorAt(tok, "syntax error in delimited phrase")
	}
	loc := p.loc(open).EndingAt(tok)
	return loc, delimitedItems(body), nil
}

// delimitedItems flattens the comma phrase parsed between delimiters
// into the item list the delimited node carries.
func delimitedItems(body ast.Phrase) []ast.Item {
	switch b := body.(type) {
	case *ast.EmptyPhrase:
		return nil
	case *ast.CommaPhrase:
		return b.Items
	default:
		return []ast.Item{{Expr: body}}
	}
}

// parseOptionalPrimary returns nil without consuming input when no
// primary expression follows; the postfix call loop terminates on it.
func (p *parser) parseOptionalPrimary() (ast.Phrase, error) {
	return p.parsePrimary("")
}

// primary : numeral | identifier | string | parens | list | braces
//
//	| "let" parens item
//
// With an empty `what`, a missing primary yields (nil, nil) instead of
// a diagnostic.
func (p *parser) parsePrimary(what string) (ast.Phrase, error) {
	tok, err := p.get()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case source.KNum:
		return &ast.Numeral{Loc: p.loc(tok)}, nil
	case source.KIdent:
		return ast.NewIdentifier(p.sc.Script(), tok), nil
	case source.KString:
		return &ast.StringPhrase{Loc: p.loc(tok)}, nil
	case source.KLet:
		arg, err := p.parsePrimary("argument following 'let'")
		if err != nil {
			return nil, err
		}
		args, ok := arg.(*ast.ParenPhrase)
		if !ok {
			return nil, source.Errorf(arg.Location(), "let: malformed argument")
		}
		body, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		return &ast.LetPhrase{LetTok: tok, Args: args, Body: body}, nil
	case source.KLParen:
		loc, items, err := p.parseDelimited(tok, source.KRParen)
		if err != nil {
			return nil, err
		}
		return &ast.ParenPhrase{Loc: loc, Items: items}, nil
	case source.KLBracket:
		loc, items, err := p.parseDelimited(tok, source.KRBracket)
		if err != nil {
			return nil, err
		}
		return &ast.ListPhrase{Loc: loc, Items: items}, nil
	case source.KLBrace:
		loc, items, err := p.parseDelimited(tok, source.KRBrace)
		if err != nil {
			return nil, err
		}
		return &ast.RecordPhrase{Loc: loc, Items: items}, nil
	case source.KEnd:
		if what != "" {
			return nil, p.errorAt(tok, "missing "+what)
		}
		p.push(tok)
		return nil, nil
	default:
		if what != "" {
			return nil, p.errorAt(tok, "unexpected token when expecting "+what)
		}
		p.push(tok)
		return nil, nil
	}
}
