package ast

import (
	"fmt"
	"strings"

	"github.com/contour-lang/contour/source"
)

// Sprint renders a phrase tree as an indented outline, one node per
// line, for the `parse` command and debugging.
func Sprint(ph Phrase) string {
	var b strings.Builder
	sprint(&b, ph, 0)
	return b.String()
}

func sprint(b *strings.Builder, ph Phrase, depth int) {
	indent := strings.Repeat("  ", depth)
	switch p := ph.(type) {
	case *Identifier:
		fmt.Fprintf(b, "%sident %s\n", indent, p.Name)
	case *Numeral:
		fmt.Fprintf(b, "%snum %s\n", indent, p.Loc.Range())
	case *StringPhrase:
		fmt.Fprintf(b, "%sstring %s\n", indent, p.Loc.Range())
	case *EmptyPhrase:
		fmt.Fprintf(b, "%sempty\n", indent)
	case *UnaryPhrase:
		fmt.Fprintf(b, "%sunary %s\n", indent, p.Op.Kind)
		sprint(b, p.Arg, depth+1)
	case *BinaryPhrase:
		fmt.Fprintf(b, "%sbinary %s\n", indent, p.Op.Kind)
		sprint(b, p.Left, depth+1)
		sprint(b, p.Right, depth+1)
	case *ParenPhrase:
		fmt.Fprintf(b, "%sparen\n", indent)
		sprintItems(b, p.Items, depth+1)
	case *ListPhrase:
		fmt.Fprintf(b, "%slist\n", indent)
		sprintItems(b, p.Items, depth+1)
	case *RecordPhrase:
		fmt.Fprintf(b, "%srecord\n", indent)
		sprintItems(b, p.Items, depth+1)
	case *CommaPhrase:
		fmt.Fprintf(b, "%scommas\n", indent)
		sprintItems(b, p.Items, depth+1)
	case *SemicolonPhrase:
		fmt.Fprintf(b, "%ssemicolons\n", indent)
		sprintItems(b, p.Items, depth+1)
	case *IfPhrase:
		fmt.Fprintf(b, "%sif\n", indent)
		sprint(b, p.Cond, depth+1)
		sprint(b, p.Then, depth+1)
		if p.Else != nil {
			sprint(b, p.Else, depth+1)
		}
	case *ForPhrase:
		fmt.Fprintf(b, "%sfor\n", indent)
		sprint(b, p.Args, depth+1)
		sprint(b, p.Body, depth+1)
	case *LetPhrase:
		fmt.Fprintf(b, "%slet\n", indent)
		sprint(b, p.Args, depth+1)
		sprint(b, p.Body, depth+1)
	case *LambdaPhrase:
		fmt.Fprintf(b, "%slambda\n", indent)
		sprint(b, p.Left, depth+1)
		sprint(b, p.Body, depth+1)
	case *RangePhrase:
		fmt.Fprintf(b, "%srange %s\n", indent, p.Op.Kind)
		sprint(b, p.First, depth+1)
		sprint(b, p.Last, depth+1)
		if p.Step != nil {
			sprint(b, p.Step, depth+1)
		}
	case *DefinitionPhrase:
		fmt.Fprintf(b, "%sdefinition\n", indent)
		sprint(b, p.Left, depth+1)
		sprint(b, p.Right, depth+1)
	case *CallPhrase:
		fmt.Fprintf(b, "%scall\n", indent)
		sprint(b, p.Fn, depth+1)
		sprint(b, p.Args, depth+1)
	case *ProgramPhrase:
		fmt.Fprintf(b, "%sprogram\n", indent)
		sprint(b, p.Body, depth+1)
	case *ModulePhrase:
		fmt.Fprintf(b, "%smodule\n", indent)
		sprint(b, p.Body, depth+1)
	default:
		fmt.Fprintf(b, "%s?%T\n", indent, ph)
	}
}

func sprintItems(b *strings.Builder, items []Item, depth int) {
	for _, it := range items {
		sprint(b, it.Expr, depth)
	}
}

// NewIdentifier builds an Identifier from its token.
func NewIdentifier(script *source.Script, tok source.Token) *Identifier {
	loc := source.Location{Script: script, Token: tok}
	return &Identifier{Loc: loc, Name: loc.Range()}
}
