package analyzer

import (
	"fmt"
	"strings"

	"github.com/contour-lang/contour/value"
)

// Sprint renders an IR tree as an indented outline for the `analyze`
// command and debugging.
func Sprint(op Operation) string {
	var b strings.Builder
	sprintOp(&b, op, 0)
	return b.String()
}

func sprintOp(b *strings.Builder, op Operation, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := op.(type) {
	case *Constant:
		fmt.Fprintf(b, "%sconstant %s\n", indent, e.Value)
	case *ArgRef:
		fmt.Fprintf(b, "%sarg[%d]\n", indent, e.Slot)
	case *LetRef:
		fmt.Fprintf(b, "%slocal[%d]\n", indent, e.Slot)
	case *ModuleRef:
		fmt.Fprintf(b, "%sfield[%d]\n", indent, e.Slot)
	case *NonlocalRef:
		fmt.Fprintf(b, "%snonlocal[%d]\n", indent, e.Slot)
	case *NonlocalFunctionRef:
		fmt.Fprintf(b, "%sfunction[%d]\n", indent, e.Slot)
	case *NotExpr:
		fmt.Fprintf(b, "%snot\n", indent)
		sprintOp(b, e.Arg, depth+1)
	case *PrefixExpr:
		fmt.Fprintf(b, "%sprefix %s\n", indent, e.Op)
		sprintOp(b, e.Arg, depth+1)
	case *InfixExpr:
		fmt.Fprintf(b, "%sinfix %s\n", indent, e.Op)
		sprintOp(b, e.Left, depth+1)
		sprintOp(b, e.Right, depth+1)
	case *AndExpr:
		sprintPair(b, "and", e.Left, e.Right, depth)
	case *OrExpr:
		sprintPair(b, "or", e.Left, e.Right, depth)
	case *EqualExpr:
		sprintPair(b, "equal", e.Left, e.Right, depth)
	case *NotEqualExpr:
		sprintPair(b, "not-equal", e.Left, e.Right, depth)
	case *LessExpr:
		sprintPair(b, "less", e.Left, e.Right, depth)
	case *GreaterExpr:
		sprintPair(b, "greater", e.Left, e.Right, depth)
	case *LessOrEqualExpr:
		sprintPair(b, "less-or-equal", e.Left, e.Right, depth)
	case *GreaterOrEqualExpr:
		sprintPair(b, "greater-or-equal", e.Left, e.Right, depth)
	case *PowerExpr:
		sprintPair(b, "power", e.Left, e.Right, depth)
	case *DotExpr:
		fmt.Fprintf(b, "%sdot %s\n", indent, e.Name)
		sprintOp(b, e.Left, depth+1)
	case *AtExpr:
		fmt.Fprintf(b, "%sat\n", indent)
		sprintOp(b, e.Left, depth+1)
		sprintOp(b, e.Index, depth+1)
	case *IfExpr:
		fmt.Fprintf(b, "%sif\n", indent)
		sprintOp(b, e.Cond, depth+1)
		sprintOp(b, e.Then, depth+1)
	case *IfElseExpr:
		fmt.Fprintf(b, "%sif-else\n", indent)
		sprintOp(b, e.Cond, depth+1)
		sprintOp(b, e.Then, depth+1)
		sprintOp(b, e.Else, depth+1)
	case *RangeGen:
		fmt.Fprintf(b, "%srange\n", indent)
		sprintOp(b, e.First, depth+1)
		sprintOp(b, e.Last, depth+1)
		if e.Step != nil {
			sprintOp(b, e.Step, depth+1)
		}
	case *ListExpr:
		fmt.Fprintf(b, "%slist (%d)\n", indent, len(e.Items))
		for _, item := range e.Items {
			sprintOp(b, item, depth+1)
		}
	case *SequenceExpr:
		fmt.Fprintf(b, "%ssequence (%d)\n", indent, len(e.Items))
		for _, item := range e.Items {
			sprintOp(b, item, depth+1)
		}
	case *RecordExpr:
		fmt.Fprintf(b, "%srecord\n", indent)
		e.Fields.Each(func(k, v interface{}) {
			fmt.Fprintf(b, "%s  %s=\n", indent, k)
			sprintOp(b, v.(Operation), depth+2)
		})
	case *LambdaExpr:
		fmt.Fprintf(b, "%slambda nargs=%d nslots=%d\n", indent, e.NArgs, e.NSlots)
		sprintOp(b, e.Body, depth+1)
		if len(e.Nonlocals.Items) > 0 {
			fmt.Fprintf(b, "%s  nonlocals:\n", indent)
			for _, nl := range e.Nonlocals.Items {
				sprintOp(b, nl, depth+2)
			}
		}
	case *CallExpr:
		fmt.Fprintf(b, "%scall\n", indent)
		sprintOp(b, e.Fn, depth+1)
		for _, arg := range e.Args {
			sprintOp(b, arg, depth+1)
		}
	case *LetExpr:
		fmt.Fprintf(b, "%slet first=%d\n", indent, e.FirstSlot)
		for _, v := range e.Values {
			sprintValue(b, v, depth+1)
		}
		sprintOp(b, e.Body, depth+1)
	case *ForExpr:
		fmt.Fprintf(b, "%sfor slot=%d\n", indent, e.Slot)
		sprintOp(b, e.List, depth+1)
		sprintOp(b, e.Body, depth+1)
	case *ModuleExpr:
		fmt.Fprintf(b, "%smodule nslots=%d\n", indent, e.FrameNSlots)
		for i, name := range e.Dictionary.Names() {
			fmt.Fprintf(b, "%s  %s=\n", indent, name)
			sprintValue(b, e.Slots[i], depth+2)
		}
		for _, el := range e.Elements.Items {
			sprintOp(b, el, depth+1)
		}
	default:
		fmt.Fprintf(b, "%s%T\n", indent, op)
	}
}

func sprintPair(b *strings.Builder, label string, left, right Operation, depth int) {
	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), label)
	sprintOp(b, left, depth+1)
	sprintOp(b, right, depth+1)
}

func sprintValue(b *strings.Builder, v value.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := v.(type) {
	case *value.Thunk:
		fmt.Fprintf(b, "%sthunk\n", indent)
		if op, ok := t.Expr.(Operation); ok {
			sprintOp(b, op, depth+1)
		}
	case *value.Lambda:
		fmt.Fprintf(b, "%sfunction nargs=%d nslots=%d\n", indent, t.NArgs, t.NSlots)
		if op, ok := t.Body.(Operation); ok {
			sprintOp(b, op, depth+1)
		}
	default:
		fmt.Fprintf(b, "%s%s\n", indent, v)
	}
}
