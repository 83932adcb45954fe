// Package builtins ships the standard builtin namespace: numeric
// constants, native functions wrapped as first-class values, and the
// echo metafunction.
package builtins

import (
	"fmt"
	"math"

	"github.com/contour-lang/contour/analyzer"
	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/value"
)

func constant(v value.Value) analyzer.Builtin {
	return analyzer.BuiltinValue{V: v}
}

func function(name string, nargs int, fn func(args []value.Value) (value.Value, error)) analyzer.Builtin {
	return analyzer.BuiltinValue{V: &value.Function{Name: name, NArgs: nargs, Fn: fn}}
}

// Default returns the shipped builtin namespace.
func Default() analyzer.Namespace {
	return analyzer.Namespace{
		"pi":    constant(value.Number(math.Pi)),
		"tau":   constant(value.Number(2 * math.Pi)),
		"inf":   constant(value.Number(math.Inf(1))),
		"null":  constant(value.Null{}),
		"false": constant(value.Bool(false)),
		"true":  constant(value.Bool(true)),
		"sqrt":  unary("sqrt", math.Sqrt),
		"abs":   unary("abs", math.Abs),
		"max":   reduce("max", math.Inf(-1), math.Max),
		"min":   reduce("min", math.Inf(1), math.Min),
		"len":   lenFunction(),
		"echo":  echoBuiltin{},
	}
}

// unary wraps a scalar numeric function of one argument.
func unary(name string, f func(float64) float64) analyzer.Builtin {
	return function(name, 1, func(args []value.Value) (value.Value, error) {
		n, ok := args[0].(value.Number)
		if !ok {
			return nil, fmt.Errorf("%s: argument is not a number", name)
		}
		return value.Number(f(float64(n))), nil
	})
}

// reduce wraps a binary numeric function folded over a list argument.
func reduce(name string, identity float64, f func(a, b float64) float64) analyzer.Builtin {
	return function(name, 1, func(args []value.Value) (value.Value, error) {
		list, ok := args[0].(value.List)
		if !ok {
			return nil, fmt.Errorf("%s: argument is not a list", name)
		}
		acc := identity
		for _, v := range list {
			n, ok := v.(value.Number)
			if !ok {
				return nil, fmt.Errorf("%s: element is not a number", name)
			}
			acc = f(acc, float64(n))
		}
		return value.Number(acc), nil
	})
}

func lenFunction() analyzer.Builtin {
	return function("len", 1, func(args []value.Value) (value.Value, error) {
		list, ok := args[0].(value.List)
		if !ok {
			return nil, fmt.Errorf("len: argument is not a list")
		}
		return value.Number(len(list)), nil
	})
}

// EchoAction is the meaning of a call to echo: a side-effecting
// action that prints its analyzed arguments when executed.
type EchoAction struct {
	analyzer.OpBase
	Argv []analyzer.Operation
}

// EchoMetafunction is the meaning of the name `echo` in isolation.
// Its compile-time hook turns a call phrase into an EchoAction; using
// echo where a value is required is "not an operation".
type EchoMetafunction struct {
	Id *ast.Identifier
}

func (m *EchoMetafunction) Source() ast.Phrase { return m.Id }

func (m *EchoMetafunction) Call(call *ast.CallPhrase, env analyzer.Environ) (analyzer.Meaning, error) {
	argv, err := analyzer.AnalyzeArgs(call, env)
	if err != nil {
		return nil, err
	}
	return &EchoAction{OpBase: analyzer.OpBase{Src: call}, Argv: argv}, nil
}

type echoBuiltin struct{}

func (echoBuiltin) ToMeaning(id *ast.Identifier) analyzer.Meaning {
	return &EchoMetafunction{Id: id}
}
