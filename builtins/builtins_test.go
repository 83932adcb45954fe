package builtins_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contour-lang/contour/analyzer"
	"github.com/contour-lang/contour/builtins"
	"github.com/contour-lang/contour/parser"
	"github.com/contour-lang/contour/value"
)

func analyze(t *testing.T, src string) (*analyzer.ModuleExpr, error) {
	t.Helper()
	prog, err := parser.Parse("test.ct", src)
	require.NoError(t, err)
	return analyzer.AnalyzeProgram(prog, builtins.Default())
}

func TestNamespaceContents(t *testing.T) {
	ns := builtins.Default()
	for _, name := range []value.Atom{
		"pi", "tau", "inf", "null", "false", "true",
		"sqrt", "abs", "max", "min", "len", "echo",
	} {
		assert.Contains(t, ns, name)
	}
}

func TestValueBuiltinsResolveToConstants(t *testing.T) {
	m, err := analyze(t, "pi; true; null; sqrt")
	require.NoError(t, err)

	pi := m.Elements.Items[0].(*analyzer.Constant)
	assert.Equal(t, value.Number(math.Pi), pi.Value)

	b := m.Elements.Items[1].(*analyzer.Constant)
	assert.Equal(t, value.Bool(true), b.Value)

	null := m.Elements.Items[2].(*analyzer.Constant)
	assert.Equal(t, value.Null{}, null.Value)

	fn := m.Elements.Items[3].(*analyzer.Constant)
	assert.IsType(t, &value.Function{}, fn.Value)
}

func TestNativeFunctions(t *testing.T) {
	ns := builtins.Default()

	call := func(name value.Atom, arg value.Value) (value.Value, error) {
		t.Helper()
		b := ns[name].(analyzer.BuiltinValue)
		fn := b.V.(*value.Function)
		require.Equal(t, 1, fn.NArgs)
		return fn.Fn([]value.Value{arg})
	}

	v, err := call("sqrt", value.Number(9))
	require.NoError(t, err)
	assert.Equal(t, value.Number(3), v)

	v, err = call("abs", value.Number(-2))
	require.NoError(t, err)
	assert.Equal(t, value.Number(2), v)

	v, err = call("max", value.List{value.Number(1), value.Number(5), value.Number(3)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(5), v)

	v, err = call("min", value.List{value.Number(1), value.Number(5)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)

	v, err = call("len", value.List{value.Number(1), value.Number(5)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(2), v)

	_, err = call("sqrt", value.Str("x"))
	assert.ErrorContains(t, err, "not a number")

	_, err = call("len", value.Number(1))
	assert.ErrorContains(t, err, "not a list")
}

func TestEchoBuildsAction(t *testing.T) {
	m, err := analyze(t, `echo(1, "two")`)
	require.NoError(t, err)

	action := m.Elements.Items[0].(*builtins.EchoAction)
	require.Len(t, action.Argv, 2)
	assert.Equal(t, value.Number(1), action.Argv[0].(*analyzer.Constant).Value)
	assert.Equal(t, value.Str("two"), action.Argv[1].(*analyzer.Constant).Value)
}

func TestEchoUnitaryArgument(t *testing.T) {
	m, err := analyze(t, "echo 5")
	require.NoError(t, err)
	action := m.Elements.Items[0].(*builtins.EchoAction)
	require.Len(t, action.Argv, 1)
}

func TestEchoIsNotAValue(t *testing.T) {
	_, err := analyze(t, "echo")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not an operation")

	_, err = analyze(t, "1 + echo")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not an operation")
}
