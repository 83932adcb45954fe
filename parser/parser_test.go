package parser

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/source"
)

func parseBody(t *testing.T, src string) ast.Phrase {
	t.Helper()
	prog, err := Parse("test.ct", src)
	require.NoError(t, err)
	return prog.Body
}

func TestParseInfix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contour.parser")
	defer teardown()
	body := parseBody(t, "2 + 3")
	bin := body.(*ast.BinaryPhrase)
	assert.Equal(t, source.KPlus, bin.Op.Kind)
	assert.IsType(t, &ast.Numeral{}, bin.Left)
	assert.IsType(t, &ast.Numeral{}, bin.Right)
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	bin := parseBody(t, "1 + 2 * 3").(*ast.BinaryPhrase)
	assert.Equal(t, source.KPlus, bin.Op.Kind)
	right := bin.Right.(*ast.BinaryPhrase)
	assert.Equal(t, source.KTimes, right.Op.Kind)

	// a || b && c parses as a || (b && c)
	bin = parseBody(t, "a || b && c").(*ast.BinaryPhrase)
	assert.Equal(t, source.KOr, bin.Op.Kind)
	assert.Equal(t, source.KAnd, bin.Right.(*ast.BinaryPhrase).Op.Kind)

	// comparison binds looser than range and sum
	bin = parseBody(t, "1+1 < 3").(*ast.BinaryPhrase)
	assert.Equal(t, source.KLess, bin.Op.Kind)
	assert.Equal(t, source.KPlus, bin.Left.(*ast.BinaryPhrase).Op.Kind)

	// sums are left associative
	bin = parseBody(t, "1 - 2 - 3").(*ast.BinaryPhrase)
	assert.Equal(t, source.KMinus, bin.Op.Kind)
	assert.Equal(t, source.KMinus, bin.Left.(*ast.BinaryPhrase).Op.Kind)
}

func TestParsePowerBindsUnaryRight(t *testing.T) {
	// 2^-3 parses with a unary minus on the right of ^
	bin := parseBody(t, "2^-3").(*ast.BinaryPhrase)
	assert.Equal(t, source.KPower, bin.Op.Kind)
	assert.IsType(t, &ast.UnaryPhrase{}, bin.Right)
}

func TestParseJuxtapositionCall(t *testing.T) {
	call := parseBody(t, "f 3").(*ast.CallPhrase)
	assert.Equal(t, "f", call.Fn.(*ast.Identifier).Name)
	assert.IsType(t, &ast.Numeral{}, call.Args)
	assert.Equal(t, source.KMissing, call.LeftCall.Kind)

	// juxtaposition is left associative: f x y = (f x) y
	call = parseBody(t, "f x y").(*ast.CallPhrase)
	inner := call.Fn.(*ast.CallPhrase)
	assert.Equal(t, "f", inner.Fn.(*ast.Identifier).Name)
	assert.Equal(t, "x", inner.Args.(*ast.Identifier).Name)
	assert.Equal(t, "y", call.Args.(*ast.Identifier).Name)

	// f(a,b) is a call with a paren argument phrase
	call = parseBody(t, "f(a,b)").(*ast.CallPhrase)
	parens := call.Args.(*ast.ParenPhrase)
	assert.Len(t, parens.Items, 2)
}

func TestParseCallOperators(t *testing.T) {
	call := parseBody(t, "f << 1").(*ast.CallPhrase)
	assert.Equal(t, "f", call.Fn.(*ast.Identifier).Name)
	assert.Equal(t, source.KLeftCall, call.LeftCall.Kind)

	call = parseBody(t, "1 >> f").(*ast.CallPhrase)
	assert.Equal(t, "f", call.Fn.(*ast.Identifier).Name)
	assert.IsType(t, &ast.Numeral{}, call.Args)
	assert.Equal(t, source.KRightCall, call.LeftCall.Kind)
}

func TestParseDotAndApostrophe(t *testing.T) {
	bin := parseBody(t, "r.x").(*ast.BinaryPhrase)
	assert.Equal(t, source.KDot, bin.Op.Kind)

	// postfix chains: a.b.c = (a.b).c
	bin = parseBody(t, "a.b.c").(*ast.BinaryPhrase)
	assert.Equal(t, source.KDot, bin.Op.Kind)
	assert.Equal(t, "c", bin.Right.(*ast.Identifier).Name)
	assert.IsType(t, &ast.BinaryPhrase{}, bin.Left)

	bin = parseBody(t, "m'i").(*ast.BinaryPhrase)
	assert.Equal(t, source.KApostrophe, bin.Op.Kind)
}

func TestParseDefinition(t *testing.T) {
	def := parseBody(t, "x = 1").(*ast.DefinitionPhrase)
	assert.Equal(t, "x", def.Left.(*ast.Identifier).Name)

	// function definition sugar keeps the call shape on the left
	def = parseBody(t, "f(x) = x").(*ast.DefinitionPhrase)
	call := def.Left.(*ast.CallPhrase)
	assert.Equal(t, "f", call.Fn.(*ast.Identifier).Name)

	// `=` is right associative inside an item
	def = parseBody(t, "x = y = 1").(*ast.DefinitionPhrase)
	assert.IsType(t, &ast.DefinitionPhrase{}, def.Right)
}

func TestParseLambda(t *testing.T) {
	lam := parseBody(t, "x -> x + 1").(*ast.LambdaPhrase)
	assert.Equal(t, "x", lam.Left.(*ast.Identifier).Name)
	assert.False(t, lam.Recursive)

	lam = parseBody(t, "(a, b) -> a").(*ast.LambdaPhrase)
	parens := lam.Left.(*ast.ParenPhrase)
	assert.Len(t, parens.Items, 2)
}

func TestParseIf(t *testing.T) {
	ifp := parseBody(t, "if x 1").(*ast.IfPhrase)
	assert.Nil(t, ifp.Else)

	ifp = parseBody(t, "if x 1 else 2").(*ast.IfPhrase)
	require.NotNil(t, ifp.Else)
}

func TestParseDanglingElse(t *testing.T) {
	// The else associates with the nearest unmatched if.
	outer := parseBody(t, "if a if b 1 else 2").(*ast.IfPhrase)
	assert.Nil(t, outer.Else)
	inner := outer.Then.(*ast.IfPhrase)
	require.NotNil(t, inner.Else)
}

func TestParseRange(t *testing.T) {
	rp := parseBody(t, "1 .. 10").(*ast.RangePhrase)
	assert.Equal(t, source.KRange, rp.Op.Kind)
	assert.Nil(t, rp.Step)

	rp = parseBody(t, "1 ..< 10 by 2").(*ast.RangePhrase)
	assert.Equal(t, source.KOpenRange, rp.Op.Kind)
	require.NotNil(t, rp.Step)
}

func TestParseLetAndFor(t *testing.T) {
	let := parseBody(t, "let (a=1, b=2) a+b").(*ast.LetPhrase)
	assert.Len(t, let.Args.Items, 2)
	assert.IsType(t, &ast.BinaryPhrase{}, let.Body)

	forp := parseBody(t, "for (i = [1,2]) i").(*ast.ForPhrase)
	assert.Len(t, forp.Args.Items, 1)
}

func TestParseMalformedLetFor(t *testing.T) {
	_, err := Parse("test.ct", "let 1 2")
	assert.ErrorContains(t, err, "let: malformed argument")

	_, err = Parse("test.ct", "for 1 2")
	assert.ErrorContains(t, err, "for: malformed argument")
}

func TestParseDelimited(t *testing.T) {
	list := parseBody(t, "[1, 2, 3]").(*ast.ListPhrase)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, source.KComma, list.Items[0].Sep.Kind)
	assert.Equal(t, source.KMissing, list.Items[2].Sep.Kind)

	record := parseBody(t, "{a=1, b=2}").(*ast.RecordPhrase)
	assert.Len(t, record.Items, 2)

	// a single unseparated element keeps its phrase, not a comma wrapper
	parens := parseBody(t, "(1)").(*ast.ParenPhrase)
	require.Len(t, parens.Items, 1)
	assert.Equal(t, source.KMissing, parens.Items[0].Sep.Kind)

	// a trailing comma is preserved as a separator on the last item
	parens = parseBody(t, "(1,)").(*ast.ParenPhrase)
	require.Len(t, parens.Items, 1)
	assert.Equal(t, source.KComma, parens.Items[0].Sep.Kind)

	// empty delimited phrases have no items
	assert.Empty(t, parseBody(t, "()").(*ast.ParenPhrase).Items)
	assert.Empty(t, parseBody(t, "[]").(*ast.ListPhrase).Items)
	assert.Empty(t, parseBody(t, "{}").(*ast.RecordPhrase).Items)
}

func TestParseSemicolons(t *testing.T) {
	semis := parseBody(t, "a; b; c").(*ast.SemicolonPhrase)
	require.Len(t, semis.Items, 3)
	assert.Equal(t, source.KSemicolon, semis.Items[0].Sep.Kind)
	assert.Equal(t, source.KMissing, semis.Items[2].Sep.Kind)

	// trailing semicolon is accepted
	semis = parseBody(t, "a; b;").(*ast.SemicolonPhrase)
	require.Len(t, semis.Items, 2)
	assert.Equal(t, source.KSemicolon, semis.Items[1].Sep.Kind)

	// a single item with no separator collapses to the item itself
	assert.IsType(t, &ast.Identifier{}, parseBody(t, "a"))
}

func TestParseCommasTopLevel(t *testing.T) {
	commas := parseBody(t, "a, b").(*ast.CommaPhrase)
	require.Len(t, commas.Items, 2)

	// empty program body is an empty phrase
	empty := parseBody(t, "").(*ast.EmptyPhrase)
	assert.Equal(t, "", empty.Loc.Range())
}

func TestParseEllipsis(t *testing.T) {
	un := parseBody(t, "...x").(*ast.UnaryPhrase)
	assert.Equal(t, source.KEllipsis, un.Op.Kind)
}

func TestParseStringsAndNumerals(t *testing.T) {
	str := parseBody(t, `"hello"`).(*ast.StringPhrase)
	assert.Equal(t, `"hello"`, str.Loc.Range())

	num := parseBody(t, "3.25").(*ast.Numeral)
	assert.Equal(t, "3.25", num.Loc.Range())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"(1", "unmatched delimiter"},
		{"[1, 2", "unmatched delimiter"},
		{"(1]", "syntax error in delimited phrase"},
		{"1 +", "missing expression"},
		{"1 ²", "unexpected character"},
		{"if", "missing condition following 'if'"},
		{"a.", "missing expression following ."},
	}
	for _, tc := range tests {
		_, err := Parse("test.ct", tc.src)
		require.Error(t, err, "src: %q", tc.src)
		assert.Contains(t, err.Error(), tc.msg, "src: %q", tc.src)
	}
}

func TestUnmatchedDelimiterBlamesOpener(t *testing.T) {
	_, err := Parse("test.ct", "[1, 2")
	require.Error(t, err)
	var diag *source.Error
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, "[", diag.Loc.Range())
}

// Every phrase's location must span its exact source bytes.
func TestLocationSpans(t *testing.T) {
	tests := []struct {
		src  string
		want string // expected span of the program body
	}{
		{"2 + 3", "2 + 3"},
		{"  2 + 3  ", "2 + 3"},
		{"f(x)", "f(x)"},
		{"x -> x + 1", "x -> x + 1"},
		{"if a 1 else 2", "if a 1 else 2"},
		{"let (a=1) a", "let (a=1) a"},
		{"for (i=[1]) i", "for (i=[1]) i"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"-x", "-x"},
		{"a, b, c", "a, b, c"},
		{"a; b", "a; b"},
		{"1 .. 10 by 2", "1 .. 10 by 2"},
		{"f << 1", "f << 1"},
		{"1 >> f", "1 >> f"},
	}
	for _, tc := range tests {
		body := parseBody(t, tc.src)
		assert.Equal(t, tc.want, body.Location().Range(), "src: %q", tc.src)
	}
}

func TestSubphraseSpans(t *testing.T) {
	bin := parseBody(t, "ab + cd*ef").(*ast.BinaryPhrase)
	assert.Equal(t, "ab", bin.Left.Location().Range())
	assert.Equal(t, "cd*ef", bin.Right.Location().Range())

	prog, err := Parse("test.ct", "x = 1; y = x")
	require.NoError(t, err)
	semis := prog.Body.(*ast.SemicolonPhrase)
	assert.Equal(t, "x = 1", semis.Items[0].Expr.Location().Range())
	assert.Equal(t, "y = x", semis.Items[1].Expr.Location().Range())
}

func TestSprintDoesNotCrash(t *testing.T) {
	prog, err := Parse("test.ct", `f(x) = x*x; f(3); {a=1}; [1,2]; "s"; if a 1 else 2`)
	require.NoError(t, err)
	out := ast.Sprint(prog)
	assert.Contains(t, out, "program")
	assert.Contains(t, out, "definition")
}
