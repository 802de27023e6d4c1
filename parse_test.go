package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parseTests = []struct {
	src  string
	tree string // formatTree
	want string // formatCommand
}{
	{"2 + 3 * 4", "(2 + 3) * 4", "2 + 3 * 4"},
	{"2 ^ 3 ^ 2", "(2 ^ 3) ^ 2", "2 ^ 3 ^ 2"},
	{"2 + (3 * 4)", "2 + (3 * 4)", "2 + (3 * 4)"},
	{"((x))", "x", "x"},
	{"a - b - c", "(a - b) - c", "a - b - c"},
	{"x/(y/z)", "x / (y / z)", "x / (y / z)"},
	{"atribuir f = x + 1", "atribuir f = x + 1", "atribuir f = x + 1"},
	{"mostrar 7", "mostrar 7", "mostrar 7"},
	{"derivar x^2 + 3*x", "derivar ((x ^ 2) + 3) * x", "derivar x ^ 2 + 3 * x"},
	{"integrar (x)", "integrar x", "integrar x"},
}

func TestParse(t *testing.T) {
	for _, tt := range parseTests {
		cmd, diags, err := parse(tt.src)
		require.NoError(t, err, tt.src)
		assert.Empty(t, diags, tt.src)
		assert.Equal(t, tt.tree, formatTree(cmd), tt.src)
		assert.Equal(t, tt.want, formatCommand(cmd), tt.src)

		// formatting and reparsing gives back the same tree
		again, _, err := parse(formatCommand(cmd))
		require.NoError(t, err, tt.src)
		assert.Equal(t, cmd, again, tt.src)
	}
}

func TestParseTree(t *testing.T) {
	cmd, _, err := parse("atribuir f = 1 - x")
	require.NoError(t, err)
	assert.Equal(t, &AssignCmd{
		Name: "f",
		Expr: &BinExpr{Op: "-", Left: &IntExpr{"1"}, Right: &VarExpr{"x"}},
	}, cmd)
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		src string
		pos int
		msg string
	}{
		{"", 1, "unexpected end of input"},
		{"2 +", 4, "unexpected end of input"},
		{"derivar", 8, "unexpected end of input"},
		{"(x + 1", 7, "unexpected end of input"},
		{"x )", 3, `unexpected RPAREN ")"`},
		{"atribuir = 3", 10, `unexpected EQUALS "="`},
		{"atribuir f 3", 12, `unexpected NUMBER "3"`},
		{"atribuir mostrar = 3", 10, `unexpected MOSTRAR "mostrar"`},
		{"mostrar x mostrar", 11, `unexpected MOSTRAR "mostrar"`},
		{"x = 1", 3, `unexpected EQUALS "="`},
		{"* 2", 1, `unexpected OP "*"`},
	} {
		cmd, _, err := parse(tt.src)
		assert.Nil(t, cmd, tt.src)
		if assert.Error(t, err, tt.src) {
			assert.Equal(t, Syntax, kindOf(err), tt.src)
			assert.Equal(t, tt.pos, err.(*Error).Pos, tt.src)
			assert.Equal(t, tt.msg, err.(*Error).Msg, tt.src)
		}
	}
}

func TestParseLexicalErrors(t *testing.T) {
	// the illegal character is dropped, leaving two adjacent numbers
	cmd, diags, err := parse("2 & 3")
	assert.Nil(t, cmd)
	assert.Len(t, diags, 1)
	assert.Equal(t, Syntax, kindOf(err))

	// lexical errors alone do not fail the parse
	cmd, diags, err = parse("2 # + 3")
	require.NoError(t, err)
	assert.Len(t, diags, 1)
	assert.Equal(t, "2 + 3", formatCommand(cmd))
}
