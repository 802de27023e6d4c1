package main

import (
	"bytes"
	"testing"

	"github.com/magical/calc-compiler/algebra"
	"github.com/stretchr/testify/assert"
)

var (
	symX = algebra.NewSymbol("x")
	one  = algebra.NewInt(1)
	two  = algebra.NewInt(2)
)

func tacText(code []Tac) string {
	var buf bytes.Buffer
	printTAC(&buf, code)
	return buf.String()
}

func TestLowerTAC(t *testing.T) {
	for _, tt := range []struct {
		name string
		expr algebra.Expr
		want string
	}{
		{
			"constant",
			algebra.NewInt(20),
			"t1 = 20\nreturn t1\n",
		},
		{
			"symbol",
			symX,
			"t1 = x\nreturn t1\n",
		},
		{
			"rational",
			algebra.NewRat(-1, 2),
			"t1 = -1/2\nreturn t1\n",
		},
		{
			"post-order",
			algebra.NewSum(algebra.NewProduct(algebra.NewInt(3), algebra.NewPower(symX, two)), algebra.NewInt(3)),
			"t1 = x ^ 2\nt2 = 3 * t1\nt3 = t2 + 3\nreturn t3\n",
		},
		{
			"common subexpression",
			algebra.NewProduct(algebra.NewSum(symX, one), algebra.NewSum(algebra.NewSymbol("x"), algebra.NewInt(1))),
			"t1 = x + 1\nt2 = t1 * t1\nreturn t2\n",
		},
		{
			"n-ary",
			algebra.NewSum(symX, algebra.NewPower(symX, two), one),
			"t1 = x ^ 2\nt2 = x + t1 + 1\nreturn t2\n",
		},
		{
			"operand order matters",
			algebra.NewProduct(algebra.NewSum(symX, one), algebra.NewSum(one, symX)),
			"t1 = x + 1\nt2 = 1 + x\nt3 = t1 * t2\nreturn t3\n",
		},
	} {
		assert.Equal(t, tt.want, tacText(lowerTAC(tt.expr)), tt.name)
	}
}

func TestLowerTACTemps(t *testing.T) {
	e := algebra.NewPower(algebra.NewSum(symX, one), two)
	code := lowerTAC(e)
	for i, tac := range code {
		assert.Equal(t, i+1, tac.Dst)
	}

	// every run starts over at t1 with an empty cache
	again := lowerTAC(e)
	assert.Equal(t, code, again)
}

func TestOperandString(t *testing.T) {
	assert.Equal(t, "t7", temp(7).String())
	assert.Equal(t, "x", symbol("x").String())
	assert.Equal(t, "3", literal(algebra.NewInt(3).Rat()).String())
	assert.True(t, literal(algebra.NewInt(-1).Rat()).isLit(-1))
	assert.False(t, symbol("x").isLit(-1))
	assert.Equal(t, "t3 = t1 ^ 2", Tac{Dst: 3, Op: Tpow, Args: []Operand{temp(1), literal(two.Rat())}}.String())
}
