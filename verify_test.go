package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	m := &Module{
		Param: "x",
		Code: []irInstr{
			{Dst: "a", Op: irFAdd, Args: [2]irValue{reg("b"), constant(1)}},
			{Dst: "a", Op: irOp(99), Args: [2]irValue{reg("x"), reg("a")}},
		},
		Ret: "z",
	}
	err := verify(m)
	require.Error(t, err)
	if assert.IsType(t, ErrorList{}, err) {
		assert.Len(t, err.(ErrorList), 4)
	}
	assert.Contains(t, err.Error(), "%b read before assignment")
	assert.Contains(t, err.Error(), "%a assigned twice")
	assert.Contains(t, err.Error(), "unknown operation 99")
	assert.Contains(t, err.Error(), "%z is never assigned")
}

func TestLiveSets(t *testing.T) {
	// t1 = x + 1; t2 = t1 ^ 2; t3 = 2 * t1; t4 = t2 + t3
	m, err := gen([]Tac{
		{Dst: 1, Op: Tadd, Args: []Operand{symbol("x"), lit(1, 1)}},
		{Dst: 2, Op: Tpow, Args: []Operand{temp(1), lit(2, 1)}},
		{Dst: 3, Op: Tmul, Args: []Operand{lit(2, 1), temp(1)}},
		{Dst: 4, Op: Tadd, Args: []Operand{temp(2), temp(3)}},
	}, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"t1"},
		{"t1", "t2"},
		{"t2", "t3"},
		{"t4"},
	}, liveSets(m))
	assert.Equal(t, 2, maxLive(m))
}
