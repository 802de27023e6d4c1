package main

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(p, q int64) Operand { return literal(big.NewRat(p, q)) }

func genText(t *testing.T, code []Tac) string {
	m, err := gen(code, defaultConfig())
	require.NoError(t, err)
	return m.String()
}

func TestGen(t *testing.T) {
	code := []Tac{
		{Dst: 1, Op: Tpow, Args: []Operand{symbol("x"), lit(2, 1)}},
		{Dst: 2, Op: Tmul, Args: []Operand{lit(1, 2), temp(1)}},
	}
	assert.Equal(t, `declare double @llvm.pow.f64(double, double)
define double @calc(double %x) {
entry:
  %t1 = call double @llvm.pow.f64(double %x, double 2.0)
  %t2 = fmul double 0.5, %t1
  ret double %t2
}
`, genText(t, code))
}

func TestGenInstructions(t *testing.T) {
	for _, tt := range []struct {
		name string
		tac  Tac
		want []string
	}{
		{
			"copy",
			Tac{Dst: 1, Op: Tcopy, Args: []Operand{lit(5, 1)}},
			[]string{"%t1 = fadd double 0.0, 5.0"},
		},
		{
			"reciprocal",
			Tac{Dst: 1, Op: Tpow, Args: []Operand{symbol("x"), lit(-1, 1)}},
			[]string{"%t1 = fdiv double 1.0, %x"},
		},
		{
			"power",
			Tac{Dst: 1, Op: Tpow, Args: []Operand{symbol("x"), lit(-2, 1)}},
			[]string{"%t1 = call double @llvm.pow.f64(double %x, double -2.0)"},
		},
		{
			"product",
			Tac{Dst: 1, Op: Tmul, Args: []Operand{lit(2, 1), symbol("x"), symbol("x")}},
			[]string{
				"%t1.1 = fmul double 2.0, %x",
				"%t1 = fmul double %t1.1, %x",
			},
		},
		{
			"sum",
			Tac{Dst: 1, Op: Tadd, Args: []Operand{symbol("x"), lit(1, 1), lit(-2, 1), lit(3, 4)}},
			[]string{
				"%t1.1 = fadd double %x, 1.0",
				"%t1.2 = fsub double %t1.1, 2.0",
				"%t1 = fadd double %t1.2, 0.75",
			},
		},
		{
			"leading negative literal",
			Tac{Dst: 1, Op: Tadd, Args: []Operand{lit(-1, 1), symbol("x")}},
			[]string{"%t1 = fadd double -1.0, %x"},
		},
	} {
		m, err := gen([]Tac{tt.tac}, defaultConfig())
		require.NoError(t, err, tt.name)
		var got []string
		for i := range m.Code {
			got = append(got, m.Code[i].asmInstr(m.Pow))
		}
		assert.Equal(t, tt.want, got, tt.name)
		assert.Equal(t, "t1", m.Ret, tt.name)
	}
}

func TestGenConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Func = "area"
	cfg.Param = "r"
	cfg.Pow = "pow"
	m, err := gen([]Tac{{Dst: 1, Op: Tpow, Args: []Operand{symbol("r"), lit(2, 1)}}}, cfg)
	require.NoError(t, err)
	assert.Equal(t, `declare double @pow(double, double)
define double @area(double %r) {
entry:
  %t1 = call double @pow(double %r, double 2.0)
  ret double %t1
}
`, m.String())
}

func TestGenUnsupported(t *testing.T) {
	for _, tt := range []struct {
		name string
		code []Tac
	}{
		{"empty", nil},
		{"no opcode", []Tac{{Dst: 1, Op: Tnoop, Args: []Operand{symbol("x")}}}},
		{"unknown opcode", []Tac{{Dst: 1, Op: Topcode(42), Args: []Operand{symbol("x"), symbol("x")}}}},
		{"ternary power", []Tac{{Dst: 1, Op: Tpow, Args: []Operand{symbol("x"), lit(1, 1), lit(2, 1)}}}},
		{"unary product", []Tac{{Dst: 1, Op: Tmul, Args: []Operand{symbol("x")}}}},
		{"empty copy", []Tac{{Dst: 1, Op: Tcopy}}},
		{"unbound symbol", []Tac{{Dst: 1, Op: Tadd, Args: []Operand{symbol("y"), lit(1, 1)}}}},
		{"invalid operand", []Tac{{Dst: 1, Op: Tcopy, Args: []Operand{{}}}}},
	} {
		m, err := gen(tt.code, defaultConfig())
		assert.Nil(t, m, tt.name)
		if assert.Error(t, err, tt.name) {
			assert.Equal(t, Unsupported, kindOf(err), tt.name)
		}
	}
}

func TestFormatDouble(t *testing.T) {
	for _, tt := range []struct {
		f    float64
		want string
	}{
		{0, "0.0"},
		{2, "2.0"},
		{-3, "-3.0"},
		{0.5, "0.5"},
		{1.0 / 3, "0.3333333333333333"},
		{1e21, "1.0e+21"},
		{1e-7, "1.0e-07"},
		{2.5e300, "2.5e+300"},
		{math.Inf(1), "0x7FF0000000000000"},
		{math.Inf(-1), "0xFFF0000000000000"},
	} {
		assert.Equal(t, tt.want, formatDouble(tt.f), "%v", tt.f)
	}
}

func TestModuleEval(t *testing.T) {
	m, err := gen([]Tac{
		{Dst: 1, Op: Tadd, Args: []Operand{symbol("x"), lit(-1, 1)}},
		{Dst: 2, Op: Tpow, Args: []Operand{temp(1), lit(-1, 1)}},
		{Dst: 3, Op: Tpow, Args: []Operand{temp(1), lit(3, 1)}},
		{Dst: 4, Op: Tmul, Args: []Operand{temp(2), temp(3), lit(1, 2)}},
	}, defaultConfig())
	require.NoError(t, err)
	v, err := m.Eval(3)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v) // (1/2) * 2^-1 * 2^3

	v, err = m.Eval(1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v) || math.IsInf(v, 0), "%v", v)

	bad := &Module{Param: "x", Ret: "t1", Code: []irInstr{{Dst: "t1", Op: irFAdd, Args: [2]irValue{reg("t0"), constant(1)}}}}
	_, err = bad.Eval(1)
	assert.Error(t, err)
}
