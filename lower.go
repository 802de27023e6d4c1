package main

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/grailbio/base/digest"
	"github.com/magical/calc-compiler/algebra"
)

// lower.go is the middle-end of the compiler
// it takes a canonical expression and linearizes it into three-address code

type Topcode int

const (
	Tnoop Topcode = iota

	Tcopy // t = a
	Tadd  // t = a + b + ...
	Tmul  // t = a * b * ...
	Tpow  // t = a ^ b
)

var topcodeSyms = map[Topcode]string{
	Tadd: "+",
	Tmul: "*",
	Tpow: "^",
}

type OperandKind int

const (
	_ OperandKind = iota

	TempOperand
	LiteralOperand
	SymbolOperand
)

// An Operand is a temporary, a rational literal, or a symbol.
type Operand struct {
	Kind OperandKind
	Temp int
	Lit  *big.Rat
	Sym  string
}

func temp(n int) Operand { return Operand{Kind: TempOperand, Temp: n} }
func literal(r *big.Rat) Operand { return Operand{Kind: LiteralOperand, Lit: r} }
func symbol(name string) Operand { return Operand{Kind: SymbolOperand, Sym: name} }
func tempName(n int) string { return "t" + strconv.Itoa(n) }
func (o Operand) isLit(v int64) bool { return o.Kind == LiteralOperand && o.Lit.Cmp(big.NewRat(v, 1)) == 0 }

func (o Operand) String() string {
	switch o.Kind {
	case TempOperand:
		return tempName(o.Temp)
	case LiteralOperand:
		return o.Lit.RatString()
	case SymbolOperand:
		return o.Sym
	default:
		return fmt.Sprintf("<invalid operand %d>", o.Kind)
	}
}

// A Tac is a three-address instruction: Dst = Op(Args...).
type Tac struct {
	Dst  int
	Op   Topcode
	Args []Operand
}

func (t Tac) Name() string { return tempName(t.Dst) }

// lowerer holds the state of one lowering: the code emitted so far,
// the last temporary handed out, and the cache of lowered nodes.
type lowerer struct {
	code     []Tac
	lasttemp int
	cse      map[digest.Digest]int
}

// lowerTAC generates three-address code from e. The last instruction
// computes the value of e.
func lowerTAC(e algebra.Expr) []Tac {
	c := &lowerer{cse: make(map[digest.Digest]int)}
	if res := c.lowerExpr(e); res.Kind != TempOperand {
		c.emit(Tcopy, []Operand{res})
	}
	return c.code
}

func (c *lowerer) lowerExpr(e algebra.Expr) Operand {
	switch e.Kind() {
	case algebra.NumberKind:
		return literal(e.(*algebra.Number).Rat())
	case algebra.SymbolKind:
		return symbol(e.(*algebra.Symbol).Name())
	}
	key := algebra.Digest(e)
	if t, ok := c.cse[key]; ok {
		return temp(t)
	}
	ops := e.Operands()
	args := make([]Operand, len(ops))
	for i, o := range ops {
		args[i] = c.lowerExpr(o)
	}
	var op Topcode
	switch e.Kind() {
	case algebra.SumKind:
		op = Tadd
	case algebra.ProductKind:
		op = Tmul
	case algebra.PowerKind:
		op = Tpow
	default:
		panic(fmt.Sprintf("unhandled case in lowerExpr: %v", e.Kind()))
	}
	t := c.emit(op, args)
	c.cse[key] = t
	return temp(t)
}

func (c *lowerer) emit(op Topcode, args []Operand) int {
	c.lasttemp++
	c.code = append(c.code, Tac{Dst: c.lasttemp, Op: op, Args: args})
	return c.lasttemp
}
