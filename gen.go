package main

import (
	"fmt"
)

// gen.go selects IR instructions for three-address code.
//
// 	t = a                 fadd 0.0, a
// 	t = a ^ -1            fdiv 1.0, a
// 	t = a ^ b             call pow(a, b)
// 	t = a * b * c ...     fmul, folded left to right
// 	t = a + b + c ...     fadd, or fsub for a negative literal, folded left to right
//
// Rational literals are folded to doubles. Folds of more than two
// operands go through intermediate registers t.1, t.2, ...; the last
// step always writes t itself.

type generator struct {
	param string
	code  []irInstr
}

func gen(code []Tac, cfg *Config) (*Module, error) {
	if len(code) == 0 {
		return nil, errorf(Unsupported, 0, "no instructions to generate")
	}
	g := &generator{param: cfg.Param}
	for _, t := range code {
		if err := g.selectInstr(t); err != nil {
			return nil, err
		}
	}
	m := &Module{
		Pow:   cfg.Pow,
		Func:  cfg.Func,
		Param: cfg.Param,
		Code:  g.code,
		Ret:   code[len(code)-1].Name(),
	}
	if err := verify(m); err != nil {
		return nil, &Error{Kind: Other, Msg: "generated invalid IR", Err: err}
	}
	return m, nil
}

func (g *generator) selectInstr(t Tac) error {
	args := make([]irValue, len(t.Args))
	for i, a := range t.Args {
		v, err := g.value(t, a)
		if err != nil {
			return err
		}
		args[i] = v
	}
	dst := t.Name()
	switch t.Op {
	case Tcopy:
		if len(args) != 1 {
			return unsupported(t, "copy of %d operands", len(args))
		}
		g.emit(dst, irFAdd, constant(0), args[0])
	case Tpow:
		if len(args) != 2 {
			return unsupported(t, "power of %d operands", len(args))
		}
		if t.Args[1].isLit(-1) {
			g.emit(dst, irFDiv, constant(1), args[0])
		} else {
			g.emit(dst, irPow, args[0], args[1])
		}
	case Tmul:
		return g.fold(t, args, func(i int) (irOp, irValue) {
			return irFMul, args[i]
		})
	case Tadd:
		return g.fold(t, args, func(i int) (irOp, irValue) {
			if a := t.Args[i]; a.Kind == LiteralOperand && a.Lit.Sign() < 0 {
				return irFSub, constant(-args[i].Const)
			}
			return irFAdd, args[i]
		})
	default:
		return unsupported(t, "no instruction for opcode %d", t.Op)
	}
	return nil
}

// fold combines args left to right, taking the operation and right
// operand of step i from next.
func (g *generator) fold(t Tac, args []irValue, next func(i int) (irOp, irValue)) error {
	if len(args) < 2 {
		return unsupported(t, "%d operands", len(args))
	}
	acc := args[0]
	for i := 1; i < len(args); i++ {
		dst := t.Name()
		if i < len(args)-1 {
			dst = fmt.Sprintf("%s.%d", t.Name(), i)
		}
		op, v := next(i)
		g.emit(dst, op, acc, v)
		acc = reg(dst)
	}
	return nil
}

func (g *generator) value(t Tac, a Operand) (irValue, error) {
	switch a.Kind {
	case TempOperand:
		return reg(tempName(a.Temp)), nil
	case LiteralOperand:
		f, _ := a.Lit.Float64()
		return constant(f), nil
	case SymbolOperand:
		if a.Sym != g.param {
			return irValue{}, unsupported(t, "unbound symbol %s", a.Sym)
		}
		return reg(g.param), nil
	}
	return irValue{}, unsupported(t, "invalid operand %v", a)
}

func (g *generator) emit(dst string, op irOp, a, b irValue) {
	g.code = append(g.code, irInstr{Dst: dst, Op: op, Args: [2]irValue{a, b}})
}

func unsupported(t Tac, format string, args ...interface{}) *Error {
	return errorf(Unsupported, 0, "%s: %s", t, fmt.Sprintf(format, args...))
}
