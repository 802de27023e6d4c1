package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// asm.go holds the IR produced by the code generator and writes it
// out as LLVM assembly:
//
// 	declare double @llvm.pow.f64(double, double)
// 	define double @calc(double %x) {
// 	entry:
// 	  %t1 = call double @llvm.pow.f64(double %x, double 2.0)
// 	  %t2 = fmul double 0.5, %t1
// 	  ret double %t2
// 	}

type irOp int

const (
	_ irOp = iota

	irFAdd // a = b + c
	irFSub // a = b - c
	irFMul // a = b * c
	irFDiv // a = b / c
	irPow  // a = pow(b, c)
)

var irOpNames = map[irOp]string{
	irFAdd: "fadd",
	irFSub: "fsub",
	irFMul: "fmul",
	irFDiv: "fdiv",
	irPow:  "call",
}

// An irValue is a virtual register (without the leading %) or, when
// Reg is empty, a double constant.
type irValue struct {
	Reg   string
	Const float64
}

func reg(name string) irValue { return irValue{Reg: name} }
func constant(f float64) irValue { return irValue{Const: f} }
func (v irValue) isReg() bool { return v.Reg != "" }

func (v irValue) String() string {
	if v.isReg() {
		return "%" + v.Reg
	}
	return formatDouble(v.Const)
}

// formatDouble renders f as an LLVM double constant. Decimal
// constants must contain a '.', and non-finite values can only be
// written in hexadecimal.
func formatDouble(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprintf("0x%016X", math.Float64bits(f))
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.IndexByte(s, '.') >= 0 {
		return s
	}
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}

// An irInstr assigns the result of a binary operation to a fresh
// register.
type irInstr struct {
	Dst  string
	Op   irOp
	Args [2]irValue
}

// A Module is a single function of one double parameter returning
// a double.
type Module struct {
	Pow   string // name of the declared pow intrinsic
	Func  string
	Param string
	Code  []irInstr
	Ret   string
}

type IRPrinter struct {
	w   io.Writer
	err error
}

func (pr *IRPrinter) PrintModule(m *Module) error {
	pr.write("declare double @" + m.Pow + "(double, double)\n")
	pr.write("define double @" + m.Func + "(double %" + m.Param + ") {\n")
	pr.write("entry:\n")
	for i := range m.Code {
		pr.write("  " + m.Code[i].asmInstr(m.Pow) + "\n")
	}
	pr.write("  ret double %" + m.Ret + "\n")
	pr.write("}\n")
	return pr.err
}

func (pr *IRPrinter) write(s string) {
	if pr.err != nil {
		return
	}
	_, pr.err = io.WriteString(pr.w, s)
}

func (l *irInstr) asmInstr(pow string) string {
	if l.Op == irPow {
		return fmt.Sprintf("%%%s = call double @%s(double %s, double %s)", l.Dst, pow, l.Args[0], l.Args[1])
	}
	return fmt.Sprintf("%%%s = %s double %s, %s", l.Dst, irOpNames[l.Op], l.Args[0], l.Args[1])
}

func (m *Module) String() string {
	var buf bytes.Buffer
	pr := IRPrinter{w: &buf}
	pr.PrintModule(m)
	return buf.String()
}

// Eval interprets m with its parameter bound to x.
func (m *Module) Eval(x float64) (float64, error) {
	regs := map[string]float64{m.Param: x}
	get := func(v irValue) (float64, error) {
		if !v.isReg() {
			return v.Const, nil
		}
		f, ok := regs[v.Reg]
		if !ok {
			return 0, errors.Errorf("register %%%s is not defined", v.Reg)
		}
		return f, nil
	}
	for _, l := range m.Code {
		a, err := get(l.Args[0])
		if err != nil {
			return 0, err
		}
		b, err := get(l.Args[1])
		if err != nil {
			return 0, err
		}
		var r float64
		switch l.Op {
		case irFAdd:
			r = a + b
		case irFSub:
			r = a - b
		case irFMul:
			r = a * b
		case irFDiv:
			r = a / b
		case irPow:
			r = math.Pow(a, b)
		default:
			return 0, errors.Errorf("%%%s: unknown operation %d", l.Dst, l.Op)
		}
		regs[l.Dst] = r
	}
	return get(reg(m.Ret))
}
