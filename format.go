package main

import (
	"bytes"
	"fmt"
)

// format.go converts an AST back to source code

type formatter struct {
	buf bytes.Buffer
	// explicit parenthesizes every nested binary expression,
	// making the tree shape visible.
	explicit bool
}

func formatCommand(cmd Command) string {
	var f formatter
	f.visitCommand(cmd)
	return f.buf.String()
}

func formatExpr(e Expr) string {
	var f formatter
	f.visitExpr(e, 0)
	return f.buf.String()
}

// formatTree is like formatCommand but shows the grouping of every
// binary expression: "2 + 3 * 4" formats as "(2 + 3) * 4".
func formatTree(cmd Command) string {
	f := formatter{explicit: true}
	f.visitCommand(cmd)
	return f.buf.String()
}

// All operators share one precedence level and associate to the
// left, so only a right operand that is itself a binary expression
// needs parentheses.
var binOpPrec = map[string]int{
	"+": 1,
	"-": 1,
	"*": 1,
	"/": 1,
	"^": 1,
}

func (f *formatter) visitCommand(cmd Command) {
	switch c := cmd.(type) {
	case *AssignCmd:
		f.write("atribuir " + c.Name + " = ")
		f.visitExpr(c.Expr, 0)
	case *ShowCmd:
		f.write("mostrar ")
		f.visitExpr(c.Expr, 0)
	case *DeriveCmd:
		f.write("derivar ")
		f.visitExpr(c.Expr, 0)
	case *IntegrateCmd:
		f.write("integrar ")
		f.visitExpr(c.Expr, 0)
	case *ExprCmd:
		f.visitExpr(c.Expr, 0)
	default:
		panic(fmt.Sprintf("unhandled case in formatter.visitCommand: %T", c))
	}
}

func (f *formatter) visitExpr(e Expr, prec int) {
	switch e := e.(type) {
	case *VarExpr:
		f.write(e.Name)
	case *IntExpr:
		f.write(e.Value)
	case *BinExpr:
		op := binOpPrec[e.Op]
		paren := op < prec || f.explicit && prec > 0
		if paren {
			f.write("(")
		}
		f.visitExpr(e.Left, op)
		f.write(" " + e.Op + " ")
		f.visitExpr(e.Right, op+1)
		if paren {
			f.write(")")
		}
	default:
		panic(fmt.Sprintf("unhandled case in formatter.visitExpr: %T", e))
	}
}

func (f *formatter) write(s string) {
	f.buf.WriteString(s)
}
