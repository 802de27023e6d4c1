package main

// Expr is an arithmetic expression: *IntExpr, *VarExpr or *BinExpr.
type Expr interface{}

type IntExpr struct {
	Value string
}

type VarExpr struct {
	Name string
}

// BinExpr applies one of the operators + - * / ^ to two operands.
type BinExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

// Command is the root of a parse: exactly one of the *Cmd types.
type Command interface{}

// AssignCmd is "atribuir Name = Expr".
type AssignCmd struct {
	Name string
	Expr Expr
}

// ShowCmd is "mostrar Expr".
type ShowCmd struct {
	Expr Expr
}

// DeriveCmd is "derivar Expr".
type DeriveCmd struct {
	Expr Expr
}

// IntegrateCmd is "integrar Expr".
type IntegrateCmd struct {
	Expr Expr
}

// ExprCmd is a bare expression.
type ExprCmd struct {
	Expr Expr
}
