// front-end passes
//
// * resolve the AST into a canonical expression

package main

import (
	"fmt"

	"github.com/magical/calc-compiler/algebra"
)

// Engine is the calculus engine the resolver delegates to. It owns
// the canonical expression representation and all simplification.
type Engine interface {
	// Combine applies one of the operators + - * / ^.
	Combine(op string, a, b algebra.Expr) (algebra.Expr, error)
	// Differentiate differentiates e with respect to the symbol v.
	Differentiate(e algebra.Expr, v string) (algebra.Expr, error)
	// Integrate returns an antiderivative of e with respect to v,
	// without a constant of integration.
	Integrate(e algebra.Expr, v string) (algebra.Expr, error)
}

// Env holds the bindings made during a single compilation.
// Nothing in it outlives the run.
type Env struct {
	vars map[string]algebra.Expr
}

func newEnv() *Env {
	return &Env{vars: make(map[string]algebra.Expr)}
}

func (env *Env) Bind(name string, e algebra.Expr) {
	env.vars[name] = e
}

func (env *Env) Lookup(name string) (algebra.Expr, bool) {
	e, ok := env.vars[name]
	return e, ok
}

// Resolved is the canonical form of a command. Name is set only for
// assignments.
type Resolved struct {
	Name string
	Expr algebra.Expr
}

type resolver struct {
	eng Engine
	env *Env
	// variable is the symbol that derivar and integrar work on.
	variable string
}

func (r *resolver) resolveCommand(cmd Command) (*Resolved, error) {
	switch c := cmd.(type) {
	case *AssignCmd:
		e, err := r.resolveExpr(c.Expr)
		if err != nil {
			return nil, err
		}
		r.env.Bind(c.Name, e)
		return &Resolved{Name: c.Name, Expr: e}, nil
	case *ShowCmd:
		return r.resolved(c.Expr)
	case *ExprCmd:
		return r.resolved(c.Expr)
	case *DeriveCmd:
		e, err := r.resolveExpr(c.Expr)
		if err != nil {
			return nil, err
		}
		d, err := r.eng.Differentiate(e, r.variable)
		if err != nil {
			return nil, &Error{Kind: Resolve, Msg: "derivar", Err: err}
		}
		return &Resolved{Expr: d}, nil
	case *IntegrateCmd:
		e, err := r.resolveExpr(c.Expr)
		if err != nil {
			return nil, err
		}
		i, err := r.eng.Integrate(e, r.variable)
		if err != nil {
			return nil, &Error{Kind: Resolve, Msg: "integrar", Err: err}
		}
		return &Resolved{Expr: i}, nil
	default:
		panic(fmt.Sprintf("unhandled case in resolveCommand: %T", c))
	}
}

func (r *resolver) resolved(e Expr) (*Resolved, error) {
	ce, err := r.resolveExpr(e)
	if err != nil {
		return nil, err
	}
	return &Resolved{Expr: ce}, nil
}

func (r *resolver) resolveExpr(expr Expr) (algebra.Expr, error) {
	switch e := expr.(type) {
	case *IntExpr:
		n, err := algebra.ParseNumber(e.Value)
		if err != nil {
			return nil, &Error{Kind: Resolve, Err: err}
		}
		return n, nil
	case *VarExpr:
		if v, ok := r.env.Lookup(e.Name); ok {
			return v, nil
		}
		return algebra.NewSymbol(e.Name), nil
	case *BinExpr:
		left, err := r.resolveExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.resolveExpr(e.Right)
		if err != nil {
			return nil, err
		}
		v, err := r.eng.Combine(e.Op, left, right)
		if err != nil {
			return nil, &Error{Kind: Resolve, Msg: e.Op, Err: err}
		}
		return v, nil
	default:
		panic(fmt.Sprintf("unhandled case in resolveExpr: %T", e))
	}
}
