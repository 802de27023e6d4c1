package main

import (
	"github.com/grailbio/base/log"
	"github.com/magical/calc-compiler/algebra"
	"github.com/pkg/errors"
)

// Result holds the stages of one compilation. When Compile fails,
// the stages that completed before the failure are still set, and
// Module is nil.
type Result struct {
	Command Command
	// Name is the assigned name, for atribuir commands.
	Name   string
	Expr   algebra.Expr
	Code   []Tac
	Module *Module
	// Diagnostics are the lexical errors. They do not by themselves
	// fail a compilation.
	Diagnostics []*Error
}

// A Compiler compiles single commands. Compilations are independent:
// every call to Compile starts with a fresh environment, fresh
// temporaries and an empty CSE cache.
type Compiler struct {
	Config *Config
	Engine Engine
}

func (c *Compiler) Compile(src string) (*Result, error) {
	res := new(Result)
	if err := c.Config.validate(); err != nil {
		return res, errors.Wrap(err, "invalid configuration")
	}
	r := &resolver{eng: c.Engine, env: newEnv(), variable: c.Config.Var}
	for _, l := range c.Config.Let {
		if err := c.bind(r, l, res); err != nil {
			return res, err
		}
	}

	cmd, diags, err := parse(src)
	res.Diagnostics = append(res.Diagnostics, diags...)
	if err != nil {
		return res, err
	}
	res.Command = cmd
	log.Debug.Printf("parsed %s", formatTree(cmd))

	resolved, err := r.resolveCommand(cmd)
	if err != nil {
		return res, err
	}
	res.Name, res.Expr = resolved.Name, resolved.Expr
	log.Debug.Printf("resolved to %s", res.Expr)

	res.Code = lowerTAC(res.Expr)
	log.Debug.Printf("lowered to %d instructions", len(res.Code))

	m, err := gen(res.Code, c.Config)
	if err != nil {
		return res, err
	}
	res.Module = m
	log.Debug.Printf("generated %d IR instructions, at most %d live registers", len(m.Code), maxLive(m))
	return res, nil
}

// bind resolves a "name = expr" binding into r's environment. The
// right-hand side must be a bare expression.
func (c *Compiler) bind(r *resolver, binding string, res *Result) error {
	name, text, err := splitLet(binding)
	if err != nil {
		return err
	}
	cmd, diags, err := parse(text)
	res.Diagnostics = append(res.Diagnostics, diags...)
	if err != nil {
		return errors.Wrapf(err, "let %s", name)
	}
	ec, ok := cmd.(*ExprCmd)
	if !ok {
		return errors.Wrapf(errorf(Syntax, 0, "%q is not an expression", text), "let %s", name)
	}
	e, err := r.resolveExpr(ec.Expr)
	if err != nil {
		return errors.Wrapf(err, "let %s", name)
	}
	r.env.Bind(name, e)
	log.Debug.Printf("let %s = %s", name, e)
	return nil
}
