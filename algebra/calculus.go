package algebra

import (
	"math"

	"github.com/pkg/errors"
)

// Diff returns the derivative of e with respect to the symbol v.
// Powers whose exponent depends on v are not supported: their
// derivatives need logarithms, which have no canonical form here.
func Diff(e Expr, v string) (Expr, error) {
	switch e := e.(type) {
	case *Number:
		return NewInt(0), nil
	case *Symbol:
		if e.name == v {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	case *Sum:
		terms := make([]Expr, len(e.terms))
		for i, t := range e.terms {
			d, err := Diff(t, v)
			if err != nil {
				return nil, err
			}
			terms[i] = d
		}
		return Add(terms...), nil
	case *Product:
		var terms []Expr
		for i, f := range e.factors {
			d, err := Diff(f, v)
			if err != nil {
				return nil, err
			}
			if isZero(d) {
				continue
			}
			fs := make([]Expr, 0, len(e.factors))
			fs = append(fs, e.factors[:i]...)
			fs = append(fs, d)
			fs = append(fs, e.factors[i+1:]...)
			terms = append(terms, Mul(fs...))
		}
		return Add(terms...), nil
	case *Power:
		if Depends(e.exp, v) {
			return nil, errors.Errorf("cannot differentiate %s with respect to %s: exponent depends on %s", e, v, v)
		}
		db, err := Diff(e.base, v)
		if err != nil {
			return nil, err
		}
		if isZero(db) {
			return NewInt(0), nil
		}
		return Mul(e.exp, Pow(e.base, Add(e.exp, NewInt(-1))), db), nil
	}
	return nil, errors.Errorf("cannot differentiate %T", e)
}

// Integrate returns an antiderivative of e with respect to the symbol
// v, without a constant of integration. Only the polynomial-style
// rules are implemented. A form they do not cover is expanded and
// tried again; if that fails too the first error is reported.
func Integrate(e Expr, v string) (Expr, error) {
	r, err := integrate(e, v)
	if err == nil {
		return r, nil
	}
	x := Expand(e)
	if Equal(x, e) {
		return nil, err
	}
	if r, xerr := integrate(x, v); xerr == nil {
		return r, nil
	}
	return nil, err
}

func integrate(e Expr, v string) (Expr, error) {
	x := NewSymbol(v)
	if !Depends(e, v) {
		return Mul(e, x), nil
	}
	switch e := e.(type) {
	case *Symbol:
		return Mul(NewRat(1, 2), Pow(x, NewInt(2))), nil
	case *Sum:
		terms := make([]Expr, len(e.terms))
		for i, t := range e.terms {
			it, err := Integrate(t, v)
			if err != nil {
				return nil, err
			}
			terms[i] = it
		}
		return Add(terms...), nil
	case *Product:
		var consts, vars []Expr
		for _, f := range e.factors {
			if Depends(f, v) {
				vars = append(vars, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(vars) != 1 {
			return nil, errors.Errorf("cannot integrate %s with respect to %s: product of %d dependent factors", e, v, len(vars))
		}
		it, err := Integrate(vars[0], v)
		if err != nil {
			return nil, err
		}
		return Mul(append(consts, it)...), nil
	case *Power:
		s, ok := e.base.(*Symbol)
		if !ok || s.name != v || Depends(e.exp, v) {
			break
		}
		if n, ok := e.exp.(*Number); ok && n.val.Cmp(ratNegOne) == 0 {
			return nil, errors.Errorf("cannot integrate %s with respect to %s: result is logarithmic", e, v)
		}
		ne := Add(e.exp, NewInt(1))
		return Mul(Pow(x, ne), Pow(ne, NewInt(-1))), nil
	}
	return nil, errors.Errorf("cannot integrate %s with respect to %s", e, v)
}

// Eval evaluates e in floating point, looking symbols up in vars.
func Eval(e Expr, vars map[string]float64) (float64, error) {
	switch e := e.(type) {
	case *Number:
		return e.Float64(), nil
	case *Symbol:
		f, ok := vars[e.name]
		if !ok {
			return 0, errors.Errorf("unbound symbol %s", e.name)
		}
		return f, nil
	case *Sum:
		acc := 0.0
		for _, t := range e.terms {
			f, err := Eval(t, vars)
			if err != nil {
				return 0, err
			}
			acc += f
		}
		return acc, nil
	case *Product:
		acc := 1.0
		for _, t := range e.factors {
			f, err := Eval(t, vars)
			if err != nil {
				return 0, err
			}
			acc *= f
		}
		return acc, nil
	case *Power:
		b, err := Eval(e.base, vars)
		if err != nil {
			return 0, err
		}
		x, err := Eval(e.exp, vars)
		if err != nil {
			return 0, err
		}
		return math.Pow(b, x), nil
	}
	return 0, errors.Errorf("cannot evaluate %T", e)
}

func isZero(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.isZero()
}
