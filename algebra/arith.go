package algebra

import (
	"math/big"
	"sort"
)

// maxFoldExp bounds the integer exponents that are folded into
// rational constants.
const maxFoldExp = 64

// maxExpandExp bounds the powers of sums that Expand multiplies out.
const maxExpandExp = 16

// Add returns the canonical sum of terms.
func Add(terms ...Expr) Expr {
	var flat []Expr
	for _, t := range terms {
		flat = flattenSum(flat, t)
	}
	constant := new(big.Rat)
	coeffs := map[string]*big.Rat{}
	rests := map[string]Expr{}
	var keys []string
	for _, t := range flat {
		c, rest := splitCoeff(t)
		if rest == nil {
			constant.Add(constant, c)
			continue
		}
		key := rest.String()
		if _, ok := coeffs[key]; !ok {
			coeffs[key] = new(big.Rat)
			rests[key] = rest
			keys = append(keys, key)
		}
		coeffs[key].Add(coeffs[key], c)
	}
	sort.Strings(keys)
	var out []Expr
	for _, key := range keys {
		if c := coeffs[key]; c.Sign() != 0 {
			out = append(out, scale(c, rests[key]))
		}
	}
	if constant.Sign() != 0 || len(out) == 0 {
		out = append(out, &Number{val: constant})
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Sum{terms: out}
}

// Mul returns the canonical product of factors.
func Mul(factors ...Expr) Expr {
	var flat []Expr
	for _, f := range factors {
		flat = flattenProduct(flat, f)
	}
	coeff := big.NewRat(1, 1)
	exps := map[string][]Expr{}
	bases := map[string]Expr{}
	var keys []string
	for _, f := range flat {
		if n, ok := f.(*Number); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		base, exp := splitPower(f)
		key := base.String()
		if _, ok := bases[key]; !ok {
			bases[key] = base
			keys = append(keys, key)
		}
		exps[key] = append(exps[key], exp)
	}
	if coeff.Sign() == 0 {
		return NewInt(0)
	}
	sort.Strings(keys)
	var out []Expr
	for _, key := range keys {
		p := Pow(bases[key], Add(exps[key]...))
		for _, f := range flattenProduct(nil, p) {
			if n, ok := f.(*Number); ok {
				coeff.Mul(coeff, n.val)
			} else {
				out = append(out, f)
			}
		}
	}
	if coeff.Sign() == 0 {
		return NewInt(0)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	switch {
	case len(out) == 0:
		return &Number{val: coeff}
	case coeff.Cmp(ratOne) == 0 && len(out) == 1:
		return out[0]
	case coeff.Cmp(ratOne) == 0:
		return &Product{factors: out}
	}
	return &Product{factors: append([]Expr{&Number{val: coeff}}, out...)}
}

// Pow returns the canonical power base^exp.
func Pow(base, exp Expr) Expr {
	if e, ok := exp.(*Number); ok {
		switch {
		case e.isZero():
			return NewInt(1)
		case e.isOne():
			return base
		}
		switch b := base.(type) {
		case *Number:
			if r, ok := powRat(b.val, e.val); ok {
				return &Number{val: r}
			}
		case *Power:
			if e.IsInt() {
				return Pow(b.base, Mul(b.exp, e))
			}
		case *Product:
			if e.IsInt() {
				fs := make([]Expr, len(b.factors))
				for i, f := range b.factors {
					fs[i] = Pow(f, e)
				}
				return Mul(fs...)
			}
		}
	}
	if b, ok := base.(*Number); ok && b.isOne() {
		return NewInt(1)
	}
	return &Power{base: base, exp: exp}
}

// Neg returns -a.
func Neg(a Expr) Expr { return Mul(NewInt(-1), a) }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }

// Div returns a * b^-1.
func Div(a, b Expr) Expr { return Mul(a, Pow(b, NewInt(-1))) }

// Expand distributes products over sums and multiplies out powers of
// sums with small non-negative integer exponents. Other powers are
// kept, with their bases expanded.
func Expand(e Expr) Expr {
	switch e := e.(type) {
	case *Sum:
		terms := make([]Expr, len(e.terms))
		for i, t := range e.terms {
			terms[i] = Expand(t)
		}
		return Add(terms...)
	case *Product:
		var acc Expr = NewInt(1)
		for _, f := range e.factors {
			acc = distribute(acc, Expand(f))
		}
		return acc
	case *Power:
		base := Expand(e.base)
		if _, ok := base.(*Sum); ok {
			if n, ok := e.exp.(*Number); ok && n.IsInt() && n.val.Sign() >= 0 && n.val.Cmp(big.NewRat(maxExpandExp, 1)) <= 0 {
				var acc Expr = NewInt(1)
				for k := n.val.Num().Int64(); k > 0; k-- {
					acc = distribute(acc, base)
				}
				return acc
			}
		}
		return Pow(base, e.exp)
	}
	return e
}

// distribute multiplies a and b term by term.
func distribute(a, b Expr) Expr {
	var terms []Expr
	for _, s := range flattenSum(nil, a) {
		for _, t := range flattenSum(nil, b) {
			terms = append(terms, Mul(s, t))
		}
	}
	return Add(terms...)
}

func flattenSum(dst []Expr, e Expr) []Expr {
	if s, ok := e.(*Sum); ok {
		for _, t := range s.terms {
			dst = flattenSum(dst, t)
		}
		return dst
	}
	return append(dst, e)
}

func flattenProduct(dst []Expr, e Expr) []Expr {
	if m, ok := e.(*Product); ok {
		for _, f := range m.factors {
			dst = flattenProduct(dst, f)
		}
		return dst
	}
	return append(dst, e)
}

// splitCoeff splits a term into its rational coefficient and the
// remaining factors. The rest is nil for a constant term.
func splitCoeff(e Expr) (*big.Rat, Expr) {
	switch e := e.(type) {
	case *Number:
		return e.Rat(), nil
	case *Product:
		if len(e.factors) == 0 {
			return big.NewRat(1, 1), nil
		}
		if n, ok := e.factors[0].(*Number); ok {
			rest := e.factors[1:]
			switch len(rest) {
			case 0:
				return n.Rat(), nil
			case 1:
				return n.Rat(), rest[0]
			}
			return n.Rat(), &Product{factors: rest}
		}
	}
	return big.NewRat(1, 1), e
}

func splitPower(e Expr) (base, exp Expr) {
	if p, ok := e.(*Power); ok {
		return p.base, p.exp
	}
	return e, NewInt(1)
}

// scale multiplies a coefficient-free term by c.
func scale(c *big.Rat, e Expr) Expr {
	if c.Cmp(ratOne) == 0 {
		return e
	}
	n := &Number{val: new(big.Rat).Set(c)}
	if m, ok := e.(*Product); ok {
		return &Product{factors: append([]Expr{n}, m.factors...)}
	}
	return &Product{factors: []Expr{n, e}}
}

// powRat computes b^e exactly when e is a small integer.
func powRat(b, e *big.Rat) (*big.Rat, bool) {
	if !e.IsInt() || !e.Num().IsInt64() {
		return nil, false
	}
	n := e.Num().Int64()
	if n > maxFoldExp || n < -maxFoldExp {
		return nil, false
	}
	if n < 0 && b.Sign() == 0 {
		return nil, false
	}
	abs := n
	if abs < 0 {
		abs = -abs
	}
	k := big.NewInt(abs)
	num := new(big.Int).Exp(b.Num(), k, nil)
	den := new(big.Int).Exp(b.Denom(), k, nil)
	r := new(big.Rat).SetFrac(num, den)
	if n < 0 {
		r.Inv(r)
	}
	return r, true
}
