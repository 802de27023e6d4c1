// Package algebra is a small symbolic algebra engine over exact
// rationals. Expressions are immutable trees of numbers, symbols,
// n-ary sums, n-ary products and binary powers.
//
// The New* constructors build nodes verbatim. The arithmetic
// functions (Add, Sub, Mul, Div, Pow, Neg) build canonical nodes:
// nested sums and products are flattened, rational constants are
// folded, like terms and like bases are collected, and operands are
// kept in a deterministic order.
package algebra

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Kind discriminates the node types of an expression.
type Kind int

const (
	_ Kind = iota
	NumberKind
	SymbolKind
	SumKind
	ProductKind
	PowerKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case SymbolKind:
		return "symbol"
	case SumKind:
		return "sum"
	case ProductKind:
		return "product"
	case PowerKind:
		return "power"
	default:
		return "invalid"
	}
}

// Expr is a canonical algebraic expression.
type Expr interface {
	// Kind reports the node type.
	Kind() Kind
	// Operands returns the node's children in order. Leaves return
	// nil. A power returns its base and exponent.
	Operands() []Expr
	// String renders the expression.
	String() string
}

var (
	ratOne    = big.NewRat(1, 1)
	ratNegOne = big.NewRat(-1, 1)
)

// A Number is an exact rational constant.
type Number struct{ val *big.Rat }

func NewInt(n int64) *Number { return &Number{val: new(big.Rat).SetInt64(n)} }

// NewRat returns the number p/q. It panics if q is zero.
func NewRat(p, q int64) *Number {
	if q == 0 {
		panic("algebra: zero denominator")
	}
	return &Number{val: big.NewRat(p, q)}
}

// ParseNumber parses an integer or a fraction of the form p/q.
func ParseNumber(s string) (*Number, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.Errorf("invalid number %q", s)
	}
	return &Number{val: r}, nil
}

func (n *Number) Kind() Kind       { return NumberKind }
func (n *Number) Operands() []Expr { return nil }

// Rat returns a copy of the number's value.
func (n *Number) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

func (n *Number) Float64() float64 {
	f, _ := n.val.Float64()
	return f
}

func (n *Number) IsInt() bool { return n.val.IsInt() }

func (n *Number) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Number) isZero() bool { return n.val.Sign() == 0 }
func (n *Number) isOne() bool  { return n.val.Cmp(ratOne) == 0 }

// A Symbol is a named variable.
type Symbol struct{ name string }

func NewSymbol(name string) *Symbol { return &Symbol{name: name} }

func (s *Symbol) Kind() Kind       { return SymbolKind }
func (s *Symbol) Operands() []Expr { return nil }
func (s *Symbol) Name() string     { return s.name }
func (s *Symbol) String() string   { return s.name }

// A Sum is the sum of two or more terms.
type Sum struct{ terms []Expr }

func NewSum(terms ...Expr) *Sum { return &Sum{terms: terms} }

func (a *Sum) Kind() Kind       { return SumKind }
func (a *Sum) Operands() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Sum) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

// A Product is the product of two or more factors. A numeric
// coefficient, if any, comes first.
type Product struct{ factors []Expr }

func NewProduct(factors ...Expr) *Product { return &Product{factors: factors} }

func (m *Product) Kind() Kind       { return ProductKind }
func (m *Product) Operands() []Expr { return append([]Expr(nil), m.factors...) }

func (m *Product) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		switch f := f.(type) {
		case *Sum:
			parts[i] = "(" + f.String() + ")"
		case *Number:
			if f.IsInt() {
				parts[i] = f.String()
			} else {
				parts[i] = "(" + f.String() + ")"
			}
		default:
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

// A Power is base^exponent.
type Power struct{ base, exp Expr }

func NewPower(base, exp Expr) *Power { return &Power{base: base, exp: exp} }

func (p *Power) Kind() Kind       { return PowerKind }
func (p *Power) Operands() []Expr { return []Expr{p.base, p.exp} }
func (p *Power) Base() Expr       { return p.base }
func (p *Power) Exp() Expr        { return p.exp }

func (p *Power) String() string {
	return powerOperand(p.base) + "^" + powerOperand(p.exp)
}

func powerOperand(e Expr) string {
	switch e := e.(type) {
	case *Symbol:
		return e.String()
	case *Number:
		if e.IsInt() && e.val.Sign() >= 0 {
			return e.String()
		}
	}
	return "(" + e.String() + ")"
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Expr) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Number:
		return a.val.Cmp(b.(*Number).val) == 0
	case *Symbol:
		return a.name == b.(*Symbol).name
	}
	ao, bo := a.Operands(), b.Operands()
	if len(ao) != len(bo) {
		return false
	}
	for i := range ao {
		if !Equal(ao[i], bo[i]) {
			return false
		}
	}
	return true
}

// Depends reports whether the symbol v occurs in e.
func Depends(e Expr, v string) bool {
	if s, ok := e.(*Symbol); ok {
		return s.name == v
	}
	for _, o := range e.Operands() {
		if Depends(o, v) {
			return true
		}
	}
	return false
}
