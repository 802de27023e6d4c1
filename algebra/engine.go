package algebra

import "github.com/pkg/errors"

// Engine exposes the package's arithmetic and calculus through a
// method set, so that callers can depend on an interface and swap in
// a different engine.
type Engine struct{}

// Combine applies the binary operator op (one of + - * / ^) to a and b.
func (Engine) Combine(op string, a, b Expr) (Expr, error) {
	switch op {
	case "+":
		return Add(a, b), nil
	case "-":
		return Sub(a, b), nil
	case "*":
		return Mul(a, b), nil
	case "/":
		return Div(a, b), nil
	case "^":
		return Pow(a, b), nil
	}
	return nil, errors.Errorf("unknown operator %q", op)
}

func (Engine) Differentiate(e Expr, v string) (Expr, error) { return Diff(e, v) }

func (Engine) Integrate(e Expr, v string) (Expr, error) { return Integrate(e, v) }
