package main

// The grammar has a single command as its start symbol:
//
// 	command := ATRIBUIR ID EQUALS expr
// 	         | MOSTRAR expr
// 	         | DERIVAR expr
// 	         | INTEGRAR expr
// 	         | expr
// 	expr    := expr OP term | term
// 	term    := ID | NUMBER | LPAREN expr RPAREN
//
// There is no precedence table. Every operator binds equally tightly
// and associates to the left, so "2 + 3 * 4" is (2 + 3) * 4 and
// "2 ^ 3 ^ 2" is (2 ^ 3) ^ 2. The left recursion in expr is parsed
// as a loop that folds each new term into the tree built so far.

type parser struct {
	lx  *lexer
	tok Token
}

// parse parses a single command. Lexical errors are returned
// separately and do not by themselves make the parse fail. On a
// syntax error no command is returned.
func parse(src string) (Command, []*Error, error) {
	p := &parser{lx: newLexer(src)}
	p.advance()
	cmd, err := p.command()
	if err == nil && p.tok.Kind != tEOF {
		err = p.unexpected()
	}
	if err != nil {
		return nil, p.lx.errs, err
	}
	return cmd, p.lx.errs, nil
}

func (p *parser) advance() {
	p.tok = p.lx.next()
}

func (p *parser) command() (Command, error) {
	switch p.tok.Kind {
	case tAssign:
		p.advance()
		if p.tok.Kind != tIdent {
			return nil, p.unexpected()
		}
		name := p.tok.Text
		p.advance()
		if p.tok.Kind != tEquals {
			return nil, p.unexpected()
		}
		p.advance()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &AssignCmd{Name: name, Expr: e}, nil
	case tShow, tDerive, tIntegrate:
		kw := p.tok.Kind
		p.advance()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		switch kw {
		case tShow:
			return &ShowCmd{Expr: e}, nil
		case tDerive:
			return &DeriveCmd{Expr: e}, nil
		default:
			return &IntegrateCmd{Expr: e}, nil
		}
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ExprCmd{Expr: e}, nil
}

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == tOp {
		op := p.tok.Text
		p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &BinExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) term() (Expr, error) {
	switch p.tok.Kind {
	case tIdent:
		e := &VarExpr{Name: p.tok.Text}
		p.advance()
		return e, nil
	case tNumber:
		e := &IntExpr{Value: p.tok.Text}
		p.advance()
		return e, nil
	case tLParen:
		p.advance()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok.Kind != tRParen {
			return nil, p.unexpected()
		}
		p.advance()
		return e, nil
	}
	return nil, p.unexpected()
}

func (p *parser) unexpected() error {
	if p.tok.Kind == tEOF {
		return errorf(Syntax, p.tok.Pos, "unexpected end of input")
	}
	return errorf(Syntax, p.tok.Pos, "unexpected %s %q", p.tok.Kind, p.tok.Text)
}
