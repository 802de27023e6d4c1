package main

import (
	"strings"
	"unicode/utf8"
)

type TokenKind int

const (
	tEOF TokenKind = iota
	tDerive
	tIntegrate
	tAssign
	tShow
	tIdent
	tNumber
	tOp
	tLParen
	tRParen
	tEquals
)

var tokenNames = [...]string{
	tEOF:       "EOF",
	tDerive:    "DERIVAR",
	tIntegrate: "INTEGRAR",
	tAssign:    "ATRIBUIR",
	tShow:      "MOSTRAR",
	tIdent:     "ID",
	tNumber:    "NUMBER",
	tOp:        "OP",
	tLParen:    "LPAREN",
	tRParen:    "RPAREN",
	tEquals:    "EQUALS",
}

func (k TokenKind) String() string { return tokenNames[k] }

// A Token is a lexeme and its 1-based column in the input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// keywords are matched as identifiers first and then reclassified,
// so a variable can never be named after one.
var keywords = map[string]TokenKind{
	"derivar":  tDerive,
	"integrar": tIntegrate,
	"atribuir": tAssign,
	"mostrar":  tShow,
}

const operators = "+-*/^"

// lexer produces tokens from a single line on demand.
// Unrecognized characters are recorded in errs and skipped.
type lexer struct {
	src  string
	off  int
	errs []*Error
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

// next returns the next token. Once the input is exhausted it
// returns EOF tokens forever.
func (l *lexer) next() Token {
	for l.off < len(l.src) {
		start := l.off
		c := l.src[l.off]
		switch {
		case c == ' ' || c == '\t':
			l.off++
		case isIdentStart(c):
			for l.off < len(l.src) && isIdentChar(l.src[l.off]) {
				l.off++
			}
			text := l.src[start:l.off]
			if k, ok := keywords[text]; ok {
				return l.token(k, start)
			}
			return l.token(tIdent, start)
		case isDigit(c):
			for l.off < len(l.src) && isDigit(l.src[l.off]) {
				l.off++
			}
			return l.token(tNumber, start)
		case strings.IndexByte(operators, c) >= 0:
			l.off++
			return l.token(tOp, start)
		case c == '(':
			l.off++
			return l.token(tLParen, start)
		case c == ')':
			l.off++
			return l.token(tRParen, start)
		case c == '=':
			l.off++
			return l.token(tEquals, start)
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.off:])
			l.off += size
			l.errs = append(l.errs, errorf(Lexical, l.column(start), "illegal character %q", r))
		}
	}
	return Token{Kind: tEOF, Pos: l.column(len(l.src))}
}

func (l *lexer) token(k TokenKind, start int) Token {
	return Token{Kind: k, Text: l.src[start:l.off], Pos: l.column(start)}
}

func (l *lexer) column(off int) int {
	return utf8.RuneCountInString(l.src[:off]) + 1
}

// lex scans all of src.
func lex(src string) ([]Token, []*Error) {
	l := newLexer(src)
	var toks []Token
	for {
		tok := l.next()
		if tok.Kind == tEOF {
			return toks, l.errs
		}
		toks = append(toks, tok)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
