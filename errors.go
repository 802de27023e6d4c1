package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies compile errors.
type Kind int

const (
	// Other denotes an internal or unclassified error.
	Other Kind = iota
	// Lexical denotes an unrecognized character. Lexical errors are
	// reported as diagnostics and never stop a compilation.
	Lexical
	// Syntax denotes input that does not match the grammar.
	Syntax
	// Resolve denotes a failure of the calculus engine.
	Resolve
	// Unsupported denotes an instruction shape the code generator
	// cannot translate.
	Unsupported
)

var kinds = map[Kind]string{
	Other:       "error",
	Lexical:     "lexical error",
	Syntax:      "syntax error",
	Resolve:     "resolve error",
	Unsupported: "unsupported operation",
}

func (k Kind) String() string { return kinds[k] }

// Error is a compile error. Pos is the 1-based column of the
// offending input, or 0 when the error has no source position.
type Error struct {
	Kind Kind
	Pos  int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Pos > 0 {
		fmt.Fprintf(&b, " at column %d", e.Pos)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(kind Kind, pos int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// kindOf returns the kind of the compile error underneath err's
// wrapping, or Other.
func kindOf(err error) Kind {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Kind
	}
	return Other
}

// ErrorList is a list of errors reported together.
type ErrorList []error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// aggregates multiple errors.
// strips out nils (may modify the input list).
func multiError(errors ...error) error {
	j := 0
	for i := range errors {
		if errors[i] != nil {
			if i != j {
				errors[j] = errors[i]
			}
			j++
		}
	}
	switch j {
	case 0:
		return nil
	case 1:
		return errors[0]
	default:
		return ErrorList(errors[:j])
	}
}
