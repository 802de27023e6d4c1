package main

import (
	"bytes"
	"fmt"
	"io"
)

// this file prints three-address code

func printTAC(w io.Writer, code []Tac) {
	var buf bytes.Buffer
	for _, t := range code {
		fmt.Fprintln(w, t.debugstr(&buf))
	}
	if len(code) > 0 {
		fmt.Fprintf(w, "return %s\n", code[len(code)-1].Name())
	}
}

func (t Tac) debugstr(b *bytes.Buffer) string {
	b.Reset()
	b.WriteString(t.Name())
	b.WriteString(" = ")
	if t.Op == Tcopy {
		for _, a := range t.Args {
			b.WriteString(a.String())
		}
		return b.String()
	}
	sym, ok := topcodeSyms[t.Op]
	if !ok {
		sym = fmt.Sprintf("<op %d>", t.Op)
	}
	for i, a := range t.Args {
		if i != 0 {
			b.WriteString(" " + sym + " ")
		}
		b.WriteString(a.String())
	}
	return b.String()
}

func (t Tac) String() string {
	var buf bytes.Buffer
	return t.debugstr(&buf)
}
