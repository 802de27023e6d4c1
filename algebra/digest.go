package algebra

import (
	"crypto"
	_ "crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/grailbio/base/digest"
)

// Digester computes expression digests.
var Digester = digest.Digester(crypto.SHA256)

// Digest returns a key that identifies e up to structural equality:
// two expressions have the same digest exactly when Equal reports
// them equal.
func Digest(e Expr) digest.Digest {
	w := Digester.NewWriter()
	writeExpr(w, e)
	return w.Digest()
}

func writeExpr(w io.Writer, e Expr) {
	writeN(w, int(e.Kind()))
	switch e := e.(type) {
	case *Number:
		writeString(w, e.val.RatString())
	case *Symbol:
		writeString(w, e.name)
	default:
		ops := e.Operands()
		writeN(w, len(ops))
		for _, o := range ops {
			writeExpr(w, o)
		}
	}
}

func writeN(w io.Writer, n int) {
	var b [binary.MaxVarintLen64]byte
	if _, err := w.Write(b[:binary.PutUvarint(b[:], uint64(n))]); err != nil {
		panic(err)
	}
}

func writeString(w io.Writer, s string) {
	writeN(w, len(s))
	if _, err := io.WriteString(w, s); err != nil {
		panic(err)
	}
}
