// Package term defines the exact (field, value) pair used as an equality
// predicate against an inverted index.
//
// Terms are compared byte-for-byte. No normalization happens here: "0" and
// "00" are different terms even though they denote the same number.
//
//	t := term.NewString("category", "tech")
//	t.Equal(term.New("category", []byte("tech"))) // true
package term
