// Package random provides crypto/rand backed string generation helpers.
package random

import (
	"crypto/rand"
	"math/big"
)

var (
	numSeq   [10]rune
	lowerSeq [26]rune
	upperSeq [26]rune
	hexSeq   [16]rune
	allSeq   [62]rune
)

func init() {
	for i := 0; i < 10; i++ {
		numSeq[i] = rune('0' + i)
	}
	for i := 0; i < 26; i++ {
		lowerSeq[i] = rune('a' + i)
		upperSeq[i] = rune('A' + i)
	}
	for i := 0; i < 6; i++ {
		hexSeq[10+i] = rune('A' + i)
	}
	copy(hexSeq[:], numSeq[:])

	copy(allSeq[:], numSeq[:])
	copy(allSeq[len(numSeq):], lowerSeq[:])
	copy(allSeq[len(numSeq)+len(lowerSeq):], upperSeq[:])
}

// Seq generates a random alphanumeric string of length n.
func Seq(n int) string {
	return pick(allSeq[:], n)
}

// HexSeq generates a random uppercase hexadecimal string of length n.
func HexSeq(n int) string {
	return pick(hexSeq[:], n)
}

// Num generates a random integer between 0 and n-1.
func Num(n int) int {
	bn := big.NewInt(int64(n))
	r, err := rand.Int(rand.Reader, bn)
	if err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return int(r.Int64())
}

func pick(seq []rune, n int) string {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(seq))))
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		runes[i] = seq[idx.Int64()]
	}
	return string(runes)
}
