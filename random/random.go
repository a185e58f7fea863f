// Package random builds random strings for object names and tokens.
package random

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

const charset = "0123456789abcdefghijklmnopqrstuvwxyz"

// String is fast and fine for names that only need to be unique.
func String(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[mrand.IntN(len(charset))]
	}
	return string(b)
}

// StringSecure draws from crypto/rand, for anything that must not be guessed.
func StringSecure(length int) (string, error) {
	b := make([]byte, length)
	l := big.NewInt(int64(len(charset)))
	for i := range b {
		num, err := crand.Int(crand.Reader, l)
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}
