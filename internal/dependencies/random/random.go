// Package random is the source of game IDs and piece draws. Tests swap in
// mocks.MockRandom to script both.
package random

import (
	"crypto/rand"
	"math/big"
)

// Random draws the numbers games depend on
type Random interface {
	// Intn returns a value in [0, n); 0 when n <= 0
	Intn(n int) int

	// String returns length characters drawn from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom draws from crypto/rand. It is safe for concurrent use, so one
// instance serves every game loop.
type CryptoRandom struct{}

var _ Random = (*CryptoRandom)(nil)

// New creates a CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		return 0
	}
	return int(v.Int64())
}

func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}
