package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoRandom_Intn(t *testing.T) {
	r := New()
	assert.Zero(t, r.Intn(0))
	assert.Zero(t, r.Intn(-3))

	seen := make(map[int]bool)
	for range 500 {
		v := r.Intn(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
		seen[v] = true
	}
	assert.Len(t, seen, 7, "every piece index should come up")
}

func TestCryptoRandom_String(t *testing.T) {
	r := New()
	assert.Empty(t, r.String(0, "AB"))
	assert.Empty(t, r.String(5, ""))

	s := r.String(12, "XYZ")
	assert.Len(t, s, 12)
	assert.Empty(t, strings.Trim(s, "XYZ"))
}
