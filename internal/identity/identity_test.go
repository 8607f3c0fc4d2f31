package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Basic", Describe("Basic"))
	assert.Equal(t, "Sliding(3)", Describe("Sliding", "3"))
	assert.Equal(t, "Entropies(Basic,Fixed(10))", Describe("Entropies", "Basic", "Fixed(10)"))
}

func TestSetDigestIgnoresOrder(t *testing.T) {
	a := SetDigest([]string{"one", "two", "three"})
	b := SetDigest([]string{"three", "one", "two"})
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, SetDigest([]string{"one", "two"}))
}
