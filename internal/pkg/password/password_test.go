package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Tests use bcrypt.MinCost to keep hashing fast; the verification logic is
// cost-independent.

func TestHashAndVerify_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, h.Verify("correct horse battery staple", digest))
	assert.False(t, h.Verify("correct horse battery stable", digest))
}

func TestHash_SamePlaintextYieldsDifferentDigests(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	d1, err := h.Hash("hunter2")
	require.NoError(t, err)
	d2, err := h.Hash("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
	assert.True(t, h.Verify("hunter2", d1))
	assert.True(t, h.Verify("hunter2", d2))
}

func TestVerify_MalformedDigest_ReturnsFalse(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("anything", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("anything", ""))
}

func TestNeedsRehash(t *testing.T) {
	weak := NewHasher(bcrypt.MinCost)
	digest, err := weak.Hash("pw")
	require.NoError(t, err)

	strong := NewHasher(bcrypt.MinCost + 1)
	assert.True(t, strong.NeedsRehash(digest))
	assert.False(t, weak.NeedsRehash(digest))
	assert.True(t, weak.NeedsRehash("garbage"))
}

func TestNewHasher_OutOfRangeCost_FallsBackToDefault(t *testing.T) {
	h := NewHasher(99)
	assert.Equal(t, DefaultCost, h.cost)
	h = NewHasher(0)
	assert.Equal(t, DefaultCost, h.cost)
}
