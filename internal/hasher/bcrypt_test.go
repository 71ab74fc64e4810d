package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/gophnotes-server/internal/model"
)

func newTestHasher(t *testing.T) *Bcrypt {
	t.Helper()
	h, err := NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcrypt_CostRange(t *testing.T) {
	_, err := NewBcrypt(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewBcrypt(bcrypt.MaxCost + 1)
	assert.Error(t, err)

	h, err := NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, h.cost)
}

func TestBcrypt_Hash(t *testing.T) {
	h := newTestHasher(t)

	t.Run("digest differs from plaintext", func(t *testing.T) {
		digest, err := h.Hash("pass1234")
		require.NoError(t, err)
		assert.NotEqual(t, "pass1234", digest)
		assert.True(t, strings.HasPrefix(digest, "$2a$"))
	})

	t.Run("same password produces different digests", func(t *testing.T) {
		d1, err := h.Hash("samepassword")
		require.NoError(t, err)
		d2, err := h.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, d1, d2)
	})

	t.Run("digest embeds configured cost", func(t *testing.T) {
		digest, err := h.Hash("pass1234")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(digest))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := h.Hash("")
		assert.ErrorIs(t, err, model.ErrEmptyPassword)
	})

	t.Run("rejects password longer than 72 bytes", func(t *testing.T) {
		_, err := h.Hash(strings.Repeat("a", 73))
		assert.ErrorIs(t, err, model.ErrPasswordTooLong)
	})
}

func TestBcrypt_Verify(t *testing.T) {
	h := newTestHasher(t)

	digest, err := h.Hash("pass1234")
	require.NoError(t, err)

	assert.True(t, h.Verify("pass1234", digest))
	assert.False(t, h.Verify("pass0000", digest))
	assert.False(t, h.Verify("pass1234", "not-a-digest"))
	assert.False(t, h.Verify("pass1234", ""))
}

func TestBcrypt_Burn(t *testing.T) {
	h := newTestHasher(t)
	assert.NotPanics(t, func() { h.Burn("anything") })
}
