package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_ProducesPHCString(t *testing.T) {
	hash, version, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.Equal(t, HashVersionArgon2id, version)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$"), hash)
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPassword_SaltsEveryHash(t *testing.T) {
	a, _, err := HashPassword("correct horse")
	require.NoError(t, err)
	b, _, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, _, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestVerifyPassword(t *testing.T) {
	hash, _, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.ErrorIs(t, VerifyPassword(hash, "wrong horse"), ErrMismatch)
}

func TestVerifyPassword_LegacyBcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.Equal(t, HashVersionBcrypt, Version(string(raw)))
	assert.NoError(t, VerifyPassword(string(raw), "correct horse"))
	assert.ErrorIs(t, VerifyPassword(string(raw), "wrong horse"), ErrMismatch)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, hash := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=4$onlysalt",
		"$argon2id$v=18$m=65536,t=3,p=4$c2FsdHNhbHRzYWx0$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
	} {
		assert.ErrorIs(t, VerifyPassword(hash, "correct horse"), ErrUnknownHash, hash)
	}
}
