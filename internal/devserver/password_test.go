package devserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	assert.True(t, verifyPassword(hash, "correct horse battery staple"))
	assert.False(t, verifyPassword(hash, "wrong password"))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := hashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, verifyPassword("not-a-hash", "anything"))
	assert.False(t, verifyPassword("$argon2i$v=19$m=1,t=1,p=1$AAAA$AAAA", "anything"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := hashPassword("same password")
	require.NoError(t, err)
	b, err := hashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
