package challenge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyAnswer(t *testing.T) {
	hash, err := HashAnswer("Fluffy")
	require.NoError(t, err)
	assert.NotEqual(t, "Fluffy", hash)

	assert.True(t, VerifyAnswer("Fluffy", hash))
	assert.True(t, VerifyAnswer("fluffy", hash), "answers verify case-insensitively")
	assert.True(t, VerifyAnswer("  Fluffy  ", hash), "surrounding whitespace is ignored")
	assert.False(t, VerifyAnswer("Rex", hash))
	assert.False(t, VerifyAnswer("Flu ffy", hash), "interior whitespace is significant")
}

func TestHashAnswer_DistinctHashesForSameAnswer(t *testing.T) {
	first, err := HashAnswer("Fluffy")
	require.NoError(t, err)
	second, err := HashAnswer("Fluffy")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "bcrypt salts each hash")
}

func TestHashAnswer_TooLong(t *testing.T) {
	_, err := HashAnswer(strings.Repeat("a", 100))
	assert.ErrorContains(t, err, "maximum length")
}

func TestVerifyAnswer_MalformedHash(t *testing.T) {
	assert.False(t, VerifyAnswer("Fluffy", "not-a-bcrypt-hash"))
}
