package roomdomain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEditPolicy(t *testing.T) {
	p, err := ParseEditPolicy("")
	require.NoError(t, err)
	assert.Equal(t, EditPolicyStrictPerMatch, p)

	p, err = ParseEditPolicy("ALLOW_UNTIL_ROUND_CLOSE")
	require.NoError(t, err)
	assert.Equal(t, EditPolicyAllowUntilRoundClose, p)

	_, err = ParseEditPolicy("strict")
	assert.ErrorIs(t, err, ErrInvalidEditPolicy)
}

func TestParseAccessType(t *testing.T) {
	a, err := ParseAccessType("")
	require.NoError(t, err)
	assert.Equal(t, AccessOpen, a)

	_, err = ParseAccessType("PRIVATE")
	assert.ErrorIs(t, err, ErrInvalidAccessType)
}

func TestNormalizeName(t *testing.T) {
	name, err := NormalizeName("  Oficina 2026 ")
	require.NoError(t, err)
	assert.Equal(t, "Oficina 2026", name)

	_, err = NormalizeName("  ab ")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NormalizeName(strings.Repeat("x", 41))
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NormalizeName(strings.Repeat("é", 40))
	assert.NoError(t, err)
}

func TestNormalizeContribution(t *testing.T) {
	text, err := NormalizeContribution(" $500 ")
	require.NoError(t, err)
	assert.Equal(t, "$500", text)

	_, err = NormalizeContribution(strings.Repeat("a", 81))
	assert.ErrorIs(t, err, ErrInvalidContribution)
}

func TestNormalizeCode(t *testing.T) {
	code, err := NormalizeCode(" ab12cd ")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", code)

	for _, bad := range []string{"", "abc", strings.Repeat("A", 13)} {
		_, err := NormalizeCode(bad)
		assert.ErrorIs(t, err, ErrInvalidCode, bad)
	}
}

func TestNewCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := NewCode()
		require.Len(t, code, CodeLength)
		assert.Equal(t, strings.ToUpper(code), code)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, c))
		}
	}
}
