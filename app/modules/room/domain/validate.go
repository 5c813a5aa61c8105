package roomdomain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	NameMinLen         = 3
	NameMaxLen         = 40
	ContributionMaxLen = 80
	CodeMinLen         = 4
	CodeMaxLen         = 12

	// CodeLength is the length of generated join codes.
	CodeLength = 6
)

// codeAlphabet drops characters that are easy to misread.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NormalizeName trims and length-checks a room name.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(name); n < NameMinLen || n > NameMaxLen {
		return "", ErrInvalidName
	}
	return name, nil
}

// NormalizeContribution trims the optional contribution note.
func NormalizeContribution(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if utf8.RuneCountInString(text) > ContributionMaxLen {
		return "", ErrInvalidContribution
	}
	return text, nil
}

// NormalizeCode trims and upper-cases a join code.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if n := len(code); n < CodeMinLen || n > CodeMaxLen {
		return "", ErrInvalidCode
	}
	return code, nil
}

// NewCode returns a random upper-case join code.
func NewCode() string {
	src := uuid.New()
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = codeAlphabet[int(src[i])%len(codeAlphabet)]
	}
	return string(b)
}
