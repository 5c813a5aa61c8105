package userdomain

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DisplayNameMin = 3
	DisplayNameMax = 25
)

// NameError is a display name rejection. Code is the API error code.
type NameError struct {
	Code    string
	Message string
}

func (e *NameError) Error() string { return e.Code }

var (
	ErrNameEmpty       = &NameError{Code: "EMPTY", Message: "El nombre no puede estar vacío."}
	ErrNameEdgeSpaces  = &NameError{Code: "SPACES", Message: "No se permiten espacios al inicio o al final."}
	ErrNameDoubleSpace = &NameError{Code: "SPACES", Message: "No se permiten dos espacios seguidos."}
	ErrNameLength      = &NameError{Code: "LENGTH", Message: "Debe tener entre 3 y 25 caracteres."}
	ErrNameChars       = &NameError{Code: "CHARS", Message: "Solo se permiten letras, números y un espacio simple (sin símbolos)."}
	ErrNameReserved    = &NameError{Code: "RESERVED", Message: "Ese nombre está reservado."}
	ErrNameTaken       = &NameError{Code: "NAME_TAKEN", Message: "Ese nombre ya está en uso."}
)

// ErrUserNotFound is returned when the user does not exist.
var ErrUserNotFound = errors.New("USER_NOT_FOUND")

var allowedName = regexp.MustCompile(`^[\p{L}\p{N}]+(?: [\p{L}\p{N}]+)*$`)

var reservedNames = map[string]struct{}{
	"admin":     {},
	"owner":     {},
	"moderador": {},
	"root":      {},
	"soporte":   {},
	"support":   {},
}

// ParseDisplayName validates raw and returns it unchanged when accepted.
// Names are case sensitive; only the reserved list ignores case.
func ParseDisplayName(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrNameEmpty
	}
	if raw != strings.TrimSpace(raw) {
		return "", ErrNameEdgeSpaces
	}
	if strings.Contains(raw, "  ") {
		return "", ErrNameDoubleSpace
	}
	if n := utf8.RuneCountInString(raw); n < DisplayNameMin || n > DisplayNameMax {
		return "", ErrNameLength
	}
	if !allowedName.MatchString(raw) {
		return "", ErrNameChars
	}
	if _, ok := reservedNames[strings.ToLower(raw)]; ok {
		return "", ErrNameReserved
	}
	return raw, nil
}
