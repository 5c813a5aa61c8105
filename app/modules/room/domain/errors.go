package roomdomain

import "errors"

// Errors double as API error codes.
var (
	ErrRoomNotFound   = errors.New("ROOM_NOT_FOUND")
	ErrMemberNotFound = errors.New("MEMBER_NOT_FOUND")
	ErrNotMember      = errors.New("NOT_MEMBER")
	ErrNotActive      = errors.New("NOT_ACTIVE_MEMBER")

	ErrRequestRejected         = errors.New("REQUEST_REJECTED")
	ErrNoPermission            = errors.New("NO_PERMISSION")
	ErrNotOwner                = errors.New("NOT_OWNER")
	ErrCantKickOwner           = errors.New("CANT_KICK_OWNER")
	ErrAdminCantKickAdmin      = errors.New("ADMIN_CANT_KICK_ADMIN")
	ErrCantChangeOwner         = errors.New("CANT_CHANGE_OWNER")
	ErrCantChangePendingMember = errors.New("CANT_CHANGE_PENDING_MEMBER")

	ErrNotPending           = errors.New("NOT_PENDING")
	ErrInvalidName          = errors.New("INVALID_NAME")
	ErrInvalidContribution  = errors.New("INVALID_CONTRIBUTION")
	ErrInvalidCode          = errors.New("INVALID_CODE")
	ErrInvalidEditPolicy    = errors.New("INVALID_EDIT_POLICY")
	ErrInvalidAccessType    = errors.New("INVALID_ACCESS_TYPE")
	ErrInvalidRole          = errors.New("INVALID_ROLE")
	ErrCodeGenerationFailed = errors.New("CODE_GENERATION_FAILED")
)

// IsPermissionError reports errors that map to 403.
func IsPermissionError(err error) bool {
	for _, target := range []error{
		ErrRequestRejected, ErrNoPermission, ErrNotOwner, ErrNotActive,
		ErrCantKickOwner, ErrAdminCantKickAdmin, ErrCantChangeOwner, ErrCantChangePendingMember,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidationError reports errors that map to 400.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrNotPending, ErrInvalidName, ErrInvalidContribution, ErrInvalidCode,
		ErrInvalidEditPolicy, ErrInvalidAccessType, ErrInvalidRole,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
