package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("not found")
	ErrAccountInactive    = errors.New("account inactive")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInsufficientKYC    = errors.New("insufficient kyc level")
	ErrInsufficientRole   = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrBadRequest         = errors.New("bad request")
)

// ErrorCode returns the machine-readable code for a domain error. These are
// the codes the mobile and web clients switch on, so they are part of the API.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidToken):
		return "InvalidToken"
	case errors.Is(err, ErrNotFound):
		return "UserNotFound"
	case errors.Is(err, ErrAccountInactive):
		return "AccountInactive"
	case errors.Is(err, ErrEmailNotVerified):
		return "EmailNotVerified"
	case errors.Is(err, ErrInsufficientKYC):
		return "InsufficientKYC"
	case errors.Is(err, ErrInsufficientRole):
		return "InsufficientPermissions"
	case errors.Is(err, ErrInvalidCredentials):
		return "InvalidCredentials"
	case errors.Is(err, ErrEmailExists):
		return "EmailAlreadyExists"
	case errors.Is(err, ErrBadRequest):
		return "BadRequest"
	default:
		return "InternalServerError"
	}
}
