package error

import "errors"

// Authentication errors. Handlers match them with errors.Is; clients see the
// AuthErrorCode.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrInvalidConfirmation = errors.New("confirmation does not match")
	ErrWeakPassword        = errors.New("password does not meet minimum requirements")
	ErrInvalidEmail        = errors.New("invalid email format")
)

// AuthErrorCode is AUTH-XXYYYY: XX names the flow, YYYY the failure.
type AuthErrorCode string

const (
	// registration
	ErrCodeEmailExists   AuthErrorCode = "AUTH-010001"
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010005"

	// login
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// session tokens
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// account removal
	ErrCodeInvalidConfirmation AuthErrorCode = "AUTH-050001"
)

// AuthError pairs a client-facing code and message with the underlying cause.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError creates an AuthError with the given code.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: err}
}
