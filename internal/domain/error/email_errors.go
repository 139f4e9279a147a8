package error

import "errors"

var (
	// ErrEmailNotConfigured is returned when no mail provider is set up.
	ErrEmailNotConfigured = errors.New("email delivery is not configured")

	// ErrEmailRejected is returned when the provider refuses a message for good.
	ErrEmailRejected = errors.New("email rejected by provider")

	// ErrEmailUnavailable is returned when the provider may accept a later retry.
	ErrEmailUnavailable = errors.New("email provider unavailable")
)

// EmailErrorCode identifies why an insight email was not delivered.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Setup (01XXXX)
	ErrCodeEmailNotConfigured EmailErrorCode = "EMAIL-010001"

	// Delivery (02XXXX)
	ErrCodeEmailRejected    EmailErrorCode = "EMAIL-020002"
	ErrCodeEmailUnavailable EmailErrorCode = "EMAIL-020003"

	// Composition (03XXXX)
	ErrCodeEmailRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError carries a delivery failure and the provider's cause.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// Retryable reports whether sending the same message later may succeed.
func (e *EmailError) Retryable() bool {
	return e.Code == ErrCodeEmailUnavailable
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
