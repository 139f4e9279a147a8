package error

import "errors"

// Insight domain errors.
var (
	// ErrInsightsUnavailable is returned when no insight model is configured.
	ErrInsightsUnavailable = errors.New("insight service is not configured")

	// ErrNoTransactionsForInsights is returned when there is nothing to analyze.
	ErrNoTransactionsForInsights = errors.New("no transactions to analyze")

	// ErrInsightServiceError is returned when the insight model call fails.
	ErrInsightServiceError = errors.New("insight service error")

	// ErrInsightRateLimited is returned when the insight model rejects the call for quota.
	ErrInsightRateLimited = errors.New("insight service rate limited")
)

// InsightErrorCode defines error codes for insight errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// Request errors (01XXXX)
	ErrCodeNoTransactionsForInsights InsightErrorCode = "INS-010001"

	// Service errors (02XXXX)
	ErrCodeInsightServiceError InsightErrorCode = "INS-020001"
	ErrCodeInsightRateLimited  InsightErrorCode = "INS-020002"
	ErrCodeInsightsUnavailable InsightErrorCode = "INS-020003"
)

// InsightError represents an insight error with code and message.
type InsightError struct {
	Code    InsightErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InsightError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError creates a new InsightError with the given code and message.
func NewInsightError(code InsightErrorCode, message string, err error) *InsightError {
	return &InsightError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
