// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// statusForLedgerKind maps ledger error kinds to HTTP status codes.
func statusForLedgerKind(kind domainerror.LedgerErrorKind) int {
	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindImmutableRecord:
		return http.StatusConflict
	case domainerror.KindPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// statusForInsightCode maps insight error codes to HTTP status codes.
func statusForInsightCode(code domainerror.InsightErrorCode) int {
	switch code {
	case domainerror.ErrCodeNoTransactionsForInsights:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInsightRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeInsightsUnavailable,
		domainerror.ErrCodeInsightServiceError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// statusForAuthCode maps auth error codes to HTTP status codes.
func statusForAuthCode(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidConfirmation:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response for any domain error.
func respondError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		status := statusForLedgerKind(ledgerErr.Kind)
		if status == http.StatusServiceUnavailable {
			slog.Warn("Ledger persistence failure", "error", err, "path", ctx.FullPath())
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: ledgerErr.Error(),
			Code:  string(ledgerErr.Code),
		})
		return
	}

	var insightErr *domainerror.InsightError
	if errors.As(err, &insightErr) {
		ctx.JSON(statusForInsightCode(insightErr.Code), dto.ErrorResponse{
			Error: insightErr.Message,
			Code:  string(insightErr.Code),
		})
		return
	}

	var emailErr *domainerror.EmailError
	if errors.As(err, &emailErr) {
		status := http.StatusBadGateway
		if emailErr.Code == domainerror.ErrCodeEmailNotConfigured {
			status = http.StatusServiceUnavailable
		} else {
			slog.Warn("Email delivery failed", "error", err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: emailErr.Message,
			Code:  string(emailErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusForAuthCode(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.Error("Unhandled error", "error", err, "path", ctx.FullPath())
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// badRequest writes a 400 with the generic invalid-request code.
func badRequest(ctx *gin.Context, message string, err error) {
	resp := dto.ErrorResponse{
		Error: message,
		Code:  string(domainerror.ErrCodeInvalidRequest),
	}
	if err != nil {
		resp.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, resp)
}

// requireUser reads the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid path parameter or writes a 400.
func pathID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, "Invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalID parses an optional uuid string.
func parseOptionalID(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// parseOptionalDate parses an optional date string.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// endOfDay moves a plain date to the last instant of that day.
func endOfDay(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}

// queryDateRange reads start_date and end_date query parameters.
func queryDateRange(ctx *gin.Context) (start, end *time.Time, err error) {
	if v := ctx.Query("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if v := ctx.Query("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, nil, err
		}
		t = endOfDay(t)
		end = &t
	}
	return start, end, nil
}
