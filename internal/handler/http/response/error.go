package response

import (
	"errors"
	"net/http"

	"github.com/payfolio/payslip-backend-go/internal/domain/auth"
	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/domain/taxyear"
	"github.com/payfolio/payslip-backend-go/internal/domain/user"
	"github.com/payfolio/payslip-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrGoogleEmailNotVerified):
		Forbidden(w, "Google account email is not verified")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrStoreConflict):
		Conflict(w, "Payslip could not be saved, please retry the submission")

	// Tax year domain errors
	case errors.Is(err, taxyear.ErrAggregateNotFound):
		NotFound(w, "No payslips recorded for this tax year")
	case errors.Is(err, taxyear.ErrInvalidYear):
		BadRequest(w, "Tax year must be a four digit starting year", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
