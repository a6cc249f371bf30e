package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payfolio/payslip-backend-go/internal/domain/auth"
	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/domain/taxyear"
	"github.com/payfolio/payslip-backend-go/internal/pkg/validator"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandleErrorValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	errs := validator.ValidationErrors{
		{Field: "tax", Message: "must not be negative"},
	}

	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "must not be negative", resp.Error.Details["tax"])
}

func TestHandleErrorWrappedValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("confirm failed"), validator.ValidationErrors{
		{Field: "period", Message: "must not be in the future"},
	})

	HandleError(rec, wrapped)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"revoked refresh token", auth.ErrRefreshTokenRevoked, http.StatusUnauthorized},
		{"email exists", auth.ErrEmailAlreadyExists, http.StatusConflict},
		{"payslip not found", payslip.ErrPayslipNotFound, http.StatusNotFound},
		{"store conflict is retryable", payslip.ErrStoreConflict, http.StatusConflict},
		{"aggregate not found", taxyear.ErrAggregateNotFound, http.StatusNotFound},
		{"bad tax year", taxyear.ErrInvalidYear, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.code, rec.Code)

			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
		})
	}
}

func TestHandleErrorDoesNotLeakInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: connection refused at 10.0.0.3"))

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}
