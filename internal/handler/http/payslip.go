package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/handler/http/response"
	extractionService "github.com/payfolio/payslip-backend-go/internal/service/extraction"
	payslipService "github.com/payfolio/payslip-backend-go/internal/service/payslip"
)

type PayslipHandler interface {
	// Extract accepts an uploaded payslip document and returns the
	// extracted field values for user verification.
	Extract(w http.ResponseWriter, r *http.Request)
	// Confirm persists the verified values as a payslip record.
	Confirm(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService    payslipService.PayslipService
	extractionService extractionService.ExtractionService
}

func NewPayslipHandler(payslipSvc payslipService.PayslipService, extractionSvc extractionService.ExtractionService) PayslipHandler {
	return &payslipHandlerImpl{
		payslipService:    payslipSvc,
		extractionService: extractionSvc,
	}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// Extract handles POST /payslips/extract
func (h *payslipHandlerImpl) Extract(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	// Get file from form
	file, fileHeader, err := r.FormFile("document")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Payslip document is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.extractionService.ProcessDocument(r.Context(), userID, file, fileHeader.Filename)
	if err != nil {
		slog.Error("Extract service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip processed, please verify the extracted values", result)
}

// Confirm handles POST /payslips
func (h *payslipHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	var confirmReq payslip.ConfirmPayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&confirmReq); err != nil {
		slog.Error("Confirm decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payslipService.Confirm(r.Context(), userID, confirmReq)
	if err != nil {
		slog.Error("Confirm service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Payslip confirmed", "payslip_id", result.ID, "period", result.Period)
	response.Created(w, "Payslip saved successfully", result)
}

// List handles GET /payslips
// Query params:
//   - from: YYYY-MM inclusive lower bound
//   - to: YYYY-MM inclusive upper bound
//   - limit: maximum number of records
func (h *payslipHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	filter := payslip.PayslipFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 0 {
			response.BadRequest(w, "Invalid limit parameter", nil)
			return
		}
		filter.Limit = limit
	}

	result, err := h.payslipService.List(r.Context(), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /payslips/{id}
func (h *payslipHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	payslipID := chi.URLParam(r, "id")
	result, err := h.payslipService.Get(r.Context(), userID, payslipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete handles DELETE /payslips/{id}
func (h *payslipHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	payslipID := chi.URLParam(r, "id")
	if err := h.payslipService.Delete(r.Context(), userID, payslipID); err != nil {
		slog.Error("Delete payslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Payslip deleted", "payslip_id", payslipID)
	response.SuccessWithMessage(w, "Payslip deleted successfully", nil)
}
