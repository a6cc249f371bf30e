package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/payfolio/payslip-backend-go/internal/domain/taxyear"
	"github.com/payfolio/payslip-backend-go/internal/handler/http/response"
	taxYearService "github.com/payfolio/payslip-backend-go/internal/service/taxyear"
)

type TaxYearHandler interface {
	// List returns every tax-year aggregate the user has payslips for.
	List(w http.ResponseWriter, r *http.Request)
	// Get returns the aggregate for one tax year, addressed by its
	// starting calendar year, e.g. 2024 for the 2024-2025 tax year.
	Get(w http.ResponseWriter, r *http.Request)
}

type taxYearHandlerImpl struct {
	taxYearService taxYearService.TaxYearService
}

func NewTaxYearHandler(taxYearSvc taxYearService.TaxYearService) TaxYearHandler {
	return &taxYearHandlerImpl{taxYearService: taxYearSvc}
}

// List handles GET /tax-years
func (h *taxYearHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	result, err := h.taxYearService.List(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /tax-years/{year}
func (h *taxYearHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.HandleError(w, taxyear.ErrInvalidYear)
		return
	}

	result, err := h.taxYearService.GetByYear(r.Context(), userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
