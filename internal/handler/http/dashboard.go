package http

import (
	"net/http"

	"github.com/payfolio/payslip-backend-go/internal/handler/http/response"
	dashboardService "github.com/payfolio/payslip-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	// GetDashboard returns the combined home screen data: latest payslip
	// summary, the last twelve months of totals, savings progress and the
	// most recent payslips.
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboardService.DashboardService
}

func NewDashboardHandler(dashboardSvc dashboardService.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardSvc}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
