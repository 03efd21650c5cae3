package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillsage/skillsage-backend/internal/usecase/dashboard"
)

type DashboardHandler struct {
	dashboardUseCase *dashboard.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{dashboardUseCase: dashboardUseCase}
}

// Get handles GET /dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	data, err := h.dashboardUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, data)
}
