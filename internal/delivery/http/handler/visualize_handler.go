package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/usecase/visualize"
)

type VisualizeHandler struct {
	visualizeUseCase *visualize.VisualizeUseCase
}

func NewVisualizeHandler(visualizeUseCase *visualize.VisualizeUseCase) *VisualizeHandler {
	return &VisualizeHandler{visualizeUseCase: visualizeUseCase}
}

// Visualize handles POST /visualize
func (h *VisualizeHandler) Visualize(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req visualize.VisualizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	result, err := h.visualizeUseCase.Visualize(c.Request.Context(), &req)
	switch {
	case errors.Is(err, domain.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "diagram generation is unavailable"})
	case err != nil:
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to generate diagram"})
	default:
		c.JSON(http.StatusOK, result)
	}
}
