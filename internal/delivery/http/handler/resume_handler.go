package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/usecase/resume"
)

type ResumeHandler struct {
	resumeUseCase *resume.ResumeUseCase
}

func NewResumeHandler(resumeUseCase *resume.ResumeUseCase) *ResumeHandler {
	return &ResumeHandler{resumeUseCase: resumeUseCase}
}

// Analyze handles POST /resume/analyze
func (h *ResumeHandler) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req resume.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	result, err := h.resumeUseCase.Analyze(c.Request.Context(), userID, &req)
	switch {
	case errors.Is(err, domain.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "resume analysis is unavailable"})
	case err != nil:
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to analyze resume"})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// Stats handles GET /resume/stats
func (h *ResumeHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	record, err := h.resumeUseCase.Stats(c.Request.Context(), userID)
	switch {
	case errors.Is(err, domain.ErrResumeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no resume analyzed yet"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load resume stats"})
	default:
		c.JSON(http.StatusOK, record)
	}
}
