package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/usecase/interview"
)

type InterviewHandler struct {
	interviewUseCase *interview.InterviewUseCase
}

func NewInterviewHandler(interviewUseCase *interview.InterviewUseCase) *InterviewHandler {
	return &InterviewHandler{interviewUseCase: interviewUseCase}
}

// Start handles POST /interviews
func (h *InterviewHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req interview.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	result, err := h.interviewUseCase.Start(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start interview"})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// SubmitAnswer handles POST /interviews/answer
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req interview.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	result, err := h.interviewUseCase.SubmitAnswer(c.Request.Context(), userID, &req)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	case errors.Is(err, domain.ErrNotSessionOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "session belongs to another user"})
	case errors.Is(err, domain.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "question not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to submit answer"})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// Summary handles GET /interviews/:id/summary
func (h *InterviewHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	result, err := h.interviewUseCase.Summary(c.Request.Context(), userID, sessionID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	case errors.Is(err, domain.ErrNotSessionOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "session belongs to another user"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session has no answers yet"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build summary"})
	default:
		c.JSON(http.StatusOK, result)
	}
}
