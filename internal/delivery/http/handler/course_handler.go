package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/usecase/course"
)

type CourseHandler struct {
	courseUseCase *course.CourseUseCase
}

func NewCourseHandler(courseUseCase *course.CourseUseCase) *CourseHandler {
	return &CourseHandler{courseUseCase: courseUseCase}
}

// ListCourses handles GET /courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	courses, err := h.courseUseCase.ListCourses(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// StartCourse handles POST /courses/start
func (h *CourseHandler) StartCourse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req course.StartCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	progress, err := h.courseUseCase.StartCourse(c.Request.Context(), userID, &req)
	switch {
	case errors.Is(err, domain.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "course not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start course"})
	default:
		c.JSON(http.StatusOK, progress)
	}
}

// CompleteModule handles POST /courses/module
func (h *CourseHandler) CompleteModule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req course.CompleteModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	result, err := h.courseUseCase.CompleteModule(c.Request.Context(), userID, &req)
	switch {
	case errors.Is(err, domain.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "course not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to complete module"})
	default:
		c.JSON(http.StatusOK, result)
	}
}
