package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	result, err := h.authUseCase.Register(c.Request.Context(), &req)
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "email is already registered"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "registration failed"})
	default:
		c.JSON(http.StatusCreated, result)
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), &req)
	switch {
	case errors.Is(err, domain.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.authUseCase.GetUser(c.Request.Context(), userID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load user"})
	default:
		c.JSON(http.StatusOK, user)
	}
}
