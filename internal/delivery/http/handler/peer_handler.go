package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/usecase/peer"
)

type PeerHandler struct {
	peerUseCase *peer.PeerUseCase
}

func NewPeerHandler(peerUseCase *peer.PeerUseCase) *PeerHandler {
	return &PeerHandler{peerUseCase: peerUseCase}
}

// SignalRequest carries one opaque signaling payload
type SignalRequest struct {
	MatchID string          `json:"match_id" binding:"required,uuid"`
	Signal  json.RawMessage `json:"signal" binding:"required"`
}

// RoundRequest completes one scored interview round
type RoundRequest struct {
	MatchID    string `json:"match_id" binding:"required,uuid"`
	Question   string `json:"question"`
	AnswerText string `json:"answer_text"`
}

// FindPartner handles POST /p2p/find-partner
func (h *PeerHandler) FindPartner(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.peerUseCase.RequestMatch(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "matchmaking failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// PollStatus handles GET /p2p/status
func (h *PeerHandler) PollStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	status, err := h.peerUseCase.PollStatus(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to poll status"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// SendSignal handles POST /p2p/signal
func (h *PeerHandler) SendSignal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req SignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	err = h.peerUseCase.SendSignal(c.Request.Context(), userID, matchID, req.Signal)
	switch {
	case errors.Is(err, domain.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "match not found"})
	case errors.Is(err, domain.ErrNotParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not part of this match"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to store signal"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "signal_sent"})
	}
}

// CancelSearch handles POST /p2p/cancel
func (h *PeerHandler) CancelSearch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.peerUseCase.CancelSearch(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to leave queue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// CompleteRound handles POST /p2p/feedback
func (h *PeerHandler) CompleteRound(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req RoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	feedback, err := h.peerUseCase.CompleteRound(c.Request.Context(), matchID, req.Question, req.AnswerText)
	switch {
	case errors.Is(err, domain.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "match not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to complete round"})
	default:
		c.JSON(http.StatusOK, feedback)
	}
}
