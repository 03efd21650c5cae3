package peer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

// AnswerScorer evaluates a candidate's answer to one question. The
// production implementation is the Gemini client.
type AnswerScorer interface {
	ScoreAnswer(ctx context.Context, question, answer string) (*domain.RoundFeedback, error)
}

const (
	StatusMatched = "matched"
	StatusWaiting = "waiting"
	StatusIdle    = "idle"
)

// PeerUseCase implements P2P interview matchmaking: pairing two
// concurrently polling users, relaying opaque signaling payloads
// between them, and swapping interviewer/candidate roles after each
// scored round.
type PeerUseCase struct {
	matchRepo    repository.PeerMatchRepository
	userRepo     repository.UserRepository
	scorer       AnswerScorer
	scoreTimeout time.Duration
}

func NewPeerUseCase(
	matchRepo repository.PeerMatchRepository,
	userRepo repository.UserRepository,
	scorer AnswerScorer,
	scoreTimeout time.Duration,
) *PeerUseCase {
	return &PeerUseCase{
		matchRepo:    matchRepo,
		userRepo:     userRepo,
		scorer:       scorer,
		scoreTimeout: scoreTimeout,
	}
}

// MatchResponse is the result of a matchmaking request.
type MatchResponse struct {
	Status  string `json:"status"`
	MatchID string `json:"match_id,omitempty"`
	Partner string `json:"partner,omitempty"`
	Role    string `json:"role,omitempty"`
}

// StatusResponse is the poll result: everything a client needs to
// discover pairing, signaling and feedback state.
type StatusResponse struct {
	Status         string                `json:"status"`
	MatchID        string                `json:"match_id,omitempty"`
	Partner        string                `json:"partner,omitempty"`
	Role           string                `json:"role,omitempty"`
	IncomingSignal json.RawMessage       `json:"incoming_signal,omitempty"`
	LastFeedback   *domain.RoundFeedback `json:"last_feedback,omitempty"`
}

// RequestMatch pairs the user with the earliest waiting opponent or
// enrolls them into the waiting pool. A user who is already waiting is
// re-enrolled, never duplicated. The caller of a successful pairing
// starts as interviewer; the opponent discovers the match on their
// next poll.
func (uc *PeerUseCase) RequestMatch(ctx context.Context, userID int) (*MatchResponse, error) {
	match, err := uc.matchRepo.PairOrEnqueue(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("matchmaking failed: %w", err)
	}
	if match == nil {
		return &MatchResponse{Status: StatusWaiting}, nil
	}

	partner, err := uc.userRepo.GetByID(ctx, match.OpponentID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve partner: %w", err)
	}

	return &MatchResponse{
		Status:  StatusMatched,
		MatchID: match.ID.String(),
		Partner: partner.Username,
		Role:    domain.RoleInterviewer,
	}, nil
}

// PollStatus is the sole read path clients use to observe state
// changes; there is no push channel.
func (uc *PeerUseCase) PollStatus(ctx context.Context, userID int) (*StatusResponse, error) {
	match, err := uc.matchRepo.GetActiveByUser(ctx, userID)
	if errors.Is(err, domain.ErrMatchNotFound) {
		waiting, err := uc.matchRepo.IsWaiting(ctx, userID)
		if err != nil {
			return nil, err
		}
		if waiting {
			return &StatusResponse{Status: StatusWaiting}, nil
		}
		return &StatusResponse{Status: StatusIdle}, nil
	}
	if err != nil {
		return nil, err
	}

	partnerID, _ := match.PartnerOf(userID)
	partner, err := uc.userRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve partner: %w", err)
	}

	// The caller reads the slot their peer writes to.
	partnerSlot, _ := match.SlotOf(partnerID)

	return &StatusResponse{
		Status:         StatusMatched,
		MatchID:        match.ID.String(),
		Partner:        partner.Username,
		Role:           match.RoleOf(userID),
		IncomingSignal: match.SignalFrom(partnerSlot),
		LastFeedback:   match.LastFeedback,
	}, nil
}

// SendSignal deposits an opaque signaling payload in the caller's own
// slot, overwriting any previous one. The peer picks it up on their
// next poll.
func (uc *PeerUseCase) SendSignal(ctx context.Context, userID int, matchID uuid.UUID, payload json.RawMessage) error {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}

	slot, ok := match.SlotOf(userID)
	if !ok {
		return domain.ErrNotParticipant
	}

	return uc.matchRepo.SetSignal(ctx, matchID, slot, payload)
}

// CancelSearch removes the user from the waiting pool.
func (uc *PeerUseCase) CancelSearch(ctx context.Context, userID int) error {
	return uc.matchRepo.LeaveQueue(ctx, userID)
}

// CompleteRound scores the candidate's answer and swaps the
// interviewer role. Scoring failures are absorbed: the round still
// completes with a degraded placeholder so the session is never stuck.
func (uc *PeerUseCase) CompleteRound(ctx context.Context, matchID uuid.UUID, question, answer string) (*domain.RoundFeedback, error) {
	if _, err := uc.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, err
	}

	feedback := uc.score(ctx, question, answer)

	if _, err := uc.matchRepo.SwapInterviewer(ctx, matchID, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (uc *PeerUseCase) score(ctx context.Context, question, answer string) *domain.RoundFeedback {
	degraded := &domain.RoundFeedback{
		Feedback: "Automated feedback is unavailable for this round.",
		Rating:   0,
		Tip:      "Keep practicing.",
	}
	if uc.scorer == nil {
		return degraded
	}

	scoreCtx, cancel := context.WithTimeout(ctx, uc.scoreTimeout)
	defer cancel()

	feedback, err := uc.scorer.ScoreAnswer(scoreCtx, question, answer)
	if err != nil || feedback == nil {
		return degraded
	}
	return feedback
}
