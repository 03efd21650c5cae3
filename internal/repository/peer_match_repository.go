package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/skillsage/skillsage-backend/internal/domain"
)

// PeerMatchRepository owns the matchmaking waiting pool and the peer
// match table. Implementations must make PairOrEnqueue and
// SwapInterviewer atomic: two concurrent PairOrEnqueue calls must never
// claim the same waiting entry, and a reader must never observe a
// feedback value without the interviewer flip that produced it.
type PeerMatchRepository interface {
	// PairOrEnqueue removes any stale waiting entry for userID, then
	// either pairs them with the earliest other waiter (returning the
	// created match) or enrolls them into the pool (returning nil).
	PairOrEnqueue(ctx context.Context, userID int) (*domain.PeerMatch, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.PeerMatch, error)

	// GetActiveByUser returns the newest active match the user takes
	// part in, or domain.ErrMatchNotFound.
	GetActiveByUser(ctx context.Context, userID int) (*domain.PeerMatch, error)

	IsWaiting(ctx context.Context, userID int) (bool, error)

	// LeaveQueue cancels the user's waiting entry if present.
	LeaveQueue(ctx context.Context, userID int) error

	// SetSignal overwrites the slot's pending payload. Latest value wins.
	SetSignal(ctx context.Context, matchID uuid.UUID, slot domain.SignalSlot, payload json.RawMessage) error

	// SwapInterviewer stores the round feedback and flips the current
	// interviewer in one step, returning the updated match.
	SwapInterviewer(ctx context.Context, matchID uuid.UUID, feedback *domain.RoundFeedback) (*domain.PeerMatch, error)
}
