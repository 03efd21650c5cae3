package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

// PeerMatchRepository keeps the waiting pool and match table in process
// memory behind a single mutex. The lock serializes the whole
// pair-or-enqueue sequence, which is what makes pairing race-free.
type PeerMatchRepository struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]*domain.PeerMatch
	queue   []domain.QueueEntry
}

func NewPeerMatchRepository() *PeerMatchRepository {
	return &PeerMatchRepository{
		matches: make(map[uuid.UUID]*domain.PeerMatch),
	}
}

var _ repository.PeerMatchRepository = (*PeerMatchRepository)(nil)

func (r *PeerMatchRepository) PairOrEnqueue(ctx context.Context, userID int) (*domain.PeerMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeEntry(userID)

	// Entries are kept in join order, so the first other user is the
	// earliest waiter.
	for i, entry := range r.queue {
		if entry.UserID == userID {
			continue
		}
		r.queue = append(r.queue[:i], r.queue[i+1:]...)
		match := &domain.PeerMatch{
			ID:                 uuid.New(),
			InitiatorID:        userID,
			OpponentID:         entry.UserID,
			Status:             domain.MatchStatusActive,
			CurrentInterviewer: userID,
			CreatedAt:          time.Now(),
		}
		r.matches[match.ID] = match
		return copyMatch(match), nil
	}

	r.queue = append(r.queue, domain.QueueEntry{UserID: userID, JoinedAt: time.Now()})
	return nil, nil
}

func (r *PeerMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PeerMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	match, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return copyMatch(match), nil
}

func (r *PeerMatchRepository) GetActiveByUser(ctx context.Context, userID int) (*domain.PeerMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var newest *domain.PeerMatch
	for _, match := range r.matches {
		if match.Status != domain.MatchStatusActive || !match.HasUser(userID) {
			continue
		}
		if newest == nil || match.CreatedAt.After(newest.CreatedAt) {
			newest = match
		}
	}
	if newest == nil {
		return nil, domain.ErrMatchNotFound
	}
	return copyMatch(newest), nil
}

func (r *PeerMatchRepository) IsWaiting(ctx context.Context, userID int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.queue {
		if entry.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *PeerMatchRepository) LeaveQueue(ctx context.Context, userID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeEntry(userID)
	return nil
}

func (r *PeerMatchRepository) SetSignal(ctx context.Context, matchID uuid.UUID, slot domain.SignalSlot, payload json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.matches[matchID]
	if !ok {
		return domain.ErrMatchNotFound
	}
	if slot == domain.SlotInitiator {
		match.InitiatorSignal = payload
	} else {
		match.OpponentSignal = payload
	}
	return nil
}

func (r *PeerMatchRepository) SwapInterviewer(ctx context.Context, matchID uuid.UUID, feedback *domain.RoundFeedback) (*domain.PeerMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.matches[matchID]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}

	match.LastFeedback = feedback
	if match.CurrentInterviewer == match.InitiatorID {
		match.CurrentInterviewer = match.OpponentID
	} else {
		match.CurrentInterviewer = match.InitiatorID
	}
	return copyMatch(match), nil
}

// WaitingCount reports the pool size. Used by tests.
func (r *PeerMatchRepository) WaitingCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queue)
}

// removeEntry deletes the user's waiting entry. Caller holds the lock.
func (r *PeerMatchRepository) removeEntry(userID int) {
	for i, entry := range r.queue {
		if entry.UserID == userID {
			r.queue = append(r.queue[:i], r.queue[i+1:]...)
			return
		}
	}
}

func copyMatch(m *domain.PeerMatch) *domain.PeerMatch {
	c := *m
	if m.LastFeedback != nil {
		fb := *m.LastFeedback
		c.LastFeedback = &fb
	}
	return &c
}
