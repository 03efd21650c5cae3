package memory

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/skillsage-backend/internal/domain"
)

func TestPairOrEnqueue_FirstUserWaits(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	match, err := repo.PairOrEnqueue(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Equal(t, 1, repo.WaitingCount())
}

func TestPairOrEnqueue_SecondUserPairs(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	_, err := repo.PairOrEnqueue(ctx, 1)
	require.NoError(t, err)

	match, err := repo.PairOrEnqueue(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, 2, match.InitiatorID)
	assert.Equal(t, 1, match.OpponentID)
	assert.Equal(t, domain.MatchStatusActive, match.Status)
	assert.Equal(t, 2, match.CurrentInterviewer, "the user who completes the pair starts as interviewer")
	assert.Equal(t, 0, repo.WaitingCount(), "both users must leave the pool")
}

func TestPairOrEnqueue_RepeatCallsDoNotDuplicate(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		match, err := repo.PairOrEnqueue(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, match, "a lone user can never match themselves")
	}
	assert.Equal(t, 1, repo.WaitingCount())
}

func TestPairOrEnqueue_PicksEarliestWaiter(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	// Sequential PairOrEnqueue calls pair immediately, so build a
	// three-deep pool directly, in join order.
	base := time.Now()
	for i, id := range []int{1, 2, 3} {
		repo.queue = append(repo.queue, domain.QueueEntry{
			UserID:   id,
			JoinedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	match, err := repo.PairOrEnqueue(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 1, match.OpponentID, "the earliest waiter is paired first")
	assert.Equal(t, 2, repo.WaitingCount())

	// The next caller gets the next-oldest waiter, not the newest.
	match, err = repo.PairOrEnqueue(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 2, match.OpponentID)
	assert.Equal(t, 1, repo.WaitingCount())
}

func TestLeaveQueue(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	_, err := repo.PairOrEnqueue(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.LeaveQueue(ctx, 1))
	assert.Equal(t, 0, repo.WaitingCount())

	// Leaving when not enrolled is a no-op.
	require.NoError(t, repo.LeaveQueue(ctx, 1))

	waiting, err := repo.IsWaiting(ctx, 1)
	require.NoError(t, err)
	assert.False(t, waiting)
}

func TestSetSignal_LatestWins(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	_, err := repo.PairOrEnqueue(ctx, 1)
	require.NoError(t, err)
	match, err := repo.PairOrEnqueue(ctx, 2)
	require.NoError(t, err)

	first := json.RawMessage(`{"sdp":"offer-1"}`)
	second := json.RawMessage(`{"sdp":"offer-2"}`)

	require.NoError(t, repo.SetSignal(ctx, match.ID, domain.SlotInitiator, first))
	require.NoError(t, repo.SetSignal(ctx, match.ID, domain.SlotInitiator, second))

	stored, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(second), string(stored.InitiatorSignal), "a newer payload replaces the older one")
	assert.Nil(t, stored.OpponentSignal, "the other slot is untouched")
}

func TestSwapInterviewer_FlipsRoleAndStoresFeedback(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	_, err := repo.PairOrEnqueue(ctx, 1)
	require.NoError(t, err)
	match, err := repo.PairOrEnqueue(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, match.CurrentInterviewer)

	fb := &domain.RoundFeedback{Feedback: "solid", Rating: 4, Tip: "mention tradeoffs"}
	updated, err := repo.SwapInterviewer(ctx, match.ID, fb)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.CurrentInterviewer)
	require.NotNil(t, updated.LastFeedback)
	assert.Equal(t, 4, updated.LastFeedback.Rating)

	// A second swap flips back.
	updated, err = repo.SwapInterviewer(ctx, match.ID, fb)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentInterviewer)
}

func TestSwapInterviewer_UnknownMatch(t *testing.T) {
	repo := NewPeerMatchRepository()

	_, err := repo.SwapInterviewer(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestGetActiveByUser(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	_, err := repo.GetActiveByUser(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	_, err = repo.PairOrEnqueue(ctx, 1)
	require.NoError(t, err)
	match, err := repo.PairOrEnqueue(ctx, 2)
	require.NoError(t, err)

	// Both participants resolve to the same match.
	for _, id := range []int{1, 2} {
		found, err := repo.GetActiveByUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, match.ID, found.ID)
	}
}

func TestPairOrEnqueue_ConcurrentCallersPairExactlyOnce(t *testing.T) {
	repo := NewPeerMatchRepository()
	ctx := context.Background()

	const users = 20
	var wg sync.WaitGroup
	results := make([]*domain.PeerMatch, users)

	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			match, err := repo.PairOrEnqueue(ctx, i+1)
			assert.NoError(t, err)
			results[i] = match
		}(i)
	}
	wg.Wait()

	// Every user appears in exactly one match or in the waiting pool.
	paired := make(map[int]int)
	matchCount := 0
	for _, match := range results {
		if match == nil {
			continue
		}
		matchCount++
		paired[match.InitiatorID]++
		paired[match.OpponentID]++
	}
	for userID, n := range paired {
		assert.Equalf(t, 1, n, "user %d appears in %d matches", userID, n)
	}
	assert.Equal(t, users, 2*matchCount+repo.WaitingCount())
}
