package peer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository/memory"
)

type stubUserRepo struct{}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return &domain.User{ID: id, Username: fmt.Sprintf("user-%d", id)}, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

type stubScorer struct {
	feedback *domain.RoundFeedback
	err      error
	calls    int
}

func (s *stubScorer) ScoreAnswer(ctx context.Context, question, answer string) (*domain.RoundFeedback, error) {
	s.calls++
	return s.feedback, s.err
}

func newTestUseCase(scorer AnswerScorer) (*PeerUseCase, *memory.PeerMatchRepository) {
	repo := memory.NewPeerMatchRepository()
	uc := NewPeerUseCase(repo, &stubUserRepo{}, scorer, time.Second)
	return uc, repo
}

func TestRequestMatch_FirstCallerWaits(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	result, err := uc.RequestMatch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, result.Status)
	assert.Empty(t, result.MatchID)
}

func TestRequestMatch_SecondCallerGetsInterviewerRole(t *testing.T) {
	uc, _ := newTestUseCase(nil)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	result, err := uc.RequestMatch(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusMatched, result.Status)
	assert.NotEmpty(t, result.MatchID)
	assert.Equal(t, "user-1", result.Partner)
	assert.Equal(t, domain.RoleInterviewer, result.Role)
}

func TestPollStatus_Transitions(t *testing.T) {
	uc, _ := newTestUseCase(nil)
	ctx := context.Background()

	status, err := uc.PollStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, status.Status)

	_, err = uc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	status, err = uc.PollStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, status.Status)

	_, err = uc.RequestMatch(ctx, 2)
	require.NoError(t, err)

	// The waiting user discovers the match on their next poll, as
	// candidate, since their partner closed the pair.
	status, err = uc.PollStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusMatched, status.Status)
	assert.Equal(t, "user-2", status.Partner)
	assert.Equal(t, domain.RoleCandidate, status.Role)
}

func TestSendSignal_DeliveredToPartnerOnly(t *testing.T) {
	uc, _ := newTestUseCase(nil)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	result, err := uc.RequestMatch(ctx, 2)
	require.NoError(t, err)
	matchID := uuid.MustParse(result.MatchID)

	offer := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	require.NoError(t, uc.SendSignal(ctx, 2, matchID, offer))

	// The partner sees the payload; the sender does not see their own.
	status, err := uc.PollStatus(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, string(offer), string(status.IncomingSignal))

	status, err = uc.PollStatus(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, status.IncomingSignal)
}

func TestSendSignal_OverwritesPrevious(t *testing.T) {
	uc, _ := newTestUseCase(nil)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	result, err := uc.RequestMatch(ctx, 2)
	require.NoError(t, err)
	matchID := uuid.MustParse(result.MatchID)

	require.NoError(t, uc.SendSignal(ctx, 2, matchID, json.RawMessage(`{"candidate":"a"}`)))
	require.NoError(t, uc.SendSignal(ctx, 2, matchID, json.RawMessage(`{"candidate":"b"}`)))

	status, err := uc.PollStatus(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"candidate":"b"}`, string(status.IncomingSignal))
}

func TestSendSignal_RejectsOutsiders(t *testing.T) {
	uc, _ := newTestUseCase(nil)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	result, err := uc.RequestMatch(ctx, 2)
	require.NoError(t, err)
	matchID := uuid.MustParse(result.MatchID)

	err = uc.SendSignal(ctx, 99, matchID, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrNotParticipant)

	err = uc.SendSignal(ctx, 1, uuid.New(), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestCancelSearch(t *testing.T) {
	uc, repo := newTestUseCase(nil)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, uc.CancelSearch(ctx, 1))
	assert.Equal(t, 0, repo.WaitingCount())

	status, err := uc.PollStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, status.Status)
}

func TestCompleteRound_ScoresAndSwapsRoles(t *testing.T) {
	scorer := &stubScorer{feedback: &domain.RoundFeedback{Feedback: "clear answer", Rating: 5, Tip: "slow down"}}
	uc, _ := newTestUseCase(scorer)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	result, err := uc.RequestMatch(ctx, 2)
	require.NoError(t, err)
	matchID := uuid.MustParse(result.MatchID)

	feedback, err := uc.CompleteRound(ctx, matchID, "what is a goroutine", "a lightweight thread")
	require.NoError(t, err)
	assert.Equal(t, 5, feedback.Rating)
	assert.Equal(t, 1, scorer.calls)

	// Roles flip: the former candidate now interviews.
	status, err := uc.PollStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleInterviewer, status.Role)
	require.NotNil(t, status.LastFeedback)
	assert.Equal(t, 5, status.LastFeedback.Rating)

	status, err = uc.PollStatus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCandidate, status.Role)
}

func TestCompleteRound_ScorerFailureStillSwaps(t *testing.T) {
	scorer := &stubScorer{err: errors.New("model unavailable")}
	uc, _ := newTestUseCase(scorer)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	result, err := uc.RequestMatch(ctx, 2)
	require.NoError(t, err)
	matchID := uuid.MustParse(result.MatchID)

	feedback, err := uc.CompleteRound(ctx, matchID, "q", "a")
	require.NoError(t, err, "scoring failures must not block the round")
	assert.Equal(t, 0, feedback.Rating)
	assert.NotEmpty(t, feedback.Feedback)

	status, err := uc.PollStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleInterviewer, status.Role, "the swap happens even when scoring fails")
}

func TestCompleteRound_NilScorer(t *testing.T) {
	uc, _ := newTestUseCase(nil)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	result, err := uc.RequestMatch(ctx, 2)
	require.NoError(t, err)

	feedback, err := uc.CompleteRound(ctx, uuid.MustParse(result.MatchID), "q", "a")
	require.NoError(t, err)
	assert.Equal(t, 0, feedback.Rating)
}

func TestCompleteRound_UnknownMatch(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	_, err := uc.CompleteRound(context.Background(), uuid.New(), "q", "a")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestRequestMatch_ReEnqueueWhileMatched(t *testing.T) {
	uc, repo := newTestUseCase(nil)
	ctx := context.Background()

	_, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	_, err = uc.RequestMatch(ctx, 2)
	require.NoError(t, err)

	// A matched user may search again; they join the pool without
	// touching the existing match.
	result, err := uc.RequestMatch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, result.Status)
	assert.Equal(t, 1, repo.WaitingCount())

	status, err := uc.PollStatus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusMatched, status.Status)
}
