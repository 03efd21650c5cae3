package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

type peerMatchRepository struct {
	db *sqlx.DB
}

func NewPeerMatchRepository(db *sqlx.DB) repository.PeerMatchRepository {
	return &peerMatchRepository{db: db}
}

// peerMatchRow maps the peer_matches table; last_feedback is JSONB.
type peerMatchRow struct {
	domain.PeerMatch
	LastFeedbackRaw []byte `db:"last_feedback"`
}

func (row *peerMatchRow) toDomain() (*domain.PeerMatch, error) {
	match := row.PeerMatch
	if len(row.LastFeedbackRaw) > 0 {
		var fb domain.RoundFeedback
		if err := json.Unmarshal(row.LastFeedbackRaw, &fb); err != nil {
			return nil, fmt.Errorf("failed to decode last_feedback: %w", err)
		}
		match.LastFeedback = &fb
	}
	return &match, nil
}

const peerMatchColumns = `
	id, initiator_id, opponent_id, status, current_interviewer,
	initiator_signal, opponent_signal, last_feedback, created_at
`

func (r *peerMatchRepository) PairOrEnqueue(ctx context.Context, userID int) (*domain.PeerMatch, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin pairing tx: %w", err)
	}
	defer tx.Rollback()

	// Purge a stale entry left over from a prior aborted attempt.
	if _, err := tx.ExecContext(ctx, `DELETE FROM interview_queue WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to purge own queue entry: %w", err)
	}

	// Claim the earliest other waiter. SKIP LOCKED keeps two concurrent
	// pairings from ever grabbing the same entry.
	var entry domain.QueueEntry
	err = tx.GetContext(ctx, &entry, `
		SELECT user_id, joined_at FROM interview_queue
		WHERE user_id <> $1
		ORDER BY joined_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO interview_queue (user_id, joined_at)
			VALUES ($1, NOW())
			ON CONFLICT (user_id) DO NOTHING
		`, userID); err != nil {
			return nil, fmt.Errorf("failed to enqueue: %w", err)
		}
		return nil, tx.Commit()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan queue: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM interview_queue WHERE user_id = $1`, entry.UserID); err != nil {
		return nil, fmt.Errorf("failed to claim queue entry: %w", err)
	}

	match := &domain.PeerMatch{
		ID:                 uuid.New(),
		InitiatorID:        userID,
		OpponentID:         entry.UserID,
		Status:             domain.MatchStatusActive,
		CurrentInterviewer: userID,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO peer_matches (id, initiator_id, opponent_id, status, current_interviewer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, match.ID, match.InitiatorID, match.OpponentID, match.Status, match.CurrentInterviewer).
		Scan(&match.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit pairing: %w", err)
	}
	return match, nil
}

func (r *peerMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PeerMatch, error) {
	var row peerMatchRow
	query := `SELECT ` + peerMatchColumns + ` FROM peer_matches WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return row.toDomain()
}

func (r *peerMatchRepository) GetActiveByUser(ctx context.Context, userID int) (*domain.PeerMatch, error) {
	var row peerMatchRow
	query := `
		SELECT ` + peerMatchColumns + ` FROM peer_matches
		WHERE (initiator_id = $1 OR opponent_id = $1) AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return row.toDomain()
}

func (r *peerMatchRepository) IsWaiting(ctx context.Context, userID int) (bool, error) {
	var waiting bool
	query := `SELECT EXISTS (SELECT 1 FROM interview_queue WHERE user_id = $1)`
	if err := r.db.GetContext(ctx, &waiting, query, userID); err != nil {
		return false, err
	}
	return waiting, nil
}

func (r *peerMatchRepository) LeaveQueue(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interview_queue WHERE user_id = $1`, userID)
	return err
}

func (r *peerMatchRepository) SetSignal(ctx context.Context, matchID uuid.UUID, slot domain.SignalSlot, payload json.RawMessage) error {
	column := "initiator_signal"
	if slot == domain.SlotOpponent {
		column = "opponent_signal"
	}
	query := fmt.Sprintf(`UPDATE peer_matches SET %s = $1 WHERE id = $2`, column)
	result, err := r.db.ExecContext(ctx, query, []byte(payload), matchID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *peerMatchRepository) SwapInterviewer(ctx context.Context, matchID uuid.UUID, feedback *domain.RoundFeedback) (*domain.PeerMatch, error) {
	raw, err := json.Marshal(feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feedback: %w", err)
	}

	// Single statement so the feedback write and the interviewer flip
	// are never observed apart.
	var row peerMatchRow
	query := `
		UPDATE peer_matches
		SET last_feedback = $1,
		    current_interviewer = CASE
		        WHEN current_interviewer = initiator_id THEN opponent_id
		        ELSE initiator_id
		    END
		WHERE id = $2
		RETURNING ` + peerMatchColumns
	if err := r.db.GetContext(ctx, &row, query, raw, matchID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return row.toDomain()
}
