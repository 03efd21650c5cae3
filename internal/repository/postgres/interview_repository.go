package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

type interviewRepository struct {
	db *sqlx.DB
}

func NewInterviewRepository(db *sqlx.DB) repository.InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) CreateSession(ctx context.Context, session *domain.InterviewSession, questions []*domain.InterviewQuestion) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO interview_sessions (user_id, course, difficulty, total_duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, session.UserID, session.Course, session.Difficulty, session.TotalDuration).
		Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	for _, q := range questions {
		q.SessionID = session.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO interview_questions (session_id, question_text, allocated_time, question_order)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, q.SessionID, q.QuestionText, q.AllocatedTime, q.Order).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("failed to create question %d: %w", q.Order, err)
		}
	}

	return tx.Commit()
}

func (r *interviewRepository) GetSession(ctx context.Context, id int) (*domain.InterviewSession, error) {
	var session domain.InterviewSession
	query := `SELECT * FROM interview_sessions WHERE id = $1`
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *interviewRepository) GetQuestion(ctx context.Context, sessionID, order int) (*domain.InterviewQuestion, error) {
	var question domain.InterviewQuestion
	query := `SELECT * FROM interview_questions WHERE session_id = $1 AND question_order = $2`
	err := r.db.GetContext(ctx, &question, query, sessionID, order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *interviewRepository) GetQuestionByID(ctx context.Context, id int) (*domain.InterviewQuestion, error) {
	var question domain.InterviewQuestion
	query := `SELECT * FROM interview_questions WHERE id = $1`
	err := r.db.GetContext(ctx, &question, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *interviewRepository) CountQuestions(ctx context.Context, sessionID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM interview_questions WHERE session_id = $1`
	err := r.db.GetContext(ctx, &count, query, sessionID)
	return count, err
}

func (r *interviewRepository) UpsertAnswer(ctx context.Context, answer *domain.InterviewAnswer) error {
	query := `
		INSERT INTO interview_answers (question_id, user_id, answer_text, time_taken, feedback, rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (question_id, user_id) DO UPDATE
		SET answer_text = EXCLUDED.answer_text,
		    time_taken = EXCLUDED.time_taken,
		    feedback = EXCLUDED.feedback,
		    rating = EXCLUDED.rating,
		    submitted_at = NOW()
		RETURNING id, submitted_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		answer.QuestionID, answer.UserID, answer.AnswerText,
		answer.TimeTaken, answer.Feedback, answer.Rating,
	).Scan(&answer.ID, &answer.SubmittedAt)
}

func (r *interviewRepository) CountAnswers(ctx context.Context, sessionID, userID int) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM interview_answers a
		JOIN interview_questions q ON q.id = a.question_id
		WHERE q.session_id = $1 AND a.user_id = $2
	`
	err := r.db.GetContext(ctx, &count, query, sessionID, userID)
	return count, err
}

func (r *interviewRepository) ListAnswers(ctx context.Context, sessionID, userID int) ([]*domain.InterviewAnswer, error) {
	var answers []*domain.InterviewAnswer
	query := `
		SELECT a.* FROM interview_answers a
		JOIN interview_questions q ON q.id = a.question_id
		WHERE q.session_id = $1 AND a.user_id = $2
		ORDER BY q.question_order
	`
	err := r.db.SelectContext(ctx, &answers, query, sessionID, userID)
	return answers, err
}

func (r *interviewRepository) MarkCompleted(ctx context.Context, sessionID int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE interview_sessions SET completed = true WHERE id = $1`, sessionID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *interviewRepository) CountCompleted(ctx context.Context, userID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM interview_sessions WHERE user_id = $1 AND completed = true`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *interviewRepository) CountCompletedByMonth(ctx context.Context, userID, year int) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
		FROM interview_sessions
		WHERE user_id = $1 AND completed = true
		  AND EXTRACT(YEAR FROM created_at) = $2
		GROUP BY 1
	`, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var month string
		var count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		counts[month] = count
	}
	return counts, rows.Err()
}

func (r *interviewRepository) ListCompleted(ctx context.Context, userID int, limit int) ([]*domain.InterviewSession, error) {
	var sessions []*domain.InterviewSession
	query := `
		SELECT * FROM interview_sessions
		WHERE user_id = $1 AND completed = true
		ORDER BY created_at DESC
		LIMIT $2
	`
	err := r.db.SelectContext(ctx, &sessions, query, userID, limit)
	return sessions, err
}
