package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

type resumeRepository struct {
	db *sqlx.DB
}

func NewResumeRepository(db *sqlx.DB) repository.ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) RecordAnalysis(ctx context.Context, userID int, performance string) (*domain.Resume, error) {
	var resume domain.Resume
	query := `
		INSERT INTO resumes (user_id, performance, resume_count, last_parsed_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET performance = EXCLUDED.performance,
		    resume_count = resumes.resume_count + 1,
		    last_parsed_at = NOW()
		RETURNING user_id, performance, resume_count, last_parsed_at
	`
	err := r.db.QueryRowContext(ctx, query, userID, performance).Scan(
		&resume.UserID, &resume.Performance, &resume.ResumeCount, &resume.LastParsedAt,
	)
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) GetByUser(ctx context.Context, userID int) (*domain.Resume, error) {
	var resume domain.Resume
	query := `
		SELECT user_id, performance, resume_count, last_parsed_at
		FROM resumes WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &resume, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}
