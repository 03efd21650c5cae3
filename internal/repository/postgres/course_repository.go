package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) CreateAll(ctx context.Context, progresses []*domain.CourseProgress) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, p := range progresses {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO course_progress (user_id, course_name, total_modules, completed_modules)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, course_name) DO NOTHING
			RETURNING id, last_updated
		`, p.UserID, p.CourseName, p.TotalModules, pq.Array(p.CompletedModules)).
			Scan(&p.ID, &p.LastUpdated)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed course %q: %w", p.CourseName, err)
		}
	}

	return tx.Commit()
}

func (r *courseRepository) ListByUser(ctx context.Context, userID int) ([]*domain.CourseProgress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, course_name, total_modules, completed_modules,
		       progress_percent, is_completed, started, ended, last_updated
		FROM course_progress
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progresses []*domain.CourseProgress
	for rows.Next() {
		var p domain.CourseProgress
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.CourseName, &p.TotalModules,
			pq.Array(&p.CompletedModules), &p.ProgressPercent,
			&p.IsCompleted, &p.Started, &p.Ended, &p.LastUpdated,
		); err != nil {
			return nil, err
		}
		progresses = append(progresses, &p)
	}
	return progresses, rows.Err()
}

func (r *courseRepository) GetByUserAndName(ctx context.Context, userID int, courseName string) (*domain.CourseProgress, error) {
	var p domain.CourseProgress
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, course_name, total_modules, completed_modules,
		       progress_percent, is_completed, started, ended, last_updated
		FROM course_progress
		WHERE user_id = $1 AND course_name = $2
	`, userID, courseName).Scan(
		&p.ID, &p.UserID, &p.CourseName, &p.TotalModules,
		pq.Array(&p.CompletedModules), &p.ProgressPercent,
		&p.IsCompleted, &p.Started, &p.Ended, &p.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *courseRepository) Update(ctx context.Context, progress *domain.CourseProgress) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE course_progress
		SET completed_modules = $1, progress_percent = $2, is_completed = $3,
		    started = $4, ended = $5, last_updated = NOW()
		WHERE id = $6
	`, pq.Array(progress.CompletedModules), progress.ProgressPercent,
		progress.IsCompleted, progress.Started, progress.Ended, progress.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}
