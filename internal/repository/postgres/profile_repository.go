package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, phone, location, title, experience, profile_image, level, xp, inventory)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.Phone, profile.Location, profile.Title,
		profile.Experience, profile.ImageURL, profile.Level, profile.XP,
		pq.Array(profile.Inventory),
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, user_id, phone, location, title, experience, profile_image,
		       level, xp, inventory, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Phone, &profile.Location,
		&profile.Title, &profile.Experience, &profile.ImageURL,
		&profile.Level, &profile.XP, pq.Array(&profile.Inventory),
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET phone = $1, location = $2, title = $3, experience = $4,
		    profile_image = $5, level = $6, xp = $7, inventory = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Phone, profile.Location, profile.Title, profile.Experience,
		profile.ImageURL, profile.Level, profile.XP, pq.Array(profile.Inventory),
		profile.UserID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}
