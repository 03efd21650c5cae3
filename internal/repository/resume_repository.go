package repository

import (
	"context"

	"github.com/skillsage/skillsage-backend/internal/domain"
)

type ResumeRepository interface {
	// RecordAnalysis upserts the user's resume record with the latest
	// verdict, bumping the analysis counter.
	RecordAnalysis(ctx context.Context, userID int, performance string) (*domain.Resume, error)
	GetByUser(ctx context.Context, userID int) (*domain.Resume, error)
}
