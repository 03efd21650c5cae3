package repository

import (
	"context"
	"time"

	"github.com/skillsage/skillsage-backend/internal/domain"
)

type CourseRepository interface {
	CreateAll(ctx context.Context, progresses []*domain.CourseProgress) error
	ListByUser(ctx context.Context, userID int) ([]*domain.CourseProgress, error)
	GetByUserAndName(ctx context.Context, userID int, courseName string) (*domain.CourseProgress, error)
	Update(ctx context.Context, progress *domain.CourseProgress) error
}

// ActivityRepository tracks per-user learning activity: the consecutive
// day streak and month-wise active day counts.
type ActivityRepository interface {
	// TouchToday records activity for today and returns the current
	// streak length. Repeated calls on the same day are idempotent.
	TouchToday(ctx context.Context, userID int, now time.Time) (int, error)
	Streak(ctx context.Context, userID int) (int, error)
	MonthCounts(ctx context.Context, userID int, year int) (map[string]int, error)
}
