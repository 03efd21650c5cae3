package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/skillsage-backend/internal/domain"
)

type stubUserRepo struct{}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return &domain.User{ID: id, Username: fmt.Sprintf("user-%d", id)}, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

type stubInterviewRepo struct {
	completed []*domain.InterviewSession
	byMonth   map[string]int
}

func (r *stubInterviewRepo) CreateSession(ctx context.Context, s *domain.InterviewSession, q []*domain.InterviewQuestion) error {
	return nil
}

func (r *stubInterviewRepo) GetSession(ctx context.Context, id int) (*domain.InterviewSession, error) {
	return nil, domain.ErrSessionNotFound
}

func (r *stubInterviewRepo) GetQuestion(ctx context.Context, sessionID, order int) (*domain.InterviewQuestion, error) {
	return nil, domain.ErrQuestionNotFound
}

func (r *stubInterviewRepo) GetQuestionByID(ctx context.Context, id int) (*domain.InterviewQuestion, error) {
	return nil, domain.ErrQuestionNotFound
}

func (r *stubInterviewRepo) CountQuestions(ctx context.Context, sessionID int) (int, error) {
	return 0, nil
}

func (r *stubInterviewRepo) UpsertAnswer(ctx context.Context, a *domain.InterviewAnswer) error {
	return nil
}

func (r *stubInterviewRepo) CountAnswers(ctx context.Context, sessionID, userID int) (int, error) {
	return 0, nil
}

func (r *stubInterviewRepo) ListAnswers(ctx context.Context, sessionID, userID int) ([]*domain.InterviewAnswer, error) {
	return nil, nil
}

func (r *stubInterviewRepo) MarkCompleted(ctx context.Context, sessionID int) error { return nil }

func (r *stubInterviewRepo) CountCompleted(ctx context.Context, userID int) (int, error) {
	return len(r.completed), nil
}

func (r *stubInterviewRepo) ListCompleted(ctx context.Context, userID int, limit int) ([]*domain.InterviewSession, error) {
	if limit > len(r.completed) {
		limit = len(r.completed)
	}
	return r.completed[:limit], nil
}

func (r *stubInterviewRepo) CountCompletedByMonth(ctx context.Context, userID, year int) (map[string]int, error) {
	if r.byMonth == nil {
		return map[string]int{}, nil
	}
	return r.byMonth, nil
}

type stubCourseRepo struct {
	courses []*domain.CourseProgress
}

func (r *stubCourseRepo) CreateAll(ctx context.Context, p []*domain.CourseProgress) error { return nil }

func (r *stubCourseRepo) ListByUser(ctx context.Context, userID int) ([]*domain.CourseProgress, error) {
	return r.courses, nil
}

func (r *stubCourseRepo) GetByUserAndName(ctx context.Context, userID int, name string) (*domain.CourseProgress, error) {
	return nil, domain.ErrCourseNotFound
}

func (r *stubCourseRepo) Update(ctx context.Context, p *domain.CourseProgress) error { return nil }

type stubActivityRepo struct {
	streak int
	months map[string]int
}

func (r *stubActivityRepo) TouchToday(ctx context.Context, userID int, now time.Time) (int, error) {
	return r.streak, nil
}

func (r *stubActivityRepo) Streak(ctx context.Context, userID int) (int, error) {
	return r.streak, nil
}

func (r *stubActivityRepo) MonthCounts(ctx context.Context, userID int, year int) (map[string]int, error) {
	if r.months == nil {
		return map[string]int{}, nil
	}
	return r.months, nil
}

func TestGet_EmptyState(t *testing.T) {
	uc := NewDashboardUseCase(&stubInterviewRepo{}, &stubCourseRepo{}, &stubActivityRepo{streak: 1}, &stubUserRepo{})

	resp, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "user-1", resp.Username)
	assert.Equal(t, "Not yet started!", resp.QuickStats.LastInterview)
	assert.Equal(t, "Not yet started!", resp.QuickStats.LastCourse)
	assert.Equal(t, 1, resp.QuickStats.LearningStreak)
	assert.Equal(t, 0, resp.QuickStats.TotalPoints)
	assert.Len(t, resp.Activity, 12)
}

func TestGet_PointsAndLastActivity(t *testing.T) {
	interviewRepo := &stubInterviewRepo{
		completed: []*domain.InterviewSession{
			{Course: "System Design", Difficulty: "hard", Completed: true},
			{Course: "Go Basics", Difficulty: "easy", Completed: true},
		},
	}
	courseRepo := &stubCourseRepo{
		courses: []*domain.CourseProgress{
			{
				CourseName:       "Algorithm Interview Prep",
				Started:          true,
				CompletedModules: []string{"m1", "m2", "m3"},
				ProgressPercent:  20,
				LastUpdated:      time.Now(),
			},
		},
	}
	uc := NewDashboardUseCase(interviewRepo, courseRepo, &stubActivityRepo{streak: 4}, &stubUserRepo{})

	resp, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)

	// hard interview 50 + easy 15 + 3 modules * 10
	assert.Equal(t, 95, resp.QuickStats.TotalPoints)
	assert.Equal(t, "System Design", resp.QuickStats.LastInterview)
	assert.Equal(t, "Algorithm Interview Prep (20%)", resp.QuickStats.LastCourse)
	assert.Equal(t, 4, resp.QuickStats.LearningStreak)
}

func TestGet_ActivityChart(t *testing.T) {
	now := time.Now()
	janKey := fmt.Sprintf("%04d-01", now.Year())

	interviewRepo := &stubInterviewRepo{byMonth: map[string]int{janKey: 2}}
	activityRepo := &stubActivityRepo{streak: 1, months: map[string]int{janKey: 9}}
	uc := NewDashboardUseCase(interviewRepo, &stubCourseRepo{}, activityRepo, &stubUserRepo{})

	resp, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Activity, 12)
	assert.Equal(t, "Jan", resp.Activity[0].Month)
	assert.Equal(t, 9, resp.Activity[0].ActiveDays)
	assert.Equal(t, 2, resp.Activity[0].Interviews)

	// Future months are always empty.
	if int(now.Month()) < 12 {
		last := resp.Activity[11]
		assert.Equal(t, 0, last.ActiveDays)
		assert.Equal(t, 0, last.Interviews)
	}
}
