package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

type DashboardUseCase struct {
	interviewRepo repository.InterviewRepository
	courseRepo    repository.CourseRepository
	activityRepo  repository.ActivityRepository
	userRepo      repository.UserRepository
}

func NewDashboardUseCase(
	interviewRepo repository.InterviewRepository,
	courseRepo repository.CourseRepository,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		interviewRepo: interviewRepo,
		courseRepo:    courseRepo,
		activityRepo:  activityRepo,
		userRepo:      userRepo,
	}
}

// MonthActivity is one bar of the yearly activity chart.
type MonthActivity struct {
	Month      string `json:"month"`
	ActiveDays int    `json:"activeDays"`
	Interviews int    `json:"interviews"`
}

// QuickStats summarizes the user's recent performance.
type QuickStats struct {
	LastInterview  string `json:"last_interview"`
	LastCourse     string `json:"last_course"`
	LearningStreak int    `json:"learning_days_streak"`
	TotalPoints    int    `json:"total_points"`
}

// Response is the dashboard payload.
type Response struct {
	Username   string          `json:"username"`
	QuickStats QuickStats      `json:"quick_stats"`
	Activity   []MonthActivity `json:"activity_performance"`
}

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Get builds the dashboard. Opening the dashboard counts as activity
// for the day, which is what advances the streak.
func (uc *DashboardUseCase) Get(ctx context.Context, userID int) (*Response, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	streak, err := uc.activityRepo.TouchToday(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	points, err := uc.totalPoints(ctx, userID)
	if err != nil {
		return nil, err
	}

	lastInterview := "Not yet started!"
	if sessions, err := uc.interviewRepo.ListCompleted(ctx, userID, 1); err == nil && len(sessions) > 0 {
		lastInterview = sessions[0].Course
	}

	lastCourse := "Not yet started!"
	if courses, err := uc.courseRepo.ListByUser(ctx, userID); err == nil {
		var latest *domain.CourseProgress
		for _, c := range courses {
			if c.Started && (latest == nil || c.LastUpdated.After(latest.LastUpdated)) {
				latest = c
			}
		}
		if latest != nil {
			lastCourse = fmt.Sprintf("%s (%.0f%%)", latest.CourseName, latest.ProgressPercent)
		}
	}

	activity, err := uc.yearActivity(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &Response{
		Username: user.Username,
		QuickStats: QuickStats{
			LastInterview:  lastInterview,
			LastCourse:     lastCourse,
			LearningStreak: streak,
			TotalPoints:    points,
		},
		Activity: activity,
	}, nil
}

// totalPoints scores completed interviews by difficulty and completed
// modules at 10 points each.
func (uc *DashboardUseCase) totalPoints(ctx context.Context, userID int) (int, error) {
	points := 0

	sessions, err := uc.interviewRepo.ListCompleted(ctx, userID, 1000)
	if err != nil {
		return 0, err
	}
	for _, s := range sessions {
		points += domain.InterviewPointsFor(s.Difficulty)
	}

	courses, err := uc.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, c := range courses {
		points += len(c.CompletedModules) * 10
	}

	return points, nil
}

func (uc *DashboardUseCase) yearActivity(ctx context.Context, userID int, now time.Time) ([]MonthActivity, error) {
	counts, err := uc.activityRepo.MonthCounts(ctx, userID, now.Year())
	if err != nil {
		return nil, err
	}
	interviews, err := uc.interviewRepo.CountCompletedByMonth(ctx, userID, now.Year())
	if err != nil {
		return nil, err
	}

	activity := make([]MonthActivity, 0, 12)
	for m := 1; m <= 12; m++ {
		key := fmt.Sprintf("%04d-%02d", now.Year(), m)
		days := counts[key]
		done := interviews[key]
		if m > int(now.Month()) {
			days, done = 0, 0
		}
		activity = append(activity, MonthActivity{
			Month:      monthAbbr[m-1],
			ActiveDays: days,
			Interviews: done,
		})
	}
	return activity, nil
}
