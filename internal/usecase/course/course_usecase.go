package course

import (
	"context"
	"fmt"

	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
	"github.com/skillsage/skillsage-backend/internal/usecase/profile"
)

// DefaultCourse seeds the catalog for new users.
type DefaultCourse struct {
	Name         string
	TotalModules int
}

var DefaultCourses = []DefaultCourse{
	{Name: "Full Stack Developer Path", TotalModules: 12},
	{Name: "System Design Mastery", TotalModules: 12},
	{Name: "Algorithm Interview Prep", TotalModules: 15},
	{Name: "Docker and Kubernetes Deep Dive", TotalModules: 8},
}

const moduleXP = 10

type CourseUseCase struct {
	courseRepo repository.CourseRepository
	profileUC  *profile.ProfileUseCase
}

func NewCourseUseCase(courseRepo repository.CourseRepository, profileUC *profile.ProfileUseCase) *CourseUseCase {
	return &CourseUseCase{
		courseRepo: courseRepo,
		profileUC:  profileUC,
	}
}

// StartCourseRequest marks a course as started
type StartCourseRequest struct {
	CourseName string `json:"course_name" binding:"required,max=255"`
}

// CompleteModuleRequest records a completed module
type CompleteModuleRequest struct {
	CourseName string `json:"course_name" binding:"required,max=255"`
	ModuleID   string `json:"module_id" binding:"required,max=50"`
}

// CompleteModuleResponse reports new progress plus any xp award
type CompleteModuleResponse struct {
	ProgressPercent  float64           `json:"progress_percent"`
	CompletedModules int               `json:"completed_modules_count"`
	IsCompleted      bool              `json:"is_completed"`
	AlreadyCompleted bool              `json:"already_completed"`
	XP               *profile.XPResult `json:"xp,omitempty"`
}

// ListCourses returns the user's course progress, seeding the default
// catalog on first call.
func (uc *CourseUseCase) ListCourses(ctx context.Context, userID int) ([]*domain.CourseProgress, error) {
	progresses, err := uc.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(progresses) > 0 {
		return progresses, nil
	}

	seeded := make([]*domain.CourseProgress, 0, len(DefaultCourses))
	for _, c := range DefaultCourses {
		seeded = append(seeded, &domain.CourseProgress{
			UserID:           userID,
			CourseName:       c.Name,
			TotalModules:     c.TotalModules,
			CompletedModules: []string{},
		})
	}
	if err := uc.courseRepo.CreateAll(ctx, seeded); err != nil {
		return nil, fmt.Errorf("failed to seed courses: %w", err)
	}
	return uc.courseRepo.ListByUser(ctx, userID)
}

// StartCourse flags the course as started. Idempotent.
func (uc *CourseUseCase) StartCourse(ctx context.Context, userID int, req *StartCourseRequest) (*domain.CourseProgress, error) {
	progress, err := uc.courseRepo.GetByUserAndName(ctx, userID, req.CourseName)
	if err != nil {
		return nil, err
	}
	if progress.Started {
		return progress, nil
	}

	progress.Started = true
	if err := uc.courseRepo.Update(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// CompleteModule records the module, recomputes progress and awards xp.
// A module completed twice changes nothing and awards nothing.
func (uc *CourseUseCase) CompleteModule(ctx context.Context, userID int, req *CompleteModuleRequest) (*CompleteModuleResponse, error) {
	progress, err := uc.courseRepo.GetByUserAndName(ctx, userID, req.CourseName)
	if err != nil {
		return nil, err
	}

	if !progress.AddModule(req.ModuleID) {
		return &CompleteModuleResponse{
			ProgressPercent:  progress.ProgressPercent,
			CompletedModules: len(progress.CompletedModules),
			IsCompleted:      progress.IsCompleted,
			AlreadyCompleted: true,
		}, nil
	}

	if err := uc.courseRepo.Update(ctx, progress); err != nil {
		return nil, err
	}

	resp := &CompleteModuleResponse{
		ProgressPercent:  progress.ProgressPercent,
		CompletedModules: len(progress.CompletedModules),
		IsCompleted:      progress.IsCompleted,
	}

	// XP failure must not undo the module completion.
	if xp, err := uc.profileUC.AwardXP(ctx, userID, moduleXP); err == nil {
		resp.XP = xp
	}
	return resp, nil
}
