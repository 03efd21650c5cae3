package resume

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/infrastructure/gemini"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

// Analyzer reviews resume text against a target role. The production
// implementation is the Gemini client.
type Analyzer interface {
	AnalyzeResume(ctx context.Context, role, experience, resumeText string) (*gemini.ResumeAnalysis, error)
}

type ResumeUseCase struct {
	resumeRepo repository.ResumeRepository
	analyzer   Analyzer
	genTimeout time.Duration
}

func NewResumeUseCase(resumeRepo repository.ResumeRepository, analyzer Analyzer, genTimeout time.Duration) *ResumeUseCase {
	return &ResumeUseCase{
		resumeRepo: resumeRepo,
		analyzer:   analyzer,
		genTimeout: genTimeout,
	}
}

// AnalyzeRequest carries resume text extracted client-side plus the
// role the user is targeting.
type AnalyzeRequest struct {
	Role       string `json:"role" binding:"required,max=100"`
	Experience string `json:"experience" binding:"required,max=50"`
	ResumeText string `json:"resume_text" binding:"required"`
}

// AnalyzeResponse pairs the model's breakdown with the user's running
// analysis stats.
type AnalyzeResponse struct {
	Analysis    *gemini.ResumeAnalysis `json:"analysis"`
	Performance string                 `json:"performance"`
	ResumeCount int                    `json:"resume_count"`
}

// Analyze runs the model review and records the verdict. A failed
// review still bumps the user's analysis counter, with the performance
// pinned to the lowest bucket, before the error is surfaced.
func (uc *ResumeUseCase) Analyze(ctx context.Context, userID int, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	if uc.analyzer == nil {
		return nil, domain.ErrAIUnavailable
	}

	genCtx, cancel := context.WithTimeout(ctx, uc.genTimeout)
	defer cancel()

	analysis, err := uc.analyzer.AnalyzeResume(genCtx, req.Role, req.Experience, req.ResumeText)
	if err != nil {
		if _, recErr := uc.resumeRepo.RecordAnalysis(ctx, userID, domain.ResumePerformancePoor); recErr != nil {
			return nil, fmt.Errorf("failed to record analysis: %w", recErr)
		}
		return nil, fmt.Errorf("failed to analyze resume: %w", err)
	}

	record, err := uc.resumeRepo.RecordAnalysis(ctx, userID, domain.ResumePerformanceFor(analysis.Score))
	if err != nil {
		return nil, fmt.Errorf("failed to record analysis: %w", err)
	}

	return &AnalyzeResponse{
		Analysis:    analysis,
		Performance: record.Performance,
		ResumeCount: record.ResumeCount,
	}, nil
}

// Stats returns the user's resume-analysis history.
func (uc *ResumeUseCase) Stats(ctx context.Context, userID int) (*domain.Resume, error) {
	return uc.resumeRepo.GetByUser(ctx, userID)
}
