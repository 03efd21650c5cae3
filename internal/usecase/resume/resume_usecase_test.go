package resume

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/infrastructure/gemini"
)

type fakeResumeRepo struct {
	records map[int]*domain.Resume
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{records: make(map[int]*domain.Resume)}
}

func (r *fakeResumeRepo) RecordAnalysis(ctx context.Context, userID int, performance string) (*domain.Resume, error) {
	rec, ok := r.records[userID]
	if !ok {
		rec = &domain.Resume{UserID: userID}
		r.records[userID] = rec
	}
	rec.Performance = performance
	rec.ResumeCount++
	rec.LastParsedAt = time.Now()
	out := *rec
	return &out, nil
}

func (r *fakeResumeRepo) GetByUser(ctx context.Context, userID int) (*domain.Resume, error) {
	rec, ok := r.records[userID]
	if !ok {
		return nil, domain.ErrResumeNotFound
	}
	out := *rec
	return &out, nil
}

type stubAnalyzer struct {
	analysis *gemini.ResumeAnalysis
	err      error
	calls    int
}

func (s *stubAnalyzer) AnalyzeResume(ctx context.Context, role, experience, resumeText string) (*gemini.ResumeAnalysis, error) {
	s.calls++
	return s.analysis, s.err
}

func analyzeReq() *AnalyzeRequest {
	return &AnalyzeRequest{
		Role:       "Backend Developer",
		Experience: "middle",
		ResumeText: "Three years of Go and PostgreSQL.",
	}
}

func TestAnalyze_RecordsVerdictAndCountsRuns(t *testing.T) {
	repo := newFakeResumeRepo()
	analyzer := &stubAnalyzer{analysis: &gemini.ResumeAnalysis{Score: 80, Summary: "Solid resume."}}
	uc := NewResumeUseCase(repo, analyzer, time.Second)

	resp, err := uc.Analyze(context.Background(), 1, analyzeReq())
	require.NoError(t, err)
	assert.Equal(t, domain.ResumePerformanceGood, resp.Performance)
	assert.Equal(t, 1, resp.ResumeCount)
	assert.Equal(t, 80, resp.Analysis.Score)

	// A second run overwrites the verdict and bumps the counter.
	analyzer.analysis = &gemini.ResumeAnalysis{Score: 50}
	resp, err = uc.Analyze(context.Background(), 1, analyzeReq())
	require.NoError(t, err)
	assert.Equal(t, domain.ResumePerformanceAverage, resp.Performance)
	assert.Equal(t, 2, resp.ResumeCount)
}

func TestResumePerformanceBuckets(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{score: 100, want: domain.ResumePerformanceGood},
		{score: 66, want: domain.ResumePerformanceGood},
		{score: 65, want: domain.ResumePerformanceAverage},
		{score: 46, want: domain.ResumePerformanceAverage},
		{score: 45, want: domain.ResumePerformancePoor},
		{score: 0, want: domain.ResumePerformancePoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ResumePerformanceFor(tc.score), "score %d", tc.score)
	}
}

func TestAnalyze_FailureStillRecordsRun(t *testing.T) {
	repo := newFakeResumeRepo()
	analyzer := &stubAnalyzer{err: errors.New("model overloaded")}
	uc := NewResumeUseCase(repo, analyzer, time.Second)

	resp, err := uc.Analyze(context.Background(), 1, analyzeReq())
	require.Error(t, err)
	assert.Nil(t, resp)

	rec, err := repo.GetByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ResumePerformancePoor, rec.Performance)
	assert.Equal(t, 1, rec.ResumeCount)
}

func TestAnalyze_NilAnalyzer(t *testing.T) {
	repo := newFakeResumeRepo()
	uc := NewResumeUseCase(repo, nil, time.Second)

	_, err := uc.Analyze(context.Background(), 1, analyzeReq())
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	assert.Empty(t, repo.records, "no run is recorded when the analyzer is missing")
}

func TestStats_NotFound(t *testing.T) {
	uc := NewResumeUseCase(newFakeResumeRepo(), nil, time.Second)

	_, err := uc.Stats(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrResumeNotFound)
}
