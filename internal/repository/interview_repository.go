package repository

import (
	"context"

	"github.com/skillsage/skillsage-backend/internal/domain"
)

type InterviewRepository interface {
	CreateSession(ctx context.Context, session *domain.InterviewSession, questions []*domain.InterviewQuestion) error
	GetSession(ctx context.Context, id int) (*domain.InterviewSession, error)
	GetQuestion(ctx context.Context, sessionID, order int) (*domain.InterviewQuestion, error)
	GetQuestionByID(ctx context.Context, id int) (*domain.InterviewQuestion, error)
	CountQuestions(ctx context.Context, sessionID int) (int, error)

	// UpsertAnswer overwrites any previous answer by the same user to
	// the same question.
	UpsertAnswer(ctx context.Context, answer *domain.InterviewAnswer) error
	CountAnswers(ctx context.Context, sessionID, userID int) (int, error)
	ListAnswers(ctx context.Context, sessionID, userID int) ([]*domain.InterviewAnswer, error)

	MarkCompleted(ctx context.Context, sessionID int) error
	CountCompleted(ctx context.Context, userID int) (int, error)
	ListCompleted(ctx context.Context, userID int, limit int) ([]*domain.InterviewSession, error)

	// CountCompletedByMonth groups a year's completed sessions by
	// YYYY-MM key.
	CountCompletedByMonth(ctx context.Context, userID, year int) (map[string]int, error)
}
