package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/infrastructure/gemini"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

// Generator is the content-generation collaborator. The production
// implementation is the Gemini client.
type Generator interface {
	GenerateQuestions(ctx context.Context, course, difficulty string, count int) ([]gemini.GeneratedQuestion, error)
	ScoreAnswer(ctx context.Context, question, answer string) (*domain.RoundFeedback, error)
	SummarizeSession(ctx context.Context, pairs []gemini.QA) (*gemini.SessionSummary, error)
}

type InterviewUseCase struct {
	interviewRepo repository.InterviewRepository
	userRepo      repository.UserRepository
	generator     Generator
	genTimeout    time.Duration
}

func NewInterviewUseCase(
	interviewRepo repository.InterviewRepository,
	userRepo repository.UserRepository,
	generator Generator,
	genTimeout time.Duration,
) *InterviewUseCase {
	return &InterviewUseCase{
		interviewRepo: interviewRepo,
		userRepo:      userRepo,
		generator:     generator,
		genTimeout:    genTimeout,
	}
}

// StartRequest represents a session start request
type StartRequest struct {
	Course     string `json:"course" binding:"required,max=100"`
	Difficulty string `json:"difficulty" binding:"required,oneof=easy medium hard"`
}

// StartResponse carries the created session and its questions
type StartResponse struct {
	SessionID int                         `json:"session_id"`
	Questions []*domain.InterviewQuestion `json:"questions"`
	Username  string                      `json:"username"`
}

// AnswerRequest represents an answer submission
type AnswerRequest struct {
	SessionID  int    `json:"session_id" binding:"required"`
	Order      int    `json:"order_id" binding:"required,min=1"`
	AnswerText string `json:"answer_text"`
	TimeTaken  int    `json:"time_taken" binding:"omitempty,min=0"`
}

// AnswerResponse carries the saved transcript plus analysis
type AnswerResponse struct {
	Transcript        string `json:"transcript"`
	Feedback          string `json:"feedback"`
	ImprovementTip    string `json:"improvement_tip"`
	Rating            int    `json:"rating"`
	SessionID         int    `json:"session_id"`
	AnsweredQuestions int    `json:"answered_questions"`
	TotalQuestions    int    `json:"total_questions"`
	Completed         bool   `json:"completed"`
}

// Start generates questions for a course/difficulty and persists the
// session. Unlike answer scoring, generation failure is a hard error:
// there is no session to run without questions.
func (uc *InterviewUseCase) Start(ctx context.Context, userID int, req *StartRequest) (*StartResponse, error) {
	if uc.generator == nil {
		return nil, fmt.Errorf("question generation is unavailable")
	}

	count := domain.QuestionCountFor(req.Difficulty)

	genCtx, cancel := context.WithTimeout(ctx, uc.genTimeout)
	defer cancel()

	generated, err := uc.generator.GenerateQuestions(genCtx, req.Course, req.Difficulty, count)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	session := &domain.InterviewSession{
		UserID:        userID,
		Course:        req.Course,
		Difficulty:    req.Difficulty,
		TotalDuration: count, // one minute per question
	}
	questions := make([]*domain.InterviewQuestion, 0, len(generated))
	for i, q := range generated {
		order := q.Order
		if order == 0 {
			order = i + 1
		}
		allocated := q.AllocatedTime
		if allocated == 0 {
			allocated = 60
		}
		questions = append(questions, &domain.InterviewQuestion{
			QuestionText:  q.Question,
			AllocatedTime: allocated,
			Order:         order,
		})
	}

	if err := uc.interviewRepo.CreateSession(ctx, session, questions); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StartResponse{
		SessionID: session.ID,
		Questions: questions,
		Username:  user.Username,
	}, nil
}

// SubmitAnswer stores the answer and returns an analysis of it.
// Analysis failure degrades to a placeholder; the answer is saved
// either way and session progress still advances.
func (uc *InterviewUseCase) SubmitAnswer(ctx context.Context, userID int, req *AnswerRequest) (*AnswerResponse, error) {
	session, err := uc.interviewRepo.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrNotSessionOwner
	}

	question, err := uc.interviewRepo.GetQuestion(ctx, req.SessionID, req.Order)
	if err != nil {
		return nil, err
	}

	text := req.AnswerText
	if text == "" {
		text = "No verbal answer provided."
	}

	feedback := uc.analyze(ctx, question.QuestionText, text)

	answer := &domain.InterviewAnswer{
		QuestionID: question.ID,
		UserID:     userID,
		AnswerText: text,
		TimeTaken:  req.TimeTaken,
		Feedback:   feedback.Feedback,
		Rating:     feedback.Rating,
	}
	if err := uc.interviewRepo.UpsertAnswer(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	total, err := uc.interviewRepo.CountQuestions(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	answered, err := uc.interviewRepo.CountAnswers(ctx, session.ID, userID)
	if err != nil {
		return nil, err
	}

	completed := session.Completed
	if !completed && answered >= total {
		if err := uc.interviewRepo.MarkCompleted(ctx, session.ID); err != nil {
			return nil, err
		}
		completed = true
	}

	return &AnswerResponse{
		Transcript:        text,
		Feedback:          feedback.Feedback,
		ImprovementTip:    feedback.Tip,
		Rating:            feedback.Rating,
		SessionID:         session.ID,
		AnsweredQuestions: answered,
		TotalQuestions:    total,
		Completed:         completed,
	}, nil
}

// Summary produces the model's closing assessment of a session,
// degrading to a fixed result when the collaborator fails.
func (uc *InterviewUseCase) Summary(ctx context.Context, userID, sessionID int) (*gemini.SessionSummary, error) {
	session, err := uc.interviewRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrNotSessionOwner
	}

	answers, err := uc.interviewRepo.ListAnswers(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, domain.ErrInvalidInput
	}

	pairs := make([]gemini.QA, 0, len(answers))
	for _, a := range answers {
		question, err := uc.interviewRepo.GetQuestionByID(ctx, a.QuestionID)
		if err != nil {
			pairs = append(pairs, gemini.QA{Answer: a.AnswerText})
			continue
		}
		pairs = append(pairs, gemini.QA{Question: question.QuestionText, Answer: a.AnswerText})
	}

	degraded := &gemini.SessionSummary{
		AverageRating: 3.0,
		Feedback:      "Interview completed. Automated summary was unavailable.",
		Stars:         "***",
	}
	if uc.generator == nil {
		return degraded, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, uc.genTimeout)
	defer cancel()

	summary, err := uc.generator.SummarizeSession(genCtx, pairs)
	if err != nil || summary == nil {
		return degraded, nil
	}
	return summary, nil
}

func (uc *InterviewUseCase) analyze(ctx context.Context, question, answer string) *domain.RoundFeedback {
	degraded := &domain.RoundFeedback{
		Feedback: "Analysis not available.",
		Rating:   0,
		Tip:      "Keep practicing to improve.",
	}
	if uc.generator == nil || len(answer) <= 5 {
		return degraded
	}

	genCtx, cancel := context.WithTimeout(ctx, uc.genTimeout)
	defer cancel()

	feedback, err := uc.generator.ScoreAnswer(genCtx, question, answer)
	if err != nil || feedback == nil {
		return degraded
	}
	return feedback
}
