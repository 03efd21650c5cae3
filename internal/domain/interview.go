package domain

import "time"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type InterviewSession struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Course        string    `json:"course" db:"course"`
	Difficulty    string    `json:"difficulty" db:"difficulty"`
	TotalDuration int       `json:"total_duration" db:"total_duration"`
	Completed     bool      `json:"completed" db:"completed"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type InterviewQuestion struct {
	ID            int    `json:"id" db:"id"`
	SessionID     int    `json:"session_id" db:"session_id"`
	QuestionText  string `json:"question" db:"question_text"`
	AllocatedTime int    `json:"allocated_time" db:"allocated_time"`
	Order         int    `json:"order" db:"question_order"`
}

type InterviewAnswer struct {
	ID          int       `json:"id" db:"id"`
	QuestionID  int       `json:"question_id" db:"question_id"`
	UserID      int       `json:"user_id" db:"user_id"`
	AnswerText  string    `json:"answer_text" db:"answer_text"`
	TimeTaken   int       `json:"time_taken" db:"time_taken"`
	Feedback    string    `json:"feedback" db:"feedback"`
	Rating      int       `json:"rating" db:"rating"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// QuestionCountFor maps difficulty to how many questions a session gets.
func QuestionCountFor(difficulty string) int {
	switch difficulty {
	case DifficultyMedium:
		return 10
	case DifficultyHard:
		return 15
	default:
		return 5
	}
}

// InterviewPointsFor maps difficulty to the points a completed session awards.
func InterviewPointsFor(difficulty string) int {
	switch difficulty {
	case DifficultyHard:
		return 50
	case DifficultyMedium:
		return 25
	default:
		return 15
	}
}
