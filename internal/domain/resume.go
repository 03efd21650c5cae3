package domain

import "time"

const (
	ResumePerformancePoor    = "poor"
	ResumePerformanceAverage = "average"
	ResumePerformanceGood    = "good"
)

// Resume tracks a user's resume-analysis history: the latest verdict,
// how many analyses were run, and when the last one happened.
type Resume struct {
	UserID       int       `json:"user_id" db:"user_id"`
	Performance  string    `json:"performance" db:"performance"`
	ResumeCount  int       `json:"resume_count" db:"resume_count"`
	LastParsedAt time.Time `json:"last_parsed_at" db:"last_parsed_at"`
}

// ResumePerformanceFor buckets an analysis score into a verdict.
func ResumePerformanceFor(score int) string {
	switch {
	case score >= 66:
		return ResumePerformanceGood
	case score >= 46:
		return ResumePerformanceAverage
	default:
		return ResumePerformancePoor
	}
}
