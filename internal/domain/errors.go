package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrProfileNotFound   = errors.New("profile not found")

	ErrMatchNotFound  = errors.New("match not found")
	ErrNotParticipant = errors.New("user is not part of this match")

	ErrSessionNotFound  = errors.New("interview session not found")
	ErrQuestionNotFound = errors.New("interview question not found")
	ErrNotSessionOwner  = errors.New("session does not belong to user")

	ErrCourseNotFound = errors.New("course progress not found")

	ErrResumeNotFound = errors.New("resume record not found")
	ErrAIUnavailable  = errors.New("ai service unavailable")

	ErrInvalidInput = errors.New("invalid input")
)
