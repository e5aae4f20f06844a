package util

import "errors"

var (
	ErrCredentialsRequired = errors.New("Email and password are required")
	ErrEmailRegistered     = errors.New("User with this email already exists")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrUserNotFound        = errors.New("User not found")
	ErrUserInactive        = errors.New("User account is inactive")
	ErrPermissionDenied    = errors.New("Unauthorized")
	ErrInvalidDOB          = errors.New("Invalid date of birth format. Use YYYY-MM-DD")

	ErrSubjectNameRequired  = errors.New("Subject name is required")
	ErrChapterNameRequired  = errors.New("Chapter name is required")
	ErrSubjectNotFound      = errors.New("Subject not found")
	ErrChapterNotFound      = errors.New("Chapter not found")
	ErrQuizNotFound         = errors.New("Quiz not found")
	ErrQuestionNotFound     = errors.New("Question not found")
	ErrInvalidQuizDate      = errors.New("Invalid date format. Use YYYY-MM-DD")
	ErrInvalidQuizDuration  = errors.New("Invalid time duration format. Use HH:MM")
	ErrQuestionRequired     = errors.New("Quiz ID, question statement, and correct option are required")
	ErrInvalidCorrectOption = errors.New("Invalid correct option. It should be an integer between 1 and 4")

	ErrScoreRequired        = errors.New("Quiz ID and total score are required")
	ErrScoreNotFound        = errors.New("Score not found")
	ErrQuizAlreadyAttempted = errors.New("Quiz already attempted")
	ErrRecordingRequired    = errors.New("At least one recording file or recording_url is required")

	ErrMessageRequired   = errors.New("Recipient and message are required")
	ErrRecipientNotFound = errors.New("Recipient not found")
)
