package domain

import "errors"

var (
	// ErrEmptyName is returned when an attempt starts without a participant name.
	ErrEmptyName = errors.New("participant name is empty")
	// ErrAlreadyStarted is returned when Start is called on a running or finished attempt.
	ErrAlreadyStarted = errors.New("attempt already started")
	// ErrNotInProgress is returned when an answer or advance arrives outside a running attempt.
	ErrNotInProgress = errors.New("attempt is not in progress")
	// ErrNotCompleted is returned when a result is requested before the attempt finished.
	ErrNotCompleted = errors.New("attempt is not completed")
	// ErrAnswerRequired is returned when advancing past an unanswered question.
	ErrAnswerRequired = errors.New("current question has no answer")
	// ErrUnknownQuestion indicates an answered question ID is not in the set.
	ErrUnknownQuestion = errors.New("question not found")
	// ErrQuestionsNotFound indicates the question set could not be loaded.
	ErrQuestionsNotFound = errors.New("question set not found")
	// ErrStoreNotConfigured indicates no score backing store is set up.
	ErrStoreNotConfigured = errors.New("score store not configured")
)
