package session

import "fmt"

// ValidationError represents an input validation error. It blocks the
// attempted action but never changes session state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmptyTopic         = &ValidationError{Message: "Please enter a topic"}
	ErrGenerationInFlight = &ValidationError{Message: "A quiz is still being generated, please wait"}
	ErrNoActiveQuiz       = &ValidationError{Message: "No quiz is in progress"}
)

// IncompleteError rejects a submission while some questions are unanswered.
type IncompleteError struct {
	Answered int
	Total    int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("please answer all questions before submitting (%d of %d answered)", e.Answered, e.Total)
}
