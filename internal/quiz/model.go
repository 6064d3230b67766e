// Package quiz holds the in-memory quiz model: normalization of the raw
// server payload, the per-session answer store, and local grading.
package quiz

// Question is a single multiple-choice question. CorrectIndex is the
// zero-based position of the correct option, or -1 when the server's
// correctness indicator could not be resolved against the options.
type Question struct {
	Prompt       string
	Options      []string
	CorrectIndex int
}

// Quiz is the canonical in-memory quiz. A new Quiz fully replaces any
// previous one; it is never partially mutated.
type Quiz struct {
	Title     string
	Questions []Question
}

// QuestionResult is the graded outcome of a single question.
type QuestionResult struct {
	Question          string   `json:"question"`
	UserAnswerText    string   `json:"user_answer"`
	CorrectAnswerText string   `json:"correct_answer"`
	IsCorrect         bool     `json:"is_correct"`
	Options           []string `json:"options"`
	CorrectIndex      int      `json:"correct_index"`
	SelectedIndex     int      `json:"selected_index"`
}

// GradedResult is the computed outcome of a completed submission. It is
// derived once per submission and never stored locally.
type GradedResult struct {
	Topic   string
	Score   int
	Total   int
	Details []QuestionResult
}
