package quiz

// AnswerStore tracks the user's in-progress selections, keyed by question
// index. Each question holds a single active selection; selecting again
// overwrites the prior choice.
type AnswerStore struct {
	selections map[int]int
}

// NewAnswerStore returns an empty store.
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{selections: make(map[int]int)}
}

// Select records the option chosen for a question, replacing any earlier
// selection for the same question.
func (s *AnswerStore) Select(questionIndex, optionIndex int) {
	s.selections[questionIndex] = optionIndex
}

// Get returns the selected option for a question, if any.
func (s *AnswerStore) Get(questionIndex int) (int, bool) {
	optionIndex, ok := s.selections[questionIndex]
	return optionIndex, ok
}

// Size is the number of questions with a selection.
func (s *AnswerStore) Size() int {
	return len(s.selections)
}

// IsComplete reports whether every question has exactly one answer.
func (s *AnswerStore) IsComplete(questionCount int) bool {
	return len(s.selections) == questionCount
}

// Reset clears all selections. Called at the start of each new quiz.
func (s *AnswerStore) Reset() {
	s.selections = make(map[int]int)
}
