package quiz

// Grade computes the GradedResult for a completed quiz. For each question in
// order, correctness is selected == correct; a question whose correct option
// was never resolved (CorrectIndex -1) counts wrong regardless of selection,
// and its correct answer text stays empty.
func Grade(topic string, q *Quiz, answers *AnswerStore) GradedResult {
	result := GradedResult{
		Topic: topic,
		Total: len(q.Questions),
	}

	for i, question := range q.Questions {
		selectedIndex, ok := answers.Get(i)
		if !ok {
			selectedIndex = -1
		}

		isCorrect := selectedIndex >= 0 && selectedIndex == question.CorrectIndex
		if isCorrect {
			result.Score++
		}

		userAnswerText := ""
		if selectedIndex >= 0 && selectedIndex < len(question.Options) {
			userAnswerText = question.Options[selectedIndex]
		}
		correctAnswerText := ""
		if question.CorrectIndex >= 0 && question.CorrectIndex < len(question.Options) {
			correctAnswerText = question.Options[question.CorrectIndex]
		}

		result.Details = append(result.Details, QuestionResult{
			Question:          question.Prompt,
			UserAnswerText:    userAnswerText,
			CorrectAnswerText: correctAnswerText,
			IsCorrect:         isCorrect,
			Options:           question.Options,
			CorrectIndex:      question.CorrectIndex,
			SelectedIndex:     selectedIndex,
		})
	}

	return result
}
