package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/studymate-app/studymate/internal/quiz"
)

// QuizView renders quiz data to the terminal. It implements
// session.Renderer and owns every presentation concern; the controllers only
// hand it plain data.
type QuizView struct {
	writer io.Writer
	bold   *color.Color
	italic *color.Color
	green  *color.Color
	red    *color.Color
}

// NewQuizView creates a view writing to w.
func NewQuizView(w io.Writer) *QuizView {
	return &QuizView{
		writer: w,
		bold:   color.New(color.Bold),
		italic: color.New(color.Italic),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
	}
}

// OptionLabel is the letter shown next to an option.
func OptionLabel(optionIndex int) string {
	return string(rune('A' + optionIndex))
}

// RenderQuiz prints the full quiz, question by question.
func (v *QuizView) RenderQuiz(q *quiz.Quiz) {
	fmt.Fprintln(v.writer)
	v.bold.Fprintf(v.writer, "%s\n", q.Title)
	for i, question := range q.Questions {
		fmt.Fprintln(v.writer)
		v.bold.Fprintf(v.writer, "Q%d. ", i+1)
		fmt.Fprintln(v.writer, question.Prompt)
		for j, option := range question.Options {
			fmt.Fprintf(v.writer, "  %s. %s\n", OptionLabel(j), option)
		}
	}
	fmt.Fprintln(v.writer)
}

// RenderResult prints the score and a per-question breakdown.
func (v *QuizView) RenderResult(result quiz.GradedResult) {
	fmt.Fprintln(v.writer)
	v.bold.Fprintf(v.writer, "You scored %d out of %d\n", result.Score, result.Total)
	fmt.Fprintln(v.writer)

	for i, detail := range result.Details {
		if detail.IsCorrect {
			fmt.Fprint(v.writer, "✅ ")
			v.green.Fprintf(v.writer, "Q%d. %s\n", i+1, detail.Question)
			fmt.Fprintf(v.writer, "   Your answer: %s\n", detail.UserAnswerText)
			continue
		}

		fmt.Fprint(v.writer, "❌ ")
		v.red.Fprintf(v.writer, "Q%d. %s\n", i+1, detail.Question)
		fmt.Fprintf(v.writer, "   Your answer: %s\n", detail.UserAnswerText)
		correctAnswer := detail.CorrectAnswerText
		if correctAnswer == "" {
			correctAnswer = "(not provided by the server)"
		}
		fmt.Fprintf(v.writer, "   Correct answer: %s\n", v.italic.Sprintf("%s", correctAnswer))
	}
	fmt.Fprintln(v.writer)
}
