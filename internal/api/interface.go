// Package api is the HTTP client for the study platform's JSON endpoints:
// quiz generation, result persistence, notes generation and file download.
package api

import (
	"context"

	"github.com/studymate-app/studymate/internal/quiz"
)

//go:generate mockgen -source=interface.go -destination=../mocks/api/mock_client.go -package=mock_api

// Client defines the platform operations used by the quiz and notes flows.
type Client interface {
	GenerateQuiz(ctx context.Context, topic string) (quiz.RawQuiz, error)
	SaveResults(ctx context.Context, result quiz.GradedResult) error
	GenerateNotes(ctx context.Context, topic, format string) (NotesResponse, error)
	DownloadFile(ctx context.Context, url, destinationPath string) error
}

// NotesResponse is a successful generate-notes payload. DownloadURL points at
// the generated document; ContentMarkdown carries the raw generated text.
type NotesResponse struct {
	DownloadURL     string `json:"download_url"`
	Filename        string `json:"filename"`
	ContentMarkdown string `json:"content_markdown"`
	Error           string `json:"error,omitempty"`
}
