// Package notes requests AI-generated study notes and downloads the
// resulting document. It shares no state with the quiz session.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/studymate-app/studymate/internal/api"
	"github.com/studymate-app/studymate/internal/notify"
)

// SupportedFormats are the document formats the platform generates.
var SupportedFormats = []string{"pdf", "docx", "txt"}

// ValidationError represents an input validation error; it is reported
// before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var ErrEmptyTopic = &ValidationError{Message: "Please enter a topic"}

// Download is the outcome of a successful notes request.
type Download struct {
	Path  string
	Entry HistoryEntry
	Notes api.NotesResponse
}

// Controller orchestrates the notes flow: validate, request generation,
// download the document, notify, and log the download.
type Controller struct {
	client    api.Client
	notifier  notify.Notifier
	history   *History
	outputDir string

	// now is replaceable so tests can pin history timestamps.
	now func() time.Time
}

// NewController creates a notes controller writing downloads into outputDir.
func NewController(client api.Client, notifier notify.Notifier, history *History, outputDir string) *Controller {
	return &Controller{
		client:    client,
		notifier:  notifier,
		history:   history,
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Request generates notes for topic in the given format and downloads the
// document. Any failure aborts the whole flow: nothing is downloaded and no
// history entry is produced. A notification failure alone does not abort;
// the download has already succeeded at that point.
func (c *Controller) Request(ctx context.Context, topic, format string) (Download, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Download{}, ErrEmptyTopic
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(SupportedFormats, format) {
		return Download{}, &ValidationError{
			Message: fmt.Sprintf("unsupported format %q, expected one of: %s", format, strings.Join(SupportedFormats, ", ")),
		}
	}

	response, err := c.client.GenerateNotes(ctx, topic, format)
	if err != nil {
		return Download{}, err
	}
	if response.DownloadURL == "" {
		return Download{}, &api.APIError{Message: "the server did not provide a download link"}
	}

	filename := response.Filename
	if filename == "" {
		filename = defaultFilename(topic, format)
	}
	destinationPath := filepath.Join(c.outputDir, filename)

	if err := c.client.DownloadFile(ctx, response.DownloadURL, destinationPath); err != nil {
		return Download{}, err
	}

	if err := c.notifier.Notify(
		"Notes ready",
		fmt.Sprintf("Your notes on %q were downloaded as %s", topic, filename),
	); err != nil {
		slog.Default().Warn("Failed to send a desktop notification", "error", err)
	}

	entry := HistoryEntry{
		Timestamp: c.now(),
		Format:    format,
		Filename:  filename,
		Location:  destinationPath,
		URL:       response.DownloadURL,
	}
	c.history.Add(entry)

	return Download{Path: destinationPath, Entry: entry, Notes: response}, nil
}

// History returns the download log backing this controller.
func (c *Controller) History() *History {
	return c.history
}

func defaultFilename(topic, format string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, topic)
	return fmt.Sprintf("notes_%s.%s", strings.ToLower(sanitized), format)
}
