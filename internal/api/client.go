package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/studymate-app/studymate/internal/quiz"
)

const (
	generateQuizPath  = "/generate_quiz"
	saveResultsPath   = "/save_quiz_results"
	generateNotesPath = "/generate_notes"

	// DefaultMaxRetryAttempts bounds retries of the generation calls, which
	// sit in front of a slow AI backend and fail transiently.
	DefaultMaxRetryAttempts = 3
)

// HTTPClient talks to the study platform over JSON/HTTP.
type HTTPClient struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

var _ Client = (*HTTPClient)(nil)

// NewClient creates a client for the platform at baseURL. The session token
// is sent as a bearer header; an invalid token surfaces as SessionExpiredError.
func NewClient(baseURL, token string, retryAttempts uint) *HTTPClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}

	return &HTTPClient{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *HTTPClient) Close() error {
	return client.httpClient.Close()
}

type generateQuizRequest struct {
	Topic string `json:"topic"`
}

// GenerateQuiz asks the platform for a quiz on the topic. Transient failures
// (network, 429, 5xx) are retried with backoff; anything else fails fast.
func (client *HTTPClient) GenerateQuiz(ctx context.Context, topic string) (quiz.RawQuiz, error) {
	var result quiz.RawQuiz
	if err := retry.Do(
		func() error {
			response, err := client.generateQuiz(ctx, topic)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying quiz generation",
				"attempt", n+1,
				"topic", topic,
				"error", err)
		}),
		retry.LastErrorOnly(true),
	); err != nil {
		return quiz.RawQuiz{}, err
	}
	return result, nil
}

func (client *HTTPClient) generateQuiz(ctx context.Context, topic string) (quiz.RawQuiz, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(generateQuizRequest{Topic: topic}).
		SetResult(&quiz.RawQuiz{}).
		Post(generateQuizPath)
	if err != nil {
		return quiz.RawQuiz{}, &NetworkError{Err: err}
	}
	if err := client.checkStatus(response); err != nil {
		return quiz.RawQuiz{}, err
	}

	responseBody := response.Result().(*quiz.RawQuiz)
	if responseBody.Error != "" {
		return quiz.RawQuiz{}, &APIError{StatusCode: response.StatusCode(), Message: responseBody.Error}
	}

	slog.Default().Debug("quiz generation response",
		"topic", topic,
		"questionCount", len(responseBody.Questions),
	)
	return *responseBody, nil
}

type saveResultsRequest struct {
	Topic  string                `json:"topic"`
	Score  int                   `json:"score"`
	Total  int                   `json:"total"`
	Detail []quiz.QuestionResult `json:"detail"`
}

type saveResultsResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SaveResults persists a graded quiz outcome. Callers treat a failure here as
// a warning only; the result has already been shown to the user.
func (client *HTTPClient) SaveResults(ctx context.Context, result quiz.GradedResult) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(saveResultsRequest{
			Topic:  result.Topic,
			Score:  result.Score,
			Total:  result.Total,
			Detail: result.Details,
		}).
		SetResult(&saveResultsResponse{}).
		Post(saveResultsPath)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if err := client.checkStatus(response); err != nil {
		return err
	}

	responseBody := response.Result().(*saveResultsResponse)
	if !responseBody.Success {
		return &APIError{StatusCode: response.StatusCode(), Message: responseBody.Error}
	}
	return nil
}

type generateNotesRequest struct {
	Topic  string `json:"topic"`
	Format string `json:"format"`
}

// GenerateNotes asks the platform to generate a study-notes document for the
// topic in the requested format.
func (client *HTTPClient) GenerateNotes(ctx context.Context, topic, format string) (NotesResponse, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(generateNotesRequest{Topic: topic, Format: format}).
		SetResult(&NotesResponse{}).
		Post(generateNotesPath)
	if err != nil {
		return NotesResponse{}, &NetworkError{Err: err}
	}
	if err := client.checkStatus(response); err != nil {
		return NotesResponse{}, err
	}

	responseBody := response.Result().(*NotesResponse)
	if responseBody.Error != "" {
		return NotesResponse{}, &APIError{StatusCode: response.StatusCode(), Message: responseBody.Error}
	}
	return *responseBody, nil
}

// DownloadFile fetches url and writes the bytes to destinationPath. The url
// may be absolute or relative to the client's base URL.
func (client *HTTPClient) DownloadFile(ctx context.Context, url, destinationPath string) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if err := client.checkStatus(response); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(destinationPath), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(destinationPath), err)
	}
	if err := os.WriteFile(destinationPath, response.Bytes(), 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", destinationPath, err)
	}
	return nil
}

// checkStatus converts a non-success response into the typed error taxonomy.
func (client *HTTPClient) checkStatus(response *resty.Response) error {
	if !response.IsError() {
		return nil
	}
	if response.StatusCode() == http.StatusUnauthorized {
		return &SessionExpiredError{}
	}
	return &APIError{StatusCode: response.StatusCode()}
}
