package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate-app/studymate/internal/quiz"
)

func TestHTTPClient_GenerateQuiz(t *testing.T) {
	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantQuestionCount int
		wantErrorCheck    func(t *testing.T, err error)
	}{
		{
			name: "Success",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/generate_quiz", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

				var reqBody map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
				assert.Equal(t, "Photosynthesis", reqBody["topic"])

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{
					"questions": [
						{"question": "Q1", "options": {"A": "Sun", "B": "Moon", "C": "Star", "D": "Cloud"}, "answer": "A"},
						{"question": "Q2", "options": {"A": "CO2", "B": "O2", "C": "N2", "D": "H2"}, "answer": "CO2"}
					]
				}`))
			},
			wantQuestionCount: 2,
		},
		{
			name: "Embedded error field",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"error": "AI service not configured"}`))
			},
			wantErrorCheck: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "AI service not configured", apiErr.Message)
			},
		},
		{
			name: "Expired session",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErrorCheck: func(t *testing.T, err error) {
				var sessionExpired *SessionExpiredError
				assert.ErrorAs(t, err, &sessionExpired)
			},
		},
		{
			name: "Bad request",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantErrorCheck: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tc.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-token", 0)
			defer func() {
				_ = client.Close()
			}()

			got, err := client.GenerateQuiz(context.Background(), "Photosynthesis")

			if tc.wantErrorCheck != nil {
				require.Error(t, err)
				tc.wantErrorCheck(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got.Questions, tc.wantQuestionCount)
		})
	}
}

func TestHTTPClient_GenerateQuiz_RetriesServerErrors(t *testing.T) {
	var requestCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestCount.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"questions": [{"question": "Q1", "options": ["a", "b"], "answer": "A"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 3)
	defer func() {
		_ = client.Close()
	}()

	got, err := client.GenerateQuiz(context.Background(), "Photosynthesis")

	require.NoError(t, err)
	assert.Len(t, got.Questions, 1)
	assert.Equal(t, int32(3), requestCount.Load())
}

func TestHTTPClient_GenerateQuiz_DoesNotRetryClientErrors(t *testing.T) {
	var requestCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 3)
	defer func() {
		_ = client.Close()
	}()

	_, err := client.GenerateQuiz(context.Background(), "Photosynthesis")

	var sessionExpired *SessionExpiredError
	require.ErrorAs(t, err, &sessionExpired)
	assert.Equal(t, int32(1), requestCount.Load())
}

func TestHTTPClient_SaveResults(t *testing.T) {
	result := quiz.GradedResult{
		Topic: "Photosynthesis",
		Score: 1,
		Total: 2,
		Details: []quiz.QuestionResult{
			{Question: "Q1", UserAnswerText: "Sun", CorrectAnswerText: "Sun", IsCorrect: true},
			{Question: "Q2", UserAnswerText: "O2", CorrectAnswerText: "CO2", IsCorrect: false},
		},
	}

	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantErrorCheck    func(t *testing.T, err error)
	}{
		{
			name: "Success",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/save_quiz_results", r.URL.Path)

				var reqBody struct {
					Topic  string                `json:"topic"`
					Score  int                   `json:"score"`
					Total  int                   `json:"total"`
					Detail []quiz.QuestionResult `json:"detail"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
				assert.Equal(t, "Photosynthesis", reqBody.Topic)
				assert.Equal(t, 1, reqBody.Score)
				assert.Equal(t, 2, reqBody.Total)
				assert.Len(t, reqBody.Detail, 2)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"success": true}`))
			},
		},
		{
			name: "Server reports a failure",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"success": false, "error": "db down"}`))
			},
			wantErrorCheck: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "db down", apiErr.Message)
			},
		},
		{
			name: "Expired session",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErrorCheck: func(t *testing.T, err error) {
				var sessionExpired *SessionExpiredError
				assert.ErrorAs(t, err, &sessionExpired)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tc.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL, "", 0)
			defer func() {
				_ = client.Close()
			}()

			err := client.SaveResults(context.Background(), result)

			if tc.wantErrorCheck != nil {
				require.Error(t, err)
				tc.wantErrorCheck(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestHTTPClient_SaveResults_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "", 0)
	defer func() {
		_ = client.Close()
	}()

	err := client.SaveResults(context.Background(), quiz.GradedResult{})

	var networkErr *NetworkError
	assert.ErrorAs(t, err, &networkErr)
}

func TestHTTPClient_GenerateNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate_notes", r.URL.Path)

		var reqBody map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "Photosynthesis", reqBody["topic"])
		assert.Equal(t, "pdf", reqBody["format"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"download_url": "/files/notes_photosynthesis.pdf",
			"filename": "notes_photosynthesis.pdf",
			"content_markdown": "## Key Concepts"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)
	defer func() {
		_ = client.Close()
	}()

	got, err := client.GenerateNotes(context.Background(), "Photosynthesis", "pdf")

	require.NoError(t, err)
	assert.Equal(t, "/files/notes_photosynthesis.pdf", got.DownloadURL)
	assert.Equal(t, "notes_photosynthesis.pdf", got.Filename)
	assert.Equal(t, "## Key Concepts", got.ContentMarkdown)
}

func TestHTTPClient_DownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/notes.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("pdf bytes"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)
	defer func() {
		_ = client.Close()
	}()

	t.Run("Relative URL is resolved against the base URL", func(t *testing.T) {
		destination := filepath.Join(t.TempDir(), "downloads", "notes.pdf")

		require.NoError(t, client.DownloadFile(context.Background(), "/files/notes.pdf", destination))

		content, err := os.ReadFile(destination)
		require.NoError(t, err)
		assert.Equal(t, "pdf bytes", string(content))
	})

	t.Run("Missing file", func(t *testing.T) {
		destination := filepath.Join(t.TempDir(), "notes.pdf")

		err := client.DownloadFile(context.Background(), "/files/missing.pdf", destination)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.NoFileExists(t, destination)
	})
}
