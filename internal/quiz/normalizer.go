package quiz

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// RawQuestion is one question as delivered by the generation endpoint.
// Options is either a JSON array of option texts or a labeled object
// such as {"A": "...", "B": "..."}. Answer marks the correct option,
// either as a letter label or as the literal option text.
type RawQuestion struct {
	Question string          `json:"question"`
	Options  json.RawMessage `json:"options"`
	Answer   string          `json:"answer"`
}

// RawQuiz is the payload of a successful generation response.
type RawQuiz struct {
	Title     string        `json:"title,omitempty"`
	Questions []RawQuestion `json:"questions"`
	Error     string        `json:"error,omitempty"`
}

// NormalizeError reports a payload that cannot be turned into a Quiz.
type NormalizeError struct {
	Message string
}

func (e *NormalizeError) Error() string {
	return e.Message
}

// Normalize transforms a raw generation payload into a Quiz. Option order is
// preserved as received; labeled option objects are ordered by label so that
// index assignment is reproducible. An indicator that cannot be resolved
// yields CorrectIndex -1 rather than a failure, so the quiz still renders.
func Normalize(topic string, raw RawQuiz) (*Quiz, error) {
	if len(raw.Questions) == 0 {
		return nil, &NormalizeError{Message: "the server returned no questions"}
	}

	title := raw.Title
	if title == "" {
		title = fmt.Sprintf("Quiz on %s", topic)
	}

	questions := make([]Question, 0, len(raw.Questions))
	for i, rq := range raw.Questions {
		question, err := normalizeQuestion(rq)
		if err != nil {
			return nil, &NormalizeError{Message: fmt.Sprintf("question %d: %s", i+1, err)}
		}
		questions = append(questions, question)
	}

	return &Quiz{Title: title, Questions: questions}, nil
}

func normalizeQuestion(raw RawQuestion) (Question, error) {
	if strings.TrimSpace(raw.Question) == "" {
		return Question{}, fmt.Errorf("missing question text")
	}

	options, err := decodeOptions(raw.Options)
	if err != nil {
		return Question{}, err
	}
	if len(options) < 2 {
		return Question{}, fmt.Errorf("needs at least 2 options, got %d", len(options))
	}

	return Question{
		Prompt:       raw.Question,
		Options:      options,
		CorrectIndex: ResolveCorrectIndex(raw.Answer, options),
	}, nil
}

// decodeOptions accepts either an ordered array of option texts or a labeled
// object. Labeled options are sorted by label, matching the order used when
// the correct indicator is resolved.
func decodeOptions(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing options")
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		return asList, nil
	}

	var asLabeled map[string]string
	if err := json.Unmarshal(raw, &asLabeled); err != nil {
		return nil, fmt.Errorf("options are neither a list nor a labeled object")
	}

	labels := make([]string, 0, len(asLabeled))
	for label := range asLabeled {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	options := make([]string, 0, len(labels))
	for _, label := range labels {
		options = append(options, asLabeled[label])
	}
	return options, nil
}

// ResolveCorrectIndex maps the server's correctness indicator to a zero-based
// option index. A single letter resolves by its position in the alphabet
// (A→0, case-insensitive); anything else resolves by exact text match against
// the options. Returns -1 when resolution fails.
func ResolveCorrectIndex(indicator string, options []string) int {
	indicator = strings.TrimSpace(indicator)
	if indicator == "" {
		return -1
	}

	runes := []rune(indicator)
	if len(runes) == 1 && unicode.IsLetter(runes[0]) {
		index := int(unicode.ToUpper(runes[0]) - 'A')
		if index >= 0 && index < len(options) {
			return index
		}
		return -1
	}

	for i, option := range options {
		if option == indicator {
			return i
		}
	}
	return -1
}
