// Package session drives a quiz attempt through its lifecycle: topic
// submission, generation, presentation, grading and persistence.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studymate-app/studymate/internal/api"
	"github.com/studymate-app/studymate/internal/quiz"
)

// State is the controller's position in the quiz lifecycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingGeneration
	StatePresenting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingGeneration:
		return "awaiting-generation"
	case StatePresenting:
		return "presenting"
	case StateSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Renderer consumes plain quiz data and owns all presentation. The controller
// never inspects how anything is displayed.
type Renderer interface {
	RenderQuiz(q *quiz.Quiz)
	RenderResult(result quiz.GradedResult)
}

// Controller owns the session context: the current topic, quiz and answer
// store. All of them are replaced wholesale on each new topic submission and
// are never mutated from outside the controller's methods.
type Controller struct {
	client   api.Client
	renderer Renderer

	state   State
	topic   string
	quiz    *quiz.Quiz
	answers *quiz.AnswerStore

	// generating guards against a second topic submission racing a pending
	// generation request.
	generating bool

	onPersistResult func(error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithPersistObserver registers a callback invoked with the outcome of the
// fire-and-forget persistence call, so callers and tests can observe it
// without the rendering path ever awaiting it.
func WithPersistObserver(observer func(error)) Option {
	return func(c *Controller) {
		c.onPersistResult = observer
	}
}

// NewController creates an idle controller.
func NewController(client api.Client, renderer Renderer, options ...Option) *Controller {
	controller := &Controller{
		client:   client,
		renderer: renderer,
		state:    StateIdle,
		answers:  quiz.NewAnswerStore(),
	}
	for _, option := range options {
		option(controller)
	}
	return controller
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Quiz returns the quiz currently presented, or nil.
func (c *Controller) Quiz() *quiz.Quiz {
	return c.quiz
}

// Topic returns the topic of the current session.
func (c *Controller) Topic() string {
	return c.topic
}

// Start begins a fresh session for topic: it requests generation, normalizes
// the payload and presents the quiz. A failure of any kind returns the
// controller to the idle state with a typed error; a submission while a
// generation request is pending is rejected outright.
func (c *Controller) Start(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ErrEmptyTopic
	}
	if c.generating {
		return ErrGenerationInFlight
	}

	c.generating = true
	c.state = StateAwaitingGeneration
	defer func() {
		c.generating = false
	}()

	raw, err := c.client.GenerateQuiz(ctx, topic)
	if err != nil {
		c.state = StateIdle
		return err
	}

	normalized, err := quiz.Normalize(topic, raw)
	if err != nil {
		c.state = StateIdle
		return err
	}

	c.topic = topic
	c.quiz = normalized
	c.answers.Reset()
	c.state = StatePresenting
	c.renderer.RenderQuiz(normalized)
	return nil
}

// Select records the user's choice for a question, overwriting any earlier
// choice for the same question. Valid only while a quiz is presented.
func (c *Controller) Select(questionIndex, optionIndex int) error {
	if c.state != StatePresenting {
		return ErrNoActiveQuiz
	}
	if questionIndex < 0 || questionIndex >= len(c.quiz.Questions) {
		return &ValidationError{Message: fmt.Sprintf("question %d does not exist", questionIndex+1)}
	}
	question := c.quiz.Questions[questionIndex]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return &ValidationError{Message: fmt.Sprintf("question %d has no option %d", questionIndex+1, optionIndex+1)}
	}

	c.answers.Select(questionIndex, optionIndex)
	return nil
}

// Selected returns the recorded choice for a question, if any.
func (c *Controller) Selected(questionIndex int) (int, bool) {
	return c.answers.Get(questionIndex)
}

// Unanswered lists the indexes of questions without a selection, in order.
func (c *Controller) Unanswered() []int {
	if c.quiz == nil {
		return nil
	}
	var unanswered []int
	for i := range c.quiz.Questions {
		if _, ok := c.answers.Get(i); !ok {
			unanswered = append(unanswered, i)
		}
	}
	return unanswered
}

// Submit grades the quiz and renders the result. It requires every question
// to be answered; otherwise it fails with IncompleteError and no state
// change. The graded result is persisted by a background task whose failure
// is a warning only and never reverts the submitted state or the displayed
// result.
func (c *Controller) Submit(ctx context.Context) (quiz.GradedResult, error) {
	if c.state != StatePresenting {
		return quiz.GradedResult{}, ErrNoActiveQuiz
	}
	if !c.answers.IsComplete(len(c.quiz.Questions)) {
		return quiz.GradedResult{}, &IncompleteError{
			Answered: c.answers.Size(),
			Total:    len(c.quiz.Questions),
		}
	}

	result := quiz.Grade(c.topic, c.quiz, c.answers)
	c.state = StateSubmitted
	c.renderer.RenderResult(result)

	// The result is already on screen; saving must not block or cancel with
	// the caller's context.
	persistCtx := context.WithoutCancel(ctx)
	go c.persist(persistCtx, result)

	return result, nil
}

func (c *Controller) persist(ctx context.Context, result quiz.GradedResult) {
	err := c.client.SaveResults(ctx, result)
	if err != nil {
		slog.Default().Warn("Failed to save quiz results",
			"topic", result.Topic,
			"score", result.Score,
			"total", result.Total,
			"error", err)
	}
	if c.onPersistResult != nil {
		c.onPersistResult(err)
	}
}
