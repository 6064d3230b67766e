package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/studymate-app/studymate/internal/api"
	"github.com/studymate-app/studymate/internal/session"
)

// QuizCLI manages the interactive quiz session: it collects the topic,
// gathers answers and submits them through the session controller.
type QuizCLI struct {
	*InteractiveCLI
	controller  *session.Controller
	view        *QuizView
	persistOnce chan error
}

// NewQuizCLI creates an interactive quiz CLI talking to the platform through
// client.
func NewQuizCLI(client api.Client) *QuizCLI {
	base := newInteractiveCLI()
	view := NewQuizView(base.stdoutWriter)
	persistOnce := make(chan error, 1)

	controller := session.NewController(client, view, session.WithPersistObserver(func(err error) {
		persistOnce <- err
	}))

	return &QuizCLI{
		InteractiveCLI: base,
		controller:     controller,
		view:           view,
		persistOnce:    persistOnce,
	}
}

// Session runs one quiz round: topic, generation, answers, submission.
func (cli *QuizCLI) Session(ctx context.Context) error {
	topic, err := cli.readLine("Topic: ")
	if err != nil {
		return err
	}
	if topic == "quit" || topic == "exit" {
		fmt.Fprintln(cli.stdoutWriter, "Study session ended.")
		return errEnd
	}

	if err := cli.controller.Start(ctx, topic); err != nil {
		cli.reportError(err)
		return nil
	}

	return cli.runQuiz(ctx)
}

// RunOnce runs a single quiz for a topic given on the command line.
func (cli *QuizCLI) RunOnce(ctx context.Context, topic string) error {
	if err := cli.controller.Start(ctx, topic); err != nil {
		cli.reportError(err)
		return err
	}
	return cli.runQuiz(ctx)
}

func (cli *QuizCLI) runQuiz(ctx context.Context) error {
	q := cli.controller.Quiz()

	for i := range q.Questions {
		if err := cli.askQuestion(i); err != nil {
			return err
		}
	}

	for {
		input, err := cli.readLine("Submit the quiz? [y or a question number to change an answer]: ")
		if err != nil {
			return err
		}

		if number, convErr := strconv.Atoi(input); convErr == nil {
			if number < 1 || number > len(q.Questions) {
				fmt.Fprintf(cli.stdoutWriter, "There is no question %d.\n", number)
				continue
			}
			if err := cli.askQuestion(number - 1); err != nil {
				return err
			}
			continue
		}
		if input != "y" && input != "Y" {
			continue
		}

		_, err = cli.controller.Submit(ctx)
		if err != nil {
			var incomplete *session.IncompleteError
			if errors.As(err, &incomplete) {
				cli.reportError(err)
				continue
			}
			return err
		}
		break
	}

	cli.reportSaveOutcome(ctx)
	return nil
}

func (cli *QuizCLI) askQuestion(questionIndex int) error {
	q := cli.controller.Quiz()
	question := q.Questions[questionIndex]

	for {
		input, err := cli.readLine(fmt.Sprintf("Your answer for Q%d [%s-%s]: ",
			questionIndex+1, OptionLabel(0), OptionLabel(len(question.Options)-1)))
		if err != nil {
			return err
		}

		optionIndex := letterToIndex(input)
		if optionIndex < 0 || optionIndex >= len(question.Options) {
			fmt.Fprintf(cli.stdoutWriter, "Please answer with a letter between %s and %s.\n",
				OptionLabel(0), OptionLabel(len(question.Options)-1))
			continue
		}

		if err := cli.controller.Select(questionIndex, optionIndex); err != nil {
			cli.reportError(err)
			continue
		}
		return nil
	}
}

// reportSaveOutcome waits for the background save and tells the user how it
// went. The result itself is already on screen at this point.
func (cli *QuizCLI) reportSaveOutcome(ctx context.Context) {
	select {
	case err := <-cli.persistOnce:
		if err != nil {
			fmt.Fprintf(cli.stdoutWriter, "Warning: your results could not be saved: %v\n", err)
			return
		}
		fmt.Fprintln(cli.stdoutWriter, "Your results were saved.")
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		fmt.Fprintln(cli.stdoutWriter, "Warning: the save request is still pending.")
	}
}

func (cli *QuizCLI) reportError(err error) {
	var sessionExpired *api.SessionExpiredError
	if errors.As(err, &sessionExpired) {
		fmt.Fprintln(cli.stdoutWriter, "Your session has expired. Please log in again and retry.")
		return
	}
	fmt.Fprintf(cli.stdoutWriter, "%v\n", err)
}

func letterToIndex(input string) int {
	runes := []rune(input)
	if len(runes) != 1 {
		return -1
	}
	r := runes[0]
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a')
	case r >= 'A' && r <= 'Z':
		return int(r - 'A')
	}
	return -1
}
