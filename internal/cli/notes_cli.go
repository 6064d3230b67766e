package cli

import (
	"context"
	"fmt"

	"github.com/studymate-app/studymate/internal/notes"
)

// NotesCLI presents the notes download flow and the per-process download
// history.
type NotesCLI struct {
	*InteractiveCLI
	controller *notes.Controller
}

// NewNotesCLI creates the notes CLI.
func NewNotesCLI(controller *notes.Controller) *NotesCLI {
	return &NotesCLI{
		InteractiveCLI: newInteractiveCLI(),
		controller:     controller,
	}
}

// Download requests notes for topic in format and reports the outcome. On
// failure nothing is downloaded and the history stays untouched.
func (cli *NotesCLI) Download(ctx context.Context, topic, format string) error {
	fmt.Fprintf(cli.stdoutWriter, "Generating %s notes on %s...\n", format, cli.italic.Sprintf("%s", topic))

	download, err := cli.controller.Request(ctx, topic, format)
	if err != nil {
		fmt.Fprintf(cli.stdoutWriter, "❌ %v\n", err)
		return err
	}

	fmt.Fprint(cli.stdoutWriter, "✅ ")
	cli.bold.Fprintf(cli.stdoutWriter, "%s\n", download.Entry.Filename)
	fmt.Fprintf(cli.stdoutWriter, "   Saved to %s\n", download.Path)

	cli.printHistory()
	return nil
}

func (cli *NotesCLI) printHistory() {
	entries := cli.controller.History().Entries()
	if len(entries) == 0 {
		return
	}

	fmt.Fprintln(cli.stdoutWriter)
	cli.bold.Fprintln(cli.stdoutWriter, "Download history")
	for _, entry := range entries {
		fmt.Fprintf(cli.stdoutWriter, "  %s  %-5s %s (%s)\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Format,
			entry.Filename,
			entry.URL,
		)
	}
}
