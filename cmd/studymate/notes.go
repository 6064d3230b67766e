package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studymate-app/studymate/internal/api"
	"github.com/studymate-app/studymate/internal/cli"
	"github.com/studymate-app/studymate/internal/config"
	"github.com/studymate-app/studymate/internal/notes"
	"github.com/studymate-app/studymate/internal/notify"
)

func newNotesCommand() *cobra.Command {
	var format string

	command := &cobra.Command{
		Use:   "notes <topic>",
		Short: "Generate and download study notes on a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			client := api.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.RetryAttempts)
			defer func() {
				_ = client.Close()
			}()

			notifier := notify.NewDesktop("studymate")
			notifier.Init()

			controller := notes.NewController(client, notifier, notes.NewHistory(), cfg.Outputs.NotesDirectory)
			notesCLI := cli.NewNotesCLI(controller)
			return notesCLI.Download(context.Background(), args[0], format)
		},
	}

	command.Flags().StringVar(&format, "format", "pdf",
		fmt.Sprintf("output format (%s)", strings.Join(notes.SupportedFormats, ", ")))

	return command
}
