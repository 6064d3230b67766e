package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studymate-app/studymate/internal/api"
	"github.com/studymate-app/studymate/internal/cli"
	"github.com/studymate-app/studymate/internal/config"
)

func newQuizCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "quiz [topic]",
		Short: "Take an AI-generated quiz on a topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			client := api.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.RetryAttempts)
			defer func() {
				_ = client.Close()
			}()

			quizCLI := cli.NewQuizCLI(client)
			if len(args) == 1 {
				return quizCLI.RunOnce(context.Background(), args[0])
			}

			fmt.Println("Interactive quiz session started!")
			fmt.Println("Enter a topic to generate a quiz. Type 'quit' to exit.")
			fmt.Println()
			return quizCLI.Run(context.Background(), quizCLI)
		},
	}

	return command
}
