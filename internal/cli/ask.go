package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperjump/kotae/internal/models"
)

func (a *app) askCommand() *cobra.Command {
	var serverURL, output string
	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Answer one question",
		Long: `Answer one question and exit. The query is all arguments joined by spaces,
so quoting is optional.

Examples:
  kotae ask what is machine learning
  kotae ask --server http://localhost:8080 --output json "tell me a joke"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(output)
			if err != nil {
				return err
			}
			query := BuildQuery(args)
			if query == "" {
				return errors.New("query cannot be empty")
			}
			logger, err := a.logger(true)
			if err != nil {
				return err
			}
			be, err := a.backend(cmd.Context(), serverURL, logger)
			if err != nil {
				return err
			}
			defer be.Close()

			resp, err := be.Respond(cmd.Context(), query)
			if err != nil {
				return err
			}
			return WriteResponse(cmd.OutOrStdout(), resp, format)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (empty = answer in-process)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}

func (a *app) chatCommand() *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive question/answer session",
		Long: `Read questions from stdin, one per line, and print each reply.
The session ends at end of input or when a farewell (bye, quit, exit) is recognized.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.logger(true)
			if err != nil {
				return err
			}
			be, err := a.backend(cmd.Context(), serverURL, logger)
			if err != nil {
				return err
			}
			defer be.Close()

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprintln(out, "Type a question, or 'bye' to leave.")
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				resp, err := be.Respond(cmd.Context(), line)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Bot: %s\n", resp.Text)
				if resp.Stage == models.StageFarewell {
					return nil
				}
			}
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (empty = answer in-process)")
	return cmd
}

func (a *app) suggestCommand() *cobra.Command {
	var serverURL, output string
	cmd := &cobra.Command{
		Use:   "suggest [partial...]",
		Short: "Suggest stored questions containing the given text",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(output)
			if err != nil {
				return err
			}
			logger, err := a.logger(true)
			if err != nil {
				return err
			}
			be, err := a.backend(cmd.Context(), serverURL, logger)
			if err != nil {
				return err
			}
			defer be.Close()

			resp, err := be.Suggest(cmd.Context(), BuildQuery(args))
			if err != nil {
				return err
			}
			return WriteSuggestions(cmd.OutOrStdout(), resp, format)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (empty = read the corpus in-process)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}
