package cli

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/storage"
)

func (a *app) addCommand() *cobra.Command {
	var (
		serverURL string
		in        models.RecordInput
	)
	cmd := &cobra.Command{
		Use:   "add --question Q --answer A [--category C]",
		Short: "Add one question/answer record",
		Args:  cobra.NoArgs,
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

			position, err := be.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added record #%d\n", position)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Question, "question", "q", "", "question text (required)")
	cmd.Flags().StringVarP(&in.Answer, "answer", "a", "", "answer text (required)")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "optional category")
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (empty = write the store directly)")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")
	return cmd
}

// ExpandCorpusFiles expands doublestar patterns into a sorted, de-duplicated list
// of CSV and XLSX files. Patterns that match nothing are returned as unmatched.
func ExpandCorpusFiles(patterns []string) (files []string, unmatched []string, err error) {
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		found := false
		for _, m := range matches {
			if !storage.IsCorpusFile(m) {
				continue
			}
			found = true
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
		if !found {
			unmatched = append(unmatched, pattern)
		}
	}
	sort.Strings(files)
	return files, unmatched, nil
}

func (a *app) importCommand() *cobra.Command {
	var noProgress bool
	cmd := &cobra.Command{
		Use:   "import <pattern>...",
		Short: "Append records from CSV or XLSX files",
		Long: `Append records from CSV or XLSX files to the configured store.
Files need a header row with question and answer columns; category is optional.
Patterns support ** for recursive matching.

Examples:
  kotae import faq.csv
  kotae import "data/**/*.xlsx" extra.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			files, unmatched, err := ExpandCorpusFiles(args)
			if err != nil {
				return err
			}
			for _, p := range unmatched {
				fmt.Fprintf(cmd.ErrOrStderr(), "no corpus files match %q\n", p)
			}
			if len(files) == 0 {
				return fmt.Errorf("nothing to import")
			}

			var bar *progressbar.ProgressBar
			if !noProgress {
				bar = progressbar.NewOptions(len(files),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionSetDescription("Reading"),
				)
			}
			var (
				pending     []models.RecordInput
				failedFiles int
			)
			for _, f := range files {
				records, err := storage.ReadCorpusFile(f)
				if bar != nil {
					_ = bar.Add(1)
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "\nskipping %s: %v\n", f, err)
					failedFiles++
					continue
				}
				for _, r := range records {
					pending = append(pending, models.RecordInput{
						Question: r.Question,
						Answer:   r.Answer,
						Category: r.Category,
					})
				}
			}
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(cmd.ErrOrStderr())
			}

			logger, err := a.logger(true)
			if err != nil {
				return err
			}
			components, err := a.initializeComponents(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer components.Close()

			imported, rejections, err := components.bot.AppendAll(cmd.Context(), pending)
			if err != nil {
				return err
			}
			for _, rj := range rejections {
				fmt.Fprintf(cmd.ErrOrStderr(), "rejected %q: %v\n", rj.Input.Question, rj.Err)
			}
			rejected := len(rejections)

			fmt.Fprintf(out, "imported %d records from %d files (%d rejected, %d files skipped)\n",
				imported, len(files)-failedFiles, rejected, failedFiles)
			fmt.Fprintf(out, "corpus now has %d records\n", components.bot.Snapshot().Corpus.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
	return cmd
}

func (a *app) exportCommand() *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "export <path.csv|path.xlsx>",
		Short: "Write the current corpus to a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !storage.IsCorpusFile(path) {
				return fmt.Errorf("%w: %s", storage.ErrUnsupportedFormat, path)
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

			resp, err := be.Records(cmd.Context())
			if err != nil {
				return err
			}
			if err := storage.WriteCorpusFile(path, resp.Records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", resp.Total, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (empty = read the store directly)")
	return cmd
}
