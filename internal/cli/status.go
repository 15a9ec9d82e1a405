package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) statusCommand() *cobra.Command {
	var serverURL, output string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show corpus and index status",
		Args:  cobra.NoArgs,
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

			st, err := be.Status(cmd.Context())
			if err != nil {
				return err
			}
			return WriteStatus(cmd.OutOrStdout(), st, format)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (empty = read the store directly)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kotae version %s\n", a.version)
		},
	}
}
