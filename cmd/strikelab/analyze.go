package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stitts-dev/strikelab/internal/analysis"
)

func analyzeCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Print the session analysis of a local export as JSON",
		Long: `Parse a launch monitor export and print its analysis. No database is needed.

Examples:
  strikelab analyze range.csv
  strikelab analyze --source trackman session.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := readSession(source, args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(analysis.Analyze(session.Shots), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode analysis: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	addSourceFlag(cmd, &source)
	return cmd
}
