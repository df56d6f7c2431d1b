package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "strikelab",
		Short:         "StrikeLab - launch monitor import and session analysis",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(importCmd())
	root.AddCommand(analyzeCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(refreshCmd())
	root.AddCommand(connectorsCmd())

	return root
}
