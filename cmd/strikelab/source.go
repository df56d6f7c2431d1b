package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stitts-dev/strikelab/internal/connectors"
	"github.com/stitts-dev/strikelab/internal/shots"
)

func addSourceFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "source", "s", connectors.SourceCSV, "connector id (csv, trackman, topgolf, foresight)")
}

// readSession parses a local export through the named connector. CSV
// warnings are returned alongside the session.
func readSession(source, path string) (*shots.Session, []string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if source == connectors.SourceCSV {
		return connectors.NewCSVConnector().ParseWithWarnings(payload)
	}

	c, err := connectors.Lookup(source)
	if err != nil {
		return nil, nil, err
	}
	session, err := c.Parse(payload)
	return session, nil, err
}
