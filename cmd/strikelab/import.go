package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stitts-dev/strikelab/internal/connectors"
	"github.com/stitts-dev/strikelab/internal/services"
	"github.com/stitts-dev/strikelab/pkg/config"
	"github.com/stitts-dev/strikelab/pkg/database"
	"github.com/stitts-dev/strikelab/pkg/logger"
)

func openDatabase() (*database.DB, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.NewConnection(cfg.DatabaseURL, false)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

func importCmd() *cobra.Command {
	var (
		source      string
		name        string
		sessionType string
		owner       string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a local export into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := uuid.Parse(owner)
			if err != nil {
				return fmt.Errorf("invalid --owner: %w", err)
			}

			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if name == "" && source == connectors.SourceCSV {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			svc := services.NewImportService(db, logger.InitLogger(cfg.LogLevel, false))
			result, err := svc.ImportPayload(context.Background(), source, payload, ownerID, name, sessionType)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			if !result.Success {
				return fmt.Errorf("import failed: %s", strings.Join(result.Errors, "; "))
			}
			return nil
		},
	}

	addSourceFlag(cmd, &source)
	cmd.Flags().StringVarP(&name, "name", "n", "", "session name")
	cmd.Flags().StringVarP(&sessionType, "type", "t", "", "session type (range, course, simulator)")
	cmd.Flags().StringVar(&owner, "owner", "", "owner id (UUID)")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-stats",
		Short: "Compute stored analyses for sessions that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			refresher := services.NewStatsRefresher(db, logger.InitLogger(cfg.LogLevel, false), cfg.StatsRefreshSchedule)
			n, err := refresher.RefreshOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d sessions\n", n)
			return nil
		},
	}
}

func connectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connectors",
		Short: "List known connectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range connectors.Catalog() {
				fmt.Fprintf(out, "%-10s %-12s %s\n", d.ID, d.Status, d.Name)
			}
			return nil
		},
	}
}
