// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/barkeep/internal/app"
	"github.com/tomtom215/barkeep/internal/logging"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the embedding index",
	}
	cmd.AddCommand(newIndexBuildCmd())
	return cmd
}

func newIndexBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Embed the corpus and persist the snapshot",
		Long: `Build embeds every cocktail in the corpus and stores the vectors in
Badger so the server starts without recomputing them. Cocktails whose
text has not changed since the last build are reused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.Index.Snapshot {
				logging.Warn().Msg("INDEX_SNAPSHOT=false: vectors will be computed but not persisted")
			}

			a, err := app.OpenStore(cfg, logging.Logger())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			c, idx, stats, err := a.Builder.Build(cmd.Context())
			if err != nil {
				return err
			}

			stored, err := a.Snapshots.Count(cmd.Context(), idx.ModelID())
			if err != nil {
				return fmt.Errorf("count snapshots: %w", err)
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, map[string]any{
					"cocktails":   c.Len(),
					"model":       idx.ModelID(),
					"computed":    stats.Computed,
					"reused":      stats.Reused,
					"stored":      stored,
					"duration_ms": stats.Duration.Milliseconds(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexed %d cocktails with %s in %s\n", c.Len(), idx.ModelID(), stats.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "  computed: %d\n  reused:   %d\n  stored:   %d\n", stats.Computed, stats.Reused, stored)
			return nil
		},
	}
}
