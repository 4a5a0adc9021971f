// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/barkeep/internal/app"
	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/preference"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show, export and import stored preferences",
	}
	cmd.AddCommand(
		newPrefsShowCmd(),
		newPrefsExportCmd(),
		newPrefsImportCmd(),
	)
	return cmd
}

// openPrefs opens Badger without loading the corpus.
func openPrefs(cmd *cobra.Command) (*app.App, *preference.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.OpenStore(cfg, logging.Logger())
	if err != nil {
		return nil, nil, err
	}
	return a, a.Preferences(), nil
}

func newPrefsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show USER_ID",
		Short: "Print one user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, prefs, err := openPrefs(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			p, err := prefs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, p)
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func printProfile(w io.Writer, p preference.Profile) {
	if p.IsZero() {
		fmt.Fprintf(w, "%s has no stored preferences\n", p.UserID)
		return
	}
	fmt.Fprintf(w, "%s\n", p.UserID)
	rows := []struct {
		label  string
		values []string
	}{
		{"liked ingredients", p.LikedIngredients},
		{"liked cocktails", p.LikedCocktails},
		{"disliked ingredients", p.DislikedIngredients},
		{"disliked cocktails", p.DislikedCocktails},
		{"unrecognized", p.UnrecognizedLikes},
	}
	for _, row := range rows {
		if len(row.values) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-21s %s\n", row.label+":", strings.Join(row.values, ", "))
	}
}

func newPrefsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every profile as JSON",
		Long: `Export writes all stored profiles as a versioned JSON document, to
stdout or --output.

Examples:
  barkeep prefs export > prefs.json
  barkeep prefs export --output prefs.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")

			a, prefs, err := openPrefs(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if output == "" {
				return prefs.Save(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(output) //nolint:gosec // operator-chosen path
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := prefs.Save(cmd.Context(), f); err != nil {
				return errors.Join(err, f.Close())
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported preferences to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newPrefsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load profiles from a JSON export",
		Long: `Import reads a file written by "prefs export" and stores every profile
in it, replacing existing profiles with the same user ID. Use "-" for stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			a, prefs, err := openPrefs(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			n, err := prefs.Load(cmd.Context(), in)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, map[string]int{"imported": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d profiles\n", n)
			return nil
		},
	}
}
