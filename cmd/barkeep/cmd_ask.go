// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/barkeep/internal/app"
	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/logging"
)

// askOutput is the --json shape of an answer.
type askOutput struct {
	Kind      engine.ResultKind  `json:"kind"`
	ErrorKind engine.ErrorKind   `json:"error_kind,omitempty"`
	Result    engine.QueryResult `json:"result"`
	Reply     string             `json:"reply"`
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [query...]",
		Short: "Ask a cocktail question",
		Long: `Ask answers one free-text query as the given user.

Examples:
  barkeep ask --user alice "What are some cocktails with lemon?"
  barkeep ask --user alice I like gin and tonic
  barkeep ask --user alice --json "Recommend 3 cocktails based on my preferences"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := logging.ContextWithUserID(cmd.Context(), user)
			a, err := app.Open(ctx, cfg, logging.Logger())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := a.Engine.Handle(ctx, user, strings.Join(args, " "))
			if result == nil {
				return errors.Join(errors.New("no answer"), err)
			}

			text, ferr := a.Formatter.Format(result)
			if ferr != nil {
				return fmt.Errorf("format reply: %w", ferr)
			}

			if jsonOutput(cmd) {
				out := askOutput{Kind: result.ResultKind(), Result: result, Reply: text}
				if qe, ok := engine.AsQueryError(result); ok {
					out.ErrorKind = qe.Kind
				}
				if werr := writeJSON(cmd, out); werr != nil {
					return werr
				}
			} else if _, werr := fmt.Fprintln(cmd.OutOrStdout(), text); werr != nil {
				return werr
			}

			// The reply has been shown; err is only set for internal
			// consistency failures.
			return err
		},
	}

	cmd.Flags().StringP("user", "u", "cli", "User ID whose preferences are read and updated")
	return cmd
}
