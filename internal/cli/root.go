// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

// Package cli implements the pacing-testkit command line.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/juju/pacing-testkit/internal/config"
)

type rootOptions struct {
	debug   bool
	envFile string

	cfg config.Config
}

// NewRootCommand returns the pacing-testkit command with all subcommands.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "pacing-testkit",
		Short:         "Wait on course pacing pages and render relative due dates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			if opts.debug {
				cfg.LogLevel = zerolog.DebugLevel
			}
			cfg.Apply()
			opts.cfg = cfg

			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log every poll attempt")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file with PACING_* settings")

	cmd.AddCommand(
		newAgoCommand(opts),
		newWaitHTTPCommand(opts),
		newWaitPageCommand(opts),
	)
	return cmd
}
