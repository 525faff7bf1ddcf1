// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package cli

import (
	"fmt"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
)

func newAgoCommand(root *rootOptions) *cobra.Command {
	var now, tz string
	cmd := &cobra.Command{
		Use:   "ago TIMESTAMP",
		Short: "Print how long ago an RFC 3339 timestamp was",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := time.Parse(time.RFC3339, args[0])
			if err != nil {
				return errors.NewNotValid(err, "invalid timestamp")
			}
			reference := time.Now()
			if now != "" {
				if reference, err = time.Parse(time.RFC3339, now); err != nil {
					return errors.NewNotValid(err, "invalid --now")
				}
			}
			formatter := root.cfg.Formatter()
			if tz != "" {
				loc, err := time.LoadLocation(tz)
				if err != nil {
					return errors.NewNotValid(err, "invalid --tz")
				}
				formatter.Location = loc
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatter.Format(ts, reference))
			return err
		},
	}
	cmd.Flags().StringVar(&now, "now", "", "reference time in RFC 3339, defaults to the current time")
	cmd.Flags().StringVar(&tz, "tz", "", "timezone for absolute dates, defaults to PACING_TIMEZONE")
	return cmd
}
