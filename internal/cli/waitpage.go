// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package cli

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tebeka/selenium"

	"github.com/juju/pacing-testkit/internal/browserwait"
)

func newWaitPageCommand(root *rootOptions) *cobra.Command {
	var (
		opts       waitOptions
		webdriver  string
		browser    string
		ajax       bool
		animations bool
		selector   string
	)
	cmd := &cobra.Command{
		Use:   "wait-page URL",
		Short: "Open a page in a remote WebDriver and wait until it settles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if webdriver == "" {
				return errors.NotValidf("missing --webdriver")
			}
			ctx := cmd.Context()
			wd, err := selenium.NewRemote(selenium.Capabilities{"browserName": browser}, webdriver)
			if err != nil {
				return errors.Annotatef(err, "connecting to %s", webdriver)
			}
			defer func() {
				if err := wd.Quit(); err != nil {
					log.Ctx(ctx).Warn().Err(err).Msg("closing browser session")
				}
			}()

			if err := wd.Get(args[0]); err != nil {
				return errors.Annotatef(err, "opening %s", args[0])
			}
			policy := opts.policy(root)
			w := browserwait.New(wd, &policy)
			if err := w.PageLoad(ctx); err != nil {
				return err
			}
			if ajax {
				if err := w.AJAX(ctx); err != nil {
					return err
				}
			}
			if animations {
				if err := w.Animations(ctx); err != nil {
					return err
				}
			}
			if selector != "" {
				if _, err := w.Visible(ctx, selenium.ByCSSSelector, selector); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s settled\n", args[0])
			return err
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVar(&webdriver, "webdriver", "", "WebDriver endpoint, e.g. http://localhost:4444/wd/hub")
	cmd.Flags().StringVar(&browser, "browser", "chrome", "browser name requested from the WebDriver")
	cmd.Flags().BoolVar(&ajax, "ajax", false, "wait for jQuery AJAX requests to finish")
	cmd.Flags().BoolVar(&animations, "animations", false, "wait for jQuery animations to finish")
	cmd.Flags().StringVar(&selector, "visible", "", "CSS selector of an element that must become visible")
	return cmd
}
