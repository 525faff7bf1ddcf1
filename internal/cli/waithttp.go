// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/juju/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/juju/pacing-testkit/internal/retry"
	"github.com/juju/pacing-testkit/internal/wait"
)

type waitOptions struct {
	timeout  time.Duration
	interval time.Duration
	abortOn  []string
}

func (o *waitOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&o.timeout, "timeout", 0, "how long to wait, defaults to PACING_WAIT_TIMEOUT")
	cmd.Flags().DurationVar(&o.interval, "interval", 0, "delay between attempts, defaults to PACING_POLL_INTERVAL")
	cmd.Flags().StringSliceVar(&o.abortOn, "abort-on", nil, "error kinds that end the wait immediately")
}

func (o *waitOptions) policy(root *rootOptions) wait.Policy {
	policy := root.cfg.WaitPolicy()
	if o.timeout > 0 {
		policy.Timeout = o.timeout
	}
	if o.interval > 0 {
		policy.PollInterval = o.interval
	}
	return policy.WithNonRetryable(toKinds(o.abortOn)...)
}

func toKinds(values []string) []wait.ErrorKind {
	kinds := make([]wait.ErrorKind, 0, len(values))
	for _, v := range values {
		kinds = append(kinds, wait.ErrorKind(v))
	}
	return kinds
}

func newWaitHTTPCommand(root *rootOptions) *cobra.Command {
	var (
		opts    waitOptions
		status  int
		retryOn []string
	)
	cmd := &cobra.Command{
		Use:   "wait-http URL",
		Short: "Poll a URL until it answers with the expected status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			policy := opts.policy(root)
			check := statusCheck(http.DefaultClient, url, status)

			start := time.Now()
			var err error
			if len(retryOn) > 0 {
				_, err = retry.RetryOnKinds(retry.RetryOnKindsCfg[bool]{
					Context:        cmd.Context(),
					Do:             check,
					RetriableKinds: toKinds(retryOn),
					Policy:         &policy,
				})
			} else {
				_, err = wait.WaitFor(wait.WaitForCfg[bool]{
					Context:   cmd.Context(),
					Predicate: check,
					Policy:    &policy,
				})
			}
			if err != nil {
				return errors.Annotatef(err, "waiting for %s", url)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s ready after %v\n", url, time.Since(start).Round(time.Millisecond))
			return err
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().IntVar(&status, "status", http.StatusOK, "expected HTTP status")
	cmd.Flags().StringSliceVar(&retryOn, "retry-on", nil, "only retry these error kinds, abort on any other")
	return cmd
}

// statusCheck returns a predicate that is satisfied once url answers with
// the wanted status. A 404 is reported as not-found.
func statusCheck(client *http.Client, url string, want int) wait.Predicate[bool] {
	return func(ctx context.Context) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false, errors.Trace(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return false, errors.Trace(err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		log.Ctx(ctx).Debug().Str("url", url).Int("status", resp.StatusCode).Msg("polled")
		switch {
		case resp.StatusCode == want:
			return true, nil
		case resp.StatusCode == http.StatusNotFound:
			return false, errors.NotFoundf("%s", url)
		default:
			return false, errors.Errorf("%s answered %d, want %d", url, resp.StatusCode, want)
		}
	}
}
