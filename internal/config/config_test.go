// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juju/pacing-testkit/internal/config"
	"github.com/juju/pacing-testkit/internal/wait"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := config.FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, wait.DefaultTimeout, cfg.WaitTimeout)
	assert.Equal(t, time.UTC, cfg.Timezone)
}

func TestFromLookup(t *testing.T) {
	cfg, err := config.FromLookup(lookupFrom(map[string]string{
		config.WaitTimeoutEnvKey:  "45s",
		config.PollIntervalEnvKey: "500ms",
		config.TimezoneEnvKey:     "UTC",
		config.LogLevelEnvKey:     "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.WaitTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "UTC", cfg.Timezone.String())
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)

	policy := cfg.WaitPolicy()
	assert.Equal(t, 45*time.Second, policy.Timeout)
	assert.Equal(t, 500*time.Millisecond, policy.PollInterval)
}

func TestFromLookupInvalid(t *testing.T) {
	tests := []struct {
		desc   string
		values map[string]string
	}{
		{desc: "bad timeout", values: map[string]string{config.WaitTimeoutEnvKey: "soon"}},
		{desc: "zero timeout", values: map[string]string{config.WaitTimeoutEnvKey: "0s"}},
		{desc: "negative interval", values: map[string]string{config.PollIntervalEnvKey: "-1s"}},
		{desc: "bad timezone", values: map[string]string{config.TimezoneEnvKey: "Mars/Olympus_Mons"}},
		{desc: "bad level", values: map[string]string{config.LogLevelEnvKey: "loud"}},
		{desc: "interval longer than timeout", values: map[string]string{
			config.WaitTimeoutEnvKey:  "1s",
			config.PollIntervalEnvKey: "2s",
		}},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := config.FromLookup(lookupFrom(test.values))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.NotValid), "expected not valid, got %v", err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "pacing.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PACING_WAIT_TIMEOUT=2m\nPACING_LOG_LEVEL=warn\n"), 0o600))
	t.Setenv(config.LogLevelEnvKey, "error")

	cfg, err := config.Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.WaitTimeout)
	// The environment wins over the file.
	assert.Equal(t, zerolog.ErrorLevel, cfg.LogLevel)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	previousLevel := zerolog.GlobalLevel()
	previousPolicy := wait.DefaultPolicy()
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(previousLevel)
		wait.SetDefaults(previousPolicy)
	})

	cfg := config.Default()
	cfg.WaitTimeout = 90 * time.Second
	cfg.LogLevel = zerolog.WarnLevel
	cfg.Apply()

	assert.Equal(t, 90*time.Second, wait.DefaultPolicy().Timeout)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestFormatter(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = time.FixedZone("EST", -5*60*60)
	ts := time.Date(2024, time.January, 5, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "January 4, 2024", cfg.Formatter().Format(ts, ts.AddDate(0, 2, 0)))
}
