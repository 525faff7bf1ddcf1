// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

// Package config loads the process wide settings of the test kit from the
// environment, optionally seeded from a dotenv file.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/rs/zerolog"

	"github.com/juju/pacing-testkit/internal/relativetime"
	"github.com/juju/pacing-testkit/internal/wait"
)

const (
	// WaitTimeoutEnvKey holds the default wait timeout, as a Go duration.
	WaitTimeoutEnvKey = "PACING_WAIT_TIMEOUT"
	// PollIntervalEnvKey holds the default poll interval, as a Go duration.
	PollIntervalEnvKey = "PACING_POLL_INTERVAL"
	// TimezoneEnvKey holds the IANA zone used for absolute dates.
	TimezoneEnvKey = "PACING_TIMEZONE"
	// LogLevelEnvKey holds the zerolog level name.
	LogLevelEnvKey = "PACING_LOG_LEVEL"
)

// Config holds the settings read at startup.
type Config struct {
	// WaitTimeout is the default timeout of every wait.
	WaitTimeout time.Duration
	// PollInterval is the default delay between predicate calls.
	PollInterval time.Duration
	// Timezone is used to render absolute dates.
	Timezone *time.Location
	// LogLevel is the global zerolog level.
	LogLevel zerolog.Level
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		WaitTimeout:  wait.DefaultTimeout,
		PollInterval: wait.DefaultPollInterval,
		Timezone:     time.UTC,
		LogLevel:     zerolog.InfoLevel,
	}
}

// Load reads the configuration from the process environment. If envFile is
// not empty its variables are used for keys the environment does not set.
func Load(envFile string) (Config, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		var err error
		fileVars, err = godotenv.Read(envFile)
		if err != nil {
			return Config{}, errors.Annotatef(err, "reading env file %q", envFile)
		}
	}
	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	})
}

// FromLookup builds a Config from the values returned by lookup.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup(WaitTimeoutEnvKey); ok && v != "" {
		d, err := positiveDuration(WaitTimeoutEnvKey, v)
		if err != nil {
			return Config{}, err
		}
		cfg.WaitTimeout = d
	}
	if v, ok := lookup(PollIntervalEnvKey); ok && v != "" {
		d, err := positiveDuration(PollIntervalEnvKey, v)
		if err != nil {
			return Config{}, err
		}
		cfg.PollInterval = d
	}
	if v, ok := lookup(TimezoneEnvKey); ok && v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, errors.NewNotValid(err, "invalid "+TimezoneEnvKey)
		}
		cfg.Timezone = loc
	}
	if v, ok := lookup(LogLevelEnvKey); ok && v != "" {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			return Config{}, errors.NewNotValid(err, "invalid "+LogLevelEnvKey)
		}
		cfg.LogLevel = level
	}
	if cfg.PollInterval > cfg.WaitTimeout {
		return Config{}, errors.NotValidf("%s %v longer than %s %v", PollIntervalEnvKey, cfg.PollInterval, WaitTimeoutEnvKey, cfg.WaitTimeout)
	}
	return cfg, nil
}

func positiveDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.NewNotValid(err, "invalid "+key)
	}
	if d <= 0 {
		return 0, errors.NotValidf("%s %q: non-positive duration", key, value)
	}
	return d, nil
}

// Apply installs the configuration as the process defaults: the default wait
// policy and the global log level.
func (c Config) Apply() {
	wait.SetDefaults(c.WaitPolicy())
	zerolog.SetGlobalLevel(c.LogLevel)
}

// WaitPolicy returns the wait policy described by the configuration.
func (c Config) WaitPolicy() wait.Policy {
	return wait.Policy{
		Timeout:      c.WaitTimeout,
		PollInterval: c.PollInterval,
		Clock:        clock.WallClock,
	}
}

// Formatter returns a relative time formatter for the configured timezone.
func (c Config) Formatter() relativetime.Formatter {
	return relativetime.New(c.Timezone)
}
