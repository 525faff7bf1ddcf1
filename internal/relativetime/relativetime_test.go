// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package relativetime_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/juju/pacing-testkit/internal/relativetime"
)

var now = time.Date(2024, time.March, 14, 15, 9, 26, 0, time.UTC)

func TestFormat(t *testing.T) {
	tests := []struct {
		desc     string
		delta    time.Duration
		expected string
	}{
		{desc: "one minute", delta: time.Minute, expected: "Just Now"},
		{desc: "exactly five minutes", delta: 5 * time.Minute, expected: "Just Now"},
		{desc: "just over five minutes", delta: 5*time.Minute + time.Second, expected: "5 minutes ago"},
		{desc: "seven minutes", delta: 7 * time.Minute, expected: "7 minutes ago"},
		{desc: "just under an hour", delta: 59*time.Minute + 59*time.Second, expected: "59 minutes ago"},
		{desc: "exactly an hour", delta: time.Hour, expected: "1 hours ago"},
		{desc: "three hours", delta: 3 * time.Hour, expected: "3 hours ago"},
		{desc: "just under a day", delta: 23*time.Hour + 59*time.Minute, expected: "23 hours ago"},
		{desc: "exactly a day", delta: 24 * time.Hour, expected: "1 days ago"},
		{desc: "four days", delta: 4 * 24 * time.Hour, expected: "4 days ago"},
		{desc: "just under a week", delta: 7*24*time.Hour - time.Minute, expected: "6 days ago"},
		{desc: "exactly a week", delta: 7 * 24 * time.Hour, expected: "1 week ago"},
		{desc: "thirteen days", delta: 13 * 24 * time.Hour, expected: "1 week ago"},
		{desc: "two weeks", delta: 14 * 24 * time.Hour, expected: "2 weeks ago"},
		{desc: "just under four weeks", delta: 28*24*time.Hour - time.Second, expected: "3 weeks ago"},
		{desc: "future timestamp", delta: -2 * time.Hour, expected: "Just Now"},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			assert.Equal(t, test.expected, relativetime.Format(now.Add(-test.delta), now))
		})
	}
}

func TestFormatAbsoluteDate(t *testing.T) {
	for _, delta := range []time.Duration{28 * 24 * time.Hour, 5 * 7 * 24 * time.Hour, 400 * 24 * time.Hour} {
		ts := now.Add(-delta)
		assert.Equal(t, ts.Format("January 2, 2006"), relativetime.Format(ts, now))
	}
	assert.Equal(t, "February 8, 2024", relativetime.Format(now.Add(-5*7*24*time.Hour), now))
}

func TestFormatterLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	ts := time.Date(2024, time.January, 5, 2, 0, 0, 0, time.UTC)
	reference := ts.Add(60 * 24 * time.Hour)

	assert.Equal(t, "January 5, 2024", relativetime.Format(ts, reference))
	assert.Equal(t, "January 4, 2024", relativetime.New(est).Format(ts, reference))
	// Relative tiers do not depend on the location.
	assert.Equal(t, "3 hours ago", relativetime.New(est).Format(ts, ts.Add(3*time.Hour)))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		delta time.Duration
		tier  relativetime.Tier
		n     int
	}{
		{-time.Minute, relativetime.JustNow, 0},
		{0, relativetime.JustNow, 0},
		{6 * time.Minute, relativetime.MinutesAgo, 6},
		{90 * time.Minute, relativetime.HoursAgo, 1},
		{50 * time.Hour, relativetime.DaysAgo, 2},
		{20 * 24 * time.Hour, relativetime.WeeksAgo, 2},
		{28 * 24 * time.Hour, relativetime.AbsoluteDate, 0},
	}
	for _, test := range tests {
		tier, n := relativetime.Classify(test.delta)
		assert.Equal(t, test.tier, tier, "delta %v", test.delta)
		assert.Equal(t, test.n, n, "delta %v", test.delta)
	}
}

func TestLabel(t *testing.T) {
	f := relativetime.Formatter{}
	l := f.Label(now.Add(-30*24*time.Hour), now)
	assert.Equal(t, relativetime.AbsoluteDate, l.Tier)
	assert.Equal(t, time.UTC, l.Date.Location())

	l = f.Label(now.Add(-3*time.Hour), now)
	assert.Equal(t, relativetime.Label{Tier: relativetime.HoursAgo, N: 3}, l)
	assert.Equal(t, "hours", l.Tier.String())
}

func TestFormatIsRepeatable(t *testing.T) {
	f := relativetime.New(time.FixedZone("CET", 60*60))
	var wg sync.WaitGroup
	results := make([][]string, 8)
	deltas := []time.Duration{time.Minute, 7 * time.Minute, 3 * time.Hour, 4 * 24 * time.Hour, 7 * 24 * time.Hour, 35 * 24 * time.Hour}
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, d := range deltas {
				results[i] = append(results[i], f.Format(now.Add(-d), now))
			}
		}()
	}
	wg.Wait()
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}
