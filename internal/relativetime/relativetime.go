// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

// Package relativetime renders how long ago something happened, the way the
// course pacing pages label due dates and submissions.
package relativetime

import (
	"fmt"
	"time"
)

// Tier is one of the fixed display buckets.
type Tier int

const (
	// JustNow covers the first five minutes, inclusive.
	JustNow Tier = iota
	// MinutesAgo counts whole minutes below one hour.
	MinutesAgo
	// HoursAgo counts whole hours below one day.
	HoursAgo
	// DaysAgo counts whole days below one week.
	DaysAgo
	// WeeksAgo counts whole weeks below four weeks.
	WeeksAgo
	// AbsoluteDate renders the timestamp itself with DateLayout.
	AbsoluteDate
)

func (t Tier) String() string {
	switch t {
	case JustNow:
		return "just-now"
	case MinutesAgo:
		return "minutes"
	case HoursAgo:
		return "hours"
	case DaysAgo:
		return "days"
	case WeeksAgo:
		return "weeks"
	case AbsoluteDate:
		return "absolute-date"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

const (
	day  = 24 * time.Hour
	week = 7 * day

	justNowLimit  = 5 * time.Minute
	absoluteAfter = 4 * week
)

// DateLayout is the long form date used once relative wording stops.
const DateLayout = "January 2, 2006"

// Label is the display decision for one timestamp. N is the whole number of
// units for the relative tiers, Date the timestamp for AbsoluteDate.
type Label struct {
	Tier Tier
	N    int
	Date time.Time
}

// String renders the label. Dates are rendered in the location they carry.
func (l Label) String() string {
	switch l.Tier {
	case MinutesAgo:
		return fmt.Sprintf("%d minutes ago", l.N)
	case HoursAgo:
		return fmt.Sprintf("%d hours ago", l.N)
	case DaysAgo:
		return fmt.Sprintf("%d days ago", l.N)
	case WeeksAgo:
		if l.N == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", l.N)
	case AbsoluteDate:
		return l.Date.Format(DateLayout)
	default:
		return "Just Now"
	}
}

// Classify returns the tier for delta and the whole number of units in it.
// Negative deltas, timestamps in the future, are treated as just now.
func Classify(delta time.Duration) (Tier, int) {
	switch {
	case delta <= justNowLimit:
		return JustNow, 0
	case delta < time.Hour:
		return MinutesAgo, int(delta / time.Minute)
	case delta < day:
		return HoursAgo, int(delta / time.Hour)
	case delta < week:
		return DaysAgo, int(delta / day)
	case delta < absoluteAfter:
		return WeeksAgo, int(delta / week)
	default:
		return AbsoluteDate, 0
	}
}

// Formatter renders labels with absolute dates in a fixed location.
// The zero value uses UTC.
type Formatter struct {
	Location *time.Location
}

// New returns a Formatter rendering absolute dates in loc.
func New(loc *time.Location) Formatter {
	return Formatter{Location: loc}
}

// Label returns the display decision for ts relative to now.
func (f Formatter) Label(ts, now time.Time) Label {
	tier, n := Classify(now.Sub(ts))
	l := Label{Tier: tier, N: n}
	if tier == AbsoluteDate {
		loc := f.Location
		if loc == nil {
			loc = time.UTC
		}
		l.Date = ts.In(loc)
	}
	return l
}

// Format returns the display string for ts relative to now.
func (f Formatter) Format(ts, now time.Time) string {
	return f.Label(ts, now).String()
}

// Format renders ts relative to now with absolute dates in UTC.
func Format(ts, now time.Time) string {
	return Formatter{}.Format(ts, now)
}
