// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

// Package browserwait waits on browser state through a WebDriver session:
// scripts returning truthy values, idle AJAX, finished animations, elements
// appearing, disappearing or going stale.
//
// All waits go through package wait, so they share its timeout defaults,
// its error kinds and its rejection of nested waits.
package browserwait
