// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package wait

// ResetDefaults restores the built in default policy.
func ResetDefaults() {
	defaults.Store(nil)
}
