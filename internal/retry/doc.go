// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

// Package retry retries operations that fail with a known set of error kinds.
// It is the allow-list counterpart of package wait: only the listed kinds are
// retried and any other failure is returned straight away.
package retry
