// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package browserwait

import (
	"github.com/juju/errors"
	"github.com/tebeka/selenium"

	"github.com/juju/pacing-testkit/internal/wait"
)

// W3C WebDriver error codes.
const (
	codeStaleElement  = "stale element reference"
	codeNoSuchElement = "no such element"
	codeJavascript    = "javascript error"
	codeScriptTimeout = "script timeout"
	codeTimeout       = "timeout"
)

// ClassifyError maps WebDriver errors to wait error kinds. Kinds already
// known to wait.KindOf, including explicit tags, take precedence.
func ClassifyError(err error) wait.ErrorKind {
	if kind := wait.KindOf(err); kind != wait.KindGeneric {
		return kind
	}
	var wdErr *selenium.Error
	if !errors.As(err, &wdErr) {
		return wait.KindGeneric
	}
	switch wdErr.Err {
	case codeStaleElement:
		return wait.KindStaleReference
	case codeNoSuchElement:
		return wait.KindElementGone
	case codeJavascript:
		return wait.KindScript
	case codeScriptTimeout, codeTimeout:
		return wait.KindTimeout
	default:
		return wait.KindGeneric
	}
}
