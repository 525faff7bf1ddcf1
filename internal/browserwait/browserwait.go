// Copyright 2026 Canonical Ltd.
// Licensed under the Apache License, Version 2.0, see LICENCE file for details.

package browserwait

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/rs/zerolog/log"
	"github.com/tebeka/selenium"

	"github.com/juju/pacing-testkit/internal/wait"
)

const (
	scriptDocumentReady = `return document.readyState === "complete";`
	// Pages without jQuery have nothing in flight as far as jQuery knows.
	scriptAJAXIdle       = `return (typeof jQuery === "undefined") || jQuery.active === 0;`
	scriptAnimationsDone = `return (typeof jQuery === "undefined") || jQuery(":animated").length === 0;`
)

// Waiter runs waits against one WebDriver session.
type Waiter struct {
	Driver selenium.WebDriver
	// Policy is used for every wait. Nil means the process defaults.
	// A nil Classify is replaced by ClassifyError.
	Policy *wait.Policy
}

// New returns a Waiter for wd.
func New(wd selenium.WebDriver, policy *wait.Policy) *Waiter {
	return &Waiter{Driver: wd, Policy: policy}
}

func (w *Waiter) policy() *wait.Policy {
	p := wait.DefaultPolicy()
	if w.Policy != nil {
		p = *w.Policy
	}
	if p.Classify == nil {
		p.Classify = ClassifyError
	}
	return &p
}

// JS waits until script returns a truthy value and returns that value.
func (w *Waiter) JS(ctx context.Context, script string, args ...interface{}) (interface{}, error) {
	log.Ctx(ctx).Debug().Str("script", script).Msg("waiting for script")
	result, err := wait.WaitFor(wait.WaitForCfg[interface{}]{
		Context: ctx,
		Predicate: func(context.Context) (interface{}, error) {
			return w.Driver.ExecuteScript(script, args)
		},
		Policy: w.policy(),
	})
	return result, errors.Trace(err)
}

// PageLoad waits until the document has finished loading.
func (w *Waiter) PageLoad(ctx context.Context) error {
	_, err := w.JS(ctx, scriptDocumentReady)
	return errors.Annotate(err, "waiting for page load")
}

// AJAX waits until jQuery reports no active requests.
func (w *Waiter) AJAX(ctx context.Context) error {
	_, err := w.JS(ctx, scriptAJAXIdle)
	return errors.Annotate(err, "waiting for AJAX requests")
}

// Animations waits until no element is being animated by jQuery.
func (w *Waiter) Animations(ctx context.Context) error {
	_, err := w.JS(ctx, scriptAnimationsDone)
	return errors.Annotate(err, "waiting for animations")
}

// Element waits until an element matching by and value exists and returns it.
// While the element is missing the lookup fails with kind not-found, not
// element-gone, so a policy aborting on element-gone does not end the wait.
func (w *Waiter) Element(ctx context.Context, by, value string) (selenium.WebElement, error) {
	elem, err := wait.WaitFor(wait.WaitForCfg[selenium.WebElement]{
		Context:   ctx,
		Predicate: w.findElement(by, value),
		Policy:    w.policy(),
	})
	return elem, errors.Annotatef(err, "waiting for element %s=%q", by, value)
}

// Visible waits until an element matching by and value exists and is displayed.
func (w *Waiter) Visible(ctx context.Context, by, value string) (selenium.WebElement, error) {
	elem, err := wait.WaitFor(wait.WaitForCfg[selenium.WebElement]{
		Context:   ctx,
		Predicate: w.findElement(by, value),
		Assertions: []wait.Assert[selenium.WebElement]{
			func(elem selenium.WebElement) error {
				displayed, err := elem.IsDisplayed()
				if err != nil {
					return err
				}
				if !displayed {
					return fmt.Errorf("element %s=%q not displayed", by, value)
				}
				return nil
			},
		},
		Policy: w.policy(),
	})
	return elem, errors.Annotatef(err, "waiting for element %s=%q to be visible", by, value)
}

// ElementGone waits until no element matches by and value.
func (w *Waiter) ElementGone(ctx context.Context, by, value string) error {
	_, err := wait.WaitFor(wait.WaitForCfg[bool]{
		Context: ctx,
		Predicate: func(context.Context) (bool, error) {
			elems, err := w.Driver.FindElements(by, value)
			if err != nil {
				if ClassifyError(err) == wait.KindElementGone {
					return true, nil
				}
				return false, err
			}
			return len(elems) == 0, nil
		},
		Policy: w.policy(),
	})
	return errors.Annotatef(err, "waiting for element %s=%q to go away", by, value)
}

// Stale waits until elem is detached from the document, typically after a
// navigation or a re-render replaced it.
func (w *Waiter) Stale(ctx context.Context, elem selenium.WebElement) error {
	err := wait.WaitForError(wait.WaitForErrorCfg[bool]{
		Context: ctx,
		Predicate: func(context.Context) (bool, error) {
			return elem.IsEnabled()
		},
		Kind:   wait.KindStaleReference,
		Policy: w.policy(),
	})
	return errors.Annotate(err, "waiting for element to go stale")
}

func (w *Waiter) findElement(by, value string) wait.Predicate[selenium.WebElement] {
	return func(context.Context) (selenium.WebElement, error) {
		elem, err := w.Driver.FindElement(by, value)
		if err != nil && ClassifyError(err) == wait.KindElementGone {
			return nil, wait.WithKind(err, wait.KindNotFound)
		}
		return elem, err
	}
}
