// Package middleware implements the ordered interceptor pipeline wrapped
// around every invocation. Stages compose like layers of an onion: stage 1
// runs first on the way in and last on the way out, with the innermost
// handler being the invocation itself.
//
// A stage may inspect input before calling next, inspect or transform the
// output after, short-circuit by not calling next at all, or replace errors.
// The pipeline does not validate stage well-formedness: a stage that never
// calls next silently prevents the invocation from running. That is accepted
// behavior, not an error — treat it as a footgun when writing stages.
//
// When no stages are configured a single pass-through identity stage is
// installed, so call sites never special-case "no middleware".
package middleware
