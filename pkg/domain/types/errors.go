package types

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// ErrorKind classifies a failure of one unit of sync work
type ErrorKind string

const (
	KindMalformedPayload ErrorKind = "MalformedPayloadError"
	KindNotFound         ErrorKind = "NotFoundError"
	KindAuth             ErrorKind = "AuthError"
	KindUpstream         ErrorKind = "UpstreamError"
	KindTransient        ErrorKind = "TransientError"
	KindTimeout          ErrorKind = "TimeoutError"
)

var (
	ErrMalformedPayload = goerr.NewTag("malformed_payload")
	ErrNotFound         = goerr.NewTag("not_found")
	ErrAuth             = goerr.NewTag("auth")
	ErrUpstream         = goerr.NewTag("upstream")
	ErrTransient        = goerr.NewTag("transient")
	ErrTimeout          = goerr.NewTag("timeout")
)

// errorKinds is the single classification table. Order matters: the first
// matching tag wins.
var errorKinds = []struct {
	kind ErrorKind
	tag  goerr.Option
	has  func(error) bool
}{
	{KindMalformedPayload, goerr.T(ErrMalformedPayload), func(err error) bool { return goerr.HasTag(err, ErrMalformedPayload) }},
	{KindAuth, goerr.T(ErrAuth), func(err error) bool { return goerr.HasTag(err, ErrAuth) }},
	{KindNotFound, goerr.T(ErrNotFound), func(err error) bool { return goerr.HasTag(err, ErrNotFound) }},
	{KindTimeout, goerr.T(ErrTimeout), func(err error) bool { return goerr.HasTag(err, ErrTimeout) }},
	{KindTransient, goerr.T(ErrTransient), func(err error) bool { return goerr.HasTag(err, ErrTransient) }},
	{KindUpstream, goerr.T(ErrUpstream), func(err error) bool { return goerr.HasTag(err, ErrUpstream) }},
}

// T returns the goerr option tagging an error with kind k. Unknown kinds are
// tagged as UpstreamError.
func T(k ErrorKind) goerr.Option {
	for _, e := range errorKinds {
		if e.kind == k {
			return e.tag
		}
	}
	return goerr.T(ErrUpstream)
}

// KindOf returns the ErrorKind of err. Untagged errors are treated as
// UpstreamError, bare context errors as TimeoutError.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	for _, e := range errorKinds {
		if e.has(err) {
			return e.kind
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTimeout
	}

	return KindUpstream
}

// Retryable reports whether a failure of this kind may succeed on retry
func (k ErrorKind) Retryable() bool {
	return k == KindTransient
}

// Fatal reports whether a failure of this kind aborts the whole job
func (k ErrorKind) Fatal() bool {
	return k == KindMalformedPayload || k == KindAuth
}
