package xerrors

import (
	"errors"
	"strings"
)

// Kind classifies automation failures. None of them are fatal.
type Kind string

const (
	KindProbeMiss      Kind = "probe_miss"
	KindNetworkTimeout Kind = "network_timeout"
	KindInjection      Kind = "injection"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

type Error struct {
	Kind       Kind
	Message    string
	Cause      error
	Validation *ValidationInfo
}

type ValidationInfo struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same Kind, so errors.Is(err, xerrors.ProbeMiss()) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == defaultMessage(t.Kind)
}

func ProbeMiss(opts ...Option) *Error      { return newErr(KindProbeMiss, opts) }
func NetworkTimeout(opts ...Option) *Error { return newErr(KindNetworkTimeout, opts) }
func Injection(opts ...Option) *Error      { return newErr(KindInjection, opts) }
func NotFound(opts ...Option) *Error       { return newErr(KindNotFound, opts) }

func Validation(fields map[string]string, opts ...Option) *Error {
	e := newErr(KindValidation, opts)
	e.Validation = &ValidationInfo{Fields: fields}
	return e
}

func newErr(kind Kind, opts []Option) *Error {
	e := &Error{Kind: kind, Message: defaultMessage(kind)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func defaultMessage(kind Kind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}

type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithCause(err error) Option    { return func(e *Error) { e.Cause = err } }

func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if e := As(err); e != nil {
		return e.Kind
	}
	return KindInternal
}
