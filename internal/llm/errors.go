package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure so callers can map it to a status
// without string-matching. Timeout and malformed-output are deliberately
// distinct from upstream failure: the former maps to 504, the latter is
// retryable by the operator even though the HTTP call itself succeeded.
type Kind int

const (
	KindUnknown Kind = iota
	// Missing credential or other process configuration problem.
	KindConfig
	// Non-2xx from the model provider.
	KindUpstream
	// Client-side deadline elapsed before the provider answered.
	KindTimeout
	// The provider answered 2xx but the first message had no text.
	KindEmptyReply
	// The reply text did not contain a parseable JSON object.
	KindMalformed
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the classification of err, or KindUnknown for errors
// that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
