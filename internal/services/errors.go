package services

import "errors"

// InputError marks a request rejected before any network call (missing
// required fields). Handlers map it to 400.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func newInputError(msg string) error { return &InputError{Message: msg} }

func IsInputError(err error) bool {
	var e *InputError
	return errors.As(err, &e)
}
