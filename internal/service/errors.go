package service

import "errors"

var (
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// InputError is a client mistake with a message safe to show.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

func inputErr(msg string) error {
	return &InputError{Msg: msg}
}
