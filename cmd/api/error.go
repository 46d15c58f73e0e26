package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// errid ties an error to the request that caused it.
type errid struct {
	reqid string
	err   error
}

// wrap keeps a stack trace only in debug mode, otherwise just the message.
func (e errid) wrap(cause error, txt string) error {
	err := errors.WithMessage(cause, txt)
	if debug {
		err = errors.Wrap(cause, txt)
	}
	e.err = err
	return e
}

func (e errid) Error() string {
	return fmt.Sprintf("%s: %s", e.reqid, e.err.Error())
}

func (e errid) Cause() error {
	return errors.Cause(e.err)
}

func (e errid) text(txt string) error {
	e.err = errors.WithStack(errors.New(txt))
	return e
}

func (e errid) from(err error) error {
	e.err = errors.WithStack(err)
	return e
}
