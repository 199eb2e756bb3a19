package config

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrPortMissing      = errors.New("port is missing")
	ErrPortNotAnInteger = errors.New("port is not an integer")
	ErrPortOutOfRange   = errors.New("port is out of range")

	ErrTooManyArguments = errors.New("too many arguments")

	ErrBindAddressEmpty = errors.New("bind address is empty")

	ErrRootNotADirectory = errors.New("root is not a directory")

	ErrCompressionFormatUnknown = errors.New("compression format unknown")

	ErrVerbosityOutOfRange = errors.New("verbosity is out of range")
)

// ArgumentError is returned for invalid or missing command line arguments.
// No socket has been opened when it is returned.
type ArgumentError struct {
	Arg   string
	Value string
	Err   error
}

func (e *ArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid argument %v: %v", e.Arg, e.Err)
	}

	return fmt.Sprintf("invalid argument %v=%q: %v", e.Arg, e.Value, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// BindError is returned if the listening socket can't be created.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("could not listen on %v: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
