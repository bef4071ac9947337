package utils

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedArgument = errors.New("malformed argument")
	ErrMissingArgument   = errors.New("missing required argument")
	ErrMalformedPair     = errors.New("malformed name=value pair")
)

// MalformedArgumentError A fragment of the argument list had no '?' between name and value
type MalformedArgumentError struct {
	Fragment string
}

func (e *MalformedArgumentError) Error() string {
	return fmt.Sprintf("%s: %q has no '?' separator", ErrMalformedArgument, e.Fragment)
}

func (e *MalformedArgumentError) Unwrap() error {
	return ErrMalformedArgument
}

// MissingArgumentError carries the caller supplied message for the first required name not found
type MissingArgumentError struct {
	Name    string
	Message string
}

func (e *MissingArgumentError) Error() string {
	return e.Message
}

func (e *MissingArgumentError) Unwrap() error {
	return ErrMissingArgument
}

type MalformedPairError struct {
	Pair string
}

func (e *MalformedPairError) Error() string {
	return fmt.Sprintf("%s: %q has no '=' separator", ErrMalformedPair, e.Pair)
}

func (e *MalformedPairError) Unwrap() error {
	return ErrMalformedPair
}
