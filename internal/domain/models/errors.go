package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure by the stage that produced it.
type ErrorKind string

const (
	KindConfiguration  ErrorKind = "configuration"
	KindAuthentication ErrorKind = "authentication"
	KindRateLimited    ErrorKind = "rate_limited"
	KindValidation     ErrorKind = "validation"
	KindFetch          ErrorKind = "fetch"
	KindFit            ErrorKind = "fit"
)

var (
	ErrConfiguration      = errors.New("credential store unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many login attempts")
	ErrNoData             = errors.New("no data fetched")
	ErrUnknownTicker      = errors.New("ticker not allowed")
	ErrInvalidRange       = errors.New("start date is after end date")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrInvalidHorizon     = errors.New("horizon out of range")
	ErrInsufficientData   = errors.New("not enough observations to fit model")
	ErrDegenerateSeries   = errors.New("series is constant or not finite")
	ErrFitFailed          = errors.New("model fit failed")
)

// StageError carries the kind of the pipeline stage that failed.
type StageError struct {
	Kind ErrorKind
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError wraps err with kind. A nil err yields nil.
func NewStageError(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Kind: kind, Err: err}
}

// KindOf returns the kind recorded on err, or "" if err carries none.
func KindOf(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
