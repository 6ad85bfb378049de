package errors

import (
	"fmt"

	"reel-processor/pkg/errors/i18n"
)

type ReelError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ReelError) Unwrap() error {
	return e.Err
}

const (
	CodeValidation = "validation_error"
	CodeStaging    = "staging_error"
	CodeFailed     = "processing_failed"
	CodeTimeout    = "processing_timeout"
	CodeInternal   = "internal_error"
)

var (
	// ErrValidation carries a client-facing detail (which field, which rule). It never
	// contains paths.
	ErrValidation = func(detail string) *ReelError {
		msg := i18n.T(CodeValidation)
		if detail != "" {
			msg = msg + ": " + detail
		}
		return &ReelError{Code: CodeValidation, Message: msg}
	}
	ErrStaging = func(err error) *ReelError {
		return &ReelError{Code: CodeStaging, Message: i18n.T(CodeStaging), Err: err}
	}
	ErrProcessing = func(err error) *ReelError {
		return &ReelError{Code: CodeFailed, Message: i18n.T(CodeFailed), Err: err}
	}
	ErrTimeout = func(err error) *ReelError {
		return &ReelError{Code: CodeTimeout, Message: i18n.T(CodeTimeout), Err: err}
	}
	ErrInternal = func(err error) *ReelError {
		return &ReelError{Code: CodeInternal, Message: i18n.T(CodeInternal), Err: err}
	}
)
