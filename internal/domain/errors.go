package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidPrompt       = errors.New("invalid prompt selected")
	ErrUnknownCharacter    = errors.New("one or more of the selected characters do not exist")
	ErrIneligibleAsset     = errors.New("asset cannot be granted to this owner")
	ErrInvalidAsset        = errors.New("invalid asset")
	ErrNotPending          = errors.New("submission is no longer pending")
	ErrDistributionFailure = errors.New("failed to distribute rewards")
)

// ValidationError is returned before any state is touched. It matches both
// ErrValidation and its Reason with errors.Is.
type ValidationError struct {
	Reason error
	Detail string
}

func NewValidationError(reason error, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return e.Reason.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Reason}
}

// DistributionError reports the credit that failed. It matches ErrDistributionFailure.
type DistributionError struct {
	Owner Owner
	Asset AssetKey
	Err   error
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("%v: %s to %s -> %v", ErrDistributionFailure, e.Asset, e.Owner, e.Err)
}

func (e *DistributionError) Unwrap() []error {
	return []error{ErrDistributionFailure, e.Err}
}
