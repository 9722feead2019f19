package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. Use errors.Is against these.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrEmptySourceData      = errors.New("empty source data")
	ErrInvalidFormation     = errors.New("invalid formation")
	ErrNonPositivePrice     = errors.New("non-positive price")
	ErrNarratorDisabled     = errors.New("narrative generator disabled")
)

// MissingRequiredFieldError lists the canonical fields that could not be resolved
type MissingRequiredFieldError struct {
	Fields []string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField, strings.Join(e.Fields, ", "))
}

func (e *MissingRequiredFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// EmptySourceDataError reports that no usable input was found.
// Skipped lists inputs that were present but empty or unreadable.
type EmptySourceDataError struct {
	Source  string
	Skipped []string
}

func (e *EmptySourceDataError) Error() string {
	if len(e.Skipped) == 0 {
		return fmt.Sprintf("%s: no inputs found in %s", ErrEmptySourceData, e.Source)
	}
	return fmt.Sprintf("%s: all inputs in %s were empty or unreadable (%s)",
		ErrEmptySourceData, e.Source, strings.Join(e.Skipped, ", "))
}

func (e *EmptySourceDataError) Is(target error) bool {
	return target == ErrEmptySourceData
}

// InvalidFormationError reports an unparseable formation string
type InvalidFormationError struct {
	Input  string
	Reason string
}

func (e *InvalidFormationError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidFormation, e.Input, e.Reason)
}

func (e *InvalidFormationError) Is(target error) bool {
	return target == ErrInvalidFormation
}

// NonPositivePriceError is returned only by strict metrics mode
type NonPositivePriceError struct {
	PlayerID string
	Price    float64
}

func (e *NonPositivePriceError) Error() string {
	return fmt.Sprintf("%s: player %s has price %v", ErrNonPositivePrice, e.PlayerID, e.Price)
}

func (e *NonPositivePriceError) Is(target error) bool {
	return target == ErrNonPositivePrice
}
