package dataclass

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/dataarray/internal/tensor"
	"github.com/born-ml/dataarray/internal/xarray"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrSchema       = errors.New("invalid class definition")
	ErrShape        = errors.New("shape mismatch")
	ErrDType        = errors.New("invalid dtype")
	ErrMissingCoord = errors.New("missing coordinate")
	ErrUnknownCoord = errors.New("unknown coordinate")
)

// Error provides detailed information about a failed definition or construction.
type Error struct {
	Kind    error  // One of the Err* kinds above
	Class   string // Class name, if known
	Field   string // Dimension, coordinate or option involved
	Details string // Additional details
	Err     error  // Underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Class != "" {
		fmt.Fprintf(&b, "%s: ", e.Class)
	}
	b.WriteString(e.Kind.Error())
	if e.Field != "" {
		fmt.Fprintf(&b, ": %q", e.Field)
	}
	if e.Details != "" {
		b.WriteString(": " + e.Details)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func schemaError(class, field, format string, args ...any) *Error {
	return &Error{Kind: ErrSchema, Class: class, Field: field, Details: fmt.Sprintf(format, args...)}
}

// kindOf maps an error from the array layers onto this package's kinds.
func kindOf(err error) error {
	switch {
	case errors.Is(err, tensor.ErrDType):
		return ErrDType
	case errors.Is(err, tensor.ErrShape), errors.Is(err, xarray.ErrDims), errors.Is(err, xarray.ErrCoord):
		return ErrShape
	default:
		return ErrSchema
	}
}

func wrapError(class, field string, err error) *Error {
	return &Error{Kind: kindOf(err), Class: class, Field: field, Err: err}
}
