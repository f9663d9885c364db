// Package xserr defines the error kinds from the solver's error-handling
// design: InvalidGeometry, DegenerateSubdivision, NumericFailure, and
// AllocationFailure. Each kind wraps a descriptive message the way the
// teacher's io/config.go builds its CheckInit errors, so callers can both
// read a human message and errors.As onto the kind when they need to branch.
package xserr

import "fmt"

// Kind distinguishes the error categories from the error-handling design.
type Kind int

const (
	// InvalidGeometry covers malformed halfspaces, duplicate or reserved
	// user ids, and ringify/sectorize preconditions that are violated.
	// Fatal.
	InvalidGeometry Kind = iota
	// DegenerateSubdivision covers ring/sector requests that cannot be
	// satisfied (R_out <= R_in, more than two circles). Non-fatal: the
	// caller is expected to leave the cell undivided.
	DegenerateSubdivision
	// NumericFailure covers zero fission source at normalization time and
	// negative material data. Fatal.
	NumericFailure
	// AllocationFailure covers an array that could not be allocated at the
	// requested size. Fatal.
	AllocationFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidGeometry:
		return "InvalidGeometry"
	case DegenerateSubdivision:
		return "DegenerateSubdivision"
	case NumericFailure:
		return "NumericFailure"
	case AllocationFailure:
		return "AllocationFailure"
	default:
		return "UnknownErrorKind"
	}
}

// Error is a typed error carrying one of the Kind values above plus the
// offending id or location, per the error-handling design's requirement
// that fatal conditions report the offending id/iteration/FSR.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Is lets errors.Is match two *Error values with the same Kind, the way a
// caller would match a sentinel — useful in tests that only care about the
// category, not the exact message.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
