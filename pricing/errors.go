package pricing

import "fmt"

// ErrorKind classifies an input validation failure
type ErrorKind int

const (
	EmptyField ErrorKind = iota + 1
	NonPositive
	NegativeCount
	OutOfRange
	UnknownOption
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyField:
		return "empty field"
	case NonPositive:
		return "non-positive"
	case NegativeCount:
		return "negative count"
	case OutOfRange:
		return "out of range"
	case UnknownOption:
		return "unknown option"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Field names carried by ValidationError
const (
	FieldWidth           = "width"
	FieldHeight          = "height"
	FieldSlideCount      = "slideCount"
	FieldDiscountPercent = "discountPercent"
	FieldTransportZone   = "transportZone"
	FieldSlideType       = "slideType"
)

// ValidationError names the offending field. Message text is left to the caller.
type ValidationError struct {
	Kind  ErrorKind
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Field)
}

func newValidationError(kind ErrorKind, field string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field}
}
