package importer

import (
	"errors"
	"fmt"
)

// ErrCritical matches any RowError of KindCritical with errors.Is.
var ErrCritical = errors.New("critical import error")

// ErrorKind classifies why a row did not produce a suggestion.
type ErrorKind int

const (
	// KindFormat is a row with the wrong number of columns.
	KindFormat ErrorKind = iota
	// KindValidation is a row rejected by Validate.
	KindValidation
	// KindCritical is an open or read failure that stopped the pass. It is not
	// attached to a row.
	KindCritical
	// KindRegistration is a bulk registration failure. It is not attached to
	// a row.
	KindRegistration
)

func (k ErrorKind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindValidation:
		return "validation"
	case KindCritical:
		return "critical"
	case KindRegistration:
		return "registration"
	default:
		return "unknown"
	}
}

// RowError is a diagnostic attributed to a CSV row. Row is 0 for errors that
// are not tied to a row.
type RowError struct {
	Row     int
	Kind    ErrorKind
	Message string
}

func (e *RowError) Error() string {
	if e.Row <= 0 {
		return e.Message
	}
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

func (e *RowError) Is(target error) bool {
	return target == ErrCritical && e.Kind == KindCritical
}

// ValidationError is the reason a record was rejected by Validate.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func criticalError(err error) *RowError {
	return &RowError{Kind: KindCritical, Message: fmt.Sprintf("Critical error: %s", err)}
}
