package nbt

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decoding/encoding errors.
type ErrorKind int

const (
	ErrInvalidTagID ErrorKind = iota + 1
	ErrMalformedRoot
	ErrTruncated
	ErrIO
	ErrLengthOverflow
	ErrListKindMismatch
	ErrTrailingData
	ErrTextSyntax
	ErrUnknownKind
	ErrUnrepresentable
	ErrInvalidTree
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidTagID:
		return "invalid tag id"
	case ErrMalformedRoot:
		return "malformed root"
	case ErrTruncated:
		return "truncated input"
	case ErrIO:
		return "i/o error"
	case ErrLengthOverflow:
		return "length overflow"
	case ErrListKindMismatch:
		return "list kind mismatch"
	case ErrTrailingData:
		return "trailing data"
	case ErrTextSyntax:
		return "text syntax error"
	case ErrUnknownKind:
		return "unknown kind"
	case ErrUnrepresentable:
		return "unrepresentable value"
	case ErrInvalidTree:
		return "invalid tree"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error carries offset and classification for better diagnostics.
type Error struct {
	Offset int64
	Kind   ErrorKind
	Detail string
	// TagID is the offending byte for ErrInvalidTagID.
	TagID byte
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Detail
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	if e.Offset > 0 {
		return fmt.Sprintf("nbt: %v at %d: %s", e.Kind, e.Offset, msg)
	}
	return fmt.Sprintf("nbt: %v: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether any error in err's chain is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
