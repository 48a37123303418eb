package errors

import (
	"strconv"
	"strings"
)

// Kind categorizes the error.
type Kind string

const (
	// KindInvalidKey indicates an operation referenced a key that is not
	// currently in use.
	KindInvalidKey Kind = "invalid_key"
	// KindUnknownName indicates a lookup or finalization referenced a name
	// that was never reserved or was already removed.
	KindUnknownName Kind = "unknown_name"
	// KindNameExists indicates a reservation attempted on a name already
	// claimed by another sink.
	KindNameExists Kind = "name_exists"
	// KindInstanceLimit indicates creation was attempted on a single-instance
	// sink kind while one instance already exists.
	KindInstanceLimit Kind = "instance_limit"
	// KindClosed indicates an operation through a handle or reference that
	// was already closed.
	KindClosed Kind = "closed"
	// KindConstruction indicates a sink or hub constructor failed.
	KindConstruction Kind = "construction"
)

// Error is the structured error type used throughout loghub. All registry and
// façade failures are programming-contract violations surfaced synchronously;
// none of them are transient.
type Error struct {
	Op     string // operation that failed, e.g. "table.access"
	Kind   Kind
	Name   string // sink name, when the operation was name-addressed
	Key    uint32 // registry key, when the operation was key-addressed
	Detail string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("loghub: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))

	if e.Name != "" {
		b.WriteString(" name=")
		b.WriteString(strconv.Quote(e.Name))
	}
	if e.Key != 0 {
		b.WriteString(" key=")
		b.WriteString(strconv.FormatUint(uint64(e.Key), 10))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two *Error values match when
// their kinds are equal, so errors.Is(err, ErrInvalidKey) works regardless of
// the contextual fields.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Kind matchers for use with the standard errors.Is.
var (
	ErrInvalidKey    = &Error{Kind: KindInvalidKey}
	ErrUnknownName   = &Error{Kind: KindUnknownName}
	ErrNameExists    = &Error{Kind: KindNameExists}
	ErrInstanceLimit = &Error{Kind: KindInstanceLimit}
	ErrClosed        = &Error{Kind: KindClosed}
	ErrConstruction  = &Error{Kind: KindConstruction}
)

// Convenience constructors for common error patterns

// InvalidKey creates an invalid-key error.
func InvalidKey(op string, key uint32) *Error {
	return &Error{Op: op, Kind: KindInvalidKey, Key: key}
}

// UnknownName creates an unknown-name error.
func UnknownName(op, name string) *Error {
	return &Error{Op: op, Kind: KindUnknownName, Name: name}
}

// NameExists creates a name-already-claimed error.
func NameExists(op, name string) *Error {
	return &Error{Op: op, Kind: KindNameExists, Name: name}
}

// InstanceLimit creates an instance-limit error for a single-instance kind.
func InstanceLimit(op, sinkKind string) *Error {
	return &Error{Op: op, Kind: KindInstanceLimit, Detail: sinkKind + " allows a single live instance"}
}

// Closed creates an error for an operation through a closed handle or ref.
func Closed(op string) *Error {
	return &Error{Op: op, Kind: KindClosed}
}

// Construction wraps a constructor failure.
func Construction(op string, cause error) *Error {
	return &Error{Op: op, Kind: KindConstruction, Cause: cause}
}
