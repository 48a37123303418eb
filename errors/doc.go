// Package errors provides structured error types for the loghub library.
//
// Errors are categorized by Kind. The Error type carries the failed
// operation, the offending name or key, and an optional cause chain.
//
// Matching is done with the standard library:
//
//	_, err := h.Console.Open("missing")
//	if errors.Is(err, huberr.ErrUnknownName) {
//	    // name was never created or already removed
//	}
//
// All errors implement the standard error interface and support
// errors.Is/As/Unwrap.
package errors
