// Package errs holds the sentinel errors shared across pipeline stages.
//
// Only ErrUnsupportedSource and ErrSynthesis ever leave Pipeline.Run; the
// other two are produced by backends and gates and absorbed by the calling
// stage's fallback.
package errs

import "errors"

var (
	// ErrUnsupportedSource marks a URL whose host matches no known news site.
	ErrUnsupportedSource = errors.New("unsupported news site")
	// ErrBackendUnavailable marks a network error, timeout or non-200 status from a model backend.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrValidationRejected marks output that failed a stage's sanity gate.
	ErrValidationRejected = errors.New("validation rejected")
	// ErrSynthesis marks a run that produced no audio.
	ErrSynthesis = errors.New("synthesis failed")
)
