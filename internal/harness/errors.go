package harness

import "errors"

// fatalError marks a configuration-level failure that must abort a
// scenario's remaining steps. Everything else is recovered at the call site
// and folded into a Measurement or StepResult.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }

func (e *fatalError) Unwrap() error { return e.err }

// Fatal wraps err so that IsFatal reports true for it. A nil err returns nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}

	return &fatalError{err: err}
}

// IsFatal reports whether err (or anything it wraps) was marked with Fatal.
func IsFatal(err error) bool {
	var fe *fatalError

	return errors.As(err, &fe)
}
