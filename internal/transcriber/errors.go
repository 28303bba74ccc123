package transcriber

import "errors"

// FatalError marks an engine error as non-recoverable for the current
// session. Anything else is treated by the listener as an empty-text cycle
// and the loop continues.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	if e == nil || e.Err == nil {
		return "fatal transcription error"
	}
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewFatalError(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

func IsFatalError(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
