package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig   Kind = "invalid_config"
	NotFound        Kind = "not_found"
	MetadataFailure Kind = "metadata_failure"
	IOFailure       Kind = "io_failure"
	Internal        Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf reports the kind of the outermost AppError in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return "", false
	}
	return appErr.Kind, true
}

// UserMessage renders err as a single line for the terminal. The underlying
// OS error is always included.
func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		return fmt.Sprintf("Cannot read directory %s: %v", appErr.Path, appErr.Err)
	case MetadataFailure:
		return fmt.Sprintf("Cannot read metadata of %s: %v", appErr.Path, appErr.Err)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s: %v", appErr.Path, appErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
