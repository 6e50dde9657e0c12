package chromepdf

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed renderer.
	ErrClosed = errors.New("chromepdf: renderer is closed")
)

// APIError reports a failed call to the remote rendering service. Code is
// the HTTP status, or 0 when no response was received.
type APIError struct {
	Code    int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return "chromepdf: failed to render from browserless: " + e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// ProcessError reports a local renderer binary that exited unsuccessfully
// or could not be started. ExitCode is -1 when the process never ran.
type ProcessError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("chromepdf: failed to render with %s: %v", e.Command, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ConfigError reports an unknown option name or an invalid option value.
type ConfigError struct {
	Option string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("chromepdf: invalid value %q for option %q", e.Value, e.Option)
	}
	if e.Reason != "" {
		return fmt.Sprintf("chromepdf: option %q: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("chromepdf: the option %q does not exist", e.Option)
}

// FileError reports an input file that could not be read, or an output
// file that already exists and may not be overwritten.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("chromepdf: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ErrFileExists is wrapped by a FileError when an output file already exists.
var ErrFileExists = errors.New("file already exists and overwrite was not requested")
