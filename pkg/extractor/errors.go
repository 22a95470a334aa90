package extractor

import "fmt"

// InvokeError means the extractor process could not be run to completion:
// launch failure, missing binary, or timeout.
type InvokeError struct {
	Err error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("Failed to run yt-dlp: %v", e.Err)
}

func (e *InvokeError) Unwrap() error { return e.Err }

// ExecError means the extractor ran and exited non-zero. Its message is the
// tool's own diagnostic output, surfaced to the caller as-is.
type ExecError struct {
	Stderr string
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return "yt-dlp failed"
	}
	return e.Stderr
}

// OutputError means the extractor exited zero but its stdout did not
// contain a decodable JSON metadata record.
type OutputError struct {
	Err error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("Invalid yt-dlp JSON: %v", e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
