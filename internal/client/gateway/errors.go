package gateway

import "fmt"

// PlatformError is a non-2xx platform response that does not map onto one of
// the shared sentinel errors.
type PlatformError struct {
	Code    int
	Type    string
	Message string
}

func (e *PlatformError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("platform error %d (%s): %s", e.Code, e.Type, e.Message)
	}
	return fmt.Sprintf("platform error %d", e.Code)
}

// ParseError marks a response body that did not match the expected schema.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExecutionError reports a serverless function execution that the platform
// ran but which finished with status "failed". The Detail field carries the
// platform's error output.
type ExecutionError struct {
	FunctionID string
	Detail     string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("function %s execution failed: %s", e.FunctionID, e.Detail)
}
