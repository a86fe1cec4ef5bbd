package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// execution statuses reported by the platform.
const (
	executionCompleted = "completed"
	executionFailed    = "failed"
)

type executionRequest struct {
	Body string `json:"body"`
}

type executionResponse struct {
	Status       string `json:"status"`
	ResponseBody string `json:"responseBody"`
	Errors       string `json:"errors"`
}

// ExecuteJSON invokes a serverless function by id with the JSON encoding of
// in and decodes the execution's response body into out (out may be nil).
// A "failed" execution status surfaces as *ExecutionError carrying the
// platform's error detail; a malformed response body as *ParseError.
func (c *Client) ExecuteJSON(ctx context.Context, functionID string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding function payload: %w", err)
	}

	path := "/v1/functions/" + functionID + "/executions"
	var exec executionResponse
	if err := c.do(ctx, http.MethodPost, path, nil, executionRequest{Body: string(payload)}, &exec); err != nil {
		c.log.Error(ctx, "function invocation failed", "function", functionID, "error", err)
		return err
	}

	if exec.Status != executionCompleted {
		return &ExecutionError{FunctionID: functionID, Detail: exec.Errors}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(exec.ResponseBody), out); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}
