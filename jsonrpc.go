// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// A2A RPC method names.
const (
	// MethodTasksSend is the method name for sending a task.
	MethodTasksSend = "tasks/send"

	// MethodTasksGet is the method name for getting a task.
	MethodTasksGet = "tasks/get"
)

// ID is the unique identifier of a JSON-RPC message: a string, a number, or
// null. The zero ID marshals as an explicit null, which is how responses on
// the generic failure path echo an id that was never parsed.
type ID struct {
	value any
}

// NewID creates an ID from a string or a number.
func NewID(v any) ID {
	switch v := v.(type) {
	case string:
		return ID{value: v}
	case float64:
		return ID{value: v}
	case int:
		return ID{value: float64(v)}
	default:
		return ID{}
	}
}

// IsNull reports whether the ID is unset.
func (id ID) IsNull() bool {
	return id.value == nil
}

// String returns the ID rendered as a string, or the empty string for null.
func (id ID) String() string {
	switch v := id.value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON implements [json.Marshaler].
func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (id *ID) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal id: %w", err)
	}
	switch v.(type) {
	case string, float64, nil:
		id.value = v
		return nil
	default:
		return fmt.Errorf("id must be a string, a number, or null, got %T", v)
	}
}

// JSONRPCMessage is the base structure shared by all JSON-RPC 2.0 messages.
type JSONRPCMessage struct {
	// JSONRPC version, always "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID correlates a request with its response; it is echoed verbatim.
	ID ID `json:"id"`
}

// NewJSONRPCMessage creates a new [JSONRPCMessage] with the given id.
func NewJSONRPCMessage(id ID) JSONRPCMessage {
	return JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}
}

// JSONRPCRequest represents a JSON-RPC 2.0 request with its params left raw;
// the method name selects the params schema to decode them against.
type JSONRPCRequest struct {
	JSONRPCMessage

	// Method identifies the operation to perform.
	Method string `json:"method"`
	// Params contains the parameters for the method.
	Params jsontext.Value `json:"params,omitzero"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	// Code is the error code.
	Code int `json:"code"`
	// Message is a short description of the error.
	Message string `json:"message"`
	// Data contains optional additional error details.
	Data any `json:"data,omitzero"`
}

// Error implements the error interface.
func (e *JSONRPCError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// WithData returns a copy of the error carrying additional details.
func (e *JSONRPCError) WithData(data any) *JSONRPCError {
	return &JSONRPCError{
		Code:    e.Code,
		Message: e.Message,
		Data:    data,
	}
}

// JSONRPCResponse represents a JSON-RPC 2.0 response. Exactly one of Result
// or Error is present, never both.
type JSONRPCResponse struct {
	JSONRPCMessage

	// Result contains the successful result data.
	// Mutually exclusive with Error.
	Result any `json:"result,omitzero"`
	// Error contains an error object if the request failed.
	// Mutually exclusive with Result.
	Error *JSONRPCError `json:"error,omitzero"`
}

// NewErrorResponse creates a response carrying an error for the given id.
func NewErrorResponse(id ID, rpcErr *JSONRPCError) JSONRPCResponse {
	return JSONRPCResponse{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Error:          rpcErr,
	}
}

// SendTaskRequest represents a request to initiate or continue a task.
type SendTaskRequest struct {
	JSONRPCMessage

	// Method is always "tasks/send".
	Method string         `json:"method"`
	Params TaskSendParams `json:"params"`
}

// NewSendTaskRequest creates a new [SendTaskRequest].
func NewSendTaskRequest(id ID, params TaskSendParams) SendTaskRequest {
	return SendTaskRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodTasksSend,
		Params:         params,
	}
}

// SendTaskResponse represents a response to a [SendTaskRequest].
type SendTaskResponse struct {
	JSONRPCMessage

	// Result contains the task if successful.
	Result *Task `json:"result,omitzero"`
	// Error contains error details if the request failed.
	Error *JSONRPCError `json:"error,omitzero"`
}

// NewSendTaskResponse creates a new [SendTaskResponse].
func NewSendTaskResponse(id ID, result *Task) SendTaskResponse {
	return SendTaskResponse{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Result:         result,
	}
}

// GetTaskRequest represents a request to retrieve the current state of a
// task.
type GetTaskRequest struct {
	JSONRPCMessage

	// Method is always "tasks/get".
	Method string          `json:"method"`
	Params TaskQueryParams `json:"params"`
}

// NewGetTaskRequest creates a new [GetTaskRequest].
func NewGetTaskRequest(id ID, params TaskQueryParams) GetTaskRequest {
	return GetTaskRequest{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Method:         MethodTasksGet,
		Params:         params,
	}
}

// GetTaskResponse represents a response to a [GetTaskRequest].
type GetTaskResponse struct {
	JSONRPCMessage

	// Result contains the task if successful.
	Result *Task `json:"result,omitzero"`
	// Error contains error details if the request failed.
	Error *JSONRPCError `json:"error,omitzero"`
}

// NewGetTaskResponse creates a new [GetTaskResponse].
func NewGetTaskResponse(id ID, result *Task) GetTaskResponse {
	return GetTaskResponse{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Result:         result,
	}
}

// Standard JSON-RPC 2.0 error codes.
const (
	// JSONParseErrorCode indicates invalid JSON payload.
	JSONParseErrorCode = -32700
	// InvalidRequestErrorCode indicates request payload validation error.
	InvalidRequestErrorCode = -32600
	// MethodNotFoundErrorCode indicates the method does not exist.
	MethodNotFoundErrorCode = -32601
	// InvalidParamsErrorCode indicates invalid method parameters.
	InvalidParamsErrorCode = -32602
	// InternalErrorCode indicates an internal server error.
	InternalErrorCode = -32603
)

// A2A specific error codes.
const (
	// TaskNotFoundErrorCode indicates the specified task ID was not found.
	TaskNotFoundErrorCode = -32001
)

// NewJSONParseError creates a new JSONParseError.
func NewJSONParseError() *JSONRPCError {
	return &JSONRPCError{
		Code:    JSONParseErrorCode,
		Message: "Invalid JSON payload",
	}
}

// NewInvalidRequestError creates a new InvalidRequestError.
func NewInvalidRequestError() *JSONRPCError {
	return &JSONRPCError{
		Code:    InvalidRequestErrorCode,
		Message: "Request payload validation error",
	}
}

// NewMethodNotFoundError creates a new MethodNotFoundError.
func NewMethodNotFoundError() *JSONRPCError {
	return &JSONRPCError{
		Code:    MethodNotFoundErrorCode,
		Message: "Method not found",
	}
}

// NewInvalidParamsError creates a new InvalidParamsError.
func NewInvalidParamsError() *JSONRPCError {
	return &JSONRPCError{
		Code:    InvalidParamsErrorCode,
		Message: "Invalid parameters",
	}
}

// NewInternalError creates a new InternalError.
func NewInternalError() *JSONRPCError {
	return &JSONRPCError{
		Code:    InternalErrorCode,
		Message: "Internal error",
	}
}

// NewTaskNotFoundRPCError creates a new wire-level task-not-found error.
func NewTaskNotFoundRPCError() *JSONRPCError {
	return &JSONRPCError{
		Code:    TaskNotFoundErrorCode,
		Message: "Task not found",
	}
}
