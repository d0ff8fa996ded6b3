// Package schema defines the immutable wire types of the Model Context
// Protocol: the JSON-RPC envelope, capability and implementation descriptors,
// and the tool/prompt/resource/sampling/roots/logging value types.
package schema

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the wire token exchanged during initialization.
// Mismatch between peers is a hard error (spec §3).
const ProtocolVersion = "2024-11-05"

// SupportedProtocolVersions lists versions this SDK can negotiate, most
// preferred first.
var SupportedProtocolVersions = []string{ProtocolVersion}

// JSONRPCVersion is the constant "jsonrpc" field value on every message.
const JSONRPCVersion = "2.0"

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// MCP-specific error codes in the reserved application range.
const (
	CodeCapabilityMissing      = -32001
	CodeNotInitialized         = -32002
	CodeProtocolVersionMismatch = -32003
	CodeRequestTimeout          = -32004
	CodeSessionClosed           = -32005
)

// Message is a tagged union over the four JSON-RPC 2.0 message variants. It
// is used as the wire shape for both marshaling outbound messages and
// unmarshaling inbound ones; callers classify the decoded value by presence
// of ID/Method per spec §4.3 rule 1-3.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *RequestID      `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// IsRequest reports whether the message is an inbound/outbound request
// (has both an id and a method).
func (m *Message) IsRequest() bool { return m.ID != nil && m.Method != "" }

// IsResponse reports whether the message is a response (has an id, no
// method).
func (m *Message) IsResponse() bool { return m.ID != nil && m.Method == "" }

// IsNotification reports whether the message is a notification (no id).
func (m *Message) IsNotification() bool { return m.ID == nil && m.Method != "" }

// RequestID is the wire id of a request: an opaque JSON scalar that is
// either a string or an integer in MCP's usage. The core always generates
// integer ids (session §4.3 "Correlation"); string ids are accepted and
// round-tripped for inbound requests originated by other implementations.
type RequestID struct {
	num int64
	str string
	isStr bool
}

// NewIntID constructs a numeric request id.
func NewIntID(n int64) RequestID { return RequestID{num: n} }

// NewStringID constructs a string request id.
func NewStringID(s string) RequestID { return RequestID{str: s, isStr: true} }

// Int64 returns the numeric value of id and true, or (0, false) if id is a
// string id. The core always generates integer ids (spec §4.3
// "Correlation"); this accessor lets the session map an inbound response
// id back to its own pending-request table.
func (id RequestID) Int64() (int64, bool) {
	return id.num, !id.isStr
}

// String renders the id for logging/map-keying purposes.
func (id RequestID) String() string {
	if id.isStr {
		return id.str
	}
	return fmt.Sprintf("%d", id.num)
}

func (id RequestID) MarshalJSON() ([]byte, error) {
	if id.isStr {
		return json.Marshal(id.str)
	}
	return json.Marshal(id.num)
}

func (id *RequestID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = RequestID{num: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("request id: not a string or integer: %s", data)
	}
	*id = RequestID{str: s, isStr: true}
	return nil
}

// RPCError is a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// NewRPCError builds an *RPCError, marshaling data (if non-nil) into the
// Data field. Marshal failures are silently dropped from Data, matching
// the teacher's NewRPCError (errors.go) which never fails the error itself
// over a bad data payload.
func NewRPCError(code int, message string, data any) *RPCError {
	err := &RPCError{Code: code, Message: message}
	if data != nil {
		if b, marshalErr := json.Marshal(data); marshalErr == nil {
			err.Data = b
		}
	}
	return err
}

func ErrParseError(detail string) *RPCError {
	return NewRPCError(CodeParseError, "Parse error: "+detail, nil)
}

func ErrInvalidRequest(detail string) *RPCError {
	return NewRPCError(CodeInvalidRequest, "Invalid Request: "+detail, nil)
}

func ErrMethodNotFound(method string) *RPCError {
	return NewRPCError(CodeMethodNotFound, fmt.Sprintf("Method not found: %s", method), nil)
}

func ErrInvalidParams(detail string) *RPCError {
	return NewRPCError(CodeInvalidParams, "Invalid params: "+detail, nil)
}

func ErrInternalError(detail string) *RPCError {
	return NewRPCError(CodeInternalError, "Internal error: "+detail, nil)
}
