// Cartera Mesh
// Copyright (C) 2026 cartera-mesh
//
// This file is part of Cartera Mesh.
//
// Cartera Mesh is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cartera Mesh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Cartera Mesh. If not, see <https://www.gnu.org/licenses/>.

// Package rpc defines the JSON-RPC 2.0 envelope and the compile-time
// method/tag/ttl registry every pairing and session RPC is bound to
// (spec §3, §6.6). It intentionally does not implement a general-purpose
// JSON-RPC library — only the fixed method surface this protocol uses.
package rpc

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Method names, wire-visible and bit-exact with peer implementations.
const (
	MethodPairingPing    = "wc_pairingPing"
	MethodPairingExtend  = "wc_pairingExtend"
	MethodPairingDelete  = "wc_pairingDelete"
	MethodSessionPropose = "wc_sessionPropose"
	MethodSessionSettle  = "wc_sessionSettle"
	MethodSessionUpdate  = "wc_sessionUpdate"
	MethodSessionExtend  = "wc_sessionExtend"
	MethodSessionRequest = "wc_sessionRequest"
	MethodSessionEvent   = "wc_sessionEvent"
	MethodSessionDelete  = "wc_sessionDelete"
	MethodSessionPing    = "wc_sessionPing"
)

// ErrorCode is an SDK-defined protocol error code (spec §7 taxonomy 1).
type ErrorCode int

const (
	CodeUnknownError    ErrorCode = 1
	CodeUserRejected    ErrorCode = 5000
	CodeInvalidMethod   ErrorCode = 1001
	CodeUserDisconnected ErrorCode = 5003
)

// Request is a JSON-RPC 2.0 request object.
type Request struct {
	ID      uint64          `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewRequest builds a Request with a fresh id and jsonrpc:"2.0" already set.
func NewRequest(method string, params any) (Request, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return Request{}, err
	}
	return Request{
		ID:      NextID(),
		JSONRPC: "2.0",
		Method:  method,
		Params:  raw,
	}, nil
}

// ResponseError is the JSON-RPC 2.0 error object (spec §7 ResponseParamsError).
type ResponseError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// UnknownError is the canned reply the router sends when a handler fails
// unexpectedly (spec §4.3).
func UnknownError() ResponseError {
	return ResponseError{Code: CodeUnknownError, Message: "Unknown Error"}
}

// Response is a JSON-RPC 2.0 response object. Exactly one of Result/Error
// is populated. Responses never carry a method name on the wire — the
// caller recovers it from the response Tag via ResponseFromTag.
type Response struct {
	ID      uint64          `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// NewResultResponse builds a success response for id.
func NewResultResponse(id uint64, result any) (Response, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return Response{}, err
	}
	return Response{ID: id, JSONRPC: "2.0", Result: raw}, nil
}

// NewErrorResponse builds an error response for id.
func NewErrorResponse(id uint64, errParams ResponseError) Response {
	return Response{ID: id, JSONRPC: "2.0", Error: &errParams}
}

// NextID draws a fresh JSON-RPC message id. Generation uses a UUID's low
// 64 bits rather than a shared counter so ids stay unique across process
// restarts without persisted state — this protocol never needs monotonic
// ids, only uniqueness within the correlation map's lifetime.
func NextID() uint64 {
	id := uuid.New()
	var v uint64
	for _, b := range id[8:16] {
		v = v<<8 | uint64(b)
	}
	return v
}
