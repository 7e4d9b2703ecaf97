// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// MethodCoreEcho is the name of the Core/echo method.
const MethodCoreEcho = "Core/echo"

// CoreEcho asks the server to return its arguments unchanged.
type CoreEcho struct {
	Data map[string]any
}

var _ Method = CoreEcho{}

// MethodName implements [Method].
func (CoreEcho) MethodName() string { return MethodCoreEcho }

// Capabilities implements [Method].
func (CoreEcho) Capabilities() []string { return []string{CoreURN} }

// Arguments implements [Method]. The arguments object is Data itself.
func (m CoreEcho) Arguments(string) (any, error) {
	if m.Data == nil {
		return map[string]any{}, nil
	}
	return m.Data, nil
}

// CoreEchoResponse holds the arguments object the server echoed back.
type CoreEchoResponse struct {
	Data map[string]any
}

func (*CoreEchoResponse) isResult() {}

// MethodName implements [Response].
func (*CoreEchoResponse) MethodName() string { return MethodCoreEcho }

// UnmarshalJSONFrom implements [json.UnmarshalerFrom].
func (r *CoreEchoResponse) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	return json.UnmarshalDecode(dec, &r.Data)
}

// MarshalJSONTo implements [json.MarshalerTo]. It writes Data as the
// arguments object.
func (r CoreEchoResponse) MarshalJSONTo(enc *jsontext.Encoder) error {
	data := r.Data
	if data == nil {
		data = map[string]any{}
	}
	return json.MarshalEncode(enc, data)
}
