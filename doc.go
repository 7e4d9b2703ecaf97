// Copyright 2026 The Go JMAP Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package jmap implements the protocol layer of JMAP (RFC 8620): typed method
// calls, the request and response envelopes, resolution of method responses
// into typed values, method-level errors, the session resource and push
// state changes.
//
// A request is built from [Call] values:
//
//	req, err := jmap.NewRequest(jmap.Calls(
//		jmap.CoreEcho{Data: map[string]any{"hello": "world"}},
//		jmap.EmailSubmissionGet{},
//	), session.AccountID)
//
// and a response is resolved with [ResolveResults]. Each result is a
// [Response] or a [MethodError]; method names and error types the package
// does not model resolve to [*CustomResponse] and [*Error].
//
// Records use [Optional] for members whose absence and explicit null carry
// different meanings on the wire.
//
// The client subpackage performs the HTTP exchanges.
package jmap
