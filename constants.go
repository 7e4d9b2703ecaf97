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

package jmap

// Capability URNs used in the "using" member of a request.
const (
	// CoreURN is the core capability every request declares.
	CoreURN = "urn:ietf:params:jmap:core"

	// MailURN is the mail capability (RFC 8621). Its entry in the session's
	// primaryAccounts identifies the account method calls address by default.
	MailURN = "urn:ietf:params:jmap:mail"

	// SubmissionURN is the email submission capability.
	SubmissionURN = "urn:ietf:params:jmap:submission"
)

// Protocol paths and sentinels.
const (
	// SessionWellKnownPath is the path of the session resource relative to the
	// server host.
	//
	// Example usage: https://jmap.example.com/.well-known/jmap
	SessionWellKnownPath = "/.well-known/jmap"

	// ErrorMethodName is the method name the server uses in place of a method
	// response when the call failed.
	ErrorMethodName = "error"

	// StateEventType is the SSE event type that carries a StateChange.
	StateEventType = "state"
)
