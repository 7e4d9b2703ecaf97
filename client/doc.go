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

// Package client implements a JMAP client over HTTPS.
//
// A [Client] resolves the server's session resource on first use, sends
// batches of method calls to its API endpoint and subscribes to its event
// source:
//
//	c, err := client.NewWithAPIToken("jmap.example.com", token)
//	if err != nil {
//		return err
//	}
//	result, err := c.MethodCall(ctx, jmap.CoreEcho{Data: map[string]any{"hello": "world"}})
//
// Transport failures surface as [*StatusError] or [*ConnectionError],
// session problems as [*SessionError]. Errors reported by the server for a
// single method are returned as [jmap.MethodError] results next to the
// successful ones.
package client
