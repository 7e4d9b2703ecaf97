// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import (
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// Result is the resolved value of one method response: either a [Response]
// or a [MethodError]. [Results] is also a Result, so that a single-call
// entry point can return several replies to one call.
type Result interface {
	isResult()
}

// Response is a successfully resolved method response.
type Response interface {
	Result

	// MethodName returns the method name the server replied with.
	MethodName() string
}

// Results is a sequence of results to a single call.
type Results []Result

func (Results) isResult() {}

// InvocationResult pairs a resolved result with the call id the server
// echoed for it.
type InvocationResult struct {
	ID     string
	Result Result
}

// responseTypes maps method names to the typed response they decode into.
// Names not listed decode into a [*CustomResponse].
var responseTypes = map[string]func() Response{
	MethodCoreEcho:               func() Response { return new(CoreEchoResponse) },
	MethodEmailSubmissionGet:     func() Response { return new(EmailSubmissionGetResponse) },
	MethodEmailSubmissionSet:     func() Response { return new(EmailSubmissionSetResponse) },
	MethodEmailSubmissionChanges: func() Response { return new(EmailSubmissionChangesResponse) },
}

// ResolveResult decodes the arguments of one method response named name.
//
// The error sentinel name resolves to a [MethodError], a registered method
// name to its typed [Response], and anything else to a [*CustomResponse].
// The returned error is non-nil only when args does not match the shape it
// resolves to, including a registered response missing a required member.
func ResolveResult(name string, args jsontext.Value) (Result, error) {
	if name == ErrorMethodName {
		return ResolveError(args)
	}

	newResponse, ok := responseTypes[name]
	if !ok {
		resp := &CustomResponse{Name: name}
		if err := Unmarshal(args, &resp.Data); err != nil {
			return nil, err
		}
		return resp, nil
	}

	resp := newResponse()
	if req, ok := resp.(interface{ requiredMembers() []string }); ok {
		if err := requireMembers(args, req.requiredMembers()...); err != nil {
			return nil, err
		}
	}
	if err := Unmarshal(args, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ResolveResults resolves every invocation in the order the server returned
// them. Callers match results to calls by [InvocationResult.ID].
func ResolveResults(invocations []Invocation) ([]InvocationResult, error) {
	results := make([]InvocationResult, 0, len(invocations))
	for i, inv := range invocations {
		result, err := ResolveResult(inv.Name, inv.Arguments)
		if err != nil {
			return nil, fmt.Errorf("jmap: method response %d (%s, %q): %w", i, inv.Name, inv.ID, err)
		}
		results = append(results, InvocationResult{ID: inv.ID, Result: result})
	}
	return results, nil
}
