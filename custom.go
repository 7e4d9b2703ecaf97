// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import "maps"

// CustomMethod calls a method the client has no typed model for.
type CustomMethod struct {
	// Name is the method name, e.g. "Calendar/get".
	Name string
	// Using lists the capability URNs the method requires.
	Using []string
	// Data is the arguments object.
	Data map[string]any
	// InjectAccountID adds "accountId" to Data when it has none.
	InjectAccountID bool
}

var _ AccountScoped = CustomMethod{}

// MethodName implements [Method].
func (m CustomMethod) MethodName() string { return m.Name }

// Capabilities implements [Method].
func (m CustomMethod) Capabilities() []string { return m.Using }

// Account implements [AccountScoped].
func (m CustomMethod) Account() (string, bool) {
	if id, ok := m.Data["accountId"].(string); ok {
		return id, true
	}
	return "", m.InjectAccountID
}

// Arguments implements [Method].
func (m CustomMethod) Arguments(accountID string) (any, error) {
	args := maps.Clone(m.Data)
	if args == nil {
		args = make(map[string]any)
	}
	if _, ok := args["accountId"]; !ok && m.InjectAccountID {
		args["accountId"] = accountID
	}
	return args, nil
}

// CustomResponse is a method response with no registered type. It keeps the
// method name and the raw arguments object.
type CustomResponse struct {
	Name string
	Data map[string]any
}

func (*CustomResponse) isResult() {}

// MethodName implements [Response].
func (r *CustomResponse) MethodName() string { return r.Name }
