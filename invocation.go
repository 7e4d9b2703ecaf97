// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Method is a typed JMAP method call.
type Method interface {
	// MethodName returns the wire name of the method, e.g. "Core/echo".
	MethodName() string

	// Capabilities returns the capability URNs the method requires.
	Capabilities() []string

	// Arguments returns the arguments object to encode. accountID is the
	// account the call addresses; methods that are not [AccountScoped]
	// receive "".
	Arguments(accountID string) (any, error)
}

// AccountScoped is implemented by methods whose arguments carry an accountId.
type AccountScoped interface {
	Method

	// Account reports the account the call addresses and whether it
	// addresses one at all. An empty id with ok set selects the session's
	// primary mail account.
	Account() (id string, ok bool)
}

// Call pairs a [Method] with the correlation id of its invocation. Ids must
// be unique within one request.
type Call struct {
	ID     string
	Method Method
}

// Calls pairs each method with its zero-based position as the call id.
func Calls(methods ...Method) []Call {
	calls := make([]Call, len(methods))
	for i, m := range methods {
		calls[i] = Call{ID: strconv.Itoa(i), Method: m}
	}
	return calls
}

// Invocation is the wire form of a method call or method response: the
// three element array [name, arguments, id].
type Invocation struct {
	Name      string
	Arguments jsontext.Value
	ID        string
}

// MarshalJSONTo implements [json.MarshalerTo].
func (inv Invocation) MarshalJSONTo(enc *jsontext.Encoder) error {
	args := inv.Arguments
	if len(args) == 0 {
		args = jsontext.Value("{}")
	}
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(inv.Name)); err != nil {
		return err
	}
	if err := enc.WriteValue(args); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(inv.ID)); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndArray)
}

// UnmarshalJSONFrom implements [json.UnmarshalerFrom].
func (inv *Invocation) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	var parts []jsontext.Value
	if err := json.UnmarshalDecode(dec, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("invocation has %d elements, want 3", len(parts))
	}

	var name, id string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return fmt.Errorf("invocation name: %w", err)
	}
	if err := json.Unmarshal(parts[2], &id); err != nil {
		return fmt.Errorf("invocation id: %w", err)
	}
	if parts[1].Kind() != '{' {
		return fmt.Errorf("invocation arguments must be an object, got %v", parts[1].Kind())
	}

	*inv = Invocation{Name: name, Arguments: parts[1], ID: id}
	return nil
}

// Request is the body of an API request.
type Request struct {
	Using       []string     `json:"using"`
	MethodCalls []Invocation `json:"methodCalls"`
}

// ResponseObject is the body of an API response.
type ResponseObject struct {
	MethodResponses []Invocation `json:"methodResponses"`
	SessionState    string       `json:"sessionState,omitzero"`
}

// NewRequest builds the request carrying calls in the given order.
//
// Using is the sorted union of [CoreURN] and every method's capabilities.
// primaryAccount is consulted at most once, and only when some
// [AccountScoped] call leaves its account empty; a nil primaryAccount makes
// that case an error.
func NewRequest(calls []Call, primaryAccount func() (string, error)) (*Request, error) {
	using := []string{CoreURN}
	invocations := make([]Invocation, 0, len(calls))

	var (
		defaultAccount string
		resolved       bool
	)
	for _, call := range calls {
		if call.Method == nil {
			return nil, fmt.Errorf("jmap: call %q has no method", call.ID)
		}
		using = append(using, call.Method.Capabilities()...)

		var accountID string
		if scoped, ok := call.Method.(AccountScoped); ok {
			id, addressed := scoped.Account()
			switch {
			case !addressed:
			case id != "":
				accountID = id
			default:
				if !resolved {
					if primaryAccount == nil {
						return nil, ErrNoPrimaryAccount
					}
					acct, err := primaryAccount()
					if err != nil {
						return nil, err
					}
					defaultAccount, resolved = acct, true
				}
				accountID = defaultAccount
			}
		}

		args, err := call.Method.Arguments(accountID)
		if err != nil {
			return nil, fmt.Errorf("jmap: %s arguments: %w", call.Method.MethodName(), err)
		}
		data, err := Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("jmap: %s arguments: %w", call.Method.MethodName(), err)
		}

		invocations = append(invocations, Invocation{
			Name:      call.Method.MethodName(),
			Arguments: data,
			ID:        call.ID,
		})
	}

	slices.Sort(using)
	return &Request{
		Using:       slices.Compact(using),
		MethodCalls: invocations,
	}, nil
}
