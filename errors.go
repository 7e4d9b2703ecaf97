// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import (
	"errors"
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// ErrNoPrimaryAccount is returned when the session does not name a primary
// account for the mail capability.
var ErrNoPrimaryAccount = errors.New("jmap: session has no primary mail account")

// Method-level error types (RFC 8620, section 3.6.2).
const (
	ErrorTypeAccountNotFound             = "accountNotFound"
	ErrorTypeAccountNotSupportedByMethod = "accountNotSupportedByMethod"
	ErrorTypeAccountReadOnly             = "accountReadOnly"
	ErrorTypeInvalidArguments            = "invalidArguments"
	ErrorTypeInvalidResultReference      = "invalidResultReference"
	ErrorTypeForbidden                   = "forbidden"
	ErrorTypeServerFail                  = "serverFail"
	ErrorTypeServerPartialFail           = "serverPartialFail"
	ErrorTypeServerUnavailable           = "serverUnavailable"
	ErrorTypeUnknownMethod               = "unknownMethod"
)

// MethodError is a method-level error the server returned in place of a
// method response. It is an ordinary [Result], not a failure of the request.
type MethodError interface {
	Result
	error

	// ErrorType returns the error's "type" member.
	ErrorType() string
}

// Error is a method error whose type the client does not model. Only the
// type is kept.
type Error struct {
	Type string `json:"type"`
}

func (*Error) isResult() {}

// Error implements the error interface.
func (e *Error) Error() string { return methodErrorString(e.Type) }

// ErrorType implements [MethodError].
func (e *Error) ErrorType() string { return e.Type }

// AccountNotFound reports that the accountId does not correspond to a valid
// account.
type AccountNotFound struct{}

func (*AccountNotFound) isResult() {}
func (*AccountNotFound) ErrorType() string { return ErrorTypeAccountNotFound }
func (e *AccountNotFound) Error() string { return methodErrorString(e.ErrorType()) }

// AccountNotSupportedByMethod reports that the account does not support the
// called method.
type AccountNotSupportedByMethod struct{}

func (*AccountNotSupportedByMethod) isResult() {}
func (*AccountNotSupportedByMethod) ErrorType() string { return ErrorTypeAccountNotSupportedByMethod }
func (e *AccountNotSupportedByMethod) Error() string { return methodErrorString(e.ErrorType()) }

// AccountReadOnly reports a modification attempted on a read-only account.
type AccountReadOnly struct{}

func (*AccountReadOnly) isResult() {}
func (*AccountReadOnly) ErrorType() string { return ErrorTypeAccountReadOnly }
func (e *AccountReadOnly) Error() string { return methodErrorString(e.ErrorType()) }

// InvalidArguments reports arguments of the wrong type or otherwise invalid.
type InvalidArguments struct {
	// Arguments names the offending arguments.
	Arguments []string `json:"arguments"`
}

func (*InvalidArguments) isResult() {}
func (*InvalidArguments) ErrorType() string { return ErrorTypeInvalidArguments }
func (*InvalidArguments) requiredMembers() []string {
	return []string{"arguments"}
}

// Error implements the error interface.
func (e *InvalidArguments) Error() string {
	return fmt.Sprintf("%s: %v", methodErrorString(e.ErrorType()), e.Arguments)
}

// InvalidResultReference reports a result reference that failed to resolve.
type InvalidResultReference struct{}

func (*InvalidResultReference) isResult() {}
func (*InvalidResultReference) ErrorType() string { return ErrorTypeInvalidResultReference }
func (e *InvalidResultReference) Error() string { return methodErrorString(e.ErrorType()) }

// Forbidden reports that the call would violate an ACL or other permission
// policy.
type Forbidden struct{}

func (*Forbidden) isResult() {}
func (*Forbidden) ErrorType() string { return ErrorTypeForbidden }
func (e *Forbidden) Error() string { return methodErrorString(e.ErrorType()) }

// ServerFail reports an unexpected server error.
type ServerFail struct {
	Description string `json:"description"`
}

func (*ServerFail) isResult() {}
func (*ServerFail) ErrorType() string { return ErrorTypeServerFail }
func (*ServerFail) requiredMembers() []string {
	return []string{"description"}
}

// Error implements the error interface.
func (e *ServerFail) Error() string {
	return fmt.Sprintf("%s: %s", methodErrorString(e.ErrorType()), e.Description)
}

// ServerPartialFail reports that some, but not all, changes were applied.
type ServerPartialFail struct{}

func (*ServerPartialFail) isResult() {}
func (*ServerPartialFail) ErrorType() string { return ErrorTypeServerPartialFail }
func (e *ServerPartialFail) Error() string { return methodErrorString(e.ErrorType()) }

// ServerUnavailable reports a temporary server condition.
type ServerUnavailable struct{}

func (*ServerUnavailable) isResult() {}
func (*ServerUnavailable) ErrorType() string { return ErrorTypeServerUnavailable }
func (e *ServerUnavailable) Error() string { return methodErrorString(e.ErrorType()) }

// UnknownMethod reports a method the server does not recognize.
type UnknownMethod struct{}

func (*UnknownMethod) isResult() {}
func (*UnknownMethod) ErrorType() string { return ErrorTypeUnknownMethod }
func (e *UnknownMethod) Error() string { return methodErrorString(e.ErrorType()) }

var errorTypes = map[string]func() MethodError{
	ErrorTypeAccountNotFound:             func() MethodError { return new(AccountNotFound) },
	ErrorTypeAccountNotSupportedByMethod: func() MethodError { return new(AccountNotSupportedByMethod) },
	ErrorTypeAccountReadOnly:             func() MethodError { return new(AccountReadOnly) },
	ErrorTypeInvalidArguments:            func() MethodError { return new(InvalidArguments) },
	ErrorTypeInvalidResultReference:      func() MethodError { return new(InvalidResultReference) },
	ErrorTypeForbidden:                   func() MethodError { return new(Forbidden) },
	ErrorTypeServerFail:                  func() MethodError { return new(ServerFail) },
	ErrorTypeServerPartialFail:           func() MethodError { return new(ServerPartialFail) },
	ErrorTypeServerUnavailable:           func() MethodError { return new(ServerUnavailable) },
	ErrorTypeUnknownMethod:               func() MethodError { return new(UnknownMethod) },
}

// ResolveError decodes the arguments of an "error" method response.
// Unrecognized types decode into an [*Error]; a recognized type missing one
// of its members is a [*DecodeError].
func ResolveError(args jsontext.Value) (MethodError, error) {
	if err := requireMembers(args, "type"); err != nil {
		return nil, err
	}
	var head Error
	if err := Unmarshal(args, &head); err != nil {
		return nil, err
	}

	newError, ok := errorTypes[head.Type]
	if !ok {
		return &head, nil
	}

	methodErr := newError()
	if req, ok := methodErr.(interface{ requiredMembers() []string }); ok {
		if err := requireMembers(args, req.requiredMembers()...); err != nil {
			return nil, err
		}
	}
	if err := Unmarshal(args, methodErr); err != nil {
		return nil, err
	}
	return methodErr, nil
}

func methodErrorString(typ string) string {
	return "jmap: method error: " + typ
}
