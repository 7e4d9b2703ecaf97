// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import (
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// DecodeError reports JSON that could not be decoded into the expected shape.
type DecodeError struct {
	// Path is the JSON pointer of the offending member, if known.
	Path string
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("jmap: decode %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("jmap: decode: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(err error) error {
	var decErr *DecodeError
	if errors.As(err, &decErr) && decErr.Path != "" {
		return decErr
	}

	var (
		path   string
		semErr *json.SemanticError
		synErr *jsontext.SyntacticError
	)
	switch {
	case errors.As(err, &semErr):
		path = string(semErr.JSONPointer)
	case errors.As(err, &synErr):
		path = string(synErr.JSONPointer)
	}
	return &DecodeError{Path: path, Err: err}
}

// Marshal encodes v as a JSON value.
func Marshal(v any) (jsontext.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jmap: encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes data into v. Unknown object members are ignored. Any
// failure is returned as a [*DecodeError].
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return newDecodeError(err)
	}
	return nil
}

// requireMembers fails when obj is missing any of the named members.
func requireMembers(obj jsontext.Value, names ...string) error {
	var members map[string]jsontext.Value
	if err := Unmarshal(obj, &members); err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := members[name]; !ok {
			return &DecodeError{
				Path: "/" + name,
				Err:  errors.New("missing required member"),
			}
		}
	}
	return nil
}
