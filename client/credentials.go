// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"errors"
	"net/http"
)

// Credentials attach authentication to an outgoing request. A client applies
// the same Credentials to session discovery, API requests and the event
// stream.
type Credentials interface {
	Apply(req *http.Request) error
}

// BearerToken authenticates with an API token in the Authorization header.
type BearerToken string

// Apply implements [Credentials].
func (t BearerToken) Apply(req *http.Request) error {
	if t == "" {
		return errors.New("empty bearer token")
	}
	req.Header.Set("Authorization", "Bearer "+string(t))
	return nil
}

// BasicAuth authenticates with HTTP Basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

// Apply implements [Credentials].
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}
