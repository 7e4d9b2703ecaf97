// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import (
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// Session is the server's session resource: its capabilities, the accounts
// the credentials can reach, and the endpoints to use.
type Session struct {
	// Capabilities maps capability URNs to their capability objects.
	Capabilities    map[string]jsontext.Value `json:"capabilities"`
	Accounts        map[string]Account        `json:"accounts,omitzero"`
	PrimaryAccounts PrimaryAccounts           `json:"primaryAccounts"`
	Username        string                    `json:"username,omitzero"`
	APIURL          string                    `json:"apiUrl"`
	DownloadURL     string                    `json:"downloadUrl,omitzero"`
	UploadURL       string                    `json:"uploadUrl,omitzero"`
	// EventSourceURL is an RFC 6570 template with the variables types,
	// closeafter and ping.
	EventSourceURL string `json:"eventSourceUrl"`
	State          string `json:"state,omitzero"`
}

// Account describes one account in [Session.Accounts].
type Account struct {
	Name       string `json:"name"`
	IsPersonal bool   `json:"isPersonal"`
	IsReadOnly bool   `json:"isReadOnly"`
}

// PrimaryAccounts holds the default account id per capability.
type PrimaryAccounts struct {
	Core       string `json:"'urn:ietf:params:jmap:core',omitzero"`
	Mail       string `json:"'urn:ietf:params:jmap:mail',omitzero"`
	Submission string `json:"'urn:ietf:params:jmap:submission',omitzero"`
}

// ParseSession decodes a session resource. Documents missing one of the
// members a client depends on are rejected.
func ParseSession(data []byte) (*Session, error) {
	if err := requireMembers(data, "capabilities", "primaryAccounts", "apiUrl", "eventSourceUrl"); err != nil {
		return nil, err
	}
	var s Session
	if err := Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.APIURL == "" {
		return nil, &DecodeError{Path: "/apiUrl", Err: fmt.Errorf("empty API URL")}
	}
	return &s, nil
}

// AccountID returns the primary account for the mail capability.
func (s *Session) AccountID() (string, error) {
	if s.PrimaryAccounts.Mail == "" {
		return "", ErrNoPrimaryAccount
	}
	return s.PrimaryAccounts.Mail, nil
}

// HasCapability reports whether the server advertises urn.
func (s *Session) HasCapability(urn string) bool {
	_, ok := s.Capabilities[urn]
	return ok
}
