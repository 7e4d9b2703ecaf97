// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap_test

import (
	"errors"
	"testing"

	"github.com/go-json-experiment/json/jsontext"
	gocmp "github.com/google/go-cmp/cmp"

	"github.com/go-jmap/jmap"
)

const sessionJSON = `{
	"capabilities": {
		"urn:ietf:params:jmap:core": {"maxSizeUpload": 50000000},
		"urn:ietf:params:jmap:mail": {}
	},
	"accounts": {
		"A13824": {"name": "john@example.com", "isPersonal": true, "isReadOnly": false}
	},
	"primaryAccounts": {
		"urn:ietf:params:jmap:mail": "A13824",
		"urn:ietf:params:jmap:submission": "A13824",
		"urn:ietf:params:jmap:contacts": "A13824"
	},
	"username": "john@example.com",
	"apiUrl": "https://jmap.example.com/api/",
	"downloadUrl": "https://jmap.example.com/download/{accountId}/{blobId}/{name}?accept={type}",
	"uploadUrl": "https://jmap.example.com/upload/{accountId}/",
	"eventSourceUrl": "https://jmap.example.com/eventsource/?types={types}&closeafter={closeafter}&ping={ping}",
	"state": "75128aab4b1b"
}`

func TestParseSession(t *testing.T) {
	t.Parallel()

	got, err := jmap.ParseSession([]byte(sessionJSON))
	if err != nil {
		t.Fatalf("ParseSession failed: %v", err)
	}

	want := &jmap.Session{
		Capabilities: map[string]jsontext.Value{
			jmap.CoreURN: jsontext.Value(`{"maxSizeUpload": 50000000}`),
			jmap.MailURN: jsontext.Value(`{}`),
		},
		Accounts: map[string]jmap.Account{
			"A13824": {Name: "john@example.com", IsPersonal: true},
		},
		PrimaryAccounts: jmap.PrimaryAccounts{Mail: "A13824", Submission: "A13824"},
		Username:        "john@example.com",
		APIURL:          "https://jmap.example.com/api/",
		DownloadURL:     "https://jmap.example.com/download/{accountId}/{blobId}/{name}?accept={type}",
		UploadURL:       "https://jmap.example.com/upload/{accountId}/",
		EventSourceURL:  "https://jmap.example.com/eventsource/?types={types}&closeafter={closeafter}&ping={ping}",
		State:           "75128aab4b1b",
	}
	if diff := gocmp.Diff(want, got, gocmp.Comparer(func(a, b jsontext.Value) bool {
		a, b = a.Clone(), b.Clone()
		return a.Compact() == nil && b.Compact() == nil && string(a) == string(b)
	})); diff != "" {
		t.Errorf("ParseSession mismatch (-want +got):\n%s", diff)
	}

	id, err := got.AccountID()
	if err != nil {
		t.Fatalf("AccountID failed: %v", err)
	}
	if id != "A13824" {
		t.Errorf("AccountID = %q, want %q", id, "A13824")
	}
	if !got.HasCapability(jmap.MailURN) || got.HasCapability(jmap.SubmissionURN) {
		t.Errorf("HasCapability reports the wrong capabilities: %v", got.Capabilities)
	}
}

func TestParseSession_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data     string
		wantPath string
	}{
		"missing capabilities": {
			data:     `{"primaryAccounts": {}, "apiUrl": "https://x/api", "eventSourceUrl": "https://x/es"}`,
			wantPath: "/capabilities",
		},
		"missing primaryAccounts": {
			data:     `{"capabilities": {}, "apiUrl": "https://x/api", "eventSourceUrl": "https://x/es"}`,
			wantPath: "/primaryAccounts",
		},
		"missing eventSourceUrl": {
			data:     `{"capabilities": {}, "primaryAccounts": {}, "apiUrl": "https://x/api"}`,
			wantPath: "/eventSourceUrl",
		},
		"empty apiUrl": {
			data:     `{"capabilities": {}, "primaryAccounts": {}, "apiUrl": "", "eventSourceUrl": "https://x/es"}`,
			wantPath: "/apiUrl",
		},
		"wrong kind": {
			data:     `{"capabilities": [], "primaryAccounts": {}, "apiUrl": "https://x/api", "eventSourceUrl": "https://x/es"}`,
			wantPath: "/capabilities",
		},
		"not an object": {
			data: `[]`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := jmap.ParseSession([]byte(tt.data))
			var decErr *jmap.DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("expected a *jmap.DecodeError, got %v", err)
			}
			if decErr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", decErr.Path, tt.wantPath)
			}
		})
	}
}

func TestSession_AccountID_Missing(t *testing.T) {
	t.Parallel()

	s := &jmap.Session{PrimaryAccounts: jmap.PrimaryAccounts{Core: "A1"}}
	if _, err := s.AccountID(); !errors.Is(err, jmap.ErrNoPrimaryAccount) {
		t.Errorf("AccountID error = %v, want ErrNoPrimaryAccount", err)
	}
}
