// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-jmap/jmap"
)

func TestUnmarshal_DecodeErrorPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data     string
		wantPath string
	}{
		"nested member": {
			data:     `{"accountId":"u1","state":"s","list":[{"id":"ES1"},{"id":7}]}`,
			wantPath: "/list/1/id",
		},
		"optional member": {
			data:     `{"accountId":"u1","state":"s","list":[{"envelope":{"mailFrom":"x"}}]}`,
			wantPath: "/list/0/envelope/mailFrom",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var resp jmap.EmailSubmissionGetResponse
			err := jmap.Unmarshal([]byte(tt.data), &resp)
			var decErr *jmap.DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("expected a *jmap.DecodeError, got %v", err)
			}
			if decErr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", decErr.Path, tt.wantPath)
			}
			if !strings.Contains(decErr.Error(), tt.wantPath) {
				t.Errorf("Error() = %q does not mention the path", decErr.Error())
			}
		})
	}
}

func TestNewCreationID(t *testing.T) {
	t.Parallel()

	a, b := jmap.NewCreationID(), jmap.NewCreationID()
	if a == "" || a == b {
		t.Errorf("NewCreationID returned %q and %q", a, b)
	}
}
