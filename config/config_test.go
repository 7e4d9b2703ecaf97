// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	gocmp "github.com/google/go-cmp/cmp"

	"github.com/go-jmap/jmap/client"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{EnvHost, EnvAPIToken, EnvUser, EnvPassword, EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		file    string
		content string
		env     map[string]string
		want    Config
	}{
		"yaml": {
			file: "jmap.yaml",
			content: `host: jmap.example.com
api_token: tok
log_level: debug
timeout: 10s
events:
  types: [Email, Mailbox]
  closeafter: state
  ping: 1m
`,
			want: Config{
				Host:     "jmap.example.com",
				APIToken: "tok",
				LogLevel: slog.LevelDebug,
				Timeout:  10 * time.Second,
				Events: client.EventSourceConfig{
					Types:      []string{"Email", "Mailbox"},
					CloseAfter: client.CloseAfterState,
					Ping:       time.Minute,
				},
			},
		},
		"toml": {
			file: "jmap.toml",
			content: `host = "jmap.example.com"
user = "ness"
password = "pk-fire"

[events]
ping = "30s"
`,
			want: Config{
				Host:     "jmap.example.com",
				User:     "ness",
				Password: "pk-fire",
				LogLevel: slog.LevelInfo,
				Timeout:  client.DefaultTimeout,
				Events:   client.EventSourceConfig{CloseAfter: client.CloseAfterNo, Ping: 30 * time.Second},
			},
		},
		"environment overrides file": {
			file:    "jmap.yml",
			content: "host: file.example.com\nlog_level: error\n",
			env: map[string]string{
				EnvHost:     "env.example.com",
				EnvAPIToken: "env-token",
				EnvLogLevel: "warn",
			},
			want: Config{
				Host:     "env.example.com",
				APIToken: "env-token",
				LogLevel: slog.LevelWarn,
				Timeout:  client.DefaultTimeout,
				Events:   client.DefaultEventSourceConfig(),
			},
		},
		"environment only": {
			env: map[string]string{
				EnvHost:     "env.example.com",
				EnvUser:     "ness",
				EnvPassword: "pk-fire",
			},
			want: Config{
				Host:     "env.example.com",
				User:     "ness",
				Password: "pk-fire",
				LogLevel: slog.LevelInfo,
				Timeout:  client.DefaultTimeout,
				Events:   client.DefaultEventSourceConfig(),
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var path string
			if tt.file != "" {
				path = writeFile(t, tt.file, tt.content)
			}

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := gocmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		file    string
		content string
		missing bool
		env     map[string]string
	}{
		"unknown yaml key": {
			file:    "jmap.yaml",
			content: "host: jmap.example.com\nhots: typo\n",
		},
		"unknown toml key": {
			file:    "jmap.toml",
			content: "host = \"jmap.example.com\"\nhots = \"typo\"\n",
		},
		"bad duration": {
			file:    "jmap.yaml",
			content: "host: jmap.example.com\ntimeout: soon\n",
		},
		"bad log level": {
			env: map[string]string{EnvHost: "jmap.example.com", EnvLogLevel: "loud"},
		},
		"unsupported extension": {
			file:    "jmap.json",
			content: `{"host": "jmap.example.com"}`,
		},
		"missing file": {
			missing: true,
			env:     map[string]string{EnvHost: "jmap.example.com"},
		},
		"missing host": {
			file:    "jmap.yaml",
			content: "api_token: tok\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var path string
			switch {
			case tt.missing:
				path = filepath.Join(t.TempDir(), "absent.yaml")
			case tt.file != "":
				path = writeFile(t, tt.file, tt.content)
			}

			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want an error")
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg       Config
		wantField string
	}{
		"valid token": {
			cfg: Config{Host: "h", APIToken: "t"},
		},
		"valid anonymous": {
			cfg: Config{Host: "h"},
		},
		"no host": {
			cfg:       Config{APIToken: "t"},
			wantField: "host",
		},
		"token and user": {
			cfg:       Config{Host: "h", APIToken: "t", User: "u"},
			wantField: "api_token",
		},
		"password without user": {
			cfg:       Config{Host: "h", Password: "p"},
			wantField: "user",
		},
		"negative timeout": {
			cfg:       Config{Host: "h", Timeout: -time.Second},
			wantField: "timeout",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate failed: %v", err)
				}
				return
			}
			var valErr *client.ValidationError
			if !errors.As(err, &valErr) || valErr.Field != tt.wantField {
				t.Errorf("Validate error = %v, want a ValidationError for %q", err, tt.wantField)
			}
		})
	}
}

func TestConfig_NewClient(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Host = "jmap.example.com"
	cfg.User = "ness"
	cfg.Password = "pk-fire"

	c, err := cfg.NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if c.Host() != "jmap.example.com" {
		t.Errorf("Host() = %q", c.Host())
	}
}
