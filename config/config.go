// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads client settings from a YAML or TOML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-jmap/jmap/client"
)

// Environment variables read by [Load]. They take precedence over the file.
const (
	EnvHost     = "JMAP_HOST"
	EnvAPIToken = "JMAP_API_TOKEN"
	EnvUser     = "JMAP_USER"
	EnvPassword = "JMAP_PASSWORD"
	EnvLogLevel = "JMAP_LOG_LEVEL"
)

// Config holds everything needed to build a client.
type Config struct {
	Host     string
	APIToken string
	User     string
	Password string
	LogLevel slog.Level
	// Timeout bounds session and API requests.
	Timeout time.Duration
	Events  client.EventSourceConfig
}

// Default returns the configuration used for settings that are not given.
func Default() Config {
	return Config{
		LogLevel: slog.LevelInfo,
		Timeout:  client.DefaultTimeout,
		Events:   client.DefaultEventSourceConfig(),
	}
}

// fileConfig is the on-disk shape shared by YAML and TOML.
type fileConfig struct {
	Host     string       `yaml:"host" toml:"host"`
	APIToken string       `yaml:"api_token" toml:"api_token"`
	User     string       `yaml:"user" toml:"user"`
	Password string       `yaml:"password" toml:"password"`
	LogLevel string       `yaml:"log_level" toml:"log_level"`
	Timeout  string       `yaml:"timeout" toml:"timeout"`
	Events   eventsConfig `yaml:"events" toml:"events"`
}

type eventsConfig struct {
	Types      []string `yaml:"types" toml:"types"`
	CloseAfter string   `yaml:"closeafter" toml:"closeafter"`
	Ping       string   `yaml:"ping" toml:"ping"`
}

// Load reads the file at path, if path is not empty, then applies the
// environment and validates the result. The file format is chosen by
// extension: .yaml, .yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			err = cfg.loadYAML(path)
		case ".toml":
			err = cfg.loadTOML(path)
		default:
			err = fmt.Errorf("unsupported config file extension %q", ext)
		}
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	// yaml leaves absent keys at their zero value, so only non-empty
	// values override.
	return c.merge(raw, func(key string) bool {
		return !isEmpty(raw, key)
	})
}

func (c *Config) loadTOML(path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys %v", undecoded)
	}
	return c.merge(raw, func(key string) bool {
		return meta.IsDefined(strings.Split(key, ".")...)
	})
}

// isEmpty reports whether the member of raw named by key holds its zero value.
func isEmpty(raw fileConfig, key string) bool {
	switch key {
	case "host":
		return raw.Host == ""
	case "api_token":
		return raw.APIToken == ""
	case "user":
		return raw.User == ""
	case "password":
		return raw.Password == ""
	case "log_level":
		return raw.LogLevel == ""
	case "timeout":
		return raw.Timeout == ""
	case "events.types":
		return raw.Events.Types == nil
	case "events.closeafter":
		return raw.Events.CloseAfter == ""
	case "events.ping":
		return raw.Events.Ping == ""
	}
	return true
}

// merge copies the members of raw for which defined reports true.
func (c *Config) merge(raw fileConfig, defined func(key string) bool) error {
	if defined("host") {
		c.Host = strings.TrimSpace(raw.Host)
	}
	if defined("api_token") {
		c.APIToken = raw.APIToken
	}
	if defined("user") {
		c.User = strings.TrimSpace(raw.User)
	}
	if defined("password") {
		c.Password = raw.Password
	}
	if defined("log_level") {
		if err := c.LogLevel.UnmarshalText([]byte(strings.TrimSpace(raw.LogLevel))); err != nil {
			return fmt.Errorf("parse log_level: %w", err)
		}
	}
	if defined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		c.Timeout = d
	}
	if defined("events.types") {
		c.Events.Types = raw.Events.Types
	}
	if defined("events.closeafter") {
		c.Events.CloseAfter = client.CloseAfter(strings.TrimSpace(raw.Events.CloseAfter))
	}
	if defined("events.ping") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Events.Ping))
		if err != nil {
			return fmt.Errorf("parse events.ping: %w", err)
		}
		c.Events.Ping = d
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHost); ok {
		c.Host = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAPIToken); ok {
		c.APIToken = v
	}
	if v, ok := lookup(EnvUser); ok {
		c.User = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPassword); ok {
		c.Password = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		if err := c.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return fmt.Errorf("parse %s: %w", EnvLogLevel, err)
		}
	}
	return nil
}

// Validate reports the first problem that would keep c from building a
// working client.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return &client.ValidationError{Field: "host", Message: "must be set"}
	case c.APIToken != "" && c.User != "":
		return &client.ValidationError{Field: "api_token", Message: "cannot be combined with user"}
	case c.Password != "" && c.User == "":
		return &client.ValidationError{Field: "user", Message: "must be set when password is"}
	case c.Timeout < 0:
		return &client.ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	return nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// ClientOptions returns the options that apply c to a client. Credentials
// are added only when configured.
func (c Config) ClientOptions() []client.Option {
	opts := []client.Option{
		client.WithTimeout(c.Timeout),
		client.WithEventSourceConfig(c.Events),
	}
	switch {
	case c.APIToken != "":
		opts = append(opts, client.WithBearerToken(c.APIToken))
	case c.User != "":
		opts = append(opts, client.WithBasicAuth(c.User, c.Password))
	}
	return opts
}

// NewClient validates c and builds a client logging to stderr.
func (c Config) NewClient(opts ...client.Option) (*client.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts = append(append(c.ClientOptions(), client.WithLogger(c.Logger(os.Stderr))), opts...)
	return client.New(c.Host, opts...)
}
