// Copyright 2026 The Go JMAP Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds session and API requests when no HTTP client is
// supplied. The event stream is never bounded by it.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent when [WithUserAgent] is not used.
const DefaultUserAgent = "go-jmap/1.0"

// Option configures a [Client].
type Option func(*options) error

// options holds the configuration for the client.
type options struct {
	httpClient   *http.Client
	credentials  Credentials
	interceptors []Interceptor
	headers      map[string]string
	logger       *slog.Logger
	userAgent    string
	timeout      time.Duration
	eventSource  EventSourceConfig
}

func defaultOptions() *options {
	return &options{
		logger:      slog.Default(),
		userAgent:   DefaultUserAgent,
		timeout:     DefaultTimeout,
		eventSource: DefaultEventSourceConfig(),
	}
}

// WithHTTPClient sets the HTTP client to use. Its Timeout applies to session
// and API requests; the event stream reuses its Transport without a timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) error {
		if client == nil {
			return &ValidationError{Field: "httpClient", Message: "must not be nil"}
		}
		o.httpClient = client
		return nil
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout < 0 {
			return &ValidationError{Field: "timeout", Message: "must not be negative"}
		}
		o.timeout = timeout
		return nil
	}
}

// WithCredentials sets the credentials attached to every request.
func WithCredentials(creds Credentials) Option {
	return func(o *options) error {
		if creds == nil {
			return &ValidationError{Field: "credentials", Message: "must not be nil"}
		}
		o.credentials = creds
		return nil
	}
}

// WithBearerToken authenticates with an API token.
func WithBearerToken(token string) Option {
	return func(o *options) error {
		if token == "" {
			return &ValidationError{Field: "token", Message: "must not be empty"}
		}
		o.credentials = BearerToken(token)
		return nil
	}
}

// WithBasicAuth authenticates with a user name and password.
func WithBasicAuth(username, password string) Option {
	return func(o *options) error {
		if username == "" {
			return &ValidationError{Field: "username", Message: "must not be empty"}
		}
		o.credentials = BasicAuth{Username: username, Password: password}
		return nil
	}
}

// WithInterceptor appends an interceptor.
func WithInterceptor(interceptor Interceptor) Option {
	return func(o *options) error {
		if interceptor == nil {
			return &ValidationError{Field: "interceptor", Message: "must not be nil"}
		}
		o.interceptors = append(o.interceptors, interceptor)
		return nil
	}
}

// WithInterceptors appends interceptors in order.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(o *options) error {
		for _, interceptor := range interceptors {
			if err := WithInterceptor(interceptor)(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithHeaders sets additional HTTP headers to include in requests.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) error {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for key, value := range headers {
			o.headers[key] = value
		}
		return nil
	}
}

// WithLogger sets the logger. A nil logger discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		o.logger = logger
		return nil
	}
}

// WithUserAgent sets the user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *options) error {
		o.userAgent = userAgent
		return nil
	}
}

// WithEventSourceConfig sets the parameters used to open event streams.
func WithEventSourceConfig(cfg EventSourceConfig) Option {
	return func(o *options) error {
		if err := cfg.validate(); err != nil {
			return err
		}
		o.eventSource = cfg
		return nil
	}
}
