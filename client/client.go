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
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-json-experiment/json"

	"github.com/go-jmap/jmap"
	"github.com/go-jmap/jmap/internal/pool"
)

// singleCallID is the call id used by [Client.MethodCall].
const singleCallID = "uno"

// maxErrorBody bounds how much of a failed response is kept in a [StatusError].
const maxErrorBody = 4 << 10

// Client talks to one JMAP server. It is safe for concurrent use.
type Client struct {
	host        string
	sessionURL  string
	logger      *slog.Logger
	eventSource EventSourceConfig

	// invoker sends session and API requests, streamInvoker sends event
	// stream requests. Both run the same interceptor chain.
	invoker       Invoker
	streamInvoker Invoker

	mu      sync.Mutex
	session *jmap.Session
}

// New creates a client for the JMAP server at host, a host name with an
// optional port. The session resource is fetched lazily on first use.
func New(host string, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, &ValidationError{Field: "host", Message: "must not be empty"}
	}
	if strings.Contains(host, "/") {
		return nil, &ValidationError{Field: "host", Message: fmt.Sprintf("%q must be a host name, not a URL", host)}
	}

	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}
	// The event stream is long-lived and must not be cut by a client timeout.
	streamClient := &http.Client{
		Transport:     httpClient.Transport,
		CheckRedirect: httpClient.CheckRedirect,
		Jar:           httpClient.Jar,
	}

	interceptors := make([]Interceptor, 0, len(o.interceptors)+3)
	if o.userAgent != "" {
		interceptors = append(interceptors, UserAgentInterceptor(o.userAgent))
	}
	if len(o.headers) > 0 {
		interceptors = append(interceptors, HeaderInterceptor(o.headers))
	}
	interceptors = append(interceptors, o.interceptors...)
	if o.credentials != nil {
		interceptors = append(interceptors, credentialsInterceptor(o.credentials))
	}

	return &Client{
		host:          host,
		sessionURL:    "https://" + host + jmap.SessionWellKnownPath,
		logger:        o.logger,
		eventSource:   o.eventSource,
		invoker:       chainInterceptors(interceptors, doer(httpClient)),
		streamInvoker: chainInterceptors(interceptors, doer(streamClient)),
	}, nil
}

// NewWithAPIToken creates a client authenticating with a bearer API token.
func NewWithAPIToken(host, token string, opts ...Option) (*Client, error) {
	return New(host, append([]Option{WithBearerToken(token)}, opts...)...)
}

// NewWithPassword creates a client authenticating with HTTP Basic credentials.
func NewWithPassword(host, user, password string, opts ...Option) (*Client, error) {
	return New(host, append([]Option{WithBasicAuth(user, password)}, opts...)...)
}

func doer(hc *http.Client) Invoker {
	return func(_ context.Context, req *http.Request) (*http.Response, error) {
		return hc.Do(req)
	}
}

// Host returns the host the client was created for.
func (c *Client) Host() string { return c.host }

// Session returns the server's session resource, fetching it on first use.
// A successful fetch is cached for the lifetime of the client; a failed one
// is retried by the next call.
func (c *Client) Session(ctx context.Context) (*jmap.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return c.session, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sessionURL, nil)
	if err != nil {
		return nil, &SessionError{Reason: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "fetching JMAP session", slog.String("url", c.sessionURL))
	var session *jmap.Session
	err = c.send(req, "GET", c.invoker, func(body []byte) error {
		var err error
		session, err = jmap.ParseSession(body)
		if err != nil {
			return &SessionError{Reason: "decode", Err: err}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*SessionError); !ok {
			err = &SessionError{Reason: "fetch", Err: err}
		}
		return nil, err
	}
	c.logger.DebugContext(ctx, "resolved JMAP session",
		slog.String("apiUrl", session.APIURL),
		slog.String("username", session.Username),
		slog.String("state", session.State),
	)

	c.session = session
	return session, nil
}

// AccountID returns the primary account for mail data.
func (c *Client) AccountID(ctx context.Context) (string, error) {
	session, err := c.Session(ctx)
	if err != nil {
		return "", err
	}
	return primaryAccount(session)
}

func primaryAccount(session *jmap.Session) (string, error) {
	id, err := session.AccountID()
	if err != nil {
		return "", &SessionError{Reason: "no primary mail account", Err: err}
	}
	return id, nil
}

// MethodCall sends a single method call.
//
// A server may answer one call with several responses. When it answers with
// exactly one, that result is returned on its own; otherwise the results are
// returned as a [jmap.Results] in server order. Method-level errors are
// returned as [jmap.MethodError] results, not as the error.
func (c *Client) MethodCall(ctx context.Context, method jmap.Method) (jmap.Result, error) {
	results, err := c.MethodCallsWithIDs(ctx, jmap.Call{ID: singleCallID, Method: method})
	if err != nil {
		return nil, err
	}
	if len(results) == 1 {
		return results[0].Result, nil
	}
	flat := make(jmap.Results, 0, len(results))
	for _, r := range results {
		flat = append(flat, r.Result)
	}
	return flat, nil
}

// MethodCalls sends methods in one request, using their zero-based position
// as the call id.
func (c *Client) MethodCalls(ctx context.Context, methods ...jmap.Method) ([]jmap.InvocationResult, error) {
	return c.MethodCallsWithIDs(ctx, jmap.Calls(methods...)...)
}

// MethodCallsWithIDs sends calls in one request with caller-chosen ids.
// Results are returned in the order the server produced them, each tagged
// with the id of the call it answers.
func (c *Client) MethodCallsWithIDs(ctx context.Context, calls ...jmap.Call) ([]jmap.InvocationResult, error) {
	session, err := c.Session(ctx)
	if err != nil {
		return nil, err
	}

	req, err := jmap.NewRequest(calls, func() (string, error) {
		return primaryAccount(session)
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.apiRequest(ctx, session.APIURL, req)
	if err != nil {
		return nil, err
	}
	return jmap.ResolveResults(resp.MethodResponses)
}

// Do sends a prepared request to the API resource and returns the decoded
// response object without resolving its method responses.
func (c *Client) Do(ctx context.Context, req *jmap.Request) (*jmap.ResponseObject, error) {
	session, err := c.Session(ctx)
	if err != nil {
		return nil, err
	}
	return c.apiRequest(ctx, session.APIURL, req)
}

// apiRequest posts req to apiURL.
func (c *Client) apiRequest(ctx context.Context, apiURL string, req *jmap.Request) (*jmap.ResponseObject, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "sending JMAP request", slog.String("url", apiURL), slog.String("body", string(payload)))
	var resp jmap.ResponseObject
	err = c.send(httpReq, "POST", c.invoker, func(body []byte) error {
		c.logger.DebugContext(ctx, "received JMAP response", slog.String("body", string(body)))
		return jmap.Unmarshal(body, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// send runs req through invoker and passes the body of a 2xx response to
// decode. The body is only valid during the call.
func (c *Client) send(req *http.Request, op string, invoker Invoker, decode func(body []byte) error) error {
	resp, err := c.open(req, op, invoker)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	buf := pool.Buffers.Get()
	defer pool.PutBuffer(buf)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return &ConnectionError{Op: op, URL: req.URL.String(), Err: fmt.Errorf("read body: %w", err)}
	}
	return decode(buf.Bytes())
}

// open runs req through invoker and returns a 2xx response with its body
// unread. Any other status is reported as a [StatusError].
func (c *Client) open(req *http.Request, op string, invoker Invoker) (*http.Response, error) {
	resp, err := invoker(req.Context(), req)
	if err != nil {
		return nil, &ConnectionError{Op: op, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Op:         op,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}
