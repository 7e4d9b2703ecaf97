// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yosida95/uritemplate/v3"

	"github.com/go-jmap/jmap"
	"github.com/go-jmap/jmap/internal/sse"
)

// CloseAfter tells the server when to end an event stream.
type CloseAfter string

const (
	// CloseAfterState ends the stream after the first state event.
	CloseAfterState CloseAfter = "state"
	// CloseAfterNo keeps the stream open.
	CloseAfterNo CloseAfter = "no"
)

// EventSourceConfig holds the parameters substituted into the session's
// event source URL template.
type EventSourceConfig struct {
	// Types restricts the data types reported. Empty means all types.
	Types []string
	// CloseAfter defaults to CloseAfterNo.
	CloseAfter CloseAfter
	// Ping asks the server for keepalive pings at this interval, rounded
	// down to whole seconds. Zero disables pings.
	Ping time.Duration
}

// DefaultEventSourceConfig returns a config subscribing to every type with
// no pings and no automatic close.
func DefaultEventSourceConfig() EventSourceConfig {
	return EventSourceConfig{CloseAfter: CloseAfterNo}
}

func (cfg EventSourceConfig) validate() error {
	switch cfg.CloseAfter {
	case "", CloseAfterState, CloseAfterNo:
	default:
		return &ValidationError{Field: "closeafter", Message: fmt.Sprintf("unknown value %q", cfg.CloseAfter)}
	}
	if cfg.Ping < 0 {
		return &ValidationError{Field: "ping", Message: "must not be negative"}
	}
	if slices.Contains(cfg.Types, "") {
		return &ValidationError{Field: "types", Message: "must not contain empty names"}
	}
	return nil
}

// values returns the template variables for cfg.
func (cfg EventSourceConfig) values() uritemplate.Values {
	types := "*"
	if len(cfg.Types) > 0 {
		types = strings.Join(cfg.Types, ",")
	}
	closeAfter := cfg.CloseAfter
	if closeAfter == "" {
		closeAfter = CloseAfterNo
	}

	vals := uritemplate.Values{}
	vals.Set("types", uritemplate.String(types))
	vals.Set("closeafter", uritemplate.String(string(closeAfter)))
	vals.Set("ping", uritemplate.String(strconv.FormatInt(int64(cfg.Ping/time.Second), 10)))
	return vals
}

// ExpandEventSourceURL fills in the event source URL template of a session.
func ExpandEventSourceURL(template string, cfg EventSourceConfig) (string, error) {
	tmpl, err := uritemplate.New(template)
	if err != nil {
		return "", fmt.Errorf("parse event source URL template: %w", err)
	}
	u, err := tmpl.Expand(cfg.values())
	if err != nil {
		return "", fmt.Errorf("expand event source URL template: %w", err)
	}
	return u, nil
}

// EventStream reads state change events pushed by the server. It connects
// on the first call to Next. Only frames of type "state" that carry an id
// are delivered; every other frame is skipped.
//
// Next must not be called concurrently. Close may be called at any time.
type EventStream struct {
	client *Client
	ctx    context.Context
	cancel context.CancelFunc

	// idMu guards lastEventID apart from mu, which Next holds while it
	// waits for a frame.
	idMu        sync.Mutex
	lastEventID string

	mu      sync.Mutex
	body    io.ReadCloser
	decoder *sse.Decoder
	err     error
}

// Events returns a stream of state changes. A non-empty lastEventID resumes
// after that event.
func (c *Client) Events(lastEventID string) *EventStream {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventStream{
		client:      c,
		ctx:         ctx,
		cancel:      cancel,
		lastEventID: lastEventID,
	}
}

// LastEventID returns the id of the last event delivered, or the id the
// stream was created with.
func (s *EventStream) LastEventID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return s.lastEventID
}

// Err returns the terminal error of the stream, or nil while it is open.
// After a range over [EventStream.All] it reports why the loop ended:
// [ErrStreamEnded] when the server ended the stream.
func (s *EventStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Next blocks until the next state event arrives. It returns
// [ErrStreamEnded] when the server ends the stream and ctx.Err() when ctx is
// done. Any error is terminal and closes the stream.
func (s *EventStream) Next(ctx context.Context) (*jmap.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	stop := context.AfterFunc(ctx, s.cancel)
	defer stop()

	if s.decoder == nil {
		if err := s.connect(ctx); err != nil {
			return nil, s.fail(ctx, err)
		}
	}

	for {
		frame, err := s.decoder.Decode()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrStreamEnded
			}
			return nil, s.fail(ctx, err)
		}

		if frame.Type != jmap.StateEventType || frame.ID == "" {
			s.client.logger.DebugContext(ctx, "dropping event frame",
				slog.String("type", frame.Type),
				slog.String("id", frame.ID),
			)
			continue
		}

		event, err := jmap.ParseEvent(frame.ID, []byte(frame.Data))
		if err != nil {
			return nil, s.fail(ctx, fmt.Errorf("event %q: %w", frame.ID, err))
		}
		s.idMu.Lock()
		s.lastEventID = frame.ID
		s.idMu.Unlock()
		return event, nil
	}
}

// All returns an iterator over the stream. Iteration stops after the first
// error, which is yielded with a nil event unless it is [ErrStreamEnded].
// The stream is closed when iteration stops, including when the loop breaks
// early. [EventStream.Err] then reports the terminal error; a caller that
// wants to keep listening opens a new stream with [EventStream.LastEventID].
func (s *EventStream) All(ctx context.Context) iter.Seq2[*jmap.Event, error] {
	return func(yield func(*jmap.Event, error) bool) {
		defer s.Close()
		for {
			event, err := s.Next(ctx)
			if errors.Is(err, ErrStreamEnded) {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// Close ends the stream and releases its connection.
func (s *EventStream) Close() error {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = ErrStreamClosed
	}
	if s.body != nil {
		s.body.Close()
		s.body = nil
		s.client.logger.Debug("closed JMAP event stream")
	}
	return nil
}

// connect opens the event source. s.mu must be held.
func (s *EventStream) connect(ctx context.Context) error {
	session, err := s.client.Session(ctx)
	if err != nil {
		return err
	}
	u, err := ExpandEventSourceURL(session.EventSourceURL, s.client.eventSource)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	lastEventID := s.LastEventID()
	if lastEventID != "" {
		req.Header.Set("Last-Event-ID", lastEventID)
	}

	resp, err := s.client.open(req, "GET", s.client.streamInvoker)
	if err != nil {
		return err
	}
	s.client.logger.DebugContext(ctx, "opened JMAP event stream",
		slog.String("url", u),
		slog.String("lastEventId", lastEventID),
	)

	s.body = resp.Body
	s.decoder = sse.NewDecoder(resp.Body)
	return nil
}

// fail records err as the terminal error of the stream and releases the
// connection. s.mu must be held.
func (s *EventStream) fail(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		err = ctx.Err()
	case s.ctx.Err() != nil:
		err = ErrStreamClosed
	}

	s.err = err
	s.cancel()
	if s.body != nil {
		s.body.Close()
		s.body = nil
	}
	return err
}
