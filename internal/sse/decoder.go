// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

// Package sse decodes Server-Sent Events streams.
package sse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineSize = 1 << 20

// Event represents a Server-Sent Event.
type Event struct {
	Type  string
	Data  string
	ID    string
	Retry int
}

// Decoder decodes Server-Sent Events from an io.Reader. It reads no further
// than the end of the event it returns.
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder creates a new SSE decoder.
func NewDecoder(reader io.Reader) *Decoder {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Decoder{scanner: scanner}
}

// Decode decodes the next SSE event from the stream. Comment lines are
// skipped, and so are blocks holding nothing but comments. It returns io.EOF
// once the stream ends.
func (d *Decoder) Decode() (*Event, error) {
	var (
		event   Event
		seen    bool
		hasData bool
	)

	for d.scanner.Scan() {
		line := d.scanner.Text()

		// Empty line indicates end of event
		if line == "" {
			if seen {
				return &event, nil
			}
			continue
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			event.Type = value
		case "data":
			if hasData {
				event.Data += "\n"
			}
			event.Data += value
			hasData = true
		case "id":
			event.ID = value
		case "retry":
			if retry, err := strconv.Atoi(value); err == nil {
				event.Retry = retry
			}
		default:
			continue
		}
		seen = true
	}

	if err := d.scanner.Err(); err != nil {
		return nil, fmt.Errorf("SSE scanner error: %w", err)
	}

	// An event not terminated by a blank line is incomplete and dropped.
	return nil, io.EOF
}
