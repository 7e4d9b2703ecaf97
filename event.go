// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

// TypeState maps data type names such as "Email" or "Mailbox" to the new
// state string of that type.
type TypeState map[string]string

// StateChange is the payload of a "state" push event.
type StateChange struct {
	Type string `json:"@type"`
	// Changed maps account ids to the types that changed in them.
	Changed map[string]TypeState `json:"changed"`
}

// Event is a state change received on the event source. ID can be used to
// resume the stream after it.
type Event struct {
	ID   string
	Data StateChange
}

// ParseEvent decodes the data of a "state" frame with frame id id.
func ParseEvent(id string, data []byte) (*Event, error) {
	var change StateChange
	if err := Unmarshal(data, &change); err != nil {
		return nil, err
	}
	return &Event{ID: id, Data: change}, nil
}
