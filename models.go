// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import (
	"time"

	"github.com/google/uuid"
)

// NewCreationID returns a fresh creation id for the create map of a /set call.
func NewCreationID() string {
	return uuid.NewString()
}

// SetError explains why a create, update or destroy in a /set call failed.
type SetError struct {
	Type        string           `json:"type"`
	Description Optional[string] `json:"description,omitzero"`
	Properties  []string         `json:"properties,omitzero"`
}

// UndoStatus is whether a submission may still be canceled.
type UndoStatus string

const (
	UndoStatusPending  UndoStatus = "pending"
	UndoStatusFinal    UndoStatus = "final"
	UndoStatusCanceled UndoStatus = "canceled"
)

// Delivered is the delivery state of a submission to one recipient.
type Delivered string

const (
	DeliveredQueued  Delivered = "queued"
	DeliveredYes     Delivered = "yes"
	DeliveredNo      Delivered = "no"
	DeliveredUnknown Delivered = "unknown"
)

// Displayed is whether the recipient's client has displayed the message.
type Displayed string

const (
	DisplayedUnknown Displayed = "unknown"
	DisplayedYes     Displayed = "yes"
)

// Address is an SMTP envelope address.
type Address struct {
	Email string `json:"email"`
	// Parameters holds SMTP extension parameters. It is always sent, as null
	// when unset.
	Parameters Optional[map[string]any] `json:"parameters"`
}

// Envelope is the SMTP envelope of a submission.
type Envelope struct {
	MailFrom Address   `json:"mailFrom"`
	RcptTo   []Address `json:"rcptTo"`
}

// DeliveryStatus is the delivery state for one recipient.
type DeliveryStatus struct {
	SMTPReply string    `json:"smtpReply"`
	Delivered Delivered `json:"delivered"`
	Displayed Displayed `json:"displayed"`
}

// EmailSubmission is a message queued for or sent via SMTP.
type EmailSubmission struct {
	ID             string                              `json:"id,omitzero"`
	IdentityID     string                              `json:"identityId,omitzero"`
	EmailID        string                              `json:"emailId,omitzero"`
	ThreadID       string                              `json:"threadId,omitzero"`
	Envelope       Optional[Envelope]                  `json:"envelope,omitzero"`
	SendAt         Optional[time.Time]                 `json:"sendAt,omitzero"`
	UndoStatus     UndoStatus                          `json:"undoStatus,omitzero"`
	DeliveryStatus Optional[map[string]DeliveryStatus] `json:"deliveryStatus,omitzero"`
	DSNBlobIDs     []string                            `json:"dsnBlobIds,omitzero"`
	MDNBlobIDs     []string                            `json:"mdnBlobIds,omitzero"`
}
