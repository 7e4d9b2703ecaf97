// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

// EmailSubmission method names.
const (
	MethodEmailSubmissionGet     = "EmailSubmission/get"
	MethodEmailSubmissionSet     = "EmailSubmission/set"
	MethodEmailSubmissionChanges = "EmailSubmission/changes"
)

func submissionCapabilities() []string {
	return []string{SubmissionURN}
}

// EmailSubmissionGet fetches EmailSubmission objects by id.
type EmailSubmissionGet struct {
	AccountID string `json:"accountId"`
	// IDs selects the objects to return. It is always sent; null asks for
	// every submission in the account.
	IDs        Optional[[]string] `json:"ids"`
	Properties []string           `json:"properties,omitzero"`
}

var _ AccountScoped = EmailSubmissionGet{}

func (EmailSubmissionGet) MethodName() string { return MethodEmailSubmissionGet }
func (EmailSubmissionGet) Capabilities() []string { return submissionCapabilities() }
func (m EmailSubmissionGet) Account() (string, bool) { return m.AccountID, true }

func (m EmailSubmissionGet) Arguments(accountID string) (any, error) {
	m.AccountID = accountID
	return m, nil
}

// EmailSubmissionGetResponse is the reply to [EmailSubmissionGet].
type EmailSubmissionGetResponse struct {
	AccountID string            `json:"accountId"`
	State     string            `json:"state"`
	List      []EmailSubmission `json:"list"`
	NotFound  []string          `json:"notFound,omitzero"`
}

func (*EmailSubmissionGetResponse) isResult() {}
func (*EmailSubmissionGetResponse) MethodName() string { return MethodEmailSubmissionGet }
func (*EmailSubmissionGetResponse) requiredMembers() []string {
	return []string{"accountId", "state", "list"}
}

// EmailSubmissionChanges asks for submission ids changed since a state.
type EmailSubmissionChanges struct {
	AccountID  string `json:"accountId"`
	SinceState string `json:"sinceState"`
	MaxChanges int    `json:"maxChanges,omitzero"`
}

var _ AccountScoped = EmailSubmissionChanges{}

func (EmailSubmissionChanges) MethodName() string { return MethodEmailSubmissionChanges }
func (EmailSubmissionChanges) Capabilities() []string { return submissionCapabilities() }
func (m EmailSubmissionChanges) Account() (string, bool) { return m.AccountID, true }

func (m EmailSubmissionChanges) Arguments(accountID string) (any, error) {
	m.AccountID = accountID
	return m, nil
}

// EmailSubmissionChangesResponse is the reply to [EmailSubmissionChanges].
type EmailSubmissionChangesResponse struct {
	AccountID      string   `json:"accountId"`
	OldState       string   `json:"oldState"`
	NewState       string   `json:"newState"`
	HasMoreChanges bool     `json:"hasMoreChanges"`
	Created        []string `json:"created"`
	Updated        []string `json:"updated"`
	Destroyed      []string `json:"destroyed"`
}

func (*EmailSubmissionChangesResponse) isResult() {}
func (*EmailSubmissionChangesResponse) MethodName() string { return MethodEmailSubmissionChanges }
func (*EmailSubmissionChangesResponse) requiredMembers() []string {
	return []string{"accountId", "oldState", "newState", "hasMoreChanges", "created", "updated", "destroyed"}
}

// EmailSubmissionSet creates, updates or destroys submissions. Keys of Create
// are creation ids; see [NewCreationID].
type EmailSubmissionSet struct {
	AccountID string                     `json:"accountId"`
	IfInState Optional[string]           `json:"ifInState,omitzero"`
	Create    map[string]EmailSubmission `json:"create,omitzero"`
	Update    map[string]map[string]any  `json:"update,omitzero"`
	Destroy   []string                   `json:"destroy,omitzero"`

	// OnSuccessUpdateEmail patches the submitted Email once the submission
	// succeeds, keyed by submission id or "#creationId".
	OnSuccessUpdateEmail  map[string]map[string]any `json:"onSuccessUpdateEmail,omitzero"`
	OnSuccessDestroyEmail []string                  `json:"onSuccessDestroyEmail,omitzero"`
}

var _ AccountScoped = EmailSubmissionSet{}

func (EmailSubmissionSet) MethodName() string { return MethodEmailSubmissionSet }
func (EmailSubmissionSet) Capabilities() []string { return submissionCapabilities() }
func (m EmailSubmissionSet) Account() (string, bool) { return m.AccountID, true }

func (m EmailSubmissionSet) Arguments(accountID string) (any, error) {
	m.AccountID = accountID
	return m, nil
}

// EmailSubmissionSetResponse is the reply to [EmailSubmissionSet]. A value in
// Updated is null when the server made no changes beyond those requested.
type EmailSubmissionSetResponse struct {
	AccountID    string                               `json:"accountId"`
	OldState     Optional[string]                     `json:"oldState,omitzero"`
	NewState     string                               `json:"newState"`
	Created      map[string]EmailSubmission           `json:"created,omitzero"`
	Updated      map[string]Optional[EmailSubmission] `json:"updated,omitzero"`
	Destroyed    []string                             `json:"destroyed,omitzero"`
	NotCreated   map[string]SetError                  `json:"notCreated,omitzero"`
	NotUpdated   map[string]SetError                  `json:"notUpdated,omitzero"`
	NotDestroyed map[string]SetError                  `json:"notDestroyed,omitzero"`
}

func (*EmailSubmissionSetResponse) isResult() {}
func (*EmailSubmissionSetResponse) MethodName() string { return MethodEmailSubmissionSet }
func (*EmailSubmissionSetResponse) requiredMembers() []string {
	return []string{"accountId", "newState"}
}
