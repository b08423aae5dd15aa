package entities

import "encoding/json"

// PullRequestStatus is the closed set of dash states for a pull request.
// Exactly one applies at any time; it is a pure function of the PR's current
// review, review-request, commit-status and mergeability state.
type PullRequestStatus interface {
	isPullRequestStatus()
	// Type returns the wire discriminant.
	Type() string
	// Actionable reports whether the dash highlights the item as requiring
	// the viewer's attention.
	Actionable() bool
}

// marshalTagged serializes a sum variant as an object with a "type"
// discriminant. json.Marshal sorts map keys, so output is deterministic and
// safe for state comparison.
func marshalTagged(typ string, fields map[string]any) ([]byte, error) {
	m := map[string]any{"type": typ}
	for k, v := range fields {
		m[k] = v
	}
	return json.Marshal(m)
}

// Outgoing statuses: the viewer authored the PR.

// NoReviewers: the PR has no review requests and no reviews at all.
type NoReviewers struct{}

func (NoReviewers) isPullRequestStatus() {}
func (NoReviewers) Type() string         { return "NoReviewers" }
func (NoReviewers) Actionable() bool     { return true }
func (s NoReviewers) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// WaitingReview: requested reviewers have yet to approve.
type WaitingReview struct {
	Reviewers []string `json:"reviewers"`
}

func (WaitingReview) isPullRequestStatus() {}
func (WaitingReview) Type() string         { return "WaitingReview" }
func (WaitingReview) Actionable() bool     { return false }
func (s WaitingReview) MarshalJSON() ([]byte, error) {
	reviewers := s.Reviewers
	if reviewers == nil {
		reviewers = []string{}
	}
	return marshalTagged(s.Type(), map[string]any{"reviewers": reviewers})
}

// PendingChanges: at least one reviewer's latest review requested changes.
type PendingChanges struct{}

func (PendingChanges) isPullRequestStatus() {}
func (PendingChanges) Type() string         { return "PendingChanges" }
func (PendingChanges) Actionable() bool     { return true }
func (s PendingChanges) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// PendingMerge: approved and passing, ready for the author to merge.
type PendingMerge struct{}

func (PendingMerge) isPullRequestStatus() {}
func (PendingMerge) Type() string         { return "PendingMerge" }
func (PendingMerge) Actionable() bool     { return true }
func (s PendingMerge) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// StatusChecksPending: approved but CI has not finished.
type StatusChecksPending struct{}

func (StatusChecksPending) isPullRequestStatus() {}
func (StatusChecksPending) Type() string         { return "StatusChecksPending" }
func (StatusChecksPending) Actionable() bool     { return false }
func (s StatusChecksPending) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// StatusChecksFailed: approved but CI failed or errored.
type StatusChecksFailed struct{}

func (StatusChecksFailed) isPullRequestStatus() {}
func (StatusChecksFailed) Type() string         { return "StatusChecksFailed" }
func (StatusChecksFailed) Actionable() bool     { return true }
func (s StatusChecksFailed) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// Incoming statuses: the viewer is a reviewer or requested reviewer.

// ReviewRequired: the viewer was asked to review and has not yet.
type ReviewRequired struct{}

func (ReviewRequired) isPullRequestStatus() {}
func (ReviewRequired) Type() string         { return "ReviewRequired" }
func (ReviewRequired) Actionable() bool     { return true }
func (s ReviewRequired) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// ApprovalRequired: the viewer approved, but new commits landed since, so
// the approval is stale.
type ApprovalRequired struct{}

func (ApprovalRequired) isPullRequestStatus() {}
func (ApprovalRequired) Type() string         { return "ApprovalRequired" }
func (ApprovalRequired) Actionable() bool     { return true }
func (s ApprovalRequired) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// ChangesRequested: the viewer's latest review requested changes; the ball
// is in the author's court.
type ChangesRequested struct{}

func (ChangesRequested) isPullRequestStatus() {}
func (ChangesRequested) Type() string         { return "ChangesRequested" }
func (ChangesRequested) Actionable() bool     { return false }
func (s ChangesRequested) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// NoActionRequired: the viewer's latest review stands, nothing to do.
type NoActionRequired struct{}

func (NoActionRequired) isPullRequestStatus() {}
func (NoActionRequired) Type() string         { return "NoActionRequired" }
func (NoActionRequired) Actionable() bool     { return false }
func (s NoActionRequired) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}

// UnknownStatus covers PRs the viewer is merely mentioned on, and malformed
// upstream data. Classification never fails; it degrades to this.
type UnknownStatus struct{}

func (UnknownStatus) isPullRequestStatus() {}
func (UnknownStatus) Type() string         { return "UnknownStatus" }
func (UnknownStatus) Actionable() bool     { return false }
func (s UnknownStatus) MarshalJSON() ([]byte, error) {
	return marshalTagged(s.Type(), nil)
}
