// Package api defines the transport models and routes of the dashboard HTTP
// surface.
package api

import (
	"encoding/json"
	"time"
)

// ErrorResponseErrorCode enumerates machine-readable error codes.
type ErrorResponseErrorCode string

const (
	INVALIDARGUMENT  ErrorResponseErrorCode = "INVALID_ARGUMENT"
	NOTFOUND         ErrorResponseErrorCode = "NOT_FOUND"
	PERMISSIONDENIED ErrorResponseErrorCode = "PERMISSION_DENIED"
	FETCHFAILED      ErrorResponseErrorCode = "FETCH_FAILED"
	INTERNAL         ErrorResponseErrorCode = "INTERNAL"
)

// ErrorResponse is the error envelope of every non-2xx answer.
type ErrorResponse struct {
	Error struct {
		Code    ErrorResponseErrorCode `json:"code"`
		Message string                 `json:"message"`
	} `json:"error"`
}

// Status is the classified dash state of a PR or issue.
type Status struct {
	Type       string   `json:"type"`
	Actionable bool     `json:"actionable"`
	Reviewers  []string `json:"reviewers,omitempty"`
	Users      []string `json:"users,omitempty"`
}

// Event is one rendered activity row under a PR.
type Event struct {
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Url       string    `json:"url,omitempty"`
}

// MergePolicy mirrors the repository's allowed merge methods.
type MergePolicy struct {
	MergeAllowed  bool `json:"merge_allowed"`
	SquashAllowed bool `json:"squash_allowed"`
	RebaseAllowed bool `json:"rebase_allowed"`
}

// PullRequest is one dash row.
type PullRequest struct {
	Id                 string      `json:"id"`
	Url                string      `json:"url"`
	Number             int         `json:"number"`
	Owner              string      `json:"owner"`
	Repo               string      `json:"repo"`
	Title              string      `json:"title"`
	Author             string      `json:"author"`
	AvatarUrl          string      `json:"avatar_url,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	Status             Status      `json:"status"`
	Events             []Event     `json:"events"`
	HasNewActivity     bool        `json:"has_new_activity"`
	Mergeable          string      `json:"mergeable,omitempty"`
	MergePolicy        MergePolicy `json:"merge_policy"`
	AutomergeAvailable bool        `json:"automerge_available,omitempty"`
	AutomergeSelection string      `json:"automerge_selection,omitempty"`
}

// Issue is one issue dash row.
type Issue struct {
	Id             string    `json:"id"`
	Url            string    `json:"url"`
	Number         int       `json:"number"`
	Owner          string    `json:"owner"`
	Repo           string    `json:"repo"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	AvatarUrl      string    `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Status         Status    `json:"status"`
	Popularity     int       `json:"popularity"`
	HasNewActivity bool      `json:"has_new_activity"`
}

// DashResponse is the answer of the outgoing and incoming dash endpoints.
type DashResponse struct {
	User      string        `json:"user"`
	Prs       []PullRequest `json:"prs"`
	Timestamp time.Time     `json:"timestamp"`
}

// IssuesResponse is the answer of the issues dash endpoint.
type IssuesResponse struct {
	User   string  `json:"user"`
	Issues []Issue `json:"issues"`
}

// PostDashViewedJSONRequestBody marks the dash as viewed for a user.
type PostDashViewedJSONRequestBody struct {
	Login string `json:"login"`
}

// SubscriptionKeys carries the browser push encryption keys.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// Subscription is the browser-side push subscription object.
type Subscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

// PostPushSubscriptionAddJSONRequestBody registers a push endpoint.
type PostPushSubscriptionAddJSONRequestBody struct {
	Login                     string       `json:"login"`
	Subscription              Subscription `json:"subscription"`
	SupportedContentEncodings []string     `json:"supported_content_encodings,omitempty"`
}

// PostPushSubscriptionRemoveJSONRequestBody removes a push endpoint.
type PostPushSubscriptionRemoveJSONRequestBody struct {
	Login    string `json:"login"`
	Endpoint string `json:"endpoint"`
}

// SettingsResponse wraps the stored settings document.
type SettingsResponse struct {
	Settings json.RawMessage `json:"settings"`
}

// PostSettingsJSONRequestBody replaces the stored settings document.
type PostSettingsJSONRequestBody struct {
	Login    string          `json:"login"`
	Settings json.RawMessage `json:"settings"`
}

// PostWebhookJSONRequestBody reports upstream activity for a set of users.
type PostWebhookJSONRequestBody struct {
	Logins    []string  `json:"logins"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
