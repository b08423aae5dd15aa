package entities

import "time"

// DashSnapshot is the fetcher's page-merged output for one user. A snapshot
// is created per fetch and superseded by the next one; the poll loop holds
// it transiently for diffing against the previous snapshot.
type DashSnapshot struct {
	User      string        `json:"user"`
	PRs       []PullRequest `json:"prs"`
	Cursor    string        `json:"cursor,omitempty"`
	HasMore   bool          `json:"has_more"`
	Timestamp time.Time     `json:"timestamp"`
}

// PushSubscription is a stored browser push endpoint with its encryption
// keys and the content encodings the client supports, keyed by user login.
type PushSubscription struct {
	UserLogin        string    `json:"user_login"`
	Endpoint         string    `json:"endpoint"`
	P256DH           string    `json:"p256dh"`
	Auth             string    `json:"auth"`
	ContentEncodings []string  `json:"content_encodings"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}
