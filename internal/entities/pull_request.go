// Package entities contains core business entities.
package entities

import "time"

// ReviewState enumerates upstream review verdicts.
type ReviewState string

const (
	// ReviewApproved marks an approving review.
	ReviewApproved ReviewState = "APPROVED"
	// ReviewChangesRequested marks a review asking for changes.
	ReviewChangesRequested ReviewState = "CHANGES_REQUESTED"
	// ReviewCommented marks a review that only left comments.
	ReviewCommented ReviewState = "COMMENTED"
	// ReviewDismissed marks a review dismissed by the author or an admin.
	ReviewDismissed ReviewState = "DISMISSED"
	// ReviewPending marks an unsubmitted draft review.
	ReviewPending ReviewState = "PENDING"
)

// Review is a single submitted review on a pull request.
type Review struct {
	Author    string      `json:"author"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	State     ReviewState `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
}

// MergeableState is the upstream-reported conflict status of a PR against
// its base branch.
type MergeableState string

const (
	// Mergeable means no conflicts against the base branch.
	Mergeable MergeableState = "MERGEABLE"
	// Conflicting means the PR conflicts with the base branch.
	Conflicting MergeableState = "CONFLICTING"
	// MergeableUnknown means the upstream has not computed mergeability yet.
	MergeableUnknown MergeableState = "UNKNOWN"
)

// CommitStatusState is the combined CI state of a PR's head commit.
type CommitStatusState string

const (
	CommitStatusSuccess CommitStatusState = "SUCCESS"
	CommitStatusPending CommitStatusState = "PENDING"
	CommitStatusFailure CommitStatusState = "FAILURE"
	CommitStatusError   CommitStatusState = "ERROR"
	CommitStatusUnknown CommitStatusState = "UNKNOWN"
)

// MergePolicy carries the repository's allowed merge methods. It is passed
// through to the consuming UI untouched and never consumed by
// classification.
type MergePolicy struct {
	MergeAllowed  bool `json:"merge_allowed"`
	SquashAllowed bool `json:"squash_allowed"`
	RebaseAllowed bool `json:"rebase_allowed"`
}

// CommitPush is one push of new commits after PR creation, with counts
// aggregated since the previous push point.
type CommitPush struct {
	Commits      int       `json:"commits"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changed_files"`
	PushedAt     time.Time `json:"pushed_at"`
	URL          string    `json:"url,omitempty"`
}

// Mention is a timeline comment mentioning the viewer.
type Mention struct {
	Text        string    `json:"text"`
	MentionedAt time.Time `json:"mentioned_at"`
	URL         string    `json:"url,omitempty"`
}

// PullRequestData is the raw upstream shape of a pull request with its full
// activity, as returned by one page of a source query. Classification
// consumes it and never mutates it.
type PullRequestData struct {
	ID                 string
	URL                string
	Number             int
	Owner              string
	Repo               string
	Title              string
	Author             string
	AvatarURL          string
	CreatedAt          time.Time
	Reviews            []Review
	ReviewRequests     []string
	CommitPushes       []CommitPush
	Mentions           []Mention
	CommitStatus       CommitStatusState
	Mergeable          MergeableState
	MergePolicy        MergePolicy
	AutomergeAvailable bool
	AutomergeSelection string
}

// PullRequest is a classified dashboard item. Status and Events are derived
// once per fetch from the PR's current upstream state; they never depend on
// a previously computed status.
type PullRequest struct {
	ID                 string            `json:"id"`
	URL                string            `json:"url"`
	Number             int               `json:"number"`
	Owner              string            `json:"owner"`
	Repo               string            `json:"repo"`
	Title              string            `json:"title"`
	Author             string            `json:"author"`
	AvatarURL          string            `json:"avatar_url,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	Status             PullRequestStatus `json:"status"`
	Events             []Event           `json:"events"`
	HasNewActivity     bool              `json:"has_new_activity"`
	Mergeable          MergeableState    `json:"mergeable,omitempty"`
	MergePolicy        MergePolicy       `json:"merge_policy"`
	AutomergeAvailable bool              `json:"automerge_available,omitempty"`
	AutomergeSelection string            `json:"automerge_selection,omitempty"`
}

// LatestActivity returns the later of the creation time and the newest
// event timestamp. Dash ordering sorts on it.
func (pr PullRequest) LatestActivity() time.Time {
	latest := pr.CreatedAt
	for _, ev := range pr.Events {
		if t := ev.Timestamp(); t.After(latest) {
			latest = t
		}
	}
	return latest
}
