package dashboard

import (
	"slices"
	"time"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// IncomingStatus classifies a PR the viewer was asked to review or is
// otherwise involved in:
//
//   - requested, not yet reviewed           -> ReviewRequired
//   - latest own review requested changes   -> ChangesRequested
//   - approved, new commits landed since    -> ApprovalRequired
//   - approved, nothing new                 -> NoActionRequired
//   - no review and not requested           -> UnknownStatus
//
// A stale approval resolves to ApprovalRequired, never NoActionRequired:
// re-review wins the ambiguous case. A re-request after a comment-only
// review resolves to ReviewRequired again.
func IncomingStatus(pr entities.PullRequestData, viewer string) entities.PullRequestStatus {
	requested := slices.Contains(pr.ReviewRequests, viewer)
	mine, reviewed := latestByReviewer(pr.Reviews)[viewer]
	if !reviewed {
		if requested {
			return entities.ReviewRequired{}
		}
		return entities.UnknownStatus{}
	}

	switch mine.State {
	case entities.ReviewChangesRequested:
		return entities.ChangesRequested{}
	case entities.ReviewApproved:
		if pushedAfter(pr.CommitPushes, mine.CreatedAt) {
			return entities.ApprovalRequired{}
		}
		return entities.NoActionRequired{}
	}
	if requested {
		return entities.ReviewRequired{}
	}
	return entities.NoActionRequired{}
}

func pushedAfter(pushes []entities.CommitPush, t time.Time) bool {
	for _, p := range pushes {
		if p.PushedAt.After(t) {
			return true
		}
	}
	return false
}

// ClassifyIncoming builds the dash item for a reviewer's view of pr. The
// outgoing-only fields (mergeability, merge policy, automerge) stay zero.
func ClassifyIncoming(pr entities.PullRequestData, viewer string) entities.PullRequest {
	return entities.PullRequest{
		ID:        pr.ID,
		URL:       pr.URL,
		Number:    pr.Number,
		Owner:     pr.Owner,
		Repo:      pr.Repo,
		Title:     pr.Title,
		Author:    pr.Author,
		AvatarURL: pr.AvatarURL,
		CreatedAt: pr.CreatedAt,
		Status:    IncomingStatus(pr, viewer),
		Events:    Events(pr, viewer),
	}
}
