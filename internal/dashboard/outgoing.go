package dashboard

import (
	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// OutgoingStatus classifies the viewer's own PR. The rule order is
// load-bearing; the first matching rule wins:
//
//  1. no review requests and no reviews at all  -> NoReviewers
//  2. any reviewer's latest review requests changes -> PendingChanges
//  3. requested reviewers without an approval remain -> WaitingReview
//  4. otherwise by commit status: failed/errored -> StatusChecksFailed,
//     pending -> StatusChecksPending, else -> PendingMerge
//
// "Latest" is reviewer-scoped: a reviewer who re-reviews supersedes their
// own earlier verdict but never another reviewer's outstanding one.
func OutgoingStatus(pr entities.PullRequestData) entities.PullRequestStatus {
	if len(pr.Reviews) == 0 && len(pr.ReviewRequests) == 0 {
		return entities.NoReviewers{}
	}

	latest := latestByReviewer(pr.Reviews)
	for _, r := range latest {
		if r.State == entities.ReviewChangesRequested {
			return entities.PendingChanges{}
		}
	}

	var outstanding []string
	for _, login := range pr.ReviewRequests {
		if r, ok := latest[login]; !ok || r.State != entities.ReviewApproved {
			outstanding = append(outstanding, login)
		}
	}
	if len(outstanding) > 0 {
		return entities.WaitingReview{Reviewers: outstanding}
	}

	switch pr.CommitStatus {
	case entities.CommitStatusFailure, entities.CommitStatusError:
		return entities.StatusChecksFailed{}
	case entities.CommitStatusPending:
		return entities.StatusChecksPending{}
	}
	return entities.PendingMerge{}
}

// latestByReviewer keeps each reviewer's chronologically newest submitted
// review. Unsubmitted drafts do not count as reviews.
func latestByReviewer(reviews []entities.Review) map[string]entities.Review {
	latest := make(map[string]entities.Review, len(reviews))
	for _, r := range reviews {
		if r.State == entities.ReviewPending {
			continue
		}
		if cur, ok := latest[r.Author]; !ok || r.CreatedAt.After(cur.CreatedAt) {
			latest[r.Author] = r
		}
	}
	return latest
}

// ClassifyOutgoing builds the dash item for the author's view of pr.
// Mergeability and merge-policy flags pass through untouched; they gate
// automerge options in the consuming UI, not classification.
func ClassifyOutgoing(pr entities.PullRequestData, viewer string) entities.PullRequest {
	return entities.PullRequest{
		ID:                 pr.ID,
		URL:                pr.URL,
		Number:             pr.Number,
		Owner:              pr.Owner,
		Repo:               pr.Repo,
		Title:              pr.Title,
		Author:             pr.Author,
		AvatarURL:          pr.AvatarURL,
		CreatedAt:          pr.CreatedAt,
		Status:             OutgoingStatus(pr),
		Events:             Events(pr, viewer),
		Mergeable:          pr.Mergeable,
		MergePolicy:        pr.MergePolicy,
		AutomergeAvailable: pr.AutomergeAvailable,
		AutomergeSelection: pr.AutomergeSelection,
	}
}
