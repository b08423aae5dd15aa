package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

func TestIncomingStatusReviewRequired(t *testing.T) {
	pr := entities.PullRequestData{
		Author:         "author",
		CreatedAt:      at(0),
		ReviewRequests: []string{"me"},
	}
	classified := ClassifyIncoming(pr, "me")
	require.Equal(t, entities.ReviewRequired{}, classified.Status)
	require.Empty(t, classified.Events)
}

func TestIncomingStatusStaleApprovalRequiresReReview(t *testing.T) {
	pr := entities.PullRequestData{
		Author: "author",
		Reviews: []entities.Review{
			{Author: "me", State: entities.ReviewApproved, CreatedAt: at(1)},
		},
		CommitPushes: []entities.CommitPush{
			{Commits: 1, PushedAt: at(2)},
		},
	}
	require.Equal(t, entities.ApprovalRequired{}, IncomingStatus(pr, "me"))
}

func TestIncomingStatusApprovalStands(t *testing.T) {
	pr := entities.PullRequestData{
		Author: "author",
		Reviews: []entities.Review{
			{Author: "me", State: entities.ReviewApproved, CreatedAt: at(5)},
		},
		CommitPushes: []entities.CommitPush{
			{Commits: 1, PushedAt: at(2)},
		},
	}
	require.Equal(t, entities.NoActionRequired{}, IncomingStatus(pr, "me"))
}

func TestIncomingStatusChangesRequested(t *testing.T) {
	pr := entities.PullRequestData{
		Author: "author",
		Reviews: []entities.Review{
			{Author: "me", State: entities.ReviewChangesRequested, CreatedAt: at(1)},
		},
		// A later push does not flip the viewer's outstanding verdict.
		CommitPushes: []entities.CommitPush{
			{Commits: 1, PushedAt: at(2)},
		},
	}
	require.Equal(t, entities.ChangesRequested{}, IncomingStatus(pr, "me"))
}

func TestIncomingStatusMentionedOnlyIsUnknown(t *testing.T) {
	pr := entities.PullRequestData{
		Author: "author",
		Mentions: []entities.Mention{
			{Text: "@me thoughts?", MentionedAt: at(1)},
		},
	}
	require.Equal(t, entities.UnknownStatus{}, IncomingStatus(pr, "me"))
}

func TestIncomingStatusReRequestAfterComment(t *testing.T) {
	pr := entities.PullRequestData{
		Author: "author",
		Reviews: []entities.Review{
			{Author: "me", State: entities.ReviewCommented, CreatedAt: at(1)},
		},
		ReviewRequests: []string{"me"},
	}
	require.Equal(t, entities.ReviewRequired{}, IncomingStatus(pr, "me"))

	pr.ReviewRequests = nil
	require.Equal(t, entities.NoActionRequired{}, IncomingStatus(pr, "me"))
}

func TestIncomingStatusOwnLatestReviewWins(t *testing.T) {
	pr := entities.PullRequestData{
		Author: "author",
		Reviews: []entities.Review{
			{Author: "me", State: entities.ReviewChangesRequested, CreatedAt: at(1)},
			{Author: "me", State: entities.ReviewApproved, CreatedAt: at(3)},
		},
	}
	require.Equal(t, entities.NoActionRequired{}, IncomingStatus(pr, "me"))
}
