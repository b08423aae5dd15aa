package dashboard

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

func TestEventsGroupsConsecutiveReviews(t *testing.T) {
	pr := entities.PullRequestData{
		Author:    "me",
		CreatedAt: at(0),
		Reviews: []entities.Review{
			{Author: "alice", State: entities.ReviewApproved, CreatedAt: at(10)},
			{Author: "bob", State: entities.ReviewApproved, CreatedAt: at(20)},
			{Author: "alice", State: entities.ReviewCommented, CreatedAt: at(40)},
		},
		CommitPushes: []entities.CommitPush{
			{Commits: 2, Additions: 5, Deletions: 1, ChangedFiles: 3, PushedAt: at(30)},
		},
	}

	events := Events(pr, "me")
	require.Len(t, events, 3)

	first, ok := events[0].(entities.OutgoingReviewEvent)
	require.True(t, ok)
	require.Len(t, first.Reviews, 2)
	require.Equal(t, "alice and bob approved changes", first.Text())

	commits, ok := events[1].(entities.NewCommitsEvent)
	require.True(t, ok)
	require.Equal(t, 2, commits.Count)
	require.Equal(t, "2 new commits", commits.Text())

	second, ok := events[2].(entities.OutgoingReviewEvent)
	require.True(t, ok)
	require.Len(t, second.Reviews, 1)
	require.Equal(t, "alice reviewed with comments", second.Text())
}

func TestEventsMixedGroupFallsBackToGenericPhrase(t *testing.T) {
	ev := entities.OutgoingReviewEvent{Reviews: []entities.Review{
		{Author: "alice", State: entities.ReviewApproved, CreatedAt: at(1)},
		{Author: "bob", State: entities.ReviewCommented, CreatedAt: at(2)},
	}}
	require.Equal(t, "alice and bob reviewed changes", ev.Text())
}

func TestEventsUnknownReviewStateRendersEmpty(t *testing.T) {
	ev := entities.OutgoingReviewEvent{Reviews: []entities.Review{
		{Author: "alice", State: entities.ReviewState("BOGUS"), CreatedAt: at(1)},
	}}
	require.Equal(t, "", ev.Text())

	mine := entities.MyReviewEvent{Review: entities.Review{State: entities.ReviewState("")}}
	require.Equal(t, "", mine.Text())
}

func TestEventsMyReviewThenCommits(t *testing.T) {
	// Created at t0, viewer commented at t1, new commits at t2.
	pr := entities.PullRequestData{
		Author:    "author",
		CreatedAt: at(0),
		Reviews: []entities.Review{
			{Author: "me", State: entities.ReviewCommented, CreatedAt: at(1)},
		},
		CommitPushes: []entities.CommitPush{
			{Commits: 1, Additions: 1, Deletions: 1, ChangedFiles: 1, PushedAt: at(2)},
		},
	}

	events := Events(pr, "me")
	require.Len(t, events, 2)

	mine, ok := events[0].(entities.MyReviewEvent)
	require.True(t, ok)
	require.Equal(t, at(1), mine.Timestamp())
	require.Equal(t, "you reviewed with comments", mine.Text())

	commits, ok := events[1].(entities.NewCommitsEvent)
	require.True(t, ok)
	require.Equal(t, at(2), commits.Timestamp())
	require.Equal(t, "1 new commit", commits.Text())
	require.True(t, events[0].Timestamp().Before(events[1].Timestamp()))
}

func TestEventsMentions(t *testing.T) {
	pr := entities.PullRequestData{
		Author:    "author",
		CreatedAt: at(0),
		Mentions: []entities.Mention{
			{Text: "@me can you take a look?", MentionedAt: at(5), URL: "https://example.com/c/1"},
		},
	}

	events := Events(pr, "me")
	require.Len(t, events, 1)
	mention, ok := events[0].(entities.MentionedEvent)
	require.True(t, ok)
	require.Equal(t, "@me can you take a look?", mention.Text())
}

func TestSortEventsAscendingAndIdempotent(t *testing.T) {
	events := []entities.Event{
		entities.MyReviewEvent{Review: entities.Review{Author: "me", State: entities.ReviewApproved, CreatedAt: at(7)}},
		entities.NewCommitsEvent{Count: 1, LastPushedAt: at(3)},
		entities.MentionedEvent{Body: "ping", MentionedAt: at(3)},
		entities.NewCommitsEvent{Count: 2, LastPushedAt: at(12)},
		entities.MyReviewEvent{Review: entities.Review{Author: "me", State: entities.ReviewCommented, CreatedAt: at(3)}},
	}

	rng := rand.New(rand.NewSource(42))
	shuffled := make([]entities.Event, len(events))
	copy(shuffled, events)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	sorted := SortEvents(shuffled)
	for i := 1; i < len(sorted); i++ {
		require.False(t, sorted[i].Timestamp().Before(sorted[i-1].Timestamp()))
	}

	// Tie at minute three: review first, then commits, then mention.
	require.IsType(t, entities.MyReviewEvent{}, sorted[0])
	require.IsType(t, entities.NewCommitsEvent{}, sorted[1])
	require.IsType(t, entities.MentionedEvent{}, sorted[2])

	require.Equal(t, sorted, SortEvents(sorted))
}

func TestOutgoingReviewEventTimestampIsNewestInGroup(t *testing.T) {
	ev := entities.OutgoingReviewEvent{Reviews: []entities.Review{
		{Author: "alice", State: entities.ReviewApproved, CreatedAt: at(1)},
		{Author: "bob", State: entities.ReviewApproved, CreatedAt: at(9)},
	}}
	require.Equal(t, at(9), ev.Timestamp())
}
