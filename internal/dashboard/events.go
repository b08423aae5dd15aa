// Package dashboard implements the classification core: event derivation,
// status classification and the actionability diff. Everything here is
// synchronous, side-effect free and a function of the item's current
// upstream state only, so repeated classification of the same data cannot
// drift between polls.
package dashboard

import (
	"sort"
	"time"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// Events derives the canonical timeline for a PR as seen by viewer.
//
// On the viewer's own PR, reviews by others are grouped into
// OutgoingReviewEvents with commit pushes as grouping boundaries. On someone
// else's PR, the viewer's own reviews map 1:1 to MyReviewEvents. Either way
// each commit push becomes one NewCommitsEvent and each mention one
// MentionedEvent, and the result is a single ascending sequence.
func Events(pr entities.PullRequestData, viewer string) []entities.Event {
	var reviews []entities.Event
	if pr.Author == viewer {
		reviews = outgoingReviewEvents(pr, viewer)
	} else {
		reviews = myReviewEvents(pr, viewer)
	}
	return SortEvents(append(append(reviews, commitEvents(pr)...), mentionEvents(pr)...))
}

// SortEvents orders events ascending by timestamp. At equal timestamps
// review events sort before commit events and commit events before
// mentions, so the ordering is deterministic and re-sorting is idempotent.
func SortEvents(events []entities.Event) []entities.Event {
	var reviews, commits, mentions []entities.Event
	for _, ev := range events {
		switch ev.(type) {
		case entities.OutgoingReviewEvent, entities.MyReviewEvent:
			reviews = append(reviews, ev)
		case entities.NewCommitsEvent:
			commits = append(commits, ev)
		default:
			mentions = append(mentions, ev)
		}
	}
	sortByTime(reviews)
	sortByTime(commits)
	sortByTime(mentions)
	return mergeByTime(mergeByTime(reviews, commits), mentions)
}

func sortByTime(events []entities.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp().Before(events[j].Timestamp())
	})
}

// mergeByTime merges two ascending slices; ties take from a first.
func mergeByTime(a, b []entities.Event) []entities.Event {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	merged := make([]entities.Event, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if b[j].Timestamp().Before(a[i].Timestamp()) {
			merged = append(merged, b[j])
			j++
		} else {
			merged = append(merged, a[i])
			i++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// outgoingReviewEvents groups third-party reviews on the viewer's PR.
// Reviews land in buckets separated by commit pushes; each bucket becomes
// one OutgoingReviewEvent, possibly spanning several distinct reviewers.
func outgoingReviewEvents(pr entities.PullRequestData, viewer string) []entities.Event {
	var reviews []entities.Review
	for _, r := range pr.Reviews {
		if r.Author != viewer && r.State != entities.ReviewPending {
			reviews = append(reviews, r)
		}
	}
	if len(reviews) == 0 {
		return nil
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
	})

	pushes := make([]time.Time, 0, len(pr.CommitPushes))
	for _, p := range pr.CommitPushes {
		pushes = append(pushes, p.PushedAt)
	}
	sort.Slice(pushes, func(i, j int) bool { return pushes[i].Before(pushes[j]) })

	var events []entities.Event
	var group []entities.Review
	bucket := -1
	for _, r := range reviews {
		b := pushesBefore(pushes, r.CreatedAt)
		if b != bucket && len(group) > 0 {
			events = append(events, entities.OutgoingReviewEvent{Reviews: group})
			group = nil
		}
		bucket = b
		group = append(group, r)
	}
	if len(group) > 0 {
		events = append(events, entities.OutgoingReviewEvent{Reviews: group})
	}
	return events
}

// pushesBefore counts pushes strictly before t. A review at exactly the push
// time belongs to the earlier bucket, matching the review-before-commit
// tie-break of the merged timeline.
func pushesBefore(pushes []time.Time, t time.Time) int {
	n := 0
	for _, p := range pushes {
		if p.Before(t) {
			n++
		}
	}
	return n
}

func myReviewEvents(pr entities.PullRequestData, viewer string) []entities.Event {
	var events []entities.Event
	for _, r := range pr.Reviews {
		if r.Author == viewer && r.State != entities.ReviewPending {
			events = append(events, entities.MyReviewEvent{Review: r})
		}
	}
	return events
}

func commitEvents(pr entities.PullRequestData) []entities.Event {
	var events []entities.Event
	for _, p := range pr.CommitPushes {
		events = append(events, entities.NewCommitsEvent{
			Count:        p.Commits,
			Additions:    p.Additions,
			Deletions:    p.Deletions,
			ChangedFiles: p.ChangedFiles,
			LastPushedAt: p.PushedAt,
			URL:          p.URL,
		})
	}
	return events
}

func mentionEvents(pr entities.PullRequestData) []entities.Event {
	var events []entities.Event
	for _, m := range pr.Mentions {
		events = append(events, entities.MentionedEvent{
			Body:        m.Text,
			MentionedAt: m.MentionedAt,
			URL:         m.URL,
		})
	}
	return events
}
