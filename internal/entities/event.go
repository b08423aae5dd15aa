package entities

import (
	"fmt"
	"strings"
	"time"
)

// Event is one discrete item in a PR's activity timeline. Events are
// immutable facts derived once per fetch; within a PR's event list they are
// sorted ascending by Timestamp.
type Event interface {
	isEvent()
	// Type returns the wire discriminant.
	Type() string
	// Timestamp orders the event within the PR's event list.
	Timestamp() time.Time
	// Text is the human-readable summary rendered by the dash. Unknown
	// review states render as empty text rather than failing.
	Text() string
}

// reviewPhrases maps a shared review state of a grouped review event to its
// display phrase. States missing from the table are the UnknownEventKind
// case and render as empty text.
var reviewPhrases = map[ReviewState]string{
	ReviewApproved:         "approved changes",
	ReviewChangesRequested: "requested changes",
	ReviewCommented:        "reviewed with comments",
	ReviewDismissed:        "reviewed changes",
}

// OutgoingReviewEvent groups reviews by others on the viewer's own PR.
// Consecutive reviews with no intervening commit push coalesce into one
// event, possibly spanning multiple distinct reviewers.
type OutgoingReviewEvent struct {
	Reviews []Review `json:"reviews"`
}

func (OutgoingReviewEvent) isEvent() {}
func (OutgoingReviewEvent) Type() string { return "OutgoingReviewEvent" }

// Timestamp is the newest review in the group; the group ends there.
func (e OutgoingReviewEvent) Timestamp() time.Time {
	var latest time.Time
	for _, r := range e.Reviews {
		if r.CreatedAt.After(latest) {
			latest = r.CreatedAt
		}
	}
	return latest
}

func (e OutgoingReviewEvent) Text() string {
	if len(e.Reviews) == 0 {
		return ""
	}
	state := e.Reviews[0].State
	mixed := false
	for _, r := range e.Reviews[1:] {
		if r.State != state {
			mixed = true
			break
		}
	}
	var phrase string
	if mixed {
		phrase = "reviewed changes"
	} else {
		p, ok := reviewPhrases[state]
		if !ok {
			return ""
		}
		phrase = p
	}
	return joinNames(e.Reviews) + " " + phrase
}

func (e OutgoingReviewEvent) MarshalJSON() ([]byte, error) {
	reviews := e.Reviews
	if reviews == nil {
		reviews = []Review{}
	}
	return marshalTagged(e.Type(), map[string]any{"reviews": reviews})
}

// joinNames renders distinct reviewer logins in input order as a
// human-readable list.
func joinNames(reviews []Review) string {
	var names []string
	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.Author]; ok {
			continue
		}
		seen[r.Author] = struct{}{}
		names = append(names, r.Author)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// MyReviewEvent is the viewer's own review on someone else's PR.
type MyReviewEvent struct {
	Review Review `json:"review"`
}

func (MyReviewEvent) isEvent() {}
func (MyReviewEvent) Type() string             { return "MyReviewEvent" }
func (e MyReviewEvent) Timestamp() time.Time   { return e.Review.CreatedAt }

func (e MyReviewEvent) Text() string {
	phrase, ok := reviewPhrases[e.Review.State]
	if !ok {
		return ""
	}
	return "you " + phrase
}

func (e MyReviewEvent) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), map[string]any{"review": e.Review})
}

// NewCommitsEvent is one push of new commits after PR creation, with counts
// aggregated since the previous push point.
type NewCommitsEvent struct {
	Count        int       `json:"count"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changed_files"`
	LastPushedAt time.Time `json:"last_pushed_at"`
	URL          string    `json:"url,omitempty"`
}

func (NewCommitsEvent) isEvent() {}
func (NewCommitsEvent) Type() string           { return "NewCommitsEvent" }
func (e NewCommitsEvent) Timestamp() time.Time { return e.LastPushedAt }

func (e NewCommitsEvent) Text() string {
	if e.Count == 1 {
		return "1 new commit"
	}
	return fmt.Sprintf("%d new commits", e.Count)
}

func (e NewCommitsEvent) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), map[string]any{
		"count":          e.Count,
		"additions":      e.Additions,
		"deletions":      e.Deletions,
		"changed_files":  e.ChangedFiles,
		"last_pushed_at": e.LastPushedAt,
		"url":            e.URL,
	})
}

// MentionedEvent is a timeline comment mentioning the viewer.
type MentionedEvent struct {
	Body        string    `json:"text"`
	MentionedAt time.Time `json:"mentioned_at"`
	URL         string    `json:"url,omitempty"`
}

func (MentionedEvent) isEvent() {}
func (MentionedEvent) Type() string           { return "MentionedEvent" }
func (e MentionedEvent) Timestamp() time.Time { return e.MentionedAt }
func (e MentionedEvent) Text() string         { return e.Body }

func (e MentionedEvent) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), map[string]any{
		"text":         e.Body,
		"mentioned_at": e.MentionedAt,
		"url":          e.URL,
	})
}
