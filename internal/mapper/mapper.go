// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"github.com/PolymerLabs/project-health-sub001/internal/api"
	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// ToAPIStatus maps a PR status to its transport model.
func ToAPIStatus(src entities.PullRequestStatus) api.Status {
	dst := api.Status{Type: src.Type(), Actionable: src.Actionable()}
	if s, ok := src.(entities.WaitingReview); ok {
		dst.Reviewers = s.Reviewers
	}
	return dst
}

// ToAPIIssueStatus maps an issue status to its transport model.
func ToAPIIssueStatus(src entities.IssueStatus) api.Status {
	dst := api.Status{Type: src.Type(), Actionable: src.Actionable()}
	if s, ok := src.(entities.IssueAssignedTo); ok {
		dst.Users = s.Users
	}
	return dst
}

// ToAPIEvent maps an activity event to its transport model.
func ToAPIEvent(src entities.Event) api.Event {
	dst := api.Event{
		Type:      src.Type(),
		Text:      src.Text(),
		Timestamp: src.Timestamp(),
	}
	switch ev := src.(type) {
	case entities.NewCommitsEvent:
		dst.Url = ev.URL
	case entities.MentionedEvent:
		dst.Url = ev.URL
	}
	return dst
}

// ToAPIPull maps a classified PR to its transport model.
func ToAPIPull(pr entities.PullRequest) api.PullRequest {
	events := make([]api.Event, 0, len(pr.Events))
	for _, ev := range pr.Events {
		events = append(events, ToAPIEvent(ev))
	}

	return api.PullRequest{
		Id:                 pr.ID,
		Url:                pr.URL,
		Number:             pr.Number,
		Owner:              pr.Owner,
		Repo:               pr.Repo,
		Title:              pr.Title,
		Author:             pr.Author,
		AvatarUrl:          pr.AvatarURL,
		CreatedAt:          pr.CreatedAt,
		Status:             ToAPIStatus(pr.Status),
		Events:             events,
		HasNewActivity:     pr.HasNewActivity,
		Mergeable:          string(pr.Mergeable),
		MergePolicy: api.MergePolicy{
			MergeAllowed:  pr.MergePolicy.MergeAllowed,
			SquashAllowed: pr.MergePolicy.SquashAllowed,
			RebaseAllowed: pr.MergePolicy.RebaseAllowed,
		},
		AutomergeAvailable: pr.AutomergeAvailable,
		AutomergeSelection: pr.AutomergeSelection,
	}
}

// ToAPIDash maps a dash snapshot to its transport model.
func ToAPIDash(snap entities.DashSnapshot) api.DashResponse {
	prs := make([]api.PullRequest, 0, len(snap.PRs))
	for _, pr := range snap.PRs {
		prs = append(prs, ToAPIPull(pr))
	}
	return api.DashResponse{
		User:      snap.User,
		Prs:       prs,
		Timestamp: snap.Timestamp,
	}
}

// ToAPIIssue maps a classified issue to its transport model.
func ToAPIIssue(issue entities.Issue) api.Issue {
	return api.Issue{
		Id:             issue.ID,
		Url:            issue.URL,
		Number:         issue.Number,
		Owner:          issue.Owner,
		Repo:           issue.Repo,
		Title:          issue.Title,
		Author:         issue.Author,
		AvatarUrl:      issue.AvatarURL,
		CreatedAt:      issue.CreatedAt,
		Status:         ToAPIIssueStatus(issue.Status),
		Popularity:     issue.Popularity,
		HasNewActivity: issue.HasNewActivity,
	}
}

// ToAPIIssueList maps a slice of issues to its transport slice.
func ToAPIIssueList(list []entities.Issue) []api.Issue {
	res := make([]api.Issue, 0, len(list))
	for _, issue := range list {
		res = append(res, ToAPIIssue(issue))
	}
	return res
}

// FromAPISubscription builds an entities.PushSubscription from the add
// request body.
func FromAPISubscription(src api.PostPushSubscriptionAddJSONRequestBody) entities.PushSubscription {
	return entities.PushSubscription{
		UserLogin:        src.Login,
		Endpoint:         src.Subscription.Endpoint,
		P256DH:           src.Subscription.Keys.P256dh,
		Auth:             src.Subscription.Keys.Auth,
		ContentEncodings: src.SupportedContentEncodings,
	}
}
