package dashboard

import (
	"slices"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// IssueStatusFor classifies an issue for viewer. Precedence: assignment
// beats authorship beats involvement beats untriaged beats unassigned.
func IssueStatusFor(issue entities.IssueData, viewer string) entities.IssueStatus {
	switch {
	case slices.Contains(issue.Assignees, viewer):
		return entities.IssueAssigned{}
	case issue.Author == viewer && len(issue.Assignees) > 0:
		return entities.IssueAssignedTo{Users: issue.Assignees}
	case issue.Author == viewer:
		return entities.IssueAuthor{}
	case slices.Contains(issue.Involved, viewer):
		return entities.IssueInvolved{}
	case len(issue.Labels) == 0 && len(issue.Assignees) == 0:
		return entities.IssueUntriaged{}
	case len(issue.Assignees) == 0:
		return entities.IssueUnassigned{}
	default:
		return entities.IssueUnknown{}
	}
}

// Popularity scales raw engagement (comments plus reactions) to 1..4.
func Popularity(issue entities.IssueData) int {
	score := (issue.CommentCount + issue.ReactionCount + 9) / 10
	if score < 1 {
		score = 1
	}
	if score > 4 {
		score = 4
	}
	return score
}

// ClassifyIssue builds the dash item for viewer's view of issue.
func ClassifyIssue(issue entities.IssueData, viewer string) entities.Issue {
	return entities.Issue{
		ID:         issue.ID,
		URL:        issue.URL,
		Number:     issue.Number,
		Owner:      issue.Owner,
		Repo:       issue.Repo,
		Title:      issue.Title,
		Author:     issue.Author,
		AvatarURL:  issue.AvatarURL,
		CreatedAt:  issue.CreatedAt,
		Status:     IssueStatusFor(issue, viewer),
		Popularity: Popularity(issue),
	}
}
