package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

func TestIssueStatusPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		issue    entities.IssueData
		expected entities.IssueStatus
	}{
		{
			name:     "assignment beats authorship",
			issue:    entities.IssueData{Author: "me", Assignees: []string{"me", "alice"}},
			expected: entities.IssueAssigned{},
		},
		{
			name:     "own issue assigned to others",
			issue:    entities.IssueData{Author: "me", Assignees: []string{"alice"}},
			expected: entities.IssueAssignedTo{Users: []string{"alice"}},
		},
		{
			name:     "own issue unassigned",
			issue:    entities.IssueData{Author: "me"},
			expected: entities.IssueAuthor{},
		},
		{
			name:     "involved by mention",
			issue:    entities.IssueData{Author: "alice", Involved: []string{"me"}, Labels: []string{"bug"}},
			expected: entities.IssueInvolved{},
		},
		{
			name:     "untriaged without labels or assignees",
			issue:    entities.IssueData{Author: "alice"},
			expected: entities.IssueUntriaged{},
		},
		{
			name:     "labeled but unassigned",
			issue:    entities.IssueData{Author: "alice", Labels: []string{"bug"}},
			expected: entities.IssueUnassigned{},
		},
		{
			name:     "assigned elsewhere",
			issue:    entities.IssueData{Author: "alice", Assignees: []string{"bob"}, Labels: []string{"bug"}},
			expected: entities.IssueUnknown{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, IssueStatusFor(tc.issue, "me"))
		})
	}
}

func TestPopularityClamped(t *testing.T) {
	require.Equal(t, 1, Popularity(entities.IssueData{}))
	require.Equal(t, 1, Popularity(entities.IssueData{CommentCount: 5}))
	require.Equal(t, 2, Popularity(entities.IssueData{CommentCount: 10, ReactionCount: 1}))
	require.Equal(t, 4, Popularity(entities.IssueData{CommentCount: 100, ReactionCount: 50}))
}

func TestClassifyIssue(t *testing.T) {
	issue := entities.IssueData{
		ID:           "i-1",
		Number:       7,
		Owner:        "octo",
		Repo:         "web",
		Title:        "Crash on load",
		Author:       "alice",
		Assignees:    []string{"me"},
		CommentCount: 12,
	}
	classified := ClassifyIssue(issue, "me")
	require.Equal(t, entities.IssueAssigned{}, classified.Status)
	require.Equal(t, 2, classified.Popularity)
	require.Equal(t, "i-1", classified.ID)
}
