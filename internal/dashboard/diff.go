package dashboard

import (
	"encoding/json"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// NewlyActionable returns the ids of items in cur that carry an actionable
// status and were either absent from prev or have a different serialized
// state than prev. Items that changed from actionable to non-actionable are
// never reported. The result is a set: deduplicated, and insensitive to the
// order of either input.
func NewlyActionable(cur, prev []entities.PullRequest) []string {
	prevKeys := make(map[string]string, len(prev))
	for _, pr := range prev {
		prevKeys[pr.ID] = prStateKey(pr)
	}

	seen := make(map[string]struct{}, len(cur))
	var ids []string
	for _, pr := range cur {
		if !pr.Status.Actionable() {
			continue
		}
		if _, dup := seen[pr.ID]; dup {
			continue
		}
		if key, ok := prevKeys[pr.ID]; ok && key == prStateKey(pr) {
			continue
		}
		seen[pr.ID] = struct{}{}
		ids = append(ids, pr.ID)
	}
	return ids
}

// NewlyActionableIssues is the issue analogue of NewlyActionable.
func NewlyActionableIssues(cur, prev []entities.Issue) []string {
	prevKeys := make(map[string]string, len(prev))
	for _, issue := range prev {
		prevKeys[issue.ID] = issueStateKey(issue)
	}

	seen := make(map[string]struct{}, len(cur))
	var ids []string
	for _, issue := range cur {
		if !issue.Status.Actionable() {
			continue
		}
		if _, dup := seen[issue.ID]; dup {
			continue
		}
		if key, ok := prevKeys[issue.ID]; ok && key == issueStateKey(issue) {
			continue
		}
		seen[issue.ID] = struct{}{}
		ids = append(ids, issue.ID)
	}
	return ids
}

// prStateKey serializes a PR minus the derived highlight flag, so marking
// an item as new activity cannot itself count as a state change.
func prStateKey(pr entities.PullRequest) string {
	pr.HasNewActivity = false
	b, err := json.Marshal(pr)
	if err != nil {
		return pr.ID
	}
	return string(b)
}

func issueStateKey(issue entities.Issue) string {
	issue.HasNewActivity = false
	b, err := json.Marshal(issue)
	if err != nil {
		return issue.ID
	}
	return string(b)
}
