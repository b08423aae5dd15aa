package fetcher

import (
	"sort"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// OrderForDash sorts actionable items before passive ones; inside each
// partition the newest relevant activity (latest event or creation time,
// whichever is later) comes first. The sort is stable, so equal items keep
// their arrival order.
func OrderForDash(prs []entities.PullRequest) {
	sort.SliceStable(prs, func(i, j int) bool {
		a, b := prs[i], prs[j]
		if aAct, bAct := a.Status.Actionable(), b.Status.Actionable(); aAct != bAct {
			return aAct
		}
		return a.LatestActivity().After(b.LatestActivity())
	})
}

// OrderIssues applies the same two-partition ordering to issues, which have
// no event timeline; creation time stands in for latest activity.
func OrderIssues(issues []entities.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if aAct, bAct := a.Status.Actionable(), b.Status.Actionable(); aAct != bAct {
			return aAct
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
