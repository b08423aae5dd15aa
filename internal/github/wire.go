package github

import (
	"time"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

type wirePageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

type wireActor struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}

type wireRepository struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type wireReview struct {
	Author    wireActor `json:"author"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
}

type wireCommit struct {
	PushedDate   time.Time `json:"pushedDate"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changedFiles"`
	URL          string    `json:"url"`
	StatusCheckRollup *struct {
		State string `json:"state"`
	} `json:"statusCheckRollup"`
}

type wireCommitNode struct {
	Commit wireCommit `json:"commit"`
}

type wireComment struct {
	BodyText  string    `json:"bodyText"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`
}

type wirePullRequest struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	Number     int            `json:"number"`
	Title      string         `json:"title"`
	CreatedAt  time.Time      `json:"createdAt"`
	Author     wireActor      `json:"author"`
	Repository wireRepository `json:"repository"`
	Mergeable  string         `json:"mergeable"`

	BaseRepository struct {
		MergeCommitAllowed bool `json:"mergeCommitAllowed"`
		SquashMergeAllowed bool `json:"squashMergeAllowed"`
		RebaseMergeAllowed bool `json:"rebaseMergeAllowed"`
	} `json:"baseRepository"`

	AutoMergeRequest *struct {
		MergeMethod string `json:"mergeMethod"`
	} `json:"autoMergeRequest"`

	Reviews struct {
		Nodes []wireReview `json:"nodes"`
	} `json:"reviews"`

	ReviewRequests struct {
		Nodes []struct {
			RequestedReviewer struct {
				Login string `json:"login"`
			} `json:"requestedReviewer"`
		} `json:"nodes"`
	} `json:"reviewRequests"`

	Commits struct {
		Nodes []wireCommitNode `json:"nodes"`
	} `json:"commits"`

	TimelineItems struct {
		Nodes []wireComment `json:"nodes"`
	} `json:"timelineItems"`

	CommitStatus struct {
		Nodes []wireCommitNode `json:"nodes"`
	} `json:"commitStatus"`
}

type prSearchData struct {
	Search struct {
		PageInfo wirePageInfo      `json:"pageInfo"`
		Nodes    []wirePullRequest `json:"nodes"`
	} `json:"search"`
}

type wireIssue struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	Number     int            `json:"number"`
	Title      string         `json:"title"`
	CreatedAt  time.Time      `json:"createdAt"`
	Author     wireActor      `json:"author"`
	Repository wireRepository `json:"repository"`

	Assignees struct {
		Nodes []struct {
			Login string `json:"login"`
		} `json:"nodes"`
	} `json:"assignees"`

	Labels struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"labels"`

	Participants struct {
		Nodes []struct {
			Login string `json:"login"`
		} `json:"nodes"`
	} `json:"participants"`

	Comments struct {
		TotalCount int `json:"totalCount"`
	} `json:"comments"`

	Reactions struct {
		TotalCount int `json:"totalCount"`
	} `json:"reactions"`
}

type issueSearchData struct {
	Search struct {
		PageInfo wirePageInfo `json:"pageInfo"`
		Nodes    []wireIssue  `json:"nodes"`
	} `json:"search"`
}

func mergeableState(s string) entities.MergeableState {
	switch s {
	case "MERGEABLE":
		return entities.Mergeable
	case "CONFLICTING":
		return entities.Conflicting
	default:
		return entities.MergeableUnknown
	}
}

func commitStatusState(nodes []wireCommitNode) entities.CommitStatusState {
	if len(nodes) == 0 || nodes[0].Commit.StatusCheckRollup == nil {
		return entities.CommitStatusUnknown
	}
	switch nodes[0].Commit.StatusCheckRollup.State {
	case "SUCCESS":
		return entities.CommitStatusSuccess
	case "PENDING", "EXPECTED":
		return entities.CommitStatusPending
	case "FAILURE":
		return entities.CommitStatusFailure
	case "ERROR":
		return entities.CommitStatusError
	default:
		return entities.CommitStatusUnknown
	}
}

func (n wirePullRequest) toEntity(login string) entities.PullRequestData {
	data := entities.PullRequestData{
		ID:        n.ID,
		URL:       n.URL,
		Number:    n.Number,
		Owner:     n.Repository.Owner.Login,
		Repo:      n.Repository.Name,
		Title:     n.Title,
		Author:    n.Author.Login,
		AvatarURL: n.Author.AvatarURL,
		CreatedAt: n.CreatedAt,
		Mergeable: mergeableState(n.Mergeable),
		MergePolicy: entities.MergePolicy{
			MergeAllowed:  n.BaseRepository.MergeCommitAllowed,
			SquashAllowed: n.BaseRepository.SquashMergeAllowed,
			RebaseAllowed: n.BaseRepository.RebaseMergeAllowed,
		},
		CommitStatus: commitStatusState(n.CommitStatus.Nodes),
		CommitPushes: pushesOf(n.Commits.Nodes, n.CreatedAt),
		Mentions:     mentionsOf(n.TimelineItems.Nodes, login),
	}

	if n.AutoMergeRequest != nil {
		data.AutomergeAvailable = true
		data.AutomergeSelection = n.AutoMergeRequest.MergeMethod
	}

	for _, r := range n.Reviews.Nodes {
		data.Reviews = append(data.Reviews, entities.Review{
			Author:    r.Author.Login,
			AvatarURL: r.Author.AvatarURL,
			State:     entities.ReviewState(r.State),
			CreatedAt: r.CreatedAt,
		})
	}
	for _, rr := range n.ReviewRequests.Nodes {
		if rr.RequestedReviewer.Login != "" {
			data.ReviewRequests = append(data.ReviewRequests, rr.RequestedReviewer.Login)
		}
	}
	return data
}

func (n wireIssue) toEntity() entities.IssueData {
	data := entities.IssueData{
		ID:            n.ID,
		URL:           n.URL,
		Number:        n.Number,
		Owner:         n.Repository.Owner.Login,
		Repo:          n.Repository.Name,
		Title:         n.Title,
		Author:        n.Author.Login,
		AvatarURL:     n.Author.AvatarURL,
		CreatedAt:     n.CreatedAt,
		CommentCount:  n.Comments.TotalCount,
		ReactionCount: n.Reactions.TotalCount,
	}
	for _, a := range n.Assignees.Nodes {
		data.Assignees = append(data.Assignees, a.Login)
	}
	for _, l := range n.Labels.Nodes {
		data.Labels = append(data.Labels, l.Name)
	}
	for _, p := range n.Participants.Nodes {
		data.Involved = append(data.Involved, p.Login)
	}
	return data
}
