// Package github adapts the hosting service's GraphQL API to the fetcher's
// Source interface. Only the query shapes the dashboard consumes are
// modeled here; everything else about the API is out of scope.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
	"github.com/PolymerLabs/project-health-sub001/internal/fetcher"
)

// Config holds upstream connection parameters.
type Config struct {
	Endpoint       string
	Token          string
	PageSize       int
	RequestTimeout time.Duration
}

// Client issues GraphQL queries against the hosting API.
type Client struct {
	log      *zap.SugaredLogger
	http     *http.Client
	endpoint string
	token    string
	pageSize int
}

var _ fetcher.Source = (*Client)(nil)

// NewClient constructs a Client from cfg.
func NewClient(log *zap.SugaredLogger, cfg Config) *Client {
	return &Client{
		log:      log.Named("github"),
		http:     &http.Client{Timeout: cfg.RequestTimeout},
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		pageSize: cfg.PageSize,
	}
}

const prSearchQuery = `query($search: String!, $pageSize: Int!, $cursor: String) {
  search(query: $search, type: ISSUE, first: $pageSize, after: $cursor) {
    pageInfo { endCursor hasNextPage }
    nodes {
      ... on PullRequest {
        id url number title createdAt
        author { login avatarUrl }
        repository { name owner { login } }
        mergeable
        baseRepository { mergeCommitAllowed squashMergeAllowed rebaseMergeAllowed }
        autoMergeRequest { mergeMethod }
        reviews(first: 100) {
          nodes { author { login avatarUrl } state createdAt }
        }
        reviewRequests(first: 100) {
          nodes { requestedReviewer { ... on User { login } } }
        }
        commits(last: 100) {
          nodes { commit { pushedDate additions deletions changedFiles url } }
        }
        timelineItems(last: 100, itemTypes: [ISSUE_COMMENT]) {
          nodes { ... on IssueComment { bodyText createdAt url } }
        }
        commitStatus: commits(last: 1) {
          nodes { commit { statusCheckRollup { state } } }
        }
      }
    }
  }
}`

const issueSearchQuery = `query($search: String!, $pageSize: Int!, $cursor: String) {
  search(query: $search, type: ISSUE, first: $pageSize, after: $cursor) {
    pageInfo { endCursor hasNextPage }
    nodes {
      ... on Issue {
        id url number title createdAt
        author { login avatarUrl }
        repository { name owner { login } }
        assignees(first: 10) { nodes { login } }
        labels(first: 20) { nodes { name } }
        participants(first: 50) { nodes { login } }
        comments { totalCount }
        reactions { totalCount }
      }
    }
  }
}`

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// query posts a GraphQL document and decodes the data envelope into out.
func (c *Client) query(ctx context.Context, document string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: document, Variables: vars})
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("query upstream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("upstream error: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func (c *Client) searchVars(search, cursor string) map[string]any {
	vars := map[string]any{
		"search":   search,
		"pageSize": c.pageSize,
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}
	return vars
}

// OutgoingPage fetches one page of the viewer's own open PRs.
func (c *Client) OutgoingPage(ctx context.Context, login, cursor string) (fetcher.Page, error) {
	search := fmt.Sprintf("is:open is:pr author:%s archived:false", login)
	return c.prPage(ctx, search, login, cursor)
}

// IncomingPage fetches one page of open PRs the viewer reviews or was asked
// to review.
func (c *Client) IncomingPage(ctx context.Context, login, cursor string) (fetcher.Page, error) {
	search := fmt.Sprintf("is:open is:pr involves:%s -author:%s archived:false", login, login)
	return c.prPage(ctx, search, login, cursor)
}

func (c *Client) prPage(ctx context.Context, search, login, cursor string) (fetcher.Page, error) {
	var data prSearchData
	if err := c.query(ctx, prSearchQuery, c.searchVars(search, cursor), &data); err != nil {
		return fetcher.Page{}, err
	}

	page := fetcher.Page{
		Cursor:  data.Search.PageInfo.EndCursor,
		HasMore: data.Search.PageInfo.HasNextPage,
	}
	for _, node := range data.Search.Nodes {
		if node.ID == "" {
			continue
		}
		page.PRs = append(page.PRs, node.toEntity(login))
	}
	c.log.Debugw("fetched pr page", "login", login, "count", len(page.PRs), "has_more", page.HasMore)
	return page, nil
}

// IssuePage fetches one page of open issues involving the viewer.
func (c *Client) IssuePage(ctx context.Context, login, cursor string) (fetcher.IssuePage, error) {
	search := fmt.Sprintf("is:open is:issue involves:%s archived:false", login)

	var data issueSearchData
	if err := c.query(ctx, issueSearchQuery, c.searchVars(search, cursor), &data); err != nil {
		return fetcher.IssuePage{}, err
	}

	page := fetcher.IssuePage{
		Cursor:  data.Search.PageInfo.EndCursor,
		HasMore: data.Search.PageInfo.HasNextPage,
	}
	for _, node := range data.Search.Nodes {
		if node.ID == "" {
			continue
		}
		page.Issues = append(page.Issues, node.toEntity())
	}
	return page, nil
}

// mentionsOf extracts timeline comments mentioning login.
func mentionsOf(comments []wireComment, login string) []entities.Mention {
	var mentions []entities.Mention
	needle := "@" + login
	for _, c := range comments {
		if !strings.Contains(c.BodyText, needle) {
			continue
		}
		mentions = append(mentions, entities.Mention{
			Text:        c.BodyText,
			MentionedAt: c.CreatedAt,
			URL:         c.URL,
		})
	}
	return mentions
}

// pushesOf aggregates commits pushed after the PR was created into one
// CommitPush per push timestamp.
func pushesOf(commits []wireCommitNode, createdAt time.Time) []entities.CommitPush {
	byPush := make(map[time.Time]*entities.CommitPush)
	for _, node := range commits {
		c := node.Commit
		if c.PushedDate.IsZero() || !c.PushedDate.After(createdAt) {
			continue
		}
		push, ok := byPush[c.PushedDate]
		if !ok {
			push = &entities.CommitPush{PushedAt: c.PushedDate, URL: c.URL}
			byPush[c.PushedDate] = push
		}
		push.Commits++
		push.Additions += c.Additions
		push.Deletions += c.Deletions
		push.ChangedFiles += c.ChangedFiles
	}

	pushes := make([]entities.CommitPush, 0, len(byPush))
	for _, push := range byPush {
		pushes = append(pushes, *push)
	}
	sort.Slice(pushes, func(i, j int) bool { return pushes[i].PushedAt.Before(pushes[j].PushedAt) })
	return pushes
}
