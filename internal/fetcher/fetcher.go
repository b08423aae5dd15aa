// Package fetcher drives cursor pagination over the upstream source and
// aggregates classified dash collections.
package fetcher

import (
	"context"
	"iter"
	"time"

	"go.uber.org/zap"

	"github.com/PolymerLabs/project-health-sub001/internal/dashboard"
	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// Page is one page of raw pull requests with the opaque continuation
// cursor. Cursor format is owned by the source.
type Page struct {
	PRs     []entities.PullRequestData
	Cursor  string
	HasMore bool
}

// IssuePage is one page of raw issues.
type IssuePage struct {
	Issues  []entities.IssueData
	Cursor  string
	HasMore bool
}

// Source is the upstream query interface. Implementations own transport,
// cursor format and authentication; the fetcher is agnostic to all three.
type Source interface {
	OutgoingPage(ctx context.Context, login, cursor string) (Page, error)
	IncomingPage(ctx context.Context, login, cursor string) (Page, error)
	IssuePage(ctx context.Context, login, cursor string) (IssuePage, error)
}

// Fetcher pages through the source and classifies items as pages arrive.
type Fetcher struct {
	log    *zap.SugaredLogger
	source Source
	now    func() time.Time
}

// New constructs a Fetcher over source.
func New(log *zap.SugaredLogger, source Source) *Fetcher {
	return &Fetcher{
		log:    log.Named("fetcher"),
		source: source,
		now:    time.Now,
	}
}

type pageFunc func(ctx context.Context, login, cursor string) (Page, error)

type classifyFunc func(entities.PullRequestData, string) entities.PullRequest

// paginate loops the cursor until the source reports no further pages,
// classifying each raw item as its page arrives. A page failure is wrapped
// in *entities.FetchFailed carrying the cursor of the failed request so the
// caller can resume there. Returns the final cursor on success.
func (f *Fetcher) paginate(ctx context.Context, login string, page pageFunc, classify classifyFunc, visit func(entities.PullRequest) bool) (string, error) {
	cursor := ""
	for {
		p, err := page(ctx, login, cursor)
		if err != nil {
			return cursor, &entities.FetchFailed{Cursor: cursor, Err: err}
		}
		for _, raw := range p.PRs {
			if !visit(classify(raw, login)) {
				return p.Cursor, nil
			}
		}
		if !p.HasMore {
			return p.Cursor, nil
		}
		cursor = p.Cursor
	}
}

// StreamOutgoing yields the viewer's own PRs, classified, page by page. The
// sequence is finite and restartable per call; it is not resumable
// mid-iteration. On a page failure the final yield carries a
// *entities.FetchFailed.
func (f *Fetcher) StreamOutgoing(ctx context.Context, login string) iter.Seq2[entities.PullRequest, error] {
	return f.stream(ctx, login, f.source.OutgoingPage, dashboard.ClassifyOutgoing)
}

// StreamIncoming yields PRs the viewer reviews, classified, page by page.
func (f *Fetcher) StreamIncoming(ctx context.Context, login string) iter.Seq2[entities.PullRequest, error] {
	return f.stream(ctx, login, f.source.IncomingPage, dashboard.ClassifyIncoming)
}

func (f *Fetcher) stream(ctx context.Context, login string, page pageFunc, classify classifyFunc) iter.Seq2[entities.PullRequest, error] {
	return func(yield func(entities.PullRequest, error) bool) {
		_, err := f.paginate(ctx, login, page, classify, func(pr entities.PullRequest) bool {
			return yield(pr, nil)
		})
		if err != nil {
			yield(entities.PullRequest{}, err)
		}
	}
}

// OutgoingDash fetches and classifies the full outgoing dash for login.
func (f *Fetcher) OutgoingDash(ctx context.Context, login string) (entities.DashSnapshot, error) {
	return f.dash(ctx, login, f.source.OutgoingPage, dashboard.ClassifyOutgoing)
}

// IncomingDash fetches and classifies the full incoming dash for login.
func (f *Fetcher) IncomingDash(ctx context.Context, login string) (entities.DashSnapshot, error) {
	return f.dash(ctx, login, f.source.IncomingPage, dashboard.ClassifyIncoming)
}

func (f *Fetcher) dash(ctx context.Context, login string, page pageFunc, classify classifyFunc) (entities.DashSnapshot, error) {
	var prs []entities.PullRequest
	cursor, err := f.paginate(ctx, login, page, classify, func(pr entities.PullRequest) bool {
		prs = append(prs, pr)
		return true
	})
	if err != nil {
		f.log.Errorw("dash fetch failed", "login", login, "error", err)
		return entities.DashSnapshot{}, err
	}
	OrderForDash(prs)
	return entities.DashSnapshot{
		User:      login,
		PRs:       prs,
		Cursor:    cursor,
		Timestamp: f.now(),
	}, nil
}

// IssuesDash fetches and classifies all issues involving login.
func (f *Fetcher) IssuesDash(ctx context.Context, login string) ([]entities.Issue, error) {
	var issues []entities.Issue
	cursor := ""
	for {
		p, err := f.source.IssuePage(ctx, login, cursor)
		if err != nil {
			f.log.Errorw("issue fetch failed", "login", login, "error", err)
			return nil, &entities.FetchFailed{Cursor: cursor, Err: err}
		}
		for _, raw := range p.Issues {
			issues = append(issues, dashboard.ClassifyIssue(raw, login))
		}
		if !p.HasMore {
			break
		}
		cursor = p.Cursor
	}
	OrderIssues(issues)
	return issues, nil
}
