package poller

import (
	"context"
	"sync"
	"time"

	"github.com/PolymerLabs/project-health-sub001/internal/dashboard"
	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// DashFetcher is the slice of the fetcher the dash state needs.
type DashFetcher interface {
	OutgoingDash(ctx context.Context, login string) (entities.DashSnapshot, error)
	IncomingDash(ctx context.Context, login string) (entities.DashSnapshot, error)
	IssuesDash(ctx context.Context, login string) ([]entities.Issue, error)
}

// DashData owns the per-user snapshot state: the last polled and last
// viewed collections plus the focus clock. Writes happen only at the end of
// a successful fetch cycle and the most recently completed fetch wins.
type DashData struct {
	fetcher DashFetcher
	now     func() time.Time

	mu    sync.RWMutex
	users map[string]*userState
}

type userState struct {
	lastPolledOutgoing []entities.PullRequest
	lastPolledIncoming []entities.PullRequest
	lastViewedOutgoing []entities.PullRequest
	lastViewedIncoming []entities.PullRequest
	issues             []entities.Issue
	lastViewedIssues   []entities.Issue
	outgoingAt         time.Time
	incomingAt         time.Time
	lastViewedAt       time.Time
	lastRefreshedAt    time.Time
}

// NewDashData constructs the dash state over f.
func NewDashData(f DashFetcher) *DashData {
	return &DashData{
		fetcher: f,
		now:     time.Now,
		users:   make(map[string]*userState),
	}
}

// state returns the per-user slot; callers hold d.mu.
func (d *DashData) state(login string) *userState {
	st, ok := d.users[login]
	if !ok {
		st = &userState{}
		d.users[login] = st
	}
	return st
}

// Refresh performs a full fetch for login and returns the ids that became
// actionable since the user last viewed the dash. The returned ids drive
// both notification firing and the per-item highlight flag.
func (d *DashData) Refresh(ctx context.Context, login string) ([]string, error) {
	outgoing, err := d.fetcher.OutgoingDash(ctx, login)
	if err != nil {
		return nil, err
	}
	incoming, err := d.fetcher.IncomingDash(ctx, login)
	if err != nil {
		return nil, err
	}
	issues, err := d.fetcher.IssuesDash(ctx, login)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.state(login)

	ids := dashboard.NewlyActionable(outgoing.PRs, st.lastViewedOutgoing)
	ids = append(ids, dashboard.NewlyActionable(incoming.PRs, st.lastViewedIncoming)...)
	markNewActivity(outgoing.PRs, ids)
	markNewActivity(incoming.PRs, ids)

	// Issues get the highlight flag too but never drive notifications.
	markIssueActivity(issues, dashboard.NewlyActionableIssues(issues, st.lastViewedIssues))

	st.lastPolledOutgoing = outgoing.PRs
	st.lastPolledIncoming = incoming.PRs
	st.outgoingAt = outgoing.Timestamp
	st.incomingAt = incoming.Timestamp
	st.issues = issues
	st.lastRefreshedAt = d.now()
	return ids, nil
}

func markNewActivity(prs []entities.PullRequest, ids []string) {
	flagged := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		flagged[id] = struct{}{}
	}
	for i := range prs {
		_, ok := flagged[prs[i].ID]
		prs[i].HasNewActivity = ok
	}
}

func markIssueActivity(issues []entities.Issue, ids []string) {
	flagged := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		flagged[id] = struct{}{}
	}
	for i := range issues {
		_, ok := flagged[issues[i].ID]
		issues[i].HasNewActivity = ok
	}
}

// Outgoing returns the last polled outgoing dash for login.
func (d *DashData) Outgoing(login string) entities.DashSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	st := d.users[login]
	if st == nil {
		return entities.DashSnapshot{User: login}
	}
	return entities.DashSnapshot{User: login, PRs: st.lastPolledOutgoing, Timestamp: st.outgoingAt}
}

// Incoming returns the last polled incoming dash for login.
func (d *DashData) Incoming(login string) entities.DashSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	st := d.users[login]
	if st == nil {
		return entities.DashSnapshot{User: login}
	}
	return entities.DashSnapshot{User: login, PRs: st.lastPolledIncoming, Timestamp: st.incomingAt}
}

// Issues returns the last polled issues for login.
func (d *DashData) Issues(login string) []entities.Issue {
	d.mu.RLock()
	defer d.mu.RUnlock()
	st := d.users[login]
	if st == nil {
		return nil
	}
	return st.issues
}

// MarkViewed records that login viewed the dash now; the polled collections
// become the viewed baseline for future diffs and the focus clock resets.
func (d *DashData) MarkViewed(login string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.state(login)
	st.lastViewedOutgoing = st.lastPolledOutgoing
	st.lastViewedIncoming = st.lastPolledIncoming
	st.lastViewedIssues = st.issues
	st.lastViewedAt = d.now()
}

// ViewedWithin reports whether login viewed the dash within window; used to
// suppress duplicate notifications right after the user looked.
func (d *DashData) ViewedWithin(login string, window time.Duration) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	st := d.users[login]
	if st == nil || st.lastViewedAt.IsZero() {
		return false
	}
	return d.now().Sub(st.lastViewedAt) < window
}

// LastRefreshedAt returns the completion time of the newest full refresh.
func (d *DashData) LastRefreshedAt(login string) time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	st := d.users[login]
	if st == nil {
		return time.Time{}
	}
	return st.lastRefreshedAt
}
