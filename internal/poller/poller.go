package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Notifier delivers a user-visible notification for a count of newly
// actionable items.
type Notifier interface {
	NotifyNewActivity(ctx context.Context, login string, count int) error
}

// UserLister yields the logins the poller refreshes.
type UserLister interface {
	ListSubscribedUsers(ctx context.Context) ([]string, error)
}

// ActivitySource reports the newest known upstream activity per login; the
// update-check stream compares it against the last full refresh.
type ActivitySource interface {
	LastActivity(ctx context.Context, login string) (time.Time, error)
}

// Config holds the poll intervals and the notification suppression window.
type Config struct {
	LongInterval      time.Duration
	ShortInterval     time.Duration
	SuppressionWindow time.Duration
}

// Poller runs the two poll streams until its context is cancelled.
// Cancelling the context aborts all outstanding fetches.
type Poller struct {
	log      *zap.SugaredLogger
	dash     *DashData
	users    UserLister
	activity ActivitySource
	notifier Notifier
	cfg      Config

	refreshNow chan struct{}

	mu     sync.Mutex
	states map[Stream]StreamState
}

// New constructs a Poller.
func New(log *zap.SugaredLogger, dash *DashData, users UserLister, activity ActivitySource, notifier Notifier, cfg Config) *Poller {
	return &Poller{
		log:        log.Named("poller"),
		dash:       dash,
		users:      users,
		activity:   activity,
		notifier:   notifier,
		cfg:        cfg,
		refreshNow: make(chan struct{}, 1),
		states: map[Stream]StreamState{
			StreamFullRefresh: StreamIdle,
			StreamUpdateCheck: StreamIdle,
		},
	}
}

// Run blocks until ctx is done, driving both streams concurrently.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Infow("poller started",
		"long_interval", p.cfg.LongInterval,
		"short_interval", p.cfg.ShortInterval,
		"suppression_window", p.cfg.SuppressionWindow,
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.runFullRefresh(ctx) })
	g.Go(func() error { return p.runUpdateCheck(ctx) })
	return g.Wait()
}

func (p *Poller) runFullRefresh(ctx context.Context) error {
	p.refreshAll(ctx)
	p.setState(StreamFullRefresh, StreamScheduled)

	timer := time.NewTimer(p.cfg.LongInterval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		case <-p.refreshNow:
			// Out-of-band run clears the pending timer first.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		p.refreshAll(ctx)
		timer.Reset(p.cfg.LongInterval)
		p.setState(StreamFullRefresh, StreamScheduled)
	}
}

func (p *Poller) runUpdateCheck(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.ShortInterval)
	defer ticker.Stop()
	p.setState(StreamUpdateCheck, StreamScheduled)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		p.checkForUpdates(ctx)
		p.setState(StreamUpdateCheck, StreamScheduled)
	}
}

// refreshAll runs one full-refresh cycle across all subscribed users.
// Failures for one user do not stop the cycle for others.
func (p *Poller) refreshAll(ctx context.Context) {
	if !p.begin(StreamFullRefresh) {
		return
	}
	failed := false
	defer func() { p.finish(StreamFullRefresh, failed) }()

	logins, err := p.users.ListSubscribedUsers(ctx)
	if err != nil {
		p.log.Errorw("listing subscribed users failed", "error", err)
		failed = true
		return
	}

	for _, login := range logins {
		ids, err := p.dash.Refresh(ctx, login)
		if err != nil {
			p.log.Errorw("dash refresh failed", "login", login, "error", err)
			failed = true
			continue
		}
		if len(ids) == 0 {
			continue
		}
		if p.dash.ViewedWithin(login, p.cfg.SuppressionWindow) {
			p.log.Debugw("notification suppressed", "login", login, "count", len(ids))
			continue
		}
		if err := p.notifier.NotifyNewActivity(ctx, login, len(ids)); err != nil {
			p.log.Errorw("notification failed", "login", login, "error", err)
		}
	}
}

// checkForUpdates runs one update-check cycle; if any user has upstream
// activity newer than their last full refresh, it triggers an out-of-band
// full refresh.
func (p *Poller) checkForUpdates(ctx context.Context) {
	if !p.begin(StreamUpdateCheck) {
		return
	}
	failed := false
	defer func() { p.finish(StreamUpdateCheck, failed) }()

	logins, err := p.users.ListSubscribedUsers(ctx)
	if err != nil {
		p.log.Errorw("listing subscribed users failed", "error", err)
		failed = true
		return
	}

	for _, login := range logins {
		ts, err := p.activity.LastActivity(ctx, login)
		if err != nil {
			p.log.Errorw("activity check failed", "login", login, "error", err)
			failed = true
			continue
		}
		if !ts.IsZero() && ts.After(p.dash.LastRefreshedAt(login)) {
			p.log.Infow("upstream activity detected", "login", login, "at", ts)
			p.TriggerRefresh()
			return
		}
	}
}

// TriggerRefresh requests an immediate out-of-band full refresh. Requests
// coalesce while one is pending.
func (p *Poller) TriggerRefresh() {
	select {
	case p.refreshNow <- struct{}{}:
	default:
	}
}

// Focus records that login is looking at the dash: the viewed baseline and
// suppression clock reset and a full refresh runs right away.
func (p *Poller) Focus(login string) {
	p.dash.MarkViewed(login)
	p.TriggerRefresh()
}

// begin moves stream to Running unless it already runs.
func (p *Poller) begin(stream Stream) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.states[stream] == StreamRunning {
		return false
	}
	p.states[stream] = StreamRunning
	return true
}

func (p *Poller) finish(stream Stream, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if failed {
		p.states[stream] = StreamFailed
		return
	}
	p.states[stream] = StreamSucceeded
}

func (p *Poller) setState(stream Stream, state StreamState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states[stream] = state
}

// StreamStateOf reports the current state of stream.
func (p *Poller) StreamStateOf(stream Stream) StreamState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.states[stream]
}
