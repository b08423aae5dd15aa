package domain

import (
	"context"
	"fmt"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// OutgoingDash returns the viewer's own PRs. A user the poller has never
// refreshed gets a synchronous refresh first.
func (u *Usecase) OutgoingDash(ctx context.Context, login string) (entities.DashSnapshot, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if login == "" {
		return entities.DashSnapshot{}, fmt.Errorf("%w: login is required", entities.ErrInvalidArgument)
	}
	if err := u.ensureRefreshed(ctx, login); err != nil {
		return entities.DashSnapshot{}, err
	}
	return u.dash.Outgoing(login), nil
}

// IncomingDash returns the PRs the viewer reviews.
func (u *Usecase) IncomingDash(ctx context.Context, login string) (entities.DashSnapshot, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if login == "" {
		return entities.DashSnapshot{}, fmt.Errorf("%w: login is required", entities.ErrInvalidArgument)
	}
	if err := u.ensureRefreshed(ctx, login); err != nil {
		return entities.DashSnapshot{}, err
	}
	return u.dash.Incoming(login), nil
}

// IssuesDash returns the issues involving the viewer.
func (u *Usecase) IssuesDash(ctx context.Context, login string) ([]entities.Issue, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if login == "" {
		return nil, fmt.Errorf("%w: login is required", entities.ErrInvalidArgument)
	}
	if err := u.ensureRefreshed(ctx, login); err != nil {
		return nil, err
	}
	return u.dash.Issues(login), nil
}

// MarkViewed records that login is looking at the dash.
func (u *Usecase) MarkViewed(_ context.Context, login string) error {
	if login == "" {
		return fmt.Errorf("%w: login is required", entities.ErrInvalidArgument)
	}
	u.focus.Focus(login)
	return nil
}

func (u *Usecase) ensureRefreshed(ctx context.Context, login string) error {
	if !u.dash.LastRefreshedAt(login).IsZero() {
		return nil
	}
	if _, err := u.dash.Refresh(ctx, login); err != nil {
		u.log.Errorw("initial dash refresh failed", "login", login, "error", err)
		return err
	}
	return nil
}
