package domain

import (
	"context"
	"fmt"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// AddSubscription stores a push endpoint for a user.
func (u *Usecase) AddSubscription(ctx context.Context, sub entities.PushSubscription) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if sub.UserLogin == "" {
		return fmt.Errorf("%w: login is required", entities.ErrInvalidArgument)
	}
	if sub.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", entities.ErrInvalidArgument)
	}
	if sub.P256DH == "" || sub.Auth == "" {
		return fmt.Errorf("%w: subscription keys are required", entities.ErrInvalidArgument)
	}
	return u.repo.AddSubscription(ctx, sub)
}

// RemoveSubscription deletes one stored endpoint for a user.
func (u *Usecase) RemoveSubscription(ctx context.Context, login, endpoint string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if login == "" {
		return fmt.Errorf("%w: login is required", entities.ErrInvalidArgument)
	}
	if endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", entities.ErrInvalidArgument)
	}
	return u.repo.RemoveSubscription(ctx, login, endpoint)
}
