package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// Settings returns the stored settings document for a user.
func (u *Usecase) Settings(ctx context.Context, login string) (json.RawMessage, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if login == "" {
		return nil, fmt.Errorf("%w: login is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetSettings(ctx, login)
}

// SaveSettings replaces the stored settings document for a user.
func (u *Usecase) SaveSettings(ctx context.Context, login string, settings json.RawMessage) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if login == "" {
		return fmt.Errorf("%w: login is required", entities.ErrInvalidArgument)
	}
	if len(settings) == 0 || !json.Valid(settings) {
		return fmt.Errorf("%w: settings must be a valid JSON document", entities.ErrInvalidArgument)
	}
	return u.repo.SetSettings(ctx, login, settings)
}
