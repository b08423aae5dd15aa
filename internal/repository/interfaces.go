// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// SubscriptionInterface exposes push subscription operations.
type SubscriptionInterface interface {
	AddSubscription(ctx context.Context, sub entities.PushSubscription) error
	RemoveSubscription(ctx context.Context, login, endpoint string) error
	GetSubscriptions(ctx context.Context, login string) ([]entities.PushSubscription, error)
	ListSubscribedUsers(ctx context.Context) ([]string, error)
}

// SettingsInterface exposes per-user settings blob operations.
type SettingsInterface interface {
	GetSettings(ctx context.Context, login string) ([]byte, error)
	SetSettings(ctx context.Context, login string, settings []byte) error
}
