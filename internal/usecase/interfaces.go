package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// DashUsecaseInterface abstracts dash read operations for delivery layer.
type DashUsecaseInterface interface {
	OutgoingDash(ctx context.Context, login string) (entities.DashSnapshot, error)
	IncomingDash(ctx context.Context, login string) (entities.DashSnapshot, error)
	IssuesDash(ctx context.Context, login string) ([]entities.Issue, error)
	MarkViewed(ctx context.Context, login string) error
}

// SubscriptionUsecaseInterface abstracts push subscription management.
type SubscriptionUsecaseInterface interface {
	AddSubscription(ctx context.Context, sub entities.PushSubscription) error
	RemoveSubscription(ctx context.Context, login, endpoint string) error
}

// SettingsUsecaseInterface abstracts per-user settings storage.
type SettingsUsecaseInterface interface {
	Settings(ctx context.Context, login string) (json.RawMessage, error)
	SaveSettings(ctx context.Context, login string, settings json.RawMessage) error
}

// WebhookUsecaseInterface abstracts upstream activity reports.
type WebhookUsecaseInterface interface {
	RecordActivity(ctx context.Context, logins []string, at time.Time) error
}
