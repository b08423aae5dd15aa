package usecase

import (
	"context"
	"time"

	"github.com/PolymerLabs/project-health-sub001/internal/repository"
	"github.com/PolymerLabs/project-health-sub001/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	DashUsecaseInterface
	SubscriptionUsecaseInterface
	SettingsUsecaseInterface
	WebhookUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	dash domain.DashStore,
	focus domain.Focuser,
	activity domain.ActivityRecorder,
	timeout time.Duration,
) InterfaceUsecase {
	return domain.New(log, ctx, repo, dash, focus, activity, timeout)
}
