// Package domain contains application Usecases orchestrating dashboard
// logic over the poll state and the repository.
package domain

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
	"github.com/PolymerLabs/project-health-sub001/internal/repository"
)

// DashStore is the slice of the poll state the usecases read and refresh.
type DashStore interface {
	Outgoing(login string) entities.DashSnapshot
	Incoming(login string) entities.DashSnapshot
	Issues(login string) []entities.Issue
	Refresh(ctx context.Context, login string) ([]string, error)
	LastRefreshedAt(login string) time.Time
}

// Focuser resets the viewed baseline and schedules an immediate refresh.
type Focuser interface {
	Focus(login string)
}

// ActivityRecorder accepts upstream activity reports.
type ActivityRecorder interface {
	Record(login string, at time.Time)
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx      context.Context
	log      *zap.SugaredLogger
	repo     repository.Repository
	dash     DashStore
	focus    Focuser
	activity ActivityRecorder
	timeout  time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	dash DashStore,
	focus Focuser,
	activity ActivityRecorder,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		ctx:      ctx,
		log:      log,
		repo:     repo,
		dash:     dash,
		focus:    focus,
		activity: activity,
		timeout:  timeout,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
