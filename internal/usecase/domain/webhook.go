package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// RecordActivity notes upstream activity for a set of users. The short poll
// stream picks the report up on its next tick.
func (u *Usecase) RecordActivity(_ context.Context, logins []string, at time.Time) error {
	if len(logins) == 0 {
		return fmt.Errorf("%w: at least one login is required", entities.ErrInvalidArgument)
	}
	if at.IsZero() {
		at = time.Now()
	}
	for _, login := range logins {
		if login == "" {
			return fmt.Errorf("%w: empty login in report", entities.ErrInvalidArgument)
		}
		u.activity.Record(login, at)
	}
	u.log.Infow("upstream activity recorded", "logins", len(logins), "at", at)
	return nil
}
