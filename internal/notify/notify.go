// Package notify delivers web push notifications for newly actionable dash
// items over the user's stored subscriptions.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

// SubscriptionStore is the slice of the repository the sender needs.
type SubscriptionStore interface {
	GetSubscriptions(ctx context.Context, login string) ([]entities.PushSubscription, error)
	RemoveSubscription(ctx context.Context, login, endpoint string) error
}

// Config holds VAPID credentials. Empty keys disable push delivery.
type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string
	TTL             int
}

// Sender fans a notification out to every subscription stored for a user.
type Sender struct {
	log   *zap.SugaredLogger
	store SubscriptionStore
	cfg   Config
}

// New constructs a Sender. Without VAPID keys it stays constructed but
// refuses delivery with ErrPermissionDenied, so polling keeps working.
func New(log *zap.SugaredLogger, store SubscriptionStore, cfg Config) *Sender {
	s := &Sender{
		log:   log.Named("notify"),
		store: store,
		cfg:   cfg,
	}
	if !s.enabled() {
		s.log.Warnw("push delivery disabled: VAPID keys not configured")
	}
	return s
}

func (s *Sender) enabled() bool {
	return s.cfg.VAPIDPublicKey != "" && s.cfg.VAPIDPrivateKey != ""
}

// NotificationText computes the user-visible title and body for a count of
// newly actionable items.
func NotificationText(count int) (title, body string) {
	if count == 1 {
		title = "New activity on 1 PR"
	} else {
		title = fmt.Sprintf("New activity on %d PRs", count)
	}
	return title, "Open your dashboard to catch up"
}

type payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NotifyNewActivity pushes a notification about count newly actionable
// items to every subscription stored for login. Endpoints the push service
// reports as gone are removed from storage.
func (s *Sender) NotifyNewActivity(ctx context.Context, login string, count int) error {
	if !s.enabled() {
		return entities.ErrPermissionDenied
	}

	subs, err := s.store.GetSubscriptions(ctx, login)
	if err != nil {
		return fmt.Errorf("load subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil
	}

	title, body := NotificationText(count)
	msg, err := json.Marshal(payload{Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var lastErr error
	for _, sub := range subs {
		resp, err := webpush.SendNotificationWithContext(ctx, msg, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256DH,
				Auth:   sub.Auth,
			},
		}, &webpush.Options{
			Subscriber:      s.cfg.Subject,
			VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
			VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
			TTL:             s.cfg.TTL,
		})
		if err != nil {
			s.log.Errorw("push send failed", "login", login, "error", err)
			lastErr = err
			continue
		}
		status := resp.StatusCode
		_ = resp.Body.Close()

		if status == http.StatusNotFound || status == http.StatusGone {
			s.log.Infow("push endpoint gone, removing subscription", "login", login)
			if err := s.store.RemoveSubscription(ctx, login, sub.Endpoint); err != nil {
				s.log.Errorw("failed to remove dead subscription", "login", login, "error", err)
			}
		}
	}
	return lastErr
}
