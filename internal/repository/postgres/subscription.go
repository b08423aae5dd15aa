package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

const (
	insertSubscriptionQuery = `
INSERT INTO push_subscriptions(user_login, endpoint, p256dh, auth, content_encodings)
VALUES ($1, $2, $3, $4, $5)
`
	refreshSubscriptionQuery = `
UPDATE push_subscriptions
SET p256dh = $3, auth = $4, content_encodings = $5
WHERE user_login = $1 AND endpoint = $2
`
	deleteSubscriptionQuery = `DELETE FROM push_subscriptions WHERE user_login = $1 AND endpoint = $2`

	selectSubscriptionsQuery = `
SELECT user_login, endpoint, p256dh, auth, content_encodings, created_at
FROM push_subscriptions
WHERE user_login = $1
ORDER BY created_at`

	subscribedUsersQuery = `SELECT DISTINCT user_login FROM push_subscriptions ORDER BY user_login`
)

// AddSubscription stores a push endpoint for a user. Re-adding an existing
// endpoint refreshes its encryption keys instead of failing.
func (p *Postgres) AddSubscription(ctx context.Context, sub entities.PushSubscription) error {
	_, err := p.db.Exec(ctx, insertSubscriptionQuery,
		sub.UserLogin, sub.Endpoint, sub.P256DH, sub.Auth, sub.ContentEncodings)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if _, err := p.db.Exec(ctx, refreshSubscriptionQuery,
				sub.UserLogin, sub.Endpoint, sub.P256DH, sub.Auth, sub.ContentEncodings); err != nil {
				return fmt.Errorf("refresh subscription: %w", err)
			}
			p.log.Infow("subscription keys refreshed", "login", sub.UserLogin)
			return nil
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	p.log.Infow("subscription added", "login", sub.UserLogin)
	return nil
}

// RemoveSubscription deletes one stored endpoint for a user.
func (p *Postgres) RemoveSubscription(ctx context.Context, login, endpoint string) error {
	tag, err := p.db.Exec(ctx, deleteSubscriptionQuery, login, endpoint)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrSubscriptionNotFound
	}

	p.log.Infow("subscription removed", "login", login)
	return nil
}

// GetSubscriptions returns all stored endpoints for a user, oldest first.
func (p *Postgres) GetSubscriptions(ctx context.Context, login string) ([]entities.PushSubscription, error) {
	rows, err := p.db.Query(ctx, selectSubscriptionsQuery, login)
	if err != nil {
		return nil, fmt.Errorf("get subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]entities.PushSubscription, 0)
	for rows.Next() {
		var s entities.PushSubscription
		if err := rows.Scan(&s.UserLogin, &s.Endpoint, &s.P256DH, &s.Auth, &s.ContentEncodings, &s.CreatedAt); err != nil {
			p.log.Errorw("failed to scan subscription", "error", err, "login", login)
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}

	return subs, nil
}

// ListSubscribedUsers returns every login with at least one stored endpoint.
func (p *Postgres) ListSubscribedUsers(ctx context.Context) ([]string, error) {
	rows, err := p.db.Query(ctx, subscribedUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("list subscribed users: %w", err)
	}
	defer rows.Close()

	logins := make([]string, 0)
	for rows.Next() {
		var login string
		if err := rows.Scan(&login); err != nil {
			return nil, fmt.Errorf("scan login: %w", err)
		}
		logins = append(logins, login)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logins: %w", err)
	}

	return logins, nil
}
