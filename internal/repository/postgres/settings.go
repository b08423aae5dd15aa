package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const (
	selectSettingsQuery = `SELECT settings FROM user_settings WHERE user_login = $1`
	upsertSettingsQuery = `
INSERT INTO user_settings(user_login, settings, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_login) DO UPDATE SET settings = EXCLUDED.settings, updated_at = now()
`
)

// GetSettings returns the raw settings document for a user. A user with no
// stored settings gets an empty object rather than an error.
func (p *Postgres) GetSettings(ctx context.Context, login string) ([]byte, error) {
	var settings []byte
	err := p.db.QueryRow(ctx, selectSettingsQuery, login).Scan(&settings)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// SetSettings stores the settings document for a user, replacing any
// previous one.
func (p *Postgres) SetSettings(ctx context.Context, login string, settings []byte) error {
	if _, err := p.db.Exec(ctx, upsertSettingsQuery, login, settings); err != nil {
		return fmt.Errorf("set settings: %w", err)
	}

	p.log.Infow("settings updated", "login", login)
	return nil
}
