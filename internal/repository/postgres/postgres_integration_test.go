package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PolymerLabs/project-health-sub001/config"
	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	sub := entities.PushSubscription{
		UserLogin:        "alice",
		Endpoint:         "https://push.example.com/ep-1",
		P256DH:           "p256dh-key",
		Auth:             "auth-secret",
		ContentEncodings: []string{"aes128gcm"},
	}
	require.NoError(t, repo.AddSubscription(ctx, sub))

	// Re-adding the same endpoint refreshes keys instead of failing.
	sub.Auth = "rotated-secret"
	require.NoError(t, repo.AddSubscription(ctx, sub))

	require.NoError(t, repo.AddSubscription(ctx, entities.PushSubscription{
		UserLogin:        "alice",
		Endpoint:         "https://push.example.com/ep-2",
		P256DH:           "other-key",
		Auth:             "other-secret",
		ContentEncodings: []string{"aes128gcm", "aesgcm"},
	}))
	require.NoError(t, repo.AddSubscription(ctx, entities.PushSubscription{
		UserLogin: "bob",
		Endpoint:  "https://push.example.com/ep-3",
		P256DH:    "bob-key",
		Auth:      "bob-secret",
	}))

	subs, err := repo.GetSubscriptions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "https://push.example.com/ep-1", subs[0].Endpoint)
	require.Equal(t, "rotated-secret", subs[0].Auth)
	require.Equal(t, []string{"aes128gcm", "aesgcm"}, subs[1].ContentEncodings)
	require.False(t, subs[0].CreatedAt.IsZero())

	users, err := repo.ListSubscribedUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, users)

	require.NoError(t, repo.RemoveSubscription(ctx, "alice", "https://push.example.com/ep-1"))
	err = repo.RemoveSubscription(ctx, "alice", "https://push.example.com/ep-1")
	require.ErrorIs(t, err, entities.ErrSubscriptionNotFound)

	subs, err = repo.GetSubscriptions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, subs, 1)
}

func TestSettingsIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	settings, err := repo.GetSettings(ctx, "alice")
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(settings))

	require.NoError(t, repo.SetSettings(ctx, "alice", []byte(`{"theme":"dark"}`)))
	settings, err = repo.GetSettings(ctx, "alice")
	require.NoError(t, err)
	require.JSONEq(t, `{"theme":"dark"}`, string(settings))

	require.NoError(t, repo.SetSettings(ctx, "alice", []byte(`{"theme":"light","polling":false}`)))
	settings, err = repo.GetSettings(ctx, "alice")
	require.NoError(t, err)
	require.JSONEq(t, `{"theme":"light","polling":false}`, string(settings))
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=project_health_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "project_health_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=project_health_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
